package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hardik88t/projman/pkg/response"
)

// Health returns a simple status payload useful for readiness checks. The
// database ping is included so orchestrators notice a wedged store.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK

		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(requestContext(c)) != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		response.JSON(c, code, gin.H{"status": status})
	}
}
