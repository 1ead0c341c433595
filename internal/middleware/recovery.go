package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardik88t/projman/pkg/logger"
	"github.com/hardik88t/projman/pkg/response"
)

// Recovery converts panics into a 500 response and logs the error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithModule("http").Error("panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", r),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorBody{
					Error: "Internal server error",
					Code:  "INTERNAL_SERVER_ERROR",
				})
			}
		}()
		c.Next()
	}
}
