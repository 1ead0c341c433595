package api

import (
	"github.com/gin-gonic/gin"

	"github.com/hardik88t/projman/internal/handlers"
)

func registerAuthRoutes(r *gin.Engine, handler *handlers.AuthHandler) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", handler.Login)
		auth.POST("/signup", handler.Signup)
		auth.POST("/logout", handler.Logout)
		auth.POST("/forgot-password", handler.ForgotPassword)
		auth.POST("/reset-password", handler.ResetPassword)
		auth.POST("/verify-email", handler.VerifyEmail)

		// gated through the request gate's protected table
		auth.GET("/me", handler.Me)
	}
}
