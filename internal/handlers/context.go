package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/hardik88t/projman/internal/middleware"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated user's id attached by the request
// gate, or "" when the request is anonymous.
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}
