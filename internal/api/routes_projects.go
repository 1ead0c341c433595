package api

import (
	"github.com/gin-gonic/gin"

	"github.com/hardik88t/projman/internal/handlers"
)

func registerProjectRoutes(r *gin.Engine, projects *handlers.ProjectHandler, items *handlers.ProjectItemHandler) {
	group := r.Group("/api/projects")
	{
		group.GET("", projects.List)
		group.POST("", projects.Create)
		group.GET("/:id", projects.Get)
		group.PUT("/:id", projects.Update)
		group.DELETE("/:id", projects.Delete)

		group.GET("/:id/items", items.List)
		group.POST("/:id/items", items.Create)
	}

	itemGroup := r.Group("/api/project-items")
	{
		itemGroup.GET("/:id", items.Get)
		itemGroup.PUT("/:id", items.Update)
		itemGroup.DELETE("/:id", items.Delete)
	}
}
