package http

import (
	"github.com/gin-gonic/gin"

	"task-planner/internal/middleware"
)

// RegisterRoutes mounts the habit resource under api ("/api").
func RegisterRoutes(api *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	habits := api.Group("/v1/habits", mw.Scope())
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.POST("/:id/complete", h.Complete)
		habits.DELETE("/:id", h.Delete)
	}
}
