package http

import (
	"github.com/gin-gonic/gin"

	"task-planner/internal/middleware"
)

// RegisterRoutes mounts the parse endpoint and the task resource under api ("/api").
func RegisterRoutes(api *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	api.POST("/parse-task", mw.RateLimit(h.rejectParse), mw.Scope(), h.ParseTask)

	tasks := api.Group("/v1/tasks", mw.Scope())
	{
		tasks.POST("", h.Create)
		tasks.POST("/quick", mw.RateLimit(nil), h.QuickAdd)
		tasks.GET("", h.List)
		tasks.GET("/stats", h.Stats)
		tasks.GET("/overview", h.Overview)
		tasks.GET("/:id", h.Detail)
		tasks.PUT("/:id", h.Update)
		tasks.PATCH("/:id/status", h.SetStatus)
		tasks.DELETE("/:id", h.Delete)
	}
}
