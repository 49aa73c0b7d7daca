package http

import (
	"github.com/gin-gonic/gin"

	"task-planner/internal/task"
	"task-planner/pkg/log"
)

// Handler is the public interface for the task HTTP delivery layer.
type Handler interface {
	ParseTask(c *gin.Context)
	Create(c *gin.Context)
	QuickAdd(c *gin.Context)
	List(c *gin.Context)
	Stats(c *gin.Context)
	Overview(c *gin.Context)
	Detail(c *gin.Context)
	Update(c *gin.Context)
	SetStatus(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc task.UseCase
}

// New creates a new HTTP handler for the task domain.
func New(l log.Logger, uc task.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}

var _ Handler = (*handler)(nil)
