package http

import (
	"github.com/gin-gonic/gin"

	"task-planner/internal/habit"
	"task-planner/pkg/log"
)

// Handler is the public interface for the habit HTTP delivery layer.
type Handler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Complete(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc habit.UseCase
}

func New(l log.Logger, uc habit.UseCase) *handler {
	return &handler{l: l, uc: uc}
}

var _ Handler = (*handler)(nil)
