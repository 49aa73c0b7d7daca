// Package command interprets the planner's line-oriented command language
// used by the REPL.
package command

import (
	"context"

	"task-planner/internal/habit"
	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/pkg/log"
)

// ResponseType classifies a command result for display.
type ResponseType string

const (
	TypeSuccess ResponseType = "success"
	TypeError   ResponseType = "error"
	TypeInfo    ResponseType = "info"
)

// Response is the result of one command line.
type Response struct {
	Type    ResponseType `json:"type"`
	Message string       `json:"message"`
}

// Handler executes command lines on behalf of a scope.
type Handler interface {
	Execute(ctx context.Context, sc model.Scope, line string) Response
}

type handler struct {
	l      log.Logger
	tasks  task.UseCase
	habits habit.UseCase
}

func New(l log.Logger, tasks task.UseCase, habits habit.UseCase) Handler {
	return &handler{l: l, tasks: tasks, habits: habits}
}
