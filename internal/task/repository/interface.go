package repository

import (
	"context"

	"task-planner/internal/model"
)

// Repository is the task store. Every call is scoped to one owner.
// GetTask returns a zero Task (empty ID) when nothing matches.
type Repository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	GetTask(ctx context.Context, opt GetTaskOptions) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	DeleteTask(ctx context.Context, opt DeleteTaskOptions) error
	Close() error
}
