package repository

import "task-planner/internal/model"

// CreateTaskOptions holds a fully built task to insert.
type CreateTaskOptions struct {
	Owner string
	Task  model.Task
}

type GetTaskOptions struct {
	Owner string
	ID    string
}

// ListTasksOptions returns tasks in insertion order.
type ListTasksOptions struct {
	Owner string
}

// UpdateTaskOptions replaces the stored task with the same ID.
type UpdateTaskOptions struct {
	Owner string
	Task  model.Task
}

type DeleteTaskOptions struct {
	Owner string
	ID    string
}
