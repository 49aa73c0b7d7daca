// Package memory keeps tasks in process memory. State is lost on restart.
package memory

import (
	"sync"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
)

type ownerTasks struct {
	tasks map[string]model.Task
	order []string // insertion order for stable listing
}

type implRepository struct {
	mu     sync.RWMutex
	owners map[string]*ownerTasks
}

// New creates an empty in-memory task repository.
func New() repository.Repository {
	return &implRepository{owners: make(map[string]*ownerTasks)}
}

func (r *implRepository) Close() error { return nil }
