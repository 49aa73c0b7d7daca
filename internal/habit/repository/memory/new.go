// Package memory keeps habits in process memory.
package memory

import (
	"sync"

	"task-planner/internal/habit/repository"
	"task-planner/internal/model"
)

type implRepository struct {
	mu     sync.RWMutex
	habits map[string]map[string]model.Habit // owner -> id -> habit
	order  map[string][]string
}

func New() repository.Repository {
	return &implRepository{
		habits: make(map[string]map[string]model.Habit),
		order:  make(map[string][]string),
	}
}
