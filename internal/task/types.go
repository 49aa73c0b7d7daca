package task

import (
	"task-planner/internal/model"
	"task-planner/pkg/normalizer"
)

// Sort orders accepted by List.
const (
	SortPriority = "priority"
	SortDue      = "due"
	SortCreated  = "created"
)

// --- UseCase Inputs ---

type CreateInput struct {
	Title         string
	Description   string
	DueDate       string
	Time          *normalizer.TimeOfDay
	Priority      string
	EstimatedTime int
	Tags          []string
	Notes         string
	// AutoUrgency replaces Priority with the estimated urgency.
	AutoUrgency bool
}

type ParseInput struct {
	Text        string
	AutoUrgency bool
}

type ListInput struct {
	Status          string
	Priority        string
	Tag             string
	Search          string
	DueFrom         string
	DueTo           string
	IncludeArchived bool
	Sort            string
	Limit           int
	Offset          int
}

// UpdateInput is a partial update; zero values keep the stored field.
type UpdateInput struct {
	ID            string
	Title         string
	Description   string
	DueDate       string
	Time          *normalizer.TimeOfDay
	Priority      string
	EstimatedTime int
	ActualTime    int
	Tags          []string
	Notes         string
}

type SetStatusInput struct {
	ID     string
	Status string
}

// --- UseCase Outputs ---

type CreateOutput struct {
	Task     model.Task
	Warnings []normalizer.Warning
}

type ParseOutput struct {
	Task     normalizer.NormalizedTask
	Warnings []normalizer.Warning
	// DroppedTime is a parsed time left off Task because it had no due date.
	DroppedTime *normalizer.TimeOfDay
	Provider    string
	Cached      bool
}

type ListOutput struct {
	Tasks  []model.Task
	Total  int
	Limit  int
	Offset int
}

type DetailOutput struct {
	Task model.Task
}

type UpdateOutput struct {
	Task model.Task
}

type StatsOutput struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Urgent         int `json:"urgent"`
	DueToday       int `json:"dueToday"`
	Overdue        int `json:"overdue"`
	InProgress     int `json:"inProgress"`
	CompletedToday int `json:"completedToday"`
}
