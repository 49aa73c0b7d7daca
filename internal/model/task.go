package model

import (
	"time"

	"task-planner/pkg/normalizer"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusArchived   TaskStatus = "archived"
)

var transitions = map[TaskStatus][]TaskStatus{
	StatusTodo:       {StatusInProgress, StatusCompleted, StatusArchived},
	StatusInProgress: {StatusTodo, StatusCompleted, StatusArchived},
	StatusCompleted:  {StatusTodo, StatusArchived},
	StatusArchived:   {StatusTodo},
}

// ParseTaskStatus accepts the canonical names plus a few aliases ("done", "in_progress").
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusArchived:
		return TaskStatus(s), true
	case "done":
		return StatusCompleted, true
	case "in_progress", "doing":
		return StatusInProgress, true
	}
	return "", false
}

// CanTransition reports whether a task may move from s to next.
// Moving to the current status is always allowed and is a no-op.
func (s TaskStatus) CanTransition(next TaskStatus) bool {
	if s == next {
		return true
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Active reports whether the task still needs work.
func (s TaskStatus) Active() bool {
	return s == StatusTodo || s == StatusInProgress
}

// Task is a stored planner task.
type Task struct {
	ID            string                `json:"id"`
	Owner         string                `json:"owner"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	DueDate       string                `json:"dueDate,omitempty"` // YYYY-MM-DD
	Time          *normalizer.TimeOfDay `json:"time,omitempty"`
	Priority      normalizer.Priority   `json:"priority"`
	Status        TaskStatus            `json:"status"`
	EstimatedTime int                   `json:"estimatedTime,omitempty"` // minutes
	ActualTime    int                   `json:"actualTime,omitempty"`
	Tags          []string              `json:"tags,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	CalendarLink  string                `json:"calendarLink,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	CompletedAt   *time.Time            `json:"completedAt,omitempty"`
}

// HasTag reports whether the task carries tag, compared case-sensitively.
func (t Task) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}
