package normalizer

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of due dates.
const DateLayout = "2006-01-02"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists the allowed values from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ParsePriority matches s against the allowed set, ignoring case and
// surrounding whitespace.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, true
	}
	return "", false
}

// Rank orders priorities for display: urgent=1 ... low=4, unknown=5.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	}
	return 5
}

// TimeOfDay is a wall-clock time attached to a due date.
type TimeOfDay struct {
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Valid reports whether the time is within 00:00..23:59.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// NormalizedTask is a validated task-creation payload. Every field that is
// set has passed type and range checks.
type NormalizedTask struct {
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description" yaml:"description"`
	DueDate       string     `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Time          *TimeOfDay `json:"time,omitempty" yaml:"time,omitempty"`
	Priority      Priority   `json:"priority" yaml:"priority"`
	EstimatedTime int        `json:"estimatedTime,omitempty" yaml:"estimatedTime,omitempty"`
}

// Candidate is the untyped object extracted from a completion.
type Candidate map[string]any

// ReasonNoDueDate is the Warning reason for a time dropped without a date.
const ReasonNoDueDate = "dropped: no due date"

// Warning records a field that was dropped or defaulted.
type Warning struct {
	Field  string
	Reason string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Reason
}

// Workload is a snapshot of the owner's in-progress tasks.
type Workload struct {
	InProgress        int
	InProgressMinutes int
}

// Options tunes a Normalize call. Now anchors auto-urgency; the zero
// value means time.Now().
type Options struct {
	Urgency  UrgencyMode
	Now      time.Time
	Workload Workload
}

// Result is a successful normalization.
type Result struct {
	Task     NormalizedTask
	Warnings []Warning
	// DroppedTime is the parsed time removed because no due date was
	// given. A caller that supplies a default date may restore it.
	DroppedTime *TimeOfDay
}
