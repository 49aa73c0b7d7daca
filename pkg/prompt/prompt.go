// Package prompt builds the system and user messages sent to the completion
// service when turning free text into a task.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"task-planner/pkg/datemath"
)

const (
	StrategyAnchored = "anchored"
	StrategyWeekly   = "weekly"
)

// TaskSummary is the slice of a stored task shown to the model as context.
type TaskSummary struct {
	Title    string
	Status   string
	Priority string
	DueDate  string
}

// Context is everything a strategy may draw on.
type Context struct {
	Text  string
	Now   time.Time
	Tasks []TaskSummary
}

// Prompt is a ready-to-send message pair.
type Prompt struct {
	System string
	User   string
}

// Strategy turns a request context into a prompt.
type Strategy interface {
	Name() string
	Build(pc Context) Prompt
}

// New returns the strategy registered under name. An empty name selects the anchored strategy.
func New(name string, parser *datemath.Parser) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyAnchored:
		return anchored{}, nil
	case StrategyWeekly:
		if parser == nil {
			return nil, fmt.Errorf("prompt: %s strategy requires a date parser", StrategyWeekly)
		}
		return weekly{parser: parser}, nil
	default:
		return nil, fmt.Errorf("prompt: unknown strategy %q", name)
	}
}

func formatTasks(tasks []TaskSummary) string {
	if len(tasks) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for i, t := range tasks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "- %s (%s, %s priority", t.Title, t.Status, t.Priority)
		if t.DueDate != "" {
			fmt.Fprintf(&sb, ", due %s", t.DueDate)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
