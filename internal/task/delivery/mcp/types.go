package mcp

import (
	"task-planner/internal/model"
	"task-planner/pkg/normalizer"
)

// ParseTaskArgs is the input for the parse_task and create_task_from_text tools.
type ParseTaskArgs struct {
	Text        string `json:"text"                   jsonschema:"Free-form task description, e.g. 'call John tomorrow at 9am'"`
	AutoUrgency bool   `json:"auto_urgency,omitempty" jsonschema:"Estimate priority from the due date"`
}

// ParseTaskOutput is the normalized task preview.
type ParseTaskOutput struct {
	Task     normalizer.NormalizedTask `json:"task"`
	Warnings []string                  `json:"warnings,omitempty"`
	Provider string                    `json:"provider,omitempty"`
}

// ListTasksArgs is the input for the list_tasks tool.
type ListTasksArgs struct {
	Status   string `json:"status,omitempty"   jsonschema:"todo, in-progress, completed or archived"`
	Priority string `json:"priority,omitempty" jsonschema:"urgent, high, medium or low"`
	Tag      string `json:"tag,omitempty"      jsonschema:"Only tasks carrying this tag"`
	Search   string `json:"search,omitempty"   jsonschema:"Case-insensitive match on title and description"`
	Limit    int    `json:"limit,omitempty"    jsonschema:"Maximum number of tasks to return"`
}

// CompleteTaskArgs is the input for the complete_task tool.
type CompleteTaskArgs struct {
	ID string `json:"id" jsonschema:"Task id or a unique prefix of it"`
}

// TaskView is a stored task as seen by tool callers.
type TaskView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	DueDate       string   `json:"dueDate,omitempty"`
	Time          string   `json:"time,omitempty"`
	Priority      string   `json:"priority"`
	Status        string   `json:"status"`
	EstimatedTime int      `json:"estimatedTime,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	CalendarLink  string   `json:"calendarLink,omitempty"`
}

// TaskOutput wraps a single task.
type TaskOutput struct {
	Task     TaskView `json:"task"`
	Warnings []string `json:"warnings,omitempty"`
}

// ListTasksOutput is the list_tasks result.
type ListTasksOutput struct {
	Tasks []TaskView `json:"tasks"`
	Total int        `json:"total"`
}

func toView(t model.Task) TaskView {
	v := TaskView{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		DueDate:       t.DueDate,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		EstimatedTime: t.EstimatedTime,
		Tags:          t.Tags,
		CalendarLink:  t.CalendarLink,
	}
	if t.Time != nil {
		v.Time = t.Time.String()
	}
	return v
}

func warningStrings(ws []normalizer.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
