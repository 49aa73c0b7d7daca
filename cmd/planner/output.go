package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"task-planner/internal/command"
	"task-planner/internal/model"
	"task-planner/pkg/normalizer"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// printer renders command results in the selected format.
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (printer, error) {
	if w == nil {
		w = os.Stdout
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		format = formatText
	case formatText, formatJSON, formatYAML:
	default:
		return printer{}, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
	return printer{w: w, format: format}, nil
}

// print writes v as JSON or YAML, or calls text for the text format.
func (p printer) print(v any, text func(w io.Writer)) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		text(p.w)
		return nil
	}
}

type taskView struct {
	ID            string                `json:"id" yaml:"id"`
	Title         string                `json:"title" yaml:"title"`
	Description   string                `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate       string                `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Time          *normalizer.TimeOfDay `json:"time,omitempty" yaml:"time,omitempty"`
	Priority      string                `json:"priority" yaml:"priority"`
	Status        string                `json:"status" yaml:"status"`
	EstimatedTime int                   `json:"estimatedTime,omitempty" yaml:"estimatedTime,omitempty"`
	ActualTime    int                   `json:"actualTime,omitempty" yaml:"actualTime,omitempty"`
	Tags          []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Notes         string                `json:"notes,omitempty" yaml:"notes,omitempty"`
	CalendarLink  string                `json:"calendarLink,omitempty" yaml:"calendarLink,omitempty"`
	CreatedAt     time.Time             `json:"createdAt" yaml:"createdAt"`
	CompletedAt   *time.Time            `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

func newTaskView(t model.Task) taskView {
	return taskView{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		DueDate:       t.DueDate,
		Time:          t.Time,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		EstimatedTime: t.EstimatedTime,
		ActualTime:    t.ActualTime,
		Tags:          t.Tags,
		Notes:         t.Notes,
		CalendarLink:  t.CalendarLink,
		CreatedAt:     t.CreatedAt,
		CompletedAt:   t.CompletedAt,
	}
}

func newTaskViews(ts []model.Task) []taskView {
	out := make([]taskView, len(ts))
	for i, t := range ts {
		out[i] = newTaskView(t)
	}
	return out
}

type habitView struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Frequency     string `json:"frequency" yaml:"frequency"`
	Streak        int    `json:"streak" yaml:"streak"`
	LastCompleted string `json:"lastCompleted,omitempty" yaml:"lastCompleted,omitempty"`
}

func newHabitView(h model.Habit) habitView {
	return habitView{
		ID:            h.ID,
		Title:         h.Title,
		Frequency:     string(h.Frequency),
		Streak:        h.Streak,
		LastCompleted: h.LastCompleted,
	}
}

func (p printer) task(t model.Task, warnings []normalizer.Warning) error {
	return p.print(newTaskView(t), func(w io.Writer) {
		fmt.Fprintln(w, command.FormatTask(t))
		printWarnings(w, warnings)
	})
}

func (p printer) tasks(ts []model.Task, total int) error {
	return p.print(newTaskViews(ts), func(w io.Writer) {
		if len(ts) == 0 {
			fmt.Fprintln(w, "No tasks found.")
			return
		}
		for _, t := range ts {
			fmt.Fprintln(w, command.FormatTask(t))
		}
		if total > len(ts) {
			fmt.Fprintf(w, "(%d of %d)\n", len(ts), total)
		}
	})
}

func (p printer) habit(h model.Habit) error {
	return p.print(newHabitView(h), func(w io.Writer) {
		fmt.Fprintln(w, command.FormatHabit(h))
	})
}

func (p printer) habits(hs []model.Habit) error {
	views := make([]habitView, len(hs))
	for i, h := range hs {
		views[i] = newHabitView(h)
	}
	return p.print(views, func(w io.Writer) {
		if len(hs) == 0 {
			fmt.Fprintln(w, "No habits found.")
			return
		}
		for _, h := range hs {
			fmt.Fprintln(w, command.FormatHabit(h))
		}
	})
}

func printWarnings(w io.Writer, warnings []normalizer.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}
