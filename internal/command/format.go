package command

import (
	"fmt"
	"strings"

	"task-planner/internal/model"
)

// ShortID is the id prefix shown in listings; commands accept any unique prefix.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatTask renders one task line, e.g. "1a2b3c4d: [x] Ship release (due: 2025-06-03 09:00, high)".
func FormatTask(t model.Task) string {
	mark := " "
	switch t.Status {
	case model.StatusCompleted:
		mark = "x"
	case model.StatusInProgress:
		mark = "~"
	case model.StatusArchived:
		mark = "-"
	}

	var extra []string
	if t.DueDate != "" {
		due := "due: " + t.DueDate
		if t.Time != nil {
			due += " " + t.Time.String()
		}
		extra = append(extra, due)
	}
	if t.Priority != "" {
		extra = append(extra, string(t.Priority))
	}

	line := fmt.Sprintf("%s: [%s] %s", ShortID(t.ID), mark, t.Title)
	if len(extra) > 0 {
		line += " (" + strings.Join(extra, ", ") + ")"
	}
	return line
}

func FormatHabit(h model.Habit) string {
	return fmt.Sprintf("%s: %s (%s, streak: %d)", ShortID(h.ID), h.Title, h.Frequency, h.Streak)
}
