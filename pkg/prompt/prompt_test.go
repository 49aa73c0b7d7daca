package prompt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/pkg/datemath"
)

func TestNew(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)

	s, err := New("", nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyAnchored, s.Name())

	s, err = New(" Weekly ", parser)
	require.NoError(t, err)
	assert.Equal(t, StrategyWeekly, s.Name())

	_, err = New(StrategyWeekly, nil)
	assert.Error(t, err)

	_, err = New("few-shot", parser)
	assert.Error(t, err)
}

func TestAnchored_Build(t *testing.T) {
	now := time.Date(2025, 6, 4, 16, 5, 9, 0, time.UTC)
	p := anchored{}.Build(Context{
		Text: "call mom tomorrow",
		Now:  now,
		Tasks: []TaskSummary{
			{Title: "Pay rent", Status: "todo", Priority: "high", DueDate: "2025-06-05"},
			{Title: "Read book", Status: "in-progress", Priority: "low"},
		},
	})

	assert.Equal(t, "call mom tomorrow", p.User)
	assert.Contains(t, p.System, "The current date is 2025-06-04 and the current time is 16:05:09.")
	assert.Contains(t, p.System, "- Pay rent (todo, high priority, due 2025-06-05)")
	assert.Contains(t, p.System, "- Read book (in-progress, low priority)")
	assert.Contains(t, p.System, "Use the current date (2025-06-04)")
	assert.Contains(t, p.System, "Respond ONLY with the JSON object")
}

func TestAnchored_NoTasks(t *testing.T) {
	p := anchored{}.Build(Context{Now: time.Now()})
	assert.Contains(t, p.System, "Current Tasks:\n(none)")
}

func TestWeekly_Build(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)

	// Wednesday
	now := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)
	p := weekly{parser: parser}.Build(Context{Text: "x", Now: now})

	assert.Contains(t, p.System, "Today is Wednesday, 2025-06-04.")
	assert.Contains(t, p.System, "from Monday 2025-06-02 to Sunday 2025-06-08")
	assert.Contains(t, p.System, `"tomorrow" = 2025-06-05`)
	assert.Contains(t, p.System, `"next monday" = 2025-06-09`)
	assert.Contains(t, p.System, `"next friday" = 2025-06-06`)
	assert.Contains(t, p.System, `"next week" = 2025-06-11`)
}
