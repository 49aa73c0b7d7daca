package prompt

import (
	"fmt"
	"strings"

	"task-planner/pkg/datemath"
)

var exampleExprs = []string{"tomorrow", "next monday", "next friday", "next week"}

// weekly spells out the current week and pre-resolves common relative dates
// so small models do not have to do calendar arithmetic.
type weekly struct {
	parser *datemath.Parser
}

func (weekly) Name() string { return StrategyWeekly }

func (w weekly) Build(pc Context) Prompt {
	now := pc.Now.In(w.parser.Location())
	monday, sunday := w.parser.WeekBounds(now)

	var calendar strings.Builder
	fmt.Fprintf(&calendar, "Today is %s, %s. The current time is %s (%s).\n",
		now.Weekday(), now.Format(datemath.DateLayout), now.Format("15:04"), w.parser.Location())
	fmt.Fprintf(&calendar, "This week runs from Monday %s to Sunday %s.\n",
		monday.Format(datemath.DateLayout), sunday.Format(datemath.DateLayout))
	calendar.WriteString("Resolved examples:")
	for _, expr := range exampleExprs {
		date, err := w.parser.ResolveDate(expr, now)
		if err != nil {
			continue
		}
		fmt.Fprintf(&calendar, "\n- %q = %s", expr, date)
	}

	sections := []string{
		"You convert a natural language task description into one JSON task object.",
		calendar.String(),
		"Current Tasks:\n" + formatTasks(pc.Tasks),
		schemaBlock,
		titleRules,
		timeRules,
		`Date interpretation rules:
- Use the calendar above; never guess a year or month
- "this [day]" = that day inside the current week
- If a date would be in the past, use its next occurrence
- Leave dueDate out when no date is mentioned`,
		priorityRules,
		durationRules,
		outputRules,
	}

	return Prompt{System: strings.Join(sections, "\n\n"), User: pc.Text}
}
