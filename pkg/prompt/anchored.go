package prompt

import (
	"fmt"
	"strings"

	"task-planner/pkg/datemath"
)

// anchored pins the model to the current date and time and lists the user's tasks.
type anchored struct{}

func (anchored) Name() string { return StrategyAnchored }

func (anchored) Build(pc Context) Prompt {
	date := pc.Now.Format(datemath.DateLayout)

	sections := []string{
		fmt.Sprintf("You are an AI task parser for a task management application. Your job is to convert natural language task descriptions into structured data. The current date is %s and the current time is %s.", date, pc.Now.Format("15:04:05")),
		"Current Tasks:\n" + formatTasks(pc.Tasks),
		schemaBlock,
		titleRules,
		timeRules,
		fmt.Sprintf(`Date interpretation rules:
- Use the current date (%s) as reference for relative dates
- "tomorrow" = next day from current date
- "next [day]" = next occurrence of that day after current date
- "this [day]" = this week's occurrence of that day
- If date is past, assume next occurrence`, date),
		priorityRules,
		durationRules,
		outputRules,
	}

	return Prompt{System: strings.Join(sections, "\n\n"), User: pc.Text}
}
