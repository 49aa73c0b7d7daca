package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"task-planner/internal/habit"
	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/pkg/normalizer"
)

const duePrefix = "due:"

func success(format string, args ...any) Response {
	return Response{Type: TypeSuccess, Message: fmt.Sprintf(format, args...)}
}

func info(msg string) Response {
	return Response{Type: TypeInfo, Message: msg}
}

func failure(msg string) Response {
	return Response{Type: TypeError, Message: msg}
}

func (h *handler) Execute(ctx context.Context, sc model.Scope, line string) Response {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return failure(`Unknown command. Type "help" for available commands.`)
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "help":
		return info(helpText)
	case "task":
		return h.taskCommand(ctx, sc, args)
	case "habit":
		return h.habitCommand(ctx, sc, args)
	case "list":
		return h.listCommand(ctx, sc, args)
	case "quick":
		return h.quick(ctx, sc, strings.Join(args, " "))
	default:
		return failure(`Unknown command. Type "help" for available commands.`)
	}
}

func (h *handler) taskCommand(ctx context.Context, sc model.Scope, args []string) Response {
	if len(args) == 0 {
		return failure(`Invalid task command. Type "help" for usage.`)
	}
	sub, rest := strings.ToLower(args[0]), args[1:]

	if sub == "add" {
		if len(rest) == 0 {
			return failure("Please provide a task title.")
		}
		title, due := splitDue(rest)
		out, err := h.tasks.Create(ctx, sc, task.CreateInput{Title: title, DueDate: due})
		if err != nil {
			return h.taskError(ctx, "", err)
		}
		return success("Task created with ID: %s", out.Task.ID)
	}

	if len(rest) == 0 {
		return failure("Please provide a task id.")
	}
	id := rest[0]

	switch sub {
	case "complete", "done":
		if _, err := h.tasks.SetStatus(ctx, sc, task.SetStatusInput{ID: id, Status: string(model.StatusCompleted)}); err != nil {
			return h.taskError(ctx, id, err)
		}
		return success("Task %s marked as complete.", id)
	case "start":
		if _, err := h.tasks.SetStatus(ctx, sc, task.SetStatusInput{ID: id, Status: string(model.StatusInProgress)}); err != nil {
			return h.taskError(ctx, id, err)
		}
		return success("Task %s marked as in progress.", id)
	case "delete":
		if err := h.tasks.Delete(ctx, sc, id); err != nil {
			return h.taskError(ctx, id, err)
		}
		return success("Task %s deleted.", id)
	default:
		return failure(`Invalid task command. Type "help" for usage.`)
	}
}

// splitDue separates "title words due:<expr>" into title and due expression.
// The expression runs to the end of the line, so "due:next friday" works.
func splitDue(words []string) (string, string) {
	for i, w := range words {
		if len(w) < len(duePrefix) || !strings.EqualFold(w[:len(duePrefix)], duePrefix) {
			continue
		}
		expr := append([]string{w[len(duePrefix):]}, words[i+1:]...)
		return strings.Join(words[:i], " "), strings.TrimSpace(strings.Join(expr, " "))
	}
	return strings.Join(words, " "), ""
}

func (h *handler) habitCommand(ctx context.Context, sc model.Scope, args []string) Response {
	if len(args) == 0 {
		return failure(`Invalid habit command. Type "help" for usage.`)
	}
	sub, rest := strings.ToLower(args[0]), args[1:]

	switch sub {
	case "add":
		if len(rest) < 2 {
			return failure("Please provide a habit title and frequency.")
		}
		title := strings.Join(rest[:len(rest)-1], " ")
		out, err := h.habits.Create(ctx, sc, habit.CreateInput{Title: title, Frequency: rest[len(rest)-1]})
		if err != nil {
			return h.habitError(ctx, "", err)
		}
		return success("Habit created with ID: %s", out.Habit.ID)
	case "complete", "done":
		if len(rest) == 0 {
			return failure("Please provide a habit id.")
		}
		out, err := h.habits.Complete(ctx, sc, rest[0])
		if err != nil {
			return h.habitError(ctx, rest[0], err)
		}
		return success("Habit %s completed. Current streak: %d", rest[0], out.Habit.Streak)
	case "delete":
		if len(rest) == 0 {
			return failure("Please provide a habit id.")
		}
		if err := h.habits.Delete(ctx, sc, rest[0]); err != nil {
			return h.habitError(ctx, rest[0], err)
		}
		return success("Habit %s deleted.", rest[0])
	default:
		return failure(`Invalid habit command. Type "help" for usage.`)
	}
}

func (h *handler) listCommand(ctx context.Context, sc model.Scope, args []string) Response {
	if len(args) == 0 {
		return failure("Please specify what to list (tasks or habits).")
	}

	switch strings.ToLower(args[0]) {
	case "tasks":
		out, err := h.tasks.List(ctx, sc, task.ListInput{})
		if err != nil {
			return h.taskError(ctx, "", err)
		}
		if len(out.Tasks) == 0 {
			return info("No tasks found.")
		}
		lines := make([]string, len(out.Tasks))
		for i, t := range out.Tasks {
			lines[i] = FormatTask(t)
		}
		return info("Tasks:\n" + strings.Join(lines, "\n"))
	case "habits":
		out, err := h.habits.List(ctx, sc)
		if err != nil {
			return h.habitError(ctx, "", err)
		}
		if len(out.Habits) == 0 {
			return info("No habits found.")
		}
		lines := make([]string, len(out.Habits))
		for i, m := range out.Habits {
			lines[i] = FormatHabit(m)
		}
		return info("Habits:\n" + strings.Join(lines, "\n"))
	default:
		return failure(`Invalid list command. Use "list tasks" or "list habits".`)
	}
}

func (h *handler) quick(ctx context.Context, sc model.Scope, text string) Response {
	out, err := h.tasks.CreateFromText(ctx, sc, task.ParseInput{Text: text})
	if err != nil {
		return h.taskError(ctx, "", err)
	}
	return success("Task created with ID: %s\n%s", out.Task.ID, FormatTask(out.Task))
}

func (h *handler) taskError(ctx context.Context, id string, err error) Response {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return failure(fmt.Sprintf("Task %s not found.", id))
	case errors.Is(err, task.ErrAmbiguousID):
		return failure(fmt.Sprintf("Task id %s matches more than one task.", id))
	case errors.Is(err, task.ErrEmptyInput):
		return failure("Please describe the task.")
	case normalizer.IsNormalizationError(err):
		return failure("Could not understand that task. Try rephrasing it.")
	case errors.Is(err, task.ErrInvalidTitle),
		errors.Is(err, task.ErrInvalidDueDate),
		errors.Is(err, task.ErrInvalidTransition),
		errors.Is(err, task.ErrLLMUnavailable),
		errors.Is(err, task.ErrUnauthorized),
		errors.Is(err, task.ErrRateLimited):
		return failure(capitalize(err.Error()) + ".")
	}
	h.l.Errorf(ctx, "command.taskError: %v", err)
	return failure("Something went wrong. Please try again.")
}

func (h *handler) habitError(ctx context.Context, id string, err error) Response {
	switch {
	case errors.Is(err, habit.ErrHabitNotFound):
		return failure(fmt.Sprintf("Habit %s not found.", id))
	case errors.Is(err, habit.ErrAlreadyCompleted):
		return failure(fmt.Sprintf("Habit %s already completed today.", id))
	case errors.Is(err, habit.ErrInvalidFrequency):
		return failure("Frequency must be daily, weekly, or monthly.")
	case errors.Is(err, habit.ErrInvalidTitle), errors.Is(err, habit.ErrAmbiguousID):
		return failure(capitalize(err.Error()) + ".")
	}
	h.l.Errorf(ctx, "command.habitError: %v", err)
	return failure("Something went wrong. Please try again.")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
