package telegram

import (
	"errors"

	"task-planner/internal/task"
	"task-planner/pkg/normalizer"
)

// errorMessage returns a user-facing error string for the given error.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case normalizer.IsNormalizationError(err):
		return "I couldn't turn that into a task. Try rephrasing it."
	case errors.Is(err, task.ErrRateLimited):
		return "Rate limit exceeded. Please try again later."
	case errors.Is(err, task.ErrUnauthorized), errors.Is(err, task.ErrLLMUnavailable):
		return "Task parsing is not available right now."
	case errors.Is(err, task.ErrTaskNotFound):
		return "No task matches that id."
	case errors.Is(err, task.ErrAmbiguousID):
		return "That id prefix matches more than one task."
	case errors.Is(err, task.ErrInvalidTransition):
		return "That task can't be moved to the requested status."
	}
	return "Something went wrong. Please try again."
}
