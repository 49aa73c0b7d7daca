package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput        = errors.New("text is required")
	ErrTaskNotFound      = errors.New("task not found")
	ErrAmbiguousID       = errors.New("task id prefix is ambiguous")
	ErrInvalidTitle      = errors.New("title is required")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidDueDate    = errors.New("invalid due date")
	ErrInvalidTime       = errors.New("invalid time")
	ErrTimeWithoutDate   = errors.New("time requires a due date")
	ErrInvalidEstimate   = errors.New("estimated time must not be negative")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidSort       = errors.New("invalid sort order")
	ErrLLMUnavailable    = errors.New("no text completion provider configured")
	ErrUnauthorized      = errors.New("completion provider rejected the api key")
	ErrRateLimited       = errors.New("rate limit exceeded")
)
