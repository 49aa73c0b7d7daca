package http

import (
	"errors"
	"net/http"

	"task-planner/internal/task"
	pkgErrors "task-planner/pkg/errors"
	"task-planner/pkg/normalizer"
)

const (
	msgTextRequired   = "Text is required"
	msgInvalidAPIKey  = "Invalid API key. Please check your OpenRouter API key configuration."
	msgRateLimited    = "Rate limit exceeded. Please try again later."
	msgNotConfigured  = "OpenRouter API key not configured"
	msgParseFailed    = "Failed to parse the AI response. Please try rephrasing your task."
	msgProcessFailure = "Failed to process your task. Please try again."
)

// parseError maps a parse failure to the status and message of the parse-task contract.
func parseError(err error) (int, string) {
	switch {
	case errors.Is(err, task.ErrEmptyInput):
		return http.StatusBadRequest, msgTextRequired
	case errors.Is(err, task.ErrUnauthorized):
		return http.StatusUnauthorized, msgInvalidAPIKey
	case errors.Is(err, task.ErrRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	case normalizer.IsNormalizationError(err):
		return http.StatusUnprocessableEntity, msgParseFailed
	case errors.Is(err, task.ErrLLMUnavailable):
		return http.StatusInternalServerError, msgNotConfigured
	default:
		return http.StatusInternalServerError, msgProcessFailure
	}
}

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "task not found")
	case errors.Is(err, task.ErrAmbiguousID):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, task.ErrInvalidTransition):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, task.ErrEmptyInput),
		errors.Is(err, task.ErrInvalidTitle),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrInvalidDueDate),
		errors.Is(err, task.ErrInvalidTime),
		errors.Is(err, task.ErrTimeWithoutDate),
		errors.Is(err, task.ErrInvalidEstimate),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidSort):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, task.ErrUnauthorized),
		errors.Is(err, task.ErrRateLimited),
		normalizer.IsNormalizationError(err),
		errors.Is(err, task.ErrLLMUnavailable):
		status, msg := parseError(err)
		return pkgErrors.NewHTTPError(status, msg)
	default:
		return pkgErrors.ErrInternalServerError
	}
}
