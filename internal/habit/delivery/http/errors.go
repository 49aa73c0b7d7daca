package http

import (
	"errors"
	"net/http"

	"task-planner/internal/habit"
	pkgErrors "task-planner/pkg/errors"
)

var errIDRequired = pkgErrors.NewHTTPError(http.StatusBadRequest, "id is required")

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, habit.ErrHabitNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, habit.ErrAmbiguousID), errors.Is(err, habit.ErrAlreadyCompleted):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, habit.ErrInvalidTitle), errors.Is(err, habit.ErrInvalidFrequency):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
