package habit

import "errors"

var (
	ErrInvalidTitle     = errors.New("title is required")
	ErrInvalidFrequency = errors.New("frequency must be daily, weekly, or monthly")
	ErrHabitNotFound    = errors.New("habit not found")
	ErrAmbiguousID      = errors.New("habit id prefix is ambiguous")
	ErrAlreadyCompleted = errors.New("habit already completed today")
)
