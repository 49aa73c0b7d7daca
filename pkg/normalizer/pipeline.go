// Package normalizer turns a free-text task request and an untrusted
// model completion into a validated task payload.
//
// The pipeline is sanitize -> extract -> validate -> optional
// auto-urgency. It performs no I/O and holds no state, so calls may run
// concurrently.
package normalizer

import (
	"errors"
	"time"
)

// Normalize runs the full pipeline. rawText is the user's original input;
// it is attached to terminal errors so callers can offer it back for
// editing. A missing due date is never filled in here.
func Normalize(rawText, rawCompletion string, opt Options) (Result, error) {
	candidate, err := Extract(Sanitize(rawCompletion))
	if err != nil {
		return Result{}, withInput(err, rawText)
	}

	task, dropped, warnings, err := validate(candidate)
	if err != nil {
		return Result{}, withInput(err, rawText)
	}

	if opt.Urgency != UrgencyOff {
		now := opt.Now
		if now.IsZero() {
			now = time.Now()
		}
		task.Priority = EstimateUrgency(UrgencyInput{
			Mode:          opt.Urgency,
			Now:           now,
			DueDate:       task.DueDate,
			EstimatedTime: task.EstimatedTime,
			Workload:      opt.Workload,
		})
	}

	return Result{Task: task, Warnings: warnings, DroppedTime: dropped}, nil
}

func withInput(err error, rawText string) error {
	var nerr *Error
	if errors.As(err, &nerr) {
		nerr.Input = rawText
	}
	return err
}

// IsNormalizationError reports whether err is one of the terminal
// pipeline failures.
func IsNormalizationError(err error) bool {
	return errors.Is(err, ErrNoJSONFound) ||
		errors.Is(err, ErrMalformedJSON) ||
		errors.Is(err, ErrMissingTitle)
}
