package normalizer

import (
	"fmt"
	"strings"
	"time"
)

// UrgencyMode selects how auto-urgency derives a priority.
type UrgencyMode int

const (
	UrgencyOff UrgencyMode = iota
	UrgencySimple
	UrgencyWorkload
)

func (m UrgencyMode) String() string {
	switch m {
	case UrgencySimple:
		return "simple"
	case UrgencyWorkload:
		return "workload"
	}
	return "off"
}

// ParseUrgencyMode accepts "", "off", "simple" or "workload".
func ParseUrgencyMode(s string) (UrgencyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none", "false":
		return UrgencyOff, nil
	case "simple", "true":
		return UrgencySimple, nil
	case "workload":
		return UrgencyWorkload, nil
	}
	return UrgencyOff, fmt.Errorf("unknown auto-urgency mode %q", s)
}

// Workload thresholds.
const (
	longTaskMinutes      = 120
	heavyWorkloadMinutes = 240
	busyTomorrowCount    = 3
	busySoonCount        = 2
)

// UrgencyInput carries everything the estimator needs. Now and Workload
// are supplied by the caller.
type UrgencyInput struct {
	Mode          UrgencyMode
	Now           time.Time
	DueDate       string
	EstimatedTime int
	Workload      Workload
}

// EstimateUrgency derives a priority from the due date and, in workload
// mode, the estimate and in-progress load. A task without a usable due
// date is medium.
func EstimateUrgency(in UrgencyInput) Priority {
	days, ok := DaysUntil(in.Now, in.DueDate)
	if !ok {
		return PriorityMedium
	}

	if in.Mode == UrgencyWorkload {
		return workloadUrgency(days, in.EstimatedTime, in.Workload)
	}

	switch {
	case days <= 1:
		return PriorityUrgent
	case days <= 3:
		return PriorityHigh
	case days <= 7:
		return PriorityMedium
	}
	return PriorityLow
}

func workloadUrgency(days, estimate int, w Workload) Priority {
	switch {
	case days <= 0:
		return PriorityUrgent
	case days == 1 && (estimate > longTaskMinutes || w.InProgress > busyTomorrowCount):
		return PriorityUrgent
	case days <= 3 && (w.InProgressMinutes+estimate > heavyWorkloadMinutes || w.InProgress > busySoonCount):
		return PriorityHigh
	case days <= 7 && w.InProgress <= busySoonCount:
		return PriorityMedium
	}
	return PriorityLow
}

// DaysUntil returns the number of calendar days from now's date to
// dueDate, both read in now's location. Overdue dates are negative.
func DaysUntil(now time.Time, dueDate string) (int, bool) {
	if dueDate == "" {
		return 0, false
	}
	loc := now.Location()
	due, err := time.ParseInLocation(DateLayout, dueDate, loc)
	if err != nil {
		return 0, false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	target := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24), true
}
