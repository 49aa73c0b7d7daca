package model

import "time"

// Frequency is how often a habit is expected to be completed.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Habit is a recurring activity with a completion streak.
type Habit struct {
	ID            string    `json:"id"`
	Owner         string    `json:"owner"`
	Title         string    `json:"title"`
	Frequency     Frequency `json:"frequency"`
	Streak        int       `json:"streak"`
	LastCompleted string    `json:"lastCompleted,omitempty"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"createdAt"`
}
