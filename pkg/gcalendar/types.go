package gcalendar

import "time"

// DefaultEventDuration is used for tasks without an estimate.
const DefaultEventDuration = 30 * time.Minute

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Asia/Ho_Chi_Minh"
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
}

// TaskSlot describes a timed task to block out on the calendar.
type TaskSlot struct {
	Title         string
	Description   string
	DueDate       string // YYYY-MM-DD
	Hour, Minute  int
	EstimatedTime int // minutes, 0 = DefaultEventDuration
}
