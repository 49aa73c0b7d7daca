package datemath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date layout used for due dates.
const DateLayout = "2006-01-02"

var ErrUnknownExpression = errors.New("unknown date expression")

var (
	inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parser resolves date expressions against a reference time in a fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Ho_Chi_Minh"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Now returns the current time in the parser's timezone.
func (p *Parser) Now() time.Time {
	return time.Now().In(p.location)
}

// Parse converts a date expression to midnight of the resolved day.
// Accepted forms: YYYY-MM-DD, today, tomorrow, yesterday, "in N
// days|weeks|months", "next week", "next <weekday>" and a bare weekday
// (its next occurrence after baseTime).
func (p *Parser) Parse(expr string, baseTime time.Time) (time.Time, error) {
	expr = strings.ToLower(strings.Join(strings.Fields(expr), " "))

	switch expr {
	case "today":
		return p.StartOfDay(baseTime), nil
	case "tomorrow":
		return p.StartOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.StartOfDay(baseTime.AddDate(0, 0, -1)), nil
	case "next week":
		return p.StartOfDay(baseTime.AddDate(0, 0, 7)), nil
	}

	if isoDateRe.MatchString(expr) {
		t, err := time.ParseInLocation(DateLayout, expr, p.location)
		if err != nil {
			return baseTime, fmt.Errorf("invalid date %q: %w", expr, err)
		}
		return t, nil
	}

	if strings.HasPrefix(expr, "in ") {
		return p.parseInDuration(expr, baseTime)
	}

	if day, ok := strings.CutPrefix(expr, "next "); ok {
		return p.parseNextWeekday(day, baseTime)
	}

	if _, ok := weekdays[expr]; ok {
		return p.parseNextWeekday(expr, baseTime)
	}

	return baseTime, fmt.Errorf("%w: %q", ErrUnknownExpression, expr)
}

// ResolveDate is Parse formatted as YYYY-MM-DD.
func (p *Parser) ResolveDate(expr string, baseTime time.Time) (string, error) {
	t, err := p.Parse(expr, baseTime)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(expr string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(expr)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", expr)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.StartOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.StartOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	default:
		return p.StartOfDay(baseTime.AddDate(0, amount, 0)), nil
	}
}

// parseNextWeekday returns the first occurrence of dayName strictly after baseTime.
func (p *Parser) parseNextWeekday(dayName string, baseTime time.Time) (time.Time, error) {
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	base := baseTime.In(p.location)
	daysUntil := int(targetWeekday - base.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.StartOfDay(base.AddDate(0, 0, daysUntil)), nil
}

// StartOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// WeekBounds returns Monday and Sunday of the week containing t.
func (p *Parser) WeekBounds(t time.Time) (time.Time, time.Time) {
	day := p.StartOfDay(t)
	offset := int(day.Weekday())
	if offset == 0 {
		offset = 7
	}
	monday := day.AddDate(0, 0, -(offset - 1))
	return monday, monday.AddDate(0, 0, 6)
}
