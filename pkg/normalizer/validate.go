package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var dueDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const (
	fieldTitle         = "title"
	fieldDescription   = "description"
	fieldDueDate       = "dueDate"
	fieldTime          = "time"
	fieldHour          = "hour"
	fieldMinute        = "minute"
	fieldPriority      = "priority"
	fieldEstimatedTime = "estimatedTime"
)

// ValidateFields checks every field of c independently. Only a missing
// title is fatal; every other problem drops or defaults the field and is
// reported as a Warning.
func ValidateFields(c Candidate) (NormalizedTask, []Warning, error) {
	task, _, warnings, err := validate(c)
	return task, warnings, err
}

// validate is ValidateFields that also returns a well-formed time it
// dropped for lack of a due date.
func validate(c Candidate) (NormalizedTask, *TimeOfDay, []Warning, error) {
	var (
		task     NormalizedTask
		dropped  *TimeOfDay
		warnings []Warning
	)
	warn := func(field, reason string) {
		warnings = append(warnings, Warning{Field: field, Reason: reason})
	}

	title, ok := c[fieldTitle].(string)
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		return NormalizedTask{}, nil, nil, &Error{Kind: ErrMissingTitle}
	}
	task.Title = title

	if v, present := lookup(c, fieldDescription); present {
		if s, ok := v.(string); ok {
			task.Description = strings.TrimSpace(s)
		} else {
			warn(fieldDescription, "not a string")
		}
	}

	if v, present := lookup(c, fieldDueDate); present {
		if d, reason := validDueDate(v); reason == "" {
			task.DueDate = d
		} else if reason != reasonEmpty {
			warn(fieldDueDate, reason)
		}
	}

	if v, present := lookup(c, fieldTime); present {
		tod, tw := validTime(v)
		warnings = append(warnings, tw...)
		task.Time = tod
	}
	if task.Time != nil && task.DueDate == "" {
		warn(fieldTime, ReasonNoDueDate)
		dropped, task.Time = task.Time, nil
	}

	task.Priority = PriorityMedium
	if v, present := lookup(c, fieldPriority); present {
		s, _ := v.(string)
		if p, ok := ParsePriority(s); ok {
			task.Priority = p
		} else {
			warn(fieldPriority, "not one of low, medium, high, urgent")
		}
	}

	if v, present := lookup(c, fieldEstimatedTime); present {
		if n, ok := parseInt(v); ok && n > 0 {
			task.EstimatedTime = n
		} else {
			warn(fieldEstimatedTime, "not a positive integer")
		}
	}

	return task, dropped, warnings, nil
}

// lookup treats JSON null the same as an absent key.
func lookup(c Candidate, key string) (any, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

const reasonEmpty = "empty"

func validDueDate(v any) (string, string) {
	s, ok := v.(string)
	if !ok {
		return "", "not a string"
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", reasonEmpty
	}
	if !dueDateRe.MatchString(s) {
		return "", "not in YYYY-MM-DD format"
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", "not a calendar date"
	}
	return s, ""
}

func validTime(v any) (*TimeOfDay, []Warning) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, []Warning{{Field: fieldTime, Reason: "not an object"}}
	}

	hour, ok := parseInt(obj[fieldHour])
	if !ok || hour < 0 || hour > 23 {
		return nil, []Warning{{Field: fieldTime, Reason: "hour missing or outside 0-23"}}
	}

	var warnings []Warning
	minute := 0
	if raw, present := obj[fieldMinute]; present && raw != nil {
		m, ok := parseInt(raw)
		if ok && m >= 0 && m <= 59 {
			minute = m
		} else {
			warnings = append(warnings, Warning{Field: fieldTime + "." + fieldMinute, Reason: "outside 0-59, defaulted to 0"})
		}
	}

	return &TimeOfDay{Hour: hour, Minute: minute}, warnings
}

// parseInt reads an integer leniently: JSON numbers truncate toward zero
// and strings contribute their leading signed digit run ("09" -> 9,
// "45 min" -> 45). Any other type is rejected.
func parseInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case string:
		return leadingInt(n)
	}
	return 0, false
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
