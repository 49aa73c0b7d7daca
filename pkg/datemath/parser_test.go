package datemath_test

import (
	"errors"
	"testing"
	"time"

	"task-planner/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expr    string
		want    time.Time
		wantErr bool
	}{
		{name: "Today", expr: "today", want: startOfBase},
		{name: "Tomorrow mixed case", expr: "  Tomorrow ", want: startOfBase.AddDate(0, 0, 1)},
		{name: "Yesterday", expr: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "Next week", expr: "next week", want: startOfBase.AddDate(0, 0, 7)},
		{name: "ISO date", expr: "2024-06-15", want: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{name: "ISO date out of range", expr: "2024-02-30", want: baseTime, wantErr: true},
		{name: "In 3 days", expr: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "In 2 weeks", expr: "in 2  weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "In 1 month", expr: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "Invalid duration pattern", expr: "in a few days", want: baseTime, wantErr: true},
		{name: "Next Monday (from Wed)", expr: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{name: "Next Wednesday (from Wed)", expr: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "Bare Friday", expr: "friday", want: startOfBase.AddDate(0, 0, 2)},
		{name: "Invalid Next Weekday", expr: "next funday", want: baseTime, wantErr: true},
		{name: "Unknown expression", expr: "some random day", want: baseTime, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.expr, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_UnknownIsSentinel(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	_, err := parser.Parse("whenever", time.Now())
	if !errors.Is(err, datemath.ErrUnknownExpression) {
		t.Errorf("expected ErrUnknownExpression, got %v", err)
	}
}

func TestResolveDate_Timezone(t *testing.T) {
	parser, _ := datemath.NewParser("Asia/Ho_Chi_Minh")
	// 20:00 UTC on May 1 is already May 2 in UTC+7.
	base := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	got, err := parser.ResolveDate("tomorrow", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-05-03" {
		t.Errorf("ResolveDate() = %s, want 2024-05-03", got)
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	got := parser.EndOfDay(base)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}

func TestWeekBounds(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")

	tests := []struct {
		name string
		day  time.Time
	}{
		{name: "Wednesday", day: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{name: "Monday", day: time.Date(2024, 4, 29, 8, 0, 0, 0, time.UTC)},
		{name: "Sunday", day: time.Date(2024, 5, 5, 22, 0, 0, 0, time.UTC)},
	}

	wantStart := time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := parser.WeekBounds(tt.day)
			if !start.Equal(wantStart) || !end.Equal(wantEnd) {
				t.Errorf("WeekBounds() = %v..%v, want %v..%v", start, end, wantStart, wantEnd)
			}
		})
	}
}
