package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used for dates on the command line and in config.
const DateLayout = "2006-01-02"

// ParseDate parses a date expression relative to now. The result is always
// midnight UTC of the calendar day the user meant.
// Supports: "today", "yesterday", "tomorrow", "monday", "next tuesday",
// "last friday", "on monday", "2024-01-15", "Jan 2", "Jan 2 2006",
// "January 2", "2 Jan", "2 January 2006".
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "on "))

	today := Day(now)

	switch s {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if rest, ok := strings.CutPrefix(s, "last "); ok {
		if wd, ok := weekdays[rest]; ok {
			return previousWeekday(today, wd), nil
		}
	}
	if wd, ok := weekdays[strings.TrimPrefix(s, "next ")]; ok {
		return nextWeekday(today, wd), nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q (expected e.g. 2019-06-24, today, last friday)", s)
}

// Day returns midnight UTC of t's calendar day in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Key formats a date as YYYY-MM-DD.
func Key(t time.Time) string {
	return t.Format(DateLayout)
}

var dateLayouts = []string{
	DateLayout,
	"jan 2",
	"jan 2 2006",
	"january 2",
	"january 2 2006",
	"2 jan",
	"2 jan 2006",
	"2 january",
	"2 january 2006",
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// nextWeekday returns the next occurrence of wd strictly after today.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	ahead := int(wd) - int(today.Weekday())
	if ahead <= 0 {
		ahead += 7
	}
	return today.AddDate(0, 0, ahead)
}

// previousWeekday returns the last occurrence of wd strictly before today.
func previousWeekday(today time.Time, wd time.Weekday) time.Time {
	behind := int(today.Weekday()) - int(wd)
	if behind <= 0 {
		behind += 7
	}
	return today.AddDate(0, 0, -behind)
}
