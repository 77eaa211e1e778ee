package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time without a date, used as the start time of
// submitted entries.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// DefaultStartTime is the start time submitted with each entry.
var DefaultStartTime = TimeOfDay{Hour: 9}

// String returns the time as "HH:MM", the format the API expects.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

var (
	// 9am, 9:30pm, 9.30 pm
	time12h = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)$`)
	// 14:00, 09.30
	time24h = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)
)

// ParseTimeOfDay parses "9am", "9:30pm", "9.30am", "14:00" or "14.00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if m := time12h.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, fmt.Errorf("hour %d out of range for 12-hour format", hour)
		}
		if minute > 59 {
			return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
		}
		hour %= 12
		if m[3] == "pm" {
			hour += 12
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil
	}

	if m := time24h.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 {
			return TimeOfDay{}, fmt.Errorf("hour %d out of range", hour)
		}
		if minute > 59 {
			return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil
	}

	return TimeOfDay{}, fmt.Errorf("unrecognized time format %q", s)
}
