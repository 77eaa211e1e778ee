package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultWorkdays is the rule used when no working days are configured.
const DefaultWorkdays = "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"

var weekdayNames = map[string]rrule.Weekday{
	"monday": rrule.MO, "mon": rrule.MO,
	"tuesday": rrule.TU, "tue": rrule.TU, "tues": rrule.TU,
	"wednesday": rrule.WE, "wed": rrule.WE,
	"thursday": rrule.TH, "thu": rrule.TH, "thur": rrule.TH, "thurs": rrule.TH,
	"friday": rrule.FR, "fri": rrule.FR,
	"saturday": rrule.SA, "sat": rrule.SA,
	"sunday": rrule.SU, "sun": rrule.SU,
}

// week in rrule order, Monday first
var week = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// ParseWorkdays turns a working-day description into rrule options.
// Accepted forms: "weekdays", "every day", "monday to thursday", "mon-thu",
// "mon,wed,fri", "every tuesday" and raw RRULE strings.
func ParseWorkdays(s string) (rrule.ROption, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		s = strings.ToLower(DefaultWorkdays)
	}

	if isRawRRule(s) {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return rrule.ROption{}, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return r.OrigOptions, nil
	}

	switch s {
	case "weekdays", "every weekday", "workdays":
		return weekly(week[:5]...), nil
	case "every day", "daily", "everyday":
		return rrule.ROption{Freq: rrule.DAILY}, nil
	case "weekends", "every weekend":
		return weekly(rrule.SA, rrule.SU), nil
	}

	s = strings.TrimPrefix(s, "every ")

	for _, sep := range []string{" to ", " through ", "-"} {
		from, to, ok := strings.Cut(s, sep)
		if !ok {
			continue
		}
		first, ok1 := weekdayNames[strings.TrimSpace(from)]
		last, ok2 := weekdayNames[strings.TrimSpace(to)]
		if !ok1 || !ok2 {
			return rrule.ROption{}, fmt.Errorf("unrecognized day range %q", s)
		}
		return weekly(dayRange(first, last)...), nil
	}

	var days []rrule.Weekday
	seen := make(map[int]bool)
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		wd, ok := weekdayNames[part]
		if !ok {
			if part == "and" {
				continue
			}
			return rrule.ROption{}, fmt.Errorf("unrecognized working days %q", s)
		}
		if seen[wd.Day()] {
			continue
		}
		seen[wd.Day()] = true
		days = append(days, wd)
	}
	if len(days) == 0 {
		return rrule.ROption{}, fmt.Errorf("unrecognized working days %q", s)
	}
	return weekly(days...), nil
}

// NormalizeWorkdays parses s and returns its canonical RRULE form.
func NormalizeWorkdays(s string) (string, error) {
	opts, err := ParseWorkdays(s)
	if err != nil {
		return "", err
	}
	opts.Dtstart = time.Time{}
	return opts.RRuleString(), nil
}

func isRawRRule(s string) bool {
	return strings.HasPrefix(s, "rrule:") || strings.Contains(s, "freq=")
}

func weekly(days ...rrule.Weekday) rrule.ROption {
	return rrule.ROption{Freq: rrule.WEEKLY, Byweekday: days}
}

// dayRange returns the days from first to last inclusive, wrapping past Sunday.
func dayRange(first, last rrule.Weekday) []rrule.Weekday {
	var days []rrule.Weekday
	for i := first.Day(); ; i = (i + 1) % 7 {
		days = append(days, week[i])
		if i == last.Day() {
			return days
		}
	}
}

// Calendar answers which dates are working days.
type Calendar struct {
	rule *rrule.RRule
}

// NewCalendar builds a calendar from a working-day description. Rules
// without their own DTSTART are anchored at anchor, which matters for
// interval rules such as "every other week".
func NewCalendar(spec string, anchor time.Time) (*Calendar, error) {
	opts, err := ParseWorkdays(spec)
	if err != nil {
		return nil, err
	}
	if opts.Dtstart.IsZero() {
		opts.Dtstart = Day(anchor)
	}
	r, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, err
	}
	return &Calendar{rule: r}, nil
}

// Between returns the working days from from to to, both inclusive,
// as UTC midnights in increasing order.
func (c *Calendar) Between(from, to time.Time) []time.Time {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return nil
	}
	occurrences := c.rule.Between(from, to.AddDate(0, 0, 1).Add(-time.Nanosecond), true)

	days := make([]time.Time, 0, len(occurrences))
	for _, o := range occurrences {
		d := Day(o)
		if n := len(days); n > 0 && days[n-1].Equal(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// IsWorkday reports whether d falls on a working day.
func (c *Calendar) IsWorkday(d time.Time) bool {
	return len(c.Between(d, d)) > 0
}
