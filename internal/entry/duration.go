package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var durationRe = regexp.MustCompile(`^(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?$`)

var sixty = decimal.NewFromInt(60)

// MaxHours is the largest duration ParseHours accepts: one year of
// round-the-clock work.
var MaxHours = decimal.NewFromInt(24 * 366)

// ParseHours parses an hour count. Supported formats: "12.5", "3h",
// "3h30m", "45m" and "2d4h", where a day is hoursPerDay hours.
// The result is rounded to the nearest minute. Returns an error for empty
// values, values under one minute, and values above MaxHours.
func ParseHours(s string, hoursPerDay decimal.Decimal) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty duration")
	}

	if d, err := decimal.NewFromString(s); err == nil {
		return checkHours(s, d)
	}

	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, fmt.Errorf("invalid duration format %q (expected e.g. 12.5, 3h30m, 2d4h)", s)
	}

	var parts [3]int64
	for i, part := range m[1:] {
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return decimal.Zero, fmt.Errorf("duration %q is too large", s)
		}
		parts[i] = n
	}
	days, hours, mins := parts[0], parts[1], parts[2]

	total := hoursPerDay.Mul(decimal.NewFromInt(days)).
		Add(decimal.NewFromInt(hours)).
		Add(decimal.NewFromInt(mins).Div(sixty))

	return checkHours(s, total)
}

func checkHours(s string, h decimal.Decimal) (decimal.Decimal, error) {
	if !h.IsPositive() {
		return decimal.Zero, fmt.Errorf("duration must be positive")
	}
	if h.GreaterThan(MaxHours) {
		return decimal.Zero, fmt.Errorf("duration %q is too large (at most %s hours)", s, MaxHours)
	}
	m := MinutesOf(h)
	if m < 1 {
		return decimal.Zero, fmt.Errorf("duration %q is shorter than one minute", s)
	}
	return HoursOf(m), nil
}

// FormatHours converts an hour count to a human-friendly string.
// Examples: 1.5 → "1h 30m", 8 → "8h", 0.25 → "15m".
func FormatHours(h decimal.Decimal) string {
	m := int(h.Mul(sixty).Round(0).IntPart())
	if m <= 0 {
		return "0m"
	}

	hours := m / 60
	mins := m % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}

	return strings.Join(parts, " ")
}
