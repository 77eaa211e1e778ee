// Package timetrack compares what was logged in Teamwork with what the
// working calendar expects.
package timetrack

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/teamwork"
)

// DayGap is a working day that is not fully logged.
type DayGap struct {
	Date    time.Time
	Logged  decimal.Decimal
	TimeOff decimal.Decimal
	Missing decimal.Decimal
}

// MissingReport lists the gaps between Since and Until, both inclusive.
type MissingReport struct {
	Since       time.Time
	Until       time.Time
	WorkingDays int
	Gaps        []DayGap
	Total       decimal.Decimal
}

// LoggedByDay sums remote entry durations per YYYY-MM-DD day. Entries with
// an unreadable date are ignored.
func LoggedByDay(entries []teamwork.TimeEntry) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, e := range entries {
		d, err := e.Day()
		if err != nil {
			continue
		}
		k := schedule.Key(d)
		out[k] = out[k].Add(e.Duration())
	}
	return out
}

// BuildMissingReport counts the hours missing on each working day from
// since up to the day before now, or up to now itself when includeToday is
// set. A day's expected hours are hoursPerDay
// minus its time off; logged time beyond that never goes negative.
func BuildMissingReport(
	entries []teamwork.TimeEntry,
	timesOff []config.TimeOff,
	cal *schedule.Calendar,
	hoursPerDay decimal.Decimal,
	since, now time.Time,
	includeToday bool,
) MissingReport {
	since = schedule.Day(since)
	until := schedule.Day(now)
	if !includeToday {
		until = until.AddDate(0, 0, -1)
	}
	report := MissingReport{Since: since, Until: until, Total: decimal.Zero}
	if until.Before(since) {
		return report
	}

	logged := LoggedByDay(entries)
	off := make(map[string]decimal.Decimal, len(timesOff))
	for _, t := range timesOff {
		off[t.Date] = off[t.Date].Add(decimal.NewFromInt(int64(t.Hours)))
	}

	for _, d := range cal.Between(since, until) {
		report.WorkingDays++
		k := schedule.Key(d)
		missing := hoursPerDay.Sub(logged[k]).Sub(off[k])
		if !missing.IsPositive() {
			continue
		}
		report.Gaps = append(report.Gaps, DayGap{
			Date:    d,
			Logged:  logged[k],
			TimeOff: off[k],
			Missing: missing,
		})
		report.Total = report.Total.Add(missing)
	}
	return report
}

// FirstGap returns the earliest day with missing hours, if any. It is the
// natural start date for the next bulk save.
func (r MissingReport) FirstGap() (time.Time, bool) {
	if len(r.Gaps) == 0 {
		return time.Time{}, false
	}
	return r.Gaps[0].Date, true
}
