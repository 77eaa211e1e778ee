// Package allocate spreads an hour count over consecutive working days.
package allocate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
)

const (
	// days expanded from the calendar at a time
	window = 62
	// consecutive days without a usable working day before giving up
	horizon = 366
	// entries a single plan may hold
	maxEntries = 1000
)

var maxHoursPerDay = decimal.NewFromInt(24)

// Request describes the hours to plan. Hours are rounded to whole minutes
// before planning.
type Request struct {
	Start       time.Time
	TotalHours  decimal.Decimal
	HoursPerDay decimal.Decimal

	// Excluded days never receive hours.
	Excluded DateSet

	// Workdays is a working-day rule understood by schedule.ParseWorkdays.
	// Empty means Monday to Friday.
	Workdays string

	// Booked holds hours already used per YYYY-MM-DD day. A day's capacity
	// is HoursPerDay minus its booked hours.
	Booked map[string]decimal.Decimal
}

// Plan is the ordered result of Allocate.
type Plan struct {
	Entries []entry.TimeEntry
}

// Total returns the sum of the planned hours, counted in whole minutes.
func (p Plan) Total() decimal.Decimal {
	return entry.Total(p.Entries)
}

// Span returns the first and last planned days. Both are zero for an
// empty plan.
func (p Plan) Span() (first, last time.Time) {
	if len(p.Entries) == 0 {
		return time.Time{}, time.Time{}
	}
	return p.Entries[0].Date, p.Entries[len(p.Entries)-1].Date
}

// Allocate walks forward from req.Start one day at a time and fills each
// working day that is not excluded with up to HoursPerDay hours until
// TotalHours is placed. The last entry holds the remainder. Planning is done
// in whole minutes, so every entry is exactly what Split reports.
func Allocate(req Request) (Plan, error) {
	if err := validate(req); err != nil {
		return Plan{}, err
	}

	start := schedule.Day(req.Start)
	cal, err := schedule.NewCalendar(req.Workdays, start)
	if err != nil {
		return Plan{}, &InputError{Field: "workdays", Reason: err.Error()}
	}

	perDay := entry.MinutesOf(req.HoursPerDay)
	remaining := entry.MinutesOf(req.TotalHours)

	var entries []entry.TimeEntry
	lastUsed := start.AddDate(0, 0, -1)

	for cursor := start; remaining > 0; {
		end := cursor.AddDate(0, 0, window-1)

		for _, d := range cal.Between(cursor, end) {
			if req.Excluded.Has(d) {
				continue
			}
			capacity := perDay - entry.MinutesOf(req.Booked[schedule.Key(d)])
			if capacity <= 0 {
				continue
			}
			if len(entries) == maxEntries {
				return Plan{}, tooManyEntries(req)
			}

			m := min(capacity, remaining)
			entries = append(entries, entry.FromMinutes(d, m))
			remaining -= m
			lastUsed = d

			if remaining == 0 {
				break
			}
		}

		cursor = end.AddDate(0, 0, 1)
		if remaining > 0 && cursor.Sub(lastUsed) > horizon*24*time.Hour {
			return Plan{}, fmt.Errorf("%w: none found in the %d days after %s, %s left to place",
				ErrNoWorkingDays, horizon, schedule.Key(lastUsed), entry.FormatHours(entry.HoursOf(remaining)))
		}
	}

	return Plan{Entries: entries}, nil
}

func validate(req Request) error {
	if req.Start.IsZero() {
		return &InputError{Field: "start date", Reason: "is required"}
	}
	if !req.TotalHours.IsPositive() {
		return &InputError{Field: "total hours", Reason: fmt.Sprintf("must be positive, got %s", req.TotalHours)}
	}
	if !req.HoursPerDay.IsPositive() {
		return &InputError{Field: "hours per day", Reason: fmt.Sprintf("must be positive, got %s", req.HoursPerDay)}
	}
	if req.HoursPerDay.GreaterThan(maxHoursPerDay) {
		return &InputError{Field: "hours per day", Reason: fmt.Sprintf("must be at most %s, got %s", maxHoursPerDay, req.HoursPerDay)}
	}
	if entry.MinutesOf(req.HoursPerDay) < 1 {
		return &InputError{Field: "hours per day", Reason: fmt.Sprintf("must be at least one minute, got %s", req.HoursPerDay)}
	}
	// bounds TotalHours before it is converted to minutes
	if req.TotalHours.GreaterThan(req.HoursPerDay.Mul(decimal.NewFromInt(maxEntries))) {
		return tooManyEntries(req)
	}
	if entry.MinutesOf(req.TotalHours) < 1 {
		return &InputError{Field: "total hours", Reason: fmt.Sprintf("must be at least one minute, got %s", req.TotalHours)}
	}
	return nil
}

func tooManyEntries(req Request) error {
	return &InputError{
		Field:  "total hours",
		Reason: fmt.Sprintf("%s would need more than %d working days at %s per day", req.TotalHours, maxEntries, req.HoursPerDay),
	}
}
