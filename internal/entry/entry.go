package entry

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/schedule"
)

// TimeEntry is a number of hours worked on one calendar day.
type TimeEntry struct {
	Date  time.Time       `json:"date"`
	Hours decimal.Decimal `json:"hours"`
}

// New returns an entry for the day of d.
func New(d time.Time, hours decimal.Decimal) TimeEntry {
	return TimeEntry{Date: schedule.Day(d), Hours: hours}
}

// Key returns the entry date as YYYY-MM-DD.
func (e TimeEntry) Key() string {
	return schedule.Key(e.Date)
}

// FromMinutes returns an entry of m minutes for the day of d.
func FromMinutes(d time.Time, m int64) TimeEntry {
	return New(d, HoursOf(m))
}

// Minutes returns the entry duration rounded to the nearest minute.
func (e TimeEntry) Minutes() int64 {
	return MinutesOf(e.Hours)
}

// Split returns the entry duration as whole hours and minutes, rounding to
// the nearest minute.
func (e TimeEntry) Split() (hours, minutes int) {
	total := int(e.Minutes())
	return total / 60, total % 60
}

// Total sums entries minute by minute, so it matches what Split sends.
func Total(entries []TimeEntry) decimal.Decimal {
	var sum int64
	for _, e := range entries {
		sum += e.Minutes()
	}
	return HoursOf(sum)
}

// MinutesOf converts hours to whole minutes, rounding half away from zero.
func MinutesOf(h decimal.Decimal) int64 {
	return h.Mul(sixty).Round(0).IntPart()
}

// HoursOf converts whole minutes to hours.
func HoursOf(m int64) decimal.Decimal {
	return decimal.NewFromInt(m).Div(sixty)
}
