package allocate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quentinproust/teamwork-cli/internal/schedule"
)

// DateSet is a set of calendar days keyed by YYYY-MM-DD.
type DateSet map[string]struct{}

// NewDateSet returns a set holding the days of dates.
func NewDateSet(dates ...time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// ParseDateSet parses a comma separated list of YYYY-MM-DD dates.
// An empty string yields an empty set.
func ParseDateSet(list string) (DateSet, error) {
	s := make(DateSet)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.Parse(schedule.DateLayout, part)
		if err != nil {
			return nil, &InputError{Field: "excluded dates", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", part)}
		}
		s.Add(d)
	}
	return s, nil
}

func (s DateSet) Add(d time.Time) {
	s[schedule.Key(d)] = struct{}{}
}

// Has reports whether the day of d is in the set. Nil sets are empty.
func (s DateSet) Has(d time.Time) bool {
	_, ok := s[schedule.Key(d)]
	return ok
}

// Sorted returns the keys in date order.
func (s DateSet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
