package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
)

// maxAttempts bounds re-asking after an invalid answer.
const maxAttempts = 3

// ask repeats a prompt until parse accepts the answer, printing each
// rejection to w.
func ask[T any](w io.Writer, prompt PromptFunc, label string, parse func(string) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		answer, err := prompt(label)
		if err != nil {
			return zero, err
		}
		v, err := parse(answer)
		if err == nil {
			return v, nil
		}
		lastErr = err
		_, _ = fmt.Fprintf(w, "%s\n", Error(err.Error()))
	}
	return zero, fmt.Errorf("%s: %w", label, lastErr)
}

// askText asks for a non-empty answer.
func askText(w io.Writer, pk PromptKit, label string) (string, error) {
	return ask(w, pk.Prompt, label, func(s string) (string, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", fmt.Errorf("a value is required")
		}
		return s, nil
	})
}

// askDate asks for a date in any form schedule.ParseDate understands.
func askDate(w io.Writer, pk PromptKit, label string, now time.Time) (time.Time, error) {
	return ask(w, pk.Prompt, label, func(s string) (time.Time, error) {
		return schedule.ParseDate(s, now)
	})
}

// askHours asks for a positive hour count such as 104, 13d or 3h30m.
func askHours(w io.Writer, pk PromptKit, label string, hoursPerDay decimal.Decimal) (decimal.Decimal, error) {
	return ask(w, pk.Prompt, label, func(s string) (decimal.Decimal, error) {
		return entry.ParseHours(s, hoursPerDay)
	})
}

// askYesNo asks a yes/no question.
func askYesNo(pk PromptKit, label string) (bool, error) {
	return pk.Confirm(label)
}
