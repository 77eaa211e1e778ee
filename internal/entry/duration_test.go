package entry

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHours(t *testing.T) {
	eight := decimal.NewFromInt(8)

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"104", "104", false},
		{"12.5", "12.5", false},
		{"30m", "0.5", false},
		{"3h", "3", false},
		{"3h30m", "3.5", false},
		{"13d", "104", false},
		{"8d4h", "68", false},
		{"1d30m", "8.5", false},
		{"1H30M", "1.5", false},               // case insensitive
		{" 2h ", "2", false},                  // whitespace trimmed
		{"0.2501", "0.25", false},             // rounded to the minute
		{"8784", "8784", false},               // MaxHours
		{"", "", true},                        // empty
		{"abc", "", true},                     // invalid
		{"0", "", true},                       // zero
		{"0h0m", "", true},                    // zero
		{"-1", "", true},                      // negative
		{"-1h", "", true},                     // negative
		{"3h30", "", true},                    // missing unit
		{"0.001", "", true},                   // under a minute
		{"8785", "", true},                    // above MaxHours
		{"1e12", "", true},                    // above MaxHours
		{"2000d", "", true},                   // above MaxHours
		{"1d99999999999999999999h", "", true}, // overflows
		{"99999999999999999999d", "", true},   // overflows
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHours(tt.input, eight)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseHoursUsesDayLength(t *testing.T) {
	got, err := ParseHours("2d", decimal.RequireFromString("7.5"))
	require.NoError(t, err)
	assert.Equal(t, "15", got.String())
}

func TestParseHoursWholeMinutes(t *testing.T) {
	got, err := ParseHours("1.009", decimal.RequireFromString("1.009"))
	require.NoError(t, err)
	assert.Equal(t, int64(61), MinutesOf(got))
	assert.True(t, got.Equal(HoursOf(61)))
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0m"},
		{"0.5", "30m"},
		{"1", "1h"},
		{"1.5", "1h 30m"},
		{"8", "8h"},
		{"0.25", "15m"},
		{"-2", "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHours(decimal.RequireFromString(tt.input)))
		})
	}
}
