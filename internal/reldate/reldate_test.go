package reldate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestParseRelative(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "days ago",
			input:    "3일 전",
			expected: anchor.Add(-3 * 24 * time.Hour),
		},
		{
			name:     "years ago uses 365 day years",
			input:    "2년 전",
			expected: anchor.Add(-730 * 24 * time.Hour),
		},
		{
			name:     "months ago uses 30 day months",
			input:    "4개월 전",
			expected: anchor.Add(-120 * 24 * time.Hour),
		},
		{
			name:     "hours ago",
			input:    "7시간 전",
			expected: anchor.Add(-7 * time.Hour),
		},
		{
			name:     "minutes ago",
			input:    "15분 전",
			expected: anchor.Add(-15 * time.Minute),
		},
		{
			name:     "seconds ago",
			input:    "30초 전",
			expected: anchor.Add(-30 * time.Second),
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    "  5일 전  ",
			expected: anchor.Add(-5 * 24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input, anchor)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseAbsolute(t *testing.T) {
	got, ok := Parse("2023-11-02", anchor)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("2023.05.20.", anchor)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC), got)
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "어제", "not a date", "일 전"} {
		_, ok := Parse(input, anchor)
		assert.False(t, ok, "input %q should not parse", input)
	}
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, 3, DaysSince(anchor.Add(-3*24*time.Hour), anchor))
	assert.Equal(t, 0, DaysSince(anchor, anchor))
	// future timestamps floor at zero
	assert.Equal(t, 0, DaysSince(anchor.Add(24*time.Hour), anchor))
	// partial days truncate
	assert.Equal(t, 1, DaysSince(anchor.Add(-36*time.Hour), anchor))
}
