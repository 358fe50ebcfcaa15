package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"30 seconds", 30 * time.Second, "just now"},
		{"59 seconds", 59 * time.Second, "just now"},
		{"5 minutes", 5 * time.Minute, "5m ago"},
		{"59 minutes", 59 * time.Minute, "59m ago"},
		{"3 hours", 3 * time.Hour, "3h ago"},
		{"23 hours", 23 * time.Hour, "23h ago"},
		{"2 days", 48 * time.Hour, "2d ago"},
		{"6 days", 6 * 24 * time.Hour, "6d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(now.Add(-tt.age), now))
		})
	}
}

func TestRelativeTimeFallsBackToCalendarDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	got := RelativeTime(now.Add(-10*24*time.Hour), now)
	assert.Equal(t, "28/02/2025", got)
	assert.NotContains(t, got, "ago")
}

func TestFormatRelativeTimeMissingOrBroken(t *testing.T) {
	assert.Equal(t, "", FormatRelativeTime(""))
	assert.Equal(t, "", FormatRelativeTime("not-a-timestamp"))
}

func TestFormatRelativeTimeParsesStoredFormats(t *testing.T) {
	recent := time.Now().UTC().Add(-10 * time.Second)
	assert.Equal(t, "just now", FormatRelativeTime(recent.Format(time.RFC3339)))
	assert.Equal(t, "just now", FormatRelativeTime(recent.Format(time.RFC3339Nano)))
}
