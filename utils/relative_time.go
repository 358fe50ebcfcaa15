package utils

import (
	"fmt"
	"time"
)

// RelativeTime renders how long ago t was, relative to now:
// under a minute "just now", then minutes, hours, days, and from a week on a
// plain calendar date.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("02/01/2006")
	}
}

// FormatRelativeTime parses an RFC3339 timestamp and renders it relative to
// the current time. Missing or unparseable timestamps display as "".
func FormatRelativeTime(timestamp string) string {
	if timestamp == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return ""
	}
	return RelativeTime(t, time.Now())
}
