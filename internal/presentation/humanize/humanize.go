// Package humanize formats lobby values for display.
package humanize

import (
	"fmt"
	"time"
)

// RelativeTime labels t relative to now. It is evaluated once per render and
// does not tick.
func RelativeTime(t, now time.Time) string {
	delta := now.Sub(t)
	if t.IsZero() || delta < time.Minute {
		return "Just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%dm ago", int(delta/time.Minute))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(delta/time.Hour))
	}
	return fmt.Sprintf("%dd ago", int(delta/(24*time.Hour)))
}

func Participants(n int) string {
	if n == 1 {
		return "1 participant"
	}
	return fmt.Sprintf("%d participants", n)
}

// MessageTime is the wall-clock HH:MM a message was sent, in local time.
func MessageTime(t time.Time) string {
	return t.Local().Format("15:04")
}
