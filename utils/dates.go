package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar day at
// 00:00 UTC. The day is taken as written, before any zone conversion.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return StartOfDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
