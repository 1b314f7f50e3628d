package utils

import (
	"fmt"
	"time"
)

// Clock abstracts time.Now so date-window behavior is deterministic in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// NewRealClock returns a Clock backed by the system time in UTC.
func NewRealClock() Clock { return realClock{} }

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }

// DayWindow interprets a calendar date "YYYY-MM-DD" as the UTC day starting
// at 00:00:00.000. The returned end is exclusive (start of the next day), so
// window membership is start <= t < end.
func DayWindow(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %q", date)
	}
	return start, start.AddDate(0, 0, 1), nil
}
