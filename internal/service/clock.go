package service

import "time"

// Clock supplies the current time. Injected so lifecycle and
// aggregation logic runs deterministically under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
