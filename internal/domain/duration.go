package domain

import (
	"fmt"
	"math"
	"time"
)

// Fixed daily lunch window [11:30, 13:00) and overtime bounds,
// in local wall-clock time.
const (
	lunchStartHour = 11
	lunchStartMin  = 30
	lunchEndHour   = 13
	lunchEndMin    = 0

	overtimeMorningHour = 7
	overtimeEveningHour = 17
	overtimeEveningMin  = 30
)

// WorkHours returns the payroll hours between start and end with the
// overlap of the lunch window subtracted. The window is anchored to the
// calendar day of start only: a session crossing midnight gets a single
// subtraction, never one per day. Spans where end <= start clamp to 0.
// The result is rounded to 2 decimal places and is never negative.
func WorkHours(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	raw := end.Sub(start).Hours()

	lunchStart := time.Date(start.Year(), start.Month(), start.Day(),
		lunchStartHour, lunchStartMin, 0, 0, start.Location())
	lunchEnd := time.Date(start.Year(), start.Month(), start.Day(),
		lunchEndHour, lunchEndMin, 0, 0, start.Location())

	var lunch float64
	switch {
	case start.Before(lunchStart) && end.After(lunchEnd):
		lunch = lunchEnd.Sub(lunchStart).Hours()
	case !start.Before(lunchStart) && start.Before(lunchEnd):
		// Clocked in during lunch; exclude up to lunch end or clock-out,
		// whichever comes first. A session entirely inside the window
		// nets out to zero hours.
		until := end
		if lunchEnd.Before(end) {
			until = lunchEnd
		}
		lunch = until.Sub(start).Hours()
	case end.After(lunchStart) && !end.After(lunchEnd):
		// Clocked out during lunch; exclude from lunch start onward.
		from := lunchStart
		if start.After(lunchStart) {
			from = start
		}
		lunch = end.Sub(from).Hours()
	}

	hours := raw - lunch
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*100) / 100
}

// IsOvertime reports whether a session clocked in at t counts as
// overtime: before 07:00 or at/after 17:30 local time. The flag is
// decided once at clock-in and never recomputed.
func IsOvertime(t time.Time) bool {
	if t.Hour() < overtimeMorningHour {
		return true
	}
	return t.Hour()*60+t.Minute() >= overtimeEveningHour*60+overtimeEveningMin
}

// FormatElapsed renders the wall-clock span from start to now for the
// live board, e.g. "3h 05m". It is deliberately not lunch-adjusted:
// the board shows a running clock, not a payroll figure.
func FormatElapsed(start, now time.Time) string {
	d := now.Sub(start)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}
