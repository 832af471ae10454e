package store

import (
	"fmt"
	"time"

	"hyperlocal/internal/pkg/errs"
)

// minutesPerDay bounds operating-window values.
const minutesPerDay = 24 * 60

// OperatingWindow is a same-day open/close interval expressed in minutes
// since midnight. Windows never span midnight; a store open overnight
// models that as two windows on adjacent weekdays.
type OperatingWindow struct {
	openMinute  int
	closeMinute int
}

// NewOperatingWindow creates a window with 0 ≤ open < close ≤ 1440.
func NewOperatingWindow(openMinute, closeMinute int) (OperatingWindow, error) {
	if openMinute < 0 || closeMinute > minutesPerDay || openMinute >= closeMinute {
		return OperatingWindow{}, errs.NewValueIsInvalidErrorWithCause("operatingWindow",
			fmt.Errorf("[%d, %d) is not a valid minute interval", openMinute, closeMinute))
	}
	return OperatingWindow{openMinute: openMinute, closeMinute: closeMinute}, nil
}

// OpenMinute returns the opening minute since midnight.
func (w OperatingWindow) OpenMinute() int {
	return w.openMinute
}

// CloseMinute returns the closing minute since midnight.
func (w OperatingWindow) CloseMinute() int {
	return w.closeMinute
}

// contains reports whether the minute-of-day falls inside [open, close).
func (w OperatingWindow) contains(minuteOfDay int) bool {
	return minuteOfDay >= w.openMinute && minuteOfDay < w.closeMinute
}

// WeekSchedule maps weekdays to operating windows. Weekdays without an
// entry are closed all day.
type WeekSchedule map[time.Weekday]OperatingWindow

// IsOpenAt reports whether the instant falls inside that weekday's window.
func (s WeekSchedule) IsOpenAt(t time.Time) bool {
	window, ok := s[t.Weekday()]
	if !ok {
		return false
	}
	return window.contains(t.Hour()*60 + t.Minute())
}

// clone returns a copy so aggregates can hand out schedules without
// exposing internal state to mutation.
func (s WeekSchedule) clone() WeekSchedule {
	out := make(WeekSchedule, len(s))
	for day, window := range s {
		out[day] = window
	}
	return out
}
