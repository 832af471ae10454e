// Package clock provides an explicit time source so state-machine
// transitions can be tested deterministically instead of reading the wall
// clock inside domain methods.
package clock

import "time"

// Clock supplies the current time to code that stamps transitions,
// cancellations, and location pings.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// NewSystem creates a wall-clock backed Clock.
func NewSystem() System {
	return System{}
}

// Now returns the current wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that always returns the same instant. Intended for tests.
type Fixed struct {
	instant time.Time
}

// NewFixed creates a Clock frozen at the given instant.
func NewFixed(instant time.Time) Fixed {
	return Fixed{instant: instant}
}

// Now returns the frozen instant.
func (f Fixed) Now() time.Time {
	return f.instant
}
