// Package clock abstracts time so services can be tested with a fixed
// timestamp.
package clock

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// System reads the real system clock
type System struct{}

// New returns the system clock
func New() *System {
	return &System{}
}

func (s *System) Now() time.Time {
	return time.Now()
}

// Fixed is a test clock that only moves when told to
type Fixed struct {
	current time.Time
}

var _ Clock = (*Fixed)(nil)

// NewFixed returns a clock pinned to t
func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

func (f *Fixed) Now() time.Time {
	return f.current
}

// Advance moves the clock forward by d
func (f *Fixed) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}
