// Package clock abstracts time for recording and playback so both can run
// against real wall time or a virtual clock in tests.
package clock

import "time"

// Clock is the time source used by recorders and players. Nothing in Toca
// calls time.Now or time.After directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Since returns the duration elapsed since t.
	Since(t time.Time) time.Duration
	// After returns a channel that receives the current time after d.
	After(d time.Duration) <-chan time.Time
}

// RealClock delegates to the standard time package.
type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (c *RealClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Millis reports the whole milliseconds elapsed on c since start. A clock
// that reads earlier than start yields zero.
func Millis(c Clock, start time.Time) uint64 {
	d := c.Since(start)
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}
