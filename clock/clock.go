// Package clock provides the time source and cancelable delayed callbacks
// used by the gesture timers and the snap animation.
package clock

import "time"

// Timer is a scheduled callback that can be canceled.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Clock schedules callbacks and reports the current time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// New returns a Clock backed by the time package.
func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Guarded runs every callback scheduled through it between Enter and Exit.
// The bubble controller uses it to serialize timer callbacks with pointer
// events under a single lock.
type Guarded struct {
	Clock
	Enter func()
	Exit  func()
}

func (g Guarded) AfterFunc(d time.Duration, f func()) Timer {
	return g.Clock.AfterFunc(d, func() {
		g.Enter()
		defer g.Exit()
		f()
	})
}
