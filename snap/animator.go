package snap

import (
	"time"

	"github.com/mobile-next/bubble/clock"
)

// DefaultFrameInterval is the tick period, about 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Animator runs at most one Animation at a time, ticking it from a clock.
// Starting a new snap cancels the one in flight. Like gesture.Classifier it
// is not safe for concurrent use on its own.
type Animator struct {
	clock        clock.Clock
	frame        time.Duration
	interpolator Interpolator
	current      *run
}

type run struct {
	animation  Animation
	onUpdate   func(x int)
	onComplete func()
	timer      clock.Timer
}

// Option configures an Animator.
type Option func(*Animator)

// WithFrameInterval overrides DefaultFrameInterval.
func WithFrameInterval(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.frame = d
		}
	}
}

// WithInterpolator overrides the Linear default.
func WithInterpolator(interp Interpolator) Option {
	return func(a *Animator) {
		if interp != nil {
			a.interpolator = interp
		}
	}
}

// NewAnimator returns an idle animator driven by clk.
func NewAnimator(clk clock.Clock, opts ...Option) *Animator {
	a := &Animator{
		clock:        clk,
		frame:        DefaultFrameInterval,
		interpolator: Linear,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SnapTo animates from -> to over duration. onUpdate runs on every frame
// with the current x; the last call always receives to. onComplete runs
// exactly once afterwards unless the snap is canceled first.
func (a *Animator) SnapTo(from, to int, duration time.Duration, onUpdate func(x int), onComplete func()) {
	a.Cancel()

	r := &run{
		animation: Animation{
			From:         from,
			To:           to,
			Duration:     duration,
			Start:        a.clock.Now(),
			Interpolator: a.interpolator,
		},
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
	a.current = r
	a.schedule(r)
}

// Cancel stops the running snap. Its remaining frames and its completion
// callback are dropped.
func (a *Animator) Cancel() {
	r := a.current
	if r == nil {
		return
	}
	a.current = nil
	if r.timer != nil {
		r.timer.Stop()
	}
}

// Active reports whether a snap is running.
func (a *Animator) Active() bool {
	return a.current != nil
}

// Target returns the destination of the running snap.
func (a *Animator) Target() (int, bool) {
	if a.current == nil {
		return 0, false
	}
	return a.current.animation.To, true
}

func (a *Animator) schedule(r *run) {
	r.timer = a.clock.AfterFunc(a.frame, func() {
		a.tick(r)
	})
}

func (a *Animator) tick(r *run) {
	// a stale frame from a canceled run can still be delivered if it was
	// already firing when Cancel ran
	if r != a.current {
		return
	}

	x, done := r.animation.Value(a.clock.Now())
	if r.onUpdate != nil {
		r.onUpdate(x)
	}
	if r != a.current {
		// onUpdate canceled or replaced the snap
		return
	}
	if !done {
		a.schedule(r)
		return
	}

	a.current = nil
	if r.onComplete != nil {
		r.onComplete()
	}
}
