// Package snap animates the overlay's horizontal position to a screen edge.
package snap

import (
	"math"
	"time"
)

// Interpolator maps linear progress in [0,1] to eased progress in [0,1].
// It must be non-decreasing for the animation to be monotonic.
type Interpolator func(progress float64) float64

// Linear is the default interpolator.
func Linear(progress float64) float64 {
	return progress
}

// EaseInOut accelerates then decelerates along a cosine curve.
func EaseInOut(progress float64) float64 {
	return (1 - math.Cos(math.Pi*progress)) / 2
}

// Animation is a time-boxed interpolation between two integer positions.
// It holds no timers; Value can be polled with any clock.
type Animation struct {
	From         int
	To           int
	Duration     time.Duration
	Start        time.Time
	Interpolator Interpolator
}

// Value returns the position at now and whether the animation has ended.
// Once ended the value is exactly To.
func (a Animation) Value(now time.Time) (x int, done bool) {
	elapsed := now.Sub(a.Start)
	if a.Duration <= 0 || elapsed >= a.Duration {
		return a.To, true
	}
	if elapsed <= 0 {
		return a.From, false
	}

	interp := a.Interpolator
	if interp == nil {
		interp = Linear
	}
	progress := interp(float64(elapsed) / float64(a.Duration))
	progress = math.Max(0, math.Min(1, progress))

	return a.From + int(math.Round(float64(a.To-a.From)*progress)), false
}
