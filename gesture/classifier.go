// Package gesture classifies single-pointer down/move/up sequences into
// taps, double taps, long presses and flings.
//
// Taps and long presses are decided by timers (a tap is only confirmed once
// the double tap window has passed), so gestures are delivered through a
// Listener rather than returned. Flings are decided on release and are also
// returned from Up so the caller can act on the direction immediately.
//
// A Classifier is not safe for concurrent use. Timer callbacks run on
// whatever goroutine the Clock uses; callers that mix goroutines should pass
// a clock.Guarded that serializes callbacks with their own lock.
package gesture

import (
	"math"

	"github.com/mobile-next/bubble/clock"
	"github.com/mobile-next/bubble/types"
)

// Listener receives classified gestures.
type Listener func(types.Gesture)

// Classifier turns pointer events into gestures.
type Classifier struct {
	thresholds Thresholds
	clock      clock.Clock
	listener   Listener

	// current press
	down           types.PointerEvent
	pressed        bool
	movedBeyondTap bool
	longPressFired bool
	longPressTimer clock.Timer
	longPressGen   uint64

	// first tap of a possible double tap
	pendingTap  bool
	tapUp       types.PointerEvent
	tapTimer    clock.Timer
	tapGen      uint64
	secondPress bool
}

// NewClassifier returns a classifier that reports gestures to listener.
func NewClassifier(thresholds Thresholds, clk clock.Clock, listener Listener) *Classifier {
	if listener == nil {
		listener = func(types.Gesture) {}
	}
	return &Classifier{
		thresholds: thresholds,
		clock:      clk,
		listener:   listener,
	}
}

// Pressed reports whether a press is in progress.
func (c *Classifier) Pressed() bool {
	return c.pressed
}

// Down starts a press. A Down while already pressed restarts the press.
func (c *Classifier) Down(e types.PointerEvent) {
	c.stopLongPress()

	c.secondPress = false
	if c.pendingTap {
		if e.Timestamp-c.tapUp.Timestamp < c.thresholds.DoubleTapWindow.Milliseconds() {
			c.stopTapTimer()
			c.secondPress = true
		} else {
			// the window passed by event time before the timer could fire
			c.flushPendingTap()
		}
	}

	c.down = e
	c.pressed = true
	c.movedBeyondTap = false
	c.longPressFired = false

	c.longPressGen++
	gen := c.longPressGen
	c.longPressTimer = c.clock.AfterFunc(c.thresholds.LongPressDuration, func() {
		c.onLongPress(gen)
	})
}

// Move records a pointer move. Leaving the tap slop cancels the long press.
func (c *Classifier) Move(e types.PointerEvent) {
	if !c.pressed || c.movedBeyondTap {
		return
	}
	if c.displacement(e) > c.thresholds.TapMaxDisplacementPx {
		c.movedBeyondTap = true
		c.stopLongPress()
	}
}

// Up finishes the press. When the press is a fling the fling is reported to
// the listener and its direction returned with ok set.
func (c *Classifier) Up(e types.PointerEvent) (direction types.Direction, ok bool) {
	if !c.pressed {
		return 0, false
	}
	c.pressed = false
	c.stopLongPress()

	if c.longPressFired {
		return 0, false
	}

	// events delivered faster than real time can outrun the timer
	if c.heldForLongPress(e) {
		c.fireLongPress()
		return 0, false
	}

	if c.isTap(e) {
		if c.secondPress {
			c.secondPress = false
			c.pendingTap = false
			c.listener(types.DoubleTap())
			return 0, false
		}
		c.startTapTimer(e)
		return 0, false
	}

	if c.secondPress {
		c.secondPress = false
		c.flushPendingTap()
	}

	g, isFling := ClassifyFling(c.thresholds, c.down, e)
	if !isFling {
		return 0, false
	}
	c.listener(g)
	return g.Direction, true
}

// Reset cancels all timers and forgets any pending press or tap.
func (c *Classifier) Reset() {
	c.stopLongPress()
	c.stopTapTimer()
	c.pressed = false
	c.movedBeyondTap = false
	c.longPressFired = false
	c.pendingTap = false
	c.secondPress = false
}

func (c *Classifier) isTap(up types.PointerEvent) bool {
	if c.movedBeyondTap || c.displacement(up) > c.thresholds.TapMaxDisplacementPx {
		return false
	}
	return up.Timestamp-c.down.Timestamp < c.thresholds.TapMaxDuration.Milliseconds()
}

func (c *Classifier) displacement(e types.PointerEvent) float64 {
	return math.Hypot(e.X-c.down.X, e.Y-c.down.Y)
}

// heldForLongPress reports whether the press stayed inside the tap slop for
// the long press duration, judged by event timestamps.
func (c *Classifier) heldForLongPress(up types.PointerEvent) bool {
	if c.movedBeyondTap || c.displacement(up) > c.thresholds.TapMaxDisplacementPx {
		return false
	}
	return up.Timestamp-c.down.Timestamp >= c.thresholds.LongPressDuration.Milliseconds()
}

func (c *Classifier) onLongPress(gen uint64) {
	if gen != c.longPressGen || !c.pressed || c.movedBeyondTap {
		return
	}
	c.longPressTimer = nil
	c.fireLongPress()
}

func (c *Classifier) fireLongPress() {
	c.longPressFired = true
	if c.secondPress {
		c.secondPress = false
		c.flushPendingTap()
	}
	c.listener(types.LongPress())
}

func (c *Classifier) stopLongPress() {
	c.longPressGen++
	if c.longPressTimer != nil {
		c.longPressTimer.Stop()
		c.longPressTimer = nil
	}
}

func (c *Classifier) startTapTimer(up types.PointerEvent) {
	c.stopTapTimer()
	c.pendingTap = true
	c.tapUp = up

	gen := c.tapGen
	c.tapTimer = c.clock.AfterFunc(c.thresholds.DoubleTapWindow, func() {
		if gen != c.tapGen || !c.pendingTap {
			return
		}
		c.tapTimer = nil
		c.pendingTap = false
		c.listener(types.Tap())
	})
}

func (c *Classifier) stopTapTimer() {
	c.tapGen++
	if c.tapTimer != nil {
		c.tapTimer.Stop()
		c.tapTimer = nil
	}
}

// flushPendingTap confirms a first tap that can no longer become a double tap.
func (c *Classifier) flushPendingTap() {
	if !c.pendingTap {
		return
	}
	c.stopTapTimer()
	c.pendingTap = false
	c.listener(types.Tap())
}
