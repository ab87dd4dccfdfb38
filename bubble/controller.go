// Package bubble wires the gesture classifier, the drag controller and the
// edge snap animator into a floating overlay bubble.
package bubble

import (
	"errors"
	"sync"

	"github.com/mobile-next/bubble/clock"
	"github.com/mobile-next/bubble/drag"
	"github.com/mobile-next/bubble/gesture"
	"github.com/mobile-next/bubble/snap"
	"github.com/mobile-next/bubble/types"
	"github.com/mobile-next/bubble/utils"
)

// ErrSessionClosed is returned for input delivered after teardown.
var ErrSessionClosed = errors.New("bubble session closed")

// State is a snapshot of the controller.
type State struct {
	Position    types.Position `json:"position"`
	Dragging    bool           `json:"dragging"`
	Snapping    bool           `json:"snapping"`
	SnapTarget  *int           `json:"snapTarget,omitempty"`
	LastGesture *types.Gesture `json:"lastGesture,omitempty"`
	Closed      bool           `json:"closed"`
}

// GestureObserver is notified of every classified gesture.
type GestureObserver func(types.Gesture)

// PositionObserver is notified of every window move.
type PositionObserver func(types.Position)

// Controller owns the bubble position. Pointer events, gesture timers and
// animation frames all run under one lock, so the position has a single
// writer at any time: the drag while the pointer is down, the snap after.
//
// Work that may call back into the session (host actions and observers) is
// queued while the lock is held and run once it is released.
type Controller struct {
	mu       sync.Mutex
	effects  []func()
	closed   bool
	position types.Position

	window  Window
	actions Actions
	bounds  types.ScreenBounds
	opts    Options

	drag       *drag.Controller
	classifier *gesture.Classifier
	animator   *snap.Animator

	lastGesture *types.Gesture

	gestureObservers  []GestureObserver
	positionObservers []PositionObserver
}

// NewController builds a controller for a window already shown at initial.
func NewController(clk clock.Clock, window Window, actions Actions, bounds types.ScreenBounds, initial types.Position, opts Options) *Controller {
	c := &Controller{
		position: initial,
		window:   window,
		actions:  actions,
		bounds:   bounds,
		opts:     opts,
		drag:     drag.NewController(),
	}

	guarded := clock.Guarded{Clock: clk, Enter: c.lock, Exit: c.unlock}
	c.classifier = gesture.NewClassifier(opts.Thresholds, guarded, c.onGesture)
	c.animator = snap.NewAnimator(guarded,
		snap.WithFrameInterval(opts.FrameInterval),
		snap.WithInterpolator(opts.Interpolator),
	)
	return c
}

func (c *Controller) lock() {
	c.mu.Lock()
}

// unlock releases the lock, then runs the effects queued while holding it.
func (c *Controller) unlock() {
	effects := c.effects
	c.effects = nil
	c.mu.Unlock()

	for _, fn := range effects {
		fn()
	}
}

// OnGesture registers an observer for classified gestures.
func (c *Controller) OnGesture(fn GestureObserver) {
	c.lock()
	defer c.unlock()
	c.gestureObservers = append(c.gestureObservers, fn)
}

// OnMove registers an observer for window moves.
func (c *Controller) OnMove(fn PositionObserver) {
	c.lock()
	defer c.unlock()
	c.positionObservers = append(c.positionObservers, fn)
}

// HandleEvent processes one pointer event. Events must arrive in order.
func (c *Controller) HandleEvent(e types.PointerEvent) error {
	c.lock()
	defer c.unlock()

	if c.closed {
		return ErrSessionClosed
	}

	switch e.Phase {
	case types.PhaseDown:
		c.onDown(e)
	case types.PhaseMove:
		c.onMove(e)
	case types.PhaseUp:
		c.onUp(e)
	default:
		utils.Verbose("bubble: ignoring pointer event with unknown phase %v", e.Phase)
	}
	return nil
}

func (c *Controller) onDown(e types.PointerEvent) {
	// the drag takes over the position from any snap in flight
	c.animator.Cancel()
	c.drag.OnDown(e, c.position)
	c.classifier.Down(e)
}

func (c *Controller) onMove(e types.PointerEvent) {
	if pos, ok := c.drag.OnMove(e); ok {
		c.moveTo(pos)
	}
	c.classifier.Move(e)
}

func (c *Controller) onUp(e types.PointerEvent) {
	c.drag.OnUp()
	if direction, ok := c.classifier.Up(e); ok {
		c.dispatchFling(direction)
	}
}

// dispatchFling snaps to the edge a horizontal fling points at.
func (c *Controller) dispatchFling(direction types.Direction) {
	if !direction.Horizontal() {
		// no vertical snapping
		utils.Verbose("bubble: swiped %s", direction)
		return
	}

	target := c.bounds.RightEdge(c.opts.BubbleRadius)
	if direction == types.DirectionLeft {
		target = c.bounds.LeftEdge(c.opts.BubbleRadius)
	}
	c.snapTo(target)
}

func (c *Controller) snapTo(target int) {
	from := c.position.X
	utils.Verbose("bubble: snapping from x=%d to x=%d", from, target)
	c.animator.SnapTo(from, target, c.opts.SnapDuration,
		func(x int) {
			c.moveTo(types.Position{X: x, Y: c.position.Y})
		},
		func() {
			utils.Verbose("bubble: snap finished at x=%d", target)
		},
	)
}

// moveTo applies pos to the window. Must hold the lock.
func (c *Controller) moveTo(pos types.Position) {
	c.position = pos
	if err := c.window.Move(pos); err != nil {
		utils.Verbose("bubble: failed to move overlay to %+v: %v", pos, err)
	}
	for _, fn := range c.positionObservers {
		fn := fn
		c.effects = append(c.effects, func() { fn(pos) })
	}
}

// onGesture runs under the lock, from HandleEvent or a gesture timer.
func (c *Controller) onGesture(g types.Gesture) {
	c.lastGesture = &g
	utils.Verbose("bubble: gesture %s", g)

	switch g.Kind {
	case types.GestureTap:
		c.request("bring to front", c.actions.BringToFront)
	case types.GestureDoubleTap:
		c.request("go home", c.actions.GoHome)
	case types.GestureLongPress:
		c.request("terminate", c.actions.Terminate)
	}

	for _, fn := range c.gestureObservers {
		fn := fn
		c.effects = append(c.effects, func() { fn(g) })
	}
}

// request queues a host action to run after the lock is released.
func (c *Controller) request(name string, action func() error) {
	c.effects = append(c.effects, func() {
		if err := action(); err != nil {
			utils.Warn("bubble: %s action failed: %v", name, err)
		}
	})
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.lock()
	defer c.unlock()

	s := State{
		Position: c.position,
		Dragging: c.drag.Active(),
		Snapping: c.animator.Active(),
		Closed:   c.closed,
	}
	if target, ok := c.animator.Target(); ok {
		s.SnapTarget = &target
	}
	if c.lastGesture != nil {
		g := *c.lastGesture
		s.LastGesture = &g
	}
	return s
}

// Close cancels the snap and all gesture timers. Later events are rejected.
func (c *Controller) Close() {
	c.lock()
	defer c.unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.animator.Cancel()
	c.classifier.Reset()
	c.drag.OnUp()
}
