package bubble

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mobile-next/bubble/clock"
	"github.com/mobile-next/bubble/types"
	"github.com/mobile-next/bubble/utils"
)

// ErrNoScreenBounds is returned when a session cannot learn the screen size.
var ErrNoScreenBounds = errors.New("screen bounds unavailable")

// Deps are the host collaborators a session is built from.
type Deps struct {
	Screen  ScreenBoundsProvider
	Windows WindowManager
	Actions Actions
	// Clock drives gesture timers and the snap animation. Nil uses the real clock.
	Clock clock.Clock
}

// Session is one shown bubble: the overlay window plus the controller
// feeding it. It replaces a process-wide service; everything the bubble needs
// is created in NewSession and released in Close.
type Session struct {
	controller *Controller
	window     Window
	bounds     types.ScreenBounds
	hooks      *ShutdownHook

	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

// NewSession reads the screen bounds, shows the overlay at its initial
// position and starts accepting pointer events.
func NewSession(deps Deps, opts Options) (*Session, error) {
	if deps.Screen == nil || deps.Windows == nil || deps.Actions == nil {
		return nil, fmt.Errorf("screen, window manager and actions are required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	bounds, err := deps.Screen.ScreenBounds()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoScreenBounds, err)
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: got %dx%d", ErrNoScreenBounds, bounds.Width, bounds.Height)
	}

	initial := types.Position{X: bounds.RightEdge(opts.BubbleRadius), Y: 0}
	if opts.InitialPosition != nil {
		initial = *opts.InitialPosition
	}

	window, err := deps.Windows.CreateOverlay(initial, opts.BubbleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}

	s := &Session{
		window: window,
		bounds: bounds,
		hooks:  NewShutdownHook(),
		done:   make(chan struct{}),
	}
	s.controller = NewController(clk, window, terminatingActions{Actions: deps.Actions, session: s}, bounds, initial, opts)

	utils.Verbose("bubble: session started on %dx%d screen at %+v", bounds.Width, bounds.Height, initial)

	if opts.RunMinimized {
		if err := deps.Actions.GoHome(); err != nil {
			utils.Warn("bubble: failed to run minimized: %v", err)
		}
	}

	return s, nil
}

// terminatingActions closes the session once the host has been asked to
// terminate it.
type terminatingActions struct {
	Actions
	session *Session
}

func (a terminatingActions) Terminate() error {
	err := a.Actions.Terminate()
	if closeErr := a.session.Close(); closeErr != nil {
		utils.Verbose("bubble: closing session after terminate: %v", closeErr)
	}
	return err
}

// HandleEvent feeds one pointer event to the bubble.
func (s *Session) HandleEvent(e types.PointerEvent) error {
	return s.controller.HandleEvent(e)
}

// Run feeds events from the channel until it is closed, the context ends or
// the session closes.
func (s *Session) Run(ctx context.Context, events <-chan types.PointerEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.HandleEvent(e); err != nil {
				if errors.Is(err, ErrSessionClosed) {
					return nil
				}
				return err
			}
		}
	}
}

// State returns a snapshot of the bubble.
func (s *Session) State() State {
	return s.controller.State()
}

// Bounds returns the screen bounds read at session start.
func (s *Session) Bounds() types.ScreenBounds {
	return s.bounds
}

// OnGesture registers an observer for classified gestures.
func (s *Session) OnGesture(fn GestureObserver) {
	s.controller.OnGesture(fn)
}

// OnMove registers an observer for window moves.
func (s *Session) OnMove(fn PositionObserver) {
	s.controller.OnMove(fn)
}

// OnClose registers a cleanup function run when the session closes.
func (s *Session) OnClose(name string, fn func() error) {
	s.hooks.Register(name, fn)
}

// Done is closed as soon as Close starts, before the close hooks run.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close stops timers and animation, destroys the overlay and runs the close
// hooks. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.controller.Close()
		close(s.done)

		var errs []error
		if err := s.window.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy overlay: %w", err))
		}
		if err := s.hooks.Shutdown(); err != nil {
			errs = append(errs, err)
		}
		s.closeErr = errors.Join(errs...)
		utils.Verbose("bubble: session closed")
	})
	return s.closeErr
}
