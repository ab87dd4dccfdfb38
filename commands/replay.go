package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/clock"
	"github.com/mobile-next/bubble/devices"
	"github.com/mobile-next/bubble/types"
)

// replayDrainLimit bounds how long timers keep firing after the last event.
const replayDrainLimit = 10 * time.Second

// ReplayRequest represents the parameters for replaying a pointer trace
type ReplayRequest struct {
	Events []types.PointerEvent `json:"events"`
	Width  int                  `json:"width"`
	Height int                  `json:"height"`
	// Options overrides the configured session options.
	Options *bubble.Options `json:"-"`
}

// ReplayResult is what the bubble did with a trace.
type ReplayResult struct {
	Gestures   []types.Gesture  `json:"gestures"`
	Actions    []string         `json:"actions"`
	Final      types.Position   `json:"final"`
	Trail      []types.Position `json:"trail"`
	Terminated bool             `json:"terminated"`
	// ElapsedMs is the simulated time from the first event until the last
	// timer fired.
	ElapsedMs int64 `json:"elapsedMs"`
}

// LoadTrace reads a JSON array of pointer events.
func LoadTrace(r io.Reader) ([]types.PointerEvent, error) {
	var events []types.PointerEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return events, nil
}

// recordingActions remembers the actions the bubble requested.
type recordingActions struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingActions) record(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, name)
	return nil
}

func (a *recordingActions) BringToFront() error { return a.record("bring_to_front") }
func (a *recordingActions) GoHome() error       { return a.record("go_home") }
func (a *recordingActions) Terminate() error    { return a.record("terminate") }

func (a *recordingActions) list() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string{}, a.actions...)
}

// Replay runs a trace through a bubble on a simulated clock. Before each
// event the clock advances to the event's timestamp, firing any gesture
// timers and animation frames due by then. After the last event pending
// timers are drained.
func Replay(req ReplayRequest) (*ReplayResult, error) {
	opts := sessionOptions
	if req.Options != nil {
		opts = *req.Options
	}

	var start time.Time
	if len(req.Events) > 0 {
		start = time.UnixMilli(req.Events[0].Timestamp)
	}
	clk := clock.NewFake(start)
	windows := devices.NewVirtualWindowManager()
	actions := &recordingActions{}

	session, err := bubble.NewSession(bubble.Deps{
		Screen:  bubble.StaticScreen{Width: req.Width, Height: req.Height},
		Windows: windows,
		Actions: actions,
		Clock:   clk,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = session.Close() }()

	gestures := []types.Gesture{}
	session.OnGesture(func(g types.Gesture) {
		gestures = append(gestures, g)
	})

	terminated := false
	for i, e := range req.Events {
		if i > 0 && e.Timestamp < req.Events[i-1].Timestamp {
			return nil, fmt.Errorf("event %d goes back in time (%d < %d)", i, e.Timestamp, req.Events[i-1].Timestamp)
		}
		clk.AdvanceTo(time.UnixMilli(e.Timestamp))
		if err := session.HandleEvent(e); err != nil {
			if errors.Is(err, bubble.ErrSessionClosed) {
				terminated = true
				break
			}
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	clk.RunUntilIdle(replayDrainLimit)

	select {
	case <-session.Done():
		terminated = true
	default:
	}

	window := windows.Windows()[0]
	return &ReplayResult{
		Gestures:   gestures,
		Actions:    actions.list(),
		Final:      window.Position(),
		Trail:      window.Trail(),
		Terminated: terminated,
		ElapsedMs:  clk.Now().Sub(start).Milliseconds(),
	}, nil
}

// ReplayCommand wraps Replay in a CommandResponse.
func ReplayCommand(req ReplayRequest) *CommandResponse {
	result, err := Replay(req)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(result)
}
