package bubble

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mobile-next/bubble/clock"
	"github.com/mobile-next/bubble/types"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1700000000, 0)

type fakeWindow struct {
	mu        sync.Mutex
	moves     []types.Position
	destroyed int
	moveErr   error
}

func (w *fakeWindow) Move(pos types.Position) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.moves = append(w.moves, pos)
	return w.moveErr
}

func (w *fakeWindow) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyed++
	return nil
}

func (w *fakeWindow) Moves() []types.Position {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]types.Position(nil), w.moves...)
}

func (w *fakeWindow) Last() types.Position {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.moves) == 0 {
		return types.Position{}
	}
	return w.moves[len(w.moves)-1]
}

type fakeWindows struct {
	window  *fakeWindow
	created []types.Position
	size    types.Size
	err     error
}

func (m *fakeWindows) CreateOverlay(pos types.Position, size types.Size) (Window, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, pos)
	m.size = size
	return m.window, nil
}

type fakeActions struct {
	mu         sync.Mutex
	front      int
	home       int
	terminated int
}

func (a *fakeActions) BringToFront() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.front++
	return nil
}

func (a *fakeActions) GoHome() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.home++
	return nil
}

func (a *fakeActions) Terminate() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.terminated++
	return nil
}

func (a *fakeActions) counts() (front, home, terminated int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.front, a.home, a.terminated
}

type failingScreen struct{}

func (failingScreen) ScreenBounds() (types.ScreenBounds, error) {
	return types.ScreenBounds{}, errors.New("display service not available")
}

// fixture is a session on a 1080x1920 screen driven by a fake clock.
type fixture struct {
	t       *testing.T
	clock   *clock.Fake
	window  *fakeWindow
	windows *fakeWindows
	actions *fakeActions
	session *Session
}

func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	f := &fixture{
		t:       t,
		clock:   clock.NewFake(epoch),
		window:  &fakeWindow{},
		actions: &fakeActions{},
	}
	f.windows = &fakeWindows{window: f.window}

	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}

	s, err := NewSession(Deps{
		Screen:  StaticScreen{Width: 1080, Height: 1920},
		Windows: f.windows,
		Actions: f.actions,
		Clock:   f.clock,
	}, opts)
	require.NoError(t, err)
	f.session = s
	return f
}

func (f *fixture) send(phase types.Phase, x, y float64, ms int64) error {
	f.clock.AdvanceTo(epoch.Add(time.Duration(ms) * time.Millisecond))
	return f.session.HandleEvent(types.PointerEvent{Phase: phase, X: x, Y: y, Timestamp: ms})
}

func (f *fixture) down(x, y float64, ms int64) {
	require.NoError(f.t, f.send(types.PhaseDown, x, y, ms))
}

func (f *fixture) move(x, y float64, ms int64) {
	require.NoError(f.t, f.send(types.PhaseMove, x, y, ms))
}

func (f *fixture) up(x, y float64, ms int64) {
	require.NoError(f.t, f.send(types.PhaseUp, x, y, ms))
}

func (f *fixture) at(ms int64) {
	f.clock.AdvanceTo(epoch.Add(time.Duration(ms) * time.Millisecond))
}
