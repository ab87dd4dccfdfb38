package gesture

import (
	"testing"
	"time"

	"github.com/mobile-next/bubble/clock"
	"github.com/mobile-next/bubble/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1700000000, 0)

// harness feeds events to a classifier, advancing a fake clock to each
// event's timestamp first.
type harness struct {
	t        *testing.T
	clock    *clock.Fake
	c        *Classifier
	gestures []types.Gesture
}

func newHarness(t *testing.T, th Thresholds) *harness {
	h := &harness{t: t, clock: clock.NewFake(epoch)}
	h.c = NewClassifier(th, h.clock, func(g types.Gesture) {
		h.gestures = append(h.gestures, g)
	})
	return h
}

func (h *harness) at(ms int64) {
	h.clock.AdvanceTo(epoch.Add(time.Duration(ms) * time.Millisecond))
}

func (h *harness) down(x, y float64, ms int64) {
	h.at(ms)
	h.c.Down(types.PointerEvent{Phase: types.PhaseDown, X: x, Y: y, Timestamp: ms})
}

func (h *harness) move(x, y float64, ms int64) {
	h.at(ms)
	h.c.Move(types.PointerEvent{Phase: types.PhaseMove, X: x, Y: y, Timestamp: ms})
}

func (h *harness) up(x, y float64, ms int64) (types.Direction, bool) {
	h.at(ms)
	return h.c.Up(types.PointerEvent{Phase: types.PhaseUp, X: x, Y: y, Timestamp: ms})
}

func (h *harness) kinds() []types.GestureKind {
	kinds := make([]types.GestureKind, 0, len(h.gestures))
	for _, g := range h.gestures {
		kinds = append(kinds, g.Kind)
	}
	return kinds
}

func TestClassifier_SingleTap(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	_, ok := h.up(102, 101, 80)
	assert.False(t, ok)
	assert.Empty(t, h.gestures, "tap must wait for the double tap window")

	h.at(80 + 300)
	assert.Equal(t, []types.GestureKind{types.GestureTap}, h.kinds())
}

func TestClassifier_TapTooLongIsNotATap(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.up(100, 100, 350)
	h.at(2000)

	assert.Empty(t, h.gestures)
}

func TestClassifier_DoubleTap(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.up(100, 100, 60)
	h.down(101, 100, 200)
	h.up(101, 100, 260)
	h.at(5000)

	assert.Equal(t, []types.GestureKind{types.GestureDoubleTap}, h.kinds())
}

func TestClassifier_TwoTapsOutsideWindowAreTwoTaps(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.up(100, 100, 60)
	h.down(100, 100, 500)
	h.up(100, 100, 560)
	h.at(5000)

	assert.Equal(t, []types.GestureKind{types.GestureTap, types.GestureTap}, h.kinds())
}

func TestClassifier_LongPress(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.at(499)
	assert.Empty(t, h.gestures)

	h.at(500)
	assert.Equal(t, []types.GestureKind{types.GestureLongPress}, h.kinds())

	_, ok := h.up(100, 100, 900)
	assert.False(t, ok)
	h.at(5000)
	assert.Equal(t, []types.GestureKind{types.GestureLongPress}, h.kinds(), "release after long press emits nothing")
}

func TestClassifier_LongHoldByTimestampIsLongPress(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	// the clock never advances, as when a batch of events arrives at once
	h.c.Down(types.PointerEvent{Phase: types.PhaseDown, X: 100, Y: 100, Timestamp: 0})
	_, ok := h.c.Up(types.PointerEvent{Phase: types.PhaseUp, X: 103, Y: 100, Timestamp: 1000})
	assert.False(t, ok)
	assert.Equal(t, []types.GestureKind{types.GestureLongPress}, h.kinds())

	h.at(5000)
	assert.Equal(t, []types.GestureKind{types.GestureLongPress}, h.kinds(), "no tap or second long press afterwards")
	assert.Equal(t, 0, h.clock.Pending())
}

func TestClassifier_LongHoldAfterTapFlushesTap(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.up(100, 100, 50)

	h.c.Down(types.PointerEvent{Phase: types.PhaseDown, X: 100, Y: 100, Timestamp: 150})
	h.c.Up(types.PointerEvent{Phase: types.PhaseUp, X: 100, Y: 100, Timestamp: 800})

	assert.Equal(t, []types.GestureKind{types.GestureTap, types.GestureLongPress}, h.kinds())
}

func TestClassifier_SmallMovesKeepLongPress(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.move(105, 103, 100)
	h.move(98, 104, 200)
	h.at(600)

	assert.Equal(t, []types.GestureKind{types.GestureLongPress}, h.kinds())
}

func TestClassifier_DragCancelsLongPress(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.move(160, 100, 100)
	h.at(1000)
	assert.Empty(t, h.gestures)

	// slow release far away: neither tap nor fling
	_, ok := h.up(160, 100, 5000)
	assert.False(t, ok)
	assert.Empty(t, h.gestures)
}

func TestClassifier_FlingRight(t *testing.T) {
	h := newHarness(t, Thresholds{
		TapMaxDisplacementPx:    16,
		TapMaxDuration:          300 * time.Millisecond,
		DoubleTapWindow:         300 * time.Millisecond,
		LongPressDuration:       500 * time.Millisecond,
		FlingMinDistancePx:      50,
		FlingMinVelocityPxPerMs: 0.5,
	})

	h.down(100, 100, 0)
	h.move(200, 105, 50)
	dir, ok := h.up(300, 110, 100)

	require.True(t, ok)
	assert.Equal(t, types.DirectionRight, dir)
	require.Len(t, h.gestures, 1)
	g := h.gestures[0]
	assert.Equal(t, types.GestureFling, g.Kind)
	assert.Equal(t, types.DirectionRight, g.Direction)
	assert.InDelta(t, 2.0, g.VelocityX, 1e-9)
	assert.InDelta(t, 0.1, g.VelocityY, 1e-9)
}

func TestClassifier_FlingAfterPendingTapFlushesTap(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.up(100, 100, 50)

	// second press inside the window turns into a fling
	h.down(100, 100, 150)
	h.move(0, 100, 200)
	dir, ok := h.up(-100, 100, 250)

	require.True(t, ok)
	assert.Equal(t, types.DirectionLeft, dir)
	assert.Equal(t, []types.GestureKind{types.GestureTap, types.GestureFling}, h.kinds())

	h.at(5000)
	assert.Len(t, h.gestures, 2)
}

func TestClassifier_LongPressOnSecondPressFlushesTap(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.up(100, 100, 50)
	h.down(100, 100, 150)
	h.at(650)

	assert.Equal(t, []types.GestureKind{types.GestureTap, types.GestureLongPress}, h.kinds())
}

func TestClassifier_SpuriousEventsAreIgnored(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.move(10, 10, 0)
	_, ok := h.up(10, 10, 10)
	assert.False(t, ok)

	_, ok = h.up(10, 10, 20)
	assert.False(t, ok)

	h.at(5000)
	assert.Empty(t, h.gestures)
	assert.Equal(t, 0, h.clock.Pending())
}

func TestClassifier_RepeatedDownRestartsPress(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.down(100, 100, 400)
	h.at(600)
	assert.Empty(t, h.gestures, "long press timer restarts on the second down")

	h.at(900)
	assert.Equal(t, []types.GestureKind{types.GestureLongPress}, h.kinds())
}

func TestClassifier_ResetCancelsTimers(t *testing.T) {
	h := newHarness(t, DefaultThresholds())

	h.down(100, 100, 0)
	h.up(100, 100, 50)
	h.down(300, 300, 1000)

	h.c.Reset()
	h.at(10000)

	assert.Equal(t, []types.GestureKind{types.GestureTap}, h.kinds(), "only the tap confirmed before reset")
	assert.False(t, h.c.Pressed())
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Thresholds)
		wantErr bool
	}{
		{"defaults", func(*Thresholds) {}, false},
		{"negative slop", func(th *Thresholds) { th.TapMaxDisplacementPx = -1 }, true},
		{"zero tap duration", func(th *Thresholds) { th.TapMaxDuration = 0 }, true},
		{"zero double tap window", func(th *Thresholds) { th.DoubleTapWindow = 0 }, true},
		{"zero long press", func(th *Thresholds) { th.LongPressDuration = 0 }, true},
		{"negative fling distance", func(th *Thresholds) { th.FlingMinDistancePx = -5 }, true},
		{"negative fling velocity", func(th *Thresholds) { th.FlingMinVelocityPxPerMs = -0.1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mutate(&th)
			err := th.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
