package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1700000000, 0)

func TestFake_FiresInDeadlineOrder(t *testing.T) {
	f := NewFake(epoch)

	var fired []string
	f.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	f.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	f.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "b") })

	f.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, epoch.Add(20*time.Millisecond), f.Now())

	f.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 0, f.Pending())
}

func TestFake_StopPreventsCallback(t *testing.T) {
	f := NewFake(epoch)

	called := false
	timer := f.AfterFunc(time.Second, func() { called = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop should report already stopped")

	f.Advance(2 * time.Second)
	assert.False(t, called)
}

func TestFake_StopAfterFireReturnsFalse(t *testing.T) {
	f := NewFake(epoch)

	timer := f.AfterFunc(time.Millisecond, func() {})
	f.Advance(time.Millisecond)

	assert.False(t, timer.Stop())
}

func TestFake_CallbackSeesItsDeadline(t *testing.T) {
	f := NewFake(epoch)

	var seen time.Time
	f.AfterFunc(15*time.Millisecond, func() { seen = f.Now() })
	f.Advance(time.Second)

	assert.Equal(t, epoch.Add(15*time.Millisecond), seen)
}

func TestFake_RescheduledTimersFireWithinAdvance(t *testing.T) {
	f := NewFake(epoch)

	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 5 {
			f.AfterFunc(10*time.Millisecond, tick)
		}
	}
	f.AfterFunc(10*time.Millisecond, tick)

	f.Advance(100 * time.Millisecond)
	assert.Equal(t, 5, ticks)
}

func TestFake_RunUntilIdle(t *testing.T) {
	f := NewFake(epoch)

	f.AfterFunc(40*time.Millisecond, func() {})
	f.AfterFunc(90*time.Millisecond, func() {})

	moved := f.RunUntilIdle(time.Second)
	assert.Equal(t, 90*time.Millisecond, moved)
	assert.Equal(t, 0, f.Pending())
}

func TestFake_RunUntilIdleRespectsLimit(t *testing.T) {
	f := NewFake(epoch)

	f.AfterFunc(5*time.Second, func() {})

	moved := f.RunUntilIdle(time.Second)
	assert.Equal(t, time.Duration(0), moved)
	assert.Equal(t, 1, f.Pending())
}

func TestFake_AdvanceToPastIsIgnored(t *testing.T) {
	f := NewFake(epoch)
	f.Advance(time.Second)

	f.AdvanceTo(epoch)
	assert.Equal(t, epoch.Add(time.Second), f.Now())
}

func TestGuarded_WrapsCallbacks(t *testing.T) {
	f := NewFake(epoch)

	var trace []string
	g := Guarded{
		Clock: f,
		Enter: func() { trace = append(trace, "enter") },
		Exit:  func() { trace = append(trace, "exit") },
	}

	timer := g.AfterFunc(time.Millisecond, func() { trace = append(trace, "run") })
	require.NotNil(t, timer)
	f.Advance(time.Millisecond)

	assert.Equal(t, []string{"enter", "run", "exit"}, trace)
}
