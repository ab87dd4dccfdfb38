package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Callbacks run synchronously on the
// goroutine calling Advance, in deadline order.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	fake *Fake
	when time.Time
	seq  int
	fn   func()
}

// NewFake returns a Fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{fake: f, when: f.now.Add(d), seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	f := t.fake
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remove(t)
}

// remove drops t from the pending list. mu must be held.
func (f *Fake) remove(t *fakeTimer) bool {
	for i, pending := range f.timers {
		if pending == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, firing every timer that falls due,
// including timers scheduled by callbacks fired along the way.
func (f *Fake) Advance(d time.Duration) {
	f.AdvanceTo(f.Now().Add(d))
}

// AdvanceTo moves the clock to target. Targets in the past are ignored.
func (f *Fake) AdvanceTo(target time.Time) {
	for {
		f.mu.Lock()
		if target.Before(f.now) {
			f.mu.Unlock()
			return
		}
		next := f.nextLocked()
		if next == nil || next.when.After(target) {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = next.when
		f.remove(next)
		f.mu.Unlock()

		next.fn()
	}
}

// Next returns the deadline of the earliest pending timer.
func (f *Fake) Next() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.nextLocked()
	if next == nil {
		return time.Time{}, false
	}
	return next.when, true
}

// Pending returns the number of scheduled timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// RunUntilIdle fires pending timers one deadline at a time until none are
// left or the clock has moved by limit. It returns how far the clock moved.
func (f *Fake) RunUntilIdle(limit time.Duration) time.Duration {
	start := f.Now()
	deadline := start.Add(limit)
	for {
		next, ok := f.Next()
		if !ok || next.After(deadline) {
			break
		}
		f.AdvanceTo(next)
	}
	return f.Now().Sub(start)
}

// nextLocked returns the earliest timer, ties broken by scheduling order.
func (f *Fake) nextLocked() *fakeTimer {
	if len(f.timers) == 0 {
		return nil
	}
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].when.Equal(f.timers[j].when) {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].when.Before(f.timers[j].when)
	})
	return f.timers[0]
}
