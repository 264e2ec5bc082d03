package debounce

import (
	"sync"
	"time"
)

// Manual is a hand-driven AfterFunc source. Timers armed through it only run
// when Advance moves the virtual clock past their deadline.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	m       *Manual
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// AfterFunc satisfies the AfterFunc type.
func (m *Manual) AfterFunc(d time.Duration, f func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{m: m, at: m.now + d, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every timer that came due,
// in deadline order, on the caller's goroutine.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	now := m.now
	m.mu.Unlock()

	for {
		t := m.nextDue(now)
		if t == nil {
			return
		}
		t.f()
	}
}

func (m *Manual) nextDue(now time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	var next *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.fired || t.at > now {
			continue
		}
		if next == nil || t.at < next.at {
			next = t
		}
	}
	if next != nil {
		next.fired = true
	}
	return next
}

// Armed returns how many timers are waiting to fire.
func (m *Manual) Armed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now returns the virtual time, counted from the Unix epoch.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Unix(0, 0).UTC().Add(m.now)
}
