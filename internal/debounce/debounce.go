// Package debounce coalesces bursts of calls into a single trailing action.
package debounce

import (
	"sort"
	"sync"
	"time"
)

// Stopper is the part of *time.Timer a Channel needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc arms f to run after d. time.AfterFunc satisfies it via Std.
type AfterFunc func(d time.Duration, f func()) Stopper

// Std is the production AfterFunc.
func Std(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Channel owns at most one pending action. Scheduling a new action always
// stops the previous timer first.
type Channel struct {
	mu     sync.Mutex
	delay  time.Duration
	after  AfterFunc
	timer  Stopper
	action func()
	gen    uint64
}

// New returns a Channel that fires delay after the last Schedule call.
// A nil after uses time.AfterFunc.
func New(delay time.Duration, after AfterFunc) *Channel {
	if after == nil {
		after = Std
	}
	return &Channel{delay: delay, after: after}
}

// Schedule replaces any pending action with action and restarts the timer.
func (c *Channel) Schedule(action func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.gen++
	gen := c.gen
	c.action = action
	c.timer = c.after(c.delay, func() { c.fire(gen) })
}

func (c *Channel) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.action == nil {
		// superseded or cancelled after the timer already started running
		c.mu.Unlock()
		return
	}
	action := c.action
	c.action = nil
	c.timer = nil
	c.mu.Unlock()

	action()
}

// Cancel drops the pending action. It reports whether one was pending.
func (c *Channel) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := c.action != nil
	c.stopLocked()
	c.gen++
	return pending
}

// Flush runs the pending action synchronously on the caller's goroutine.
func (c *Channel) Flush() bool {
	c.mu.Lock()
	action := c.action
	c.stopLocked()
	c.gen++
	c.mu.Unlock()

	if action == nil {
		return false
	}
	action()
	return true
}

func (c *Channel) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.action != nil
}

func (c *Channel) Delay() time.Duration {
	return c.delay
}

func (c *Channel) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.action = nil
}

// Group hands out one Channel per name, all sharing a delay.
type Group struct {
	mu       sync.Mutex
	delay    time.Duration
	after    AfterFunc
	channels map[string]*Channel
}

func NewGroup(delay time.Duration, after AfterFunc) *Group {
	return &Group{delay: delay, after: after, channels: make(map[string]*Channel)}
}

// Channel returns the channel for name, creating it on first use.
func (g *Group) Channel(name string) *Channel {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch, ok := g.channels[name]
	if !ok {
		ch = New(g.delay, g.after)
		g.channels[name] = ch
	}
	return ch
}

// Schedule is shorthand for g.Channel(name).Schedule(action).
func (g *Group) Schedule(name string, action func()) {
	g.Channel(name).Schedule(action)
}

// Pending lists the names with a pending action, sorted.
func (g *Group) Pending() []string {
	g.mu.Lock()
	chans := make(map[string]*Channel, len(g.channels))
	for k, v := range g.channels {
		chans[k] = v
	}
	g.mu.Unlock()

	var names []string
	for name, ch := range chans {
		if ch.Pending() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FlushAll runs every pending action and returns how many ran.
func (g *Group) FlushAll() int {
	n := 0
	for _, name := range g.Pending() {
		if g.Channel(name).Flush() {
			n++
		}
	}
	return n
}

// CancelAll drops every pending action.
func (g *Group) CancelAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, ch := range g.channels {
		ch.Cancel()
	}
}
