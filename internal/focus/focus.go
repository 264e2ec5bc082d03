// Package focus runs a single countdown bound to the selected task and
// raises an alert when it elapses.
package focus

import (
	"errors"
	"sync"
	"time"

	"github.com/julianstephens/daypad/internal/debounce"
	"github.com/julianstephens/daypad/internal/logger"
)

var ErrInvalidDuration = errors.New("focus duration must be positive")

// Notifier is told when a session ends. Both calls are best effort.
type Notifier interface {
	NotifyTimerComplete(label string) error
	RequestForeground() error
}

type Options struct {
	Notifier  Notifier
	AfterFunc debounce.AfterFunc
	Now       func() time.Time
	// OnComplete runs after the notifier on the timer goroutine.
	OnComplete func(label string)
}

// Timer is a restartable one-shot countdown.
type Timer struct {
	mu sync.Mutex

	notifier   Notifier
	after      debounce.AfterFunc
	now        func() time.Time
	onComplete func(string)

	running  bool
	label    string
	deadline time.Time
	pending  debounce.Stopper
	gen      uint64
}

func New(opts Options) *Timer {
	if opts.AfterFunc == nil {
		opts.AfterFunc = debounce.Std
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Timer{
		notifier:   opts.Notifier,
		after:      opts.AfterFunc,
		now:        opts.Now,
		onComplete: opts.OnComplete,
	}
}

// Start begins a countdown of d for label, replacing any running one.
func (t *Timer) Start(d time.Duration, label string) error {
	if d <= 0 {
		return ErrInvalidDuration
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	gen := t.gen
	t.running = true
	t.label = label
	t.deadline = t.now().Add(d)
	t.pending = t.after(d, func() { t.complete(gen) })
	logger.Info("focus started", "label", label, "duration", d)
	return nil
}

// Stop cancels the countdown. It reports whether one was running.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := t.running
	t.stopLocked()
	t.gen++
	if was {
		logger.Info("focus stopped", "label", t.label)
	}
	return was
}

func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Timer) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.label
}

// Remaining is zero when no countdown is running.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0
	}
	if left := t.deadline.Sub(t.now()); left > 0 {
		return left
	}
	return 0
}

func (t *Timer) stopLocked() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.running = false
}

func (t *Timer) complete(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.running {
		t.mu.Unlock()
		return
	}
	label := t.label
	t.running = false
	t.pending = nil
	t.mu.Unlock()

	logger.Info("focus complete", "label", label)
	if t.notifier != nil {
		if err := t.notifier.NotifyTimerComplete(label); err != nil {
			logger.Warn("focus notification failed", "error", err)
		}
		if err := t.notifier.RequestForeground(); err != nil {
			logger.Warn("foreground request failed", "error", err)
		}
	}
	if t.onComplete != nil {
		t.onComplete(label)
	}
}
