package notifier

import (
	"fmt"
	"io"
	"sync"

	"github.com/julianstephens/daypad/internal/logger"
)

// Bell rings the terminal bell. It has no window to raise, so
// RequestForeground is a no-op.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

func (b *Bell) NotifyTimerComplete(label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := fmt.Fprint(b.W, "\a")
	return err
}

func (b *Bell) RequestForeground() error { return nil }

// Alerter is the pair of calls a finished focus session makes.
type Alerter interface {
	NotifyTimerComplete(label string) error
	RequestForeground() error
}

// Fallback tries each alerter in order and stops at the first success.
type Fallback []Alerter

func (f Fallback) NotifyTimerComplete(label string) error {
	return f.first(func(a Alerter) error { return a.NotifyTimerComplete(label) })
}

func (f Fallback) RequestForeground() error {
	return f.first(func(a Alerter) error { return a.RequestForeground() })
}

func (f Fallback) first(call func(Alerter) error) error {
	var last error
	for _, a := range f {
		if last = call(a); last == nil {
			return nil
		}
		logger.Debug("alerter failed, trying next", "alerter", fmt.Sprintf("%T", a), "error", last)
	}
	return last
}
