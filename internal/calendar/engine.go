package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/models"
)

// Engine caches the counts for the visible month.
type Engine struct {
	loader    Loader
	weekStart time.Weekday

	mu     sync.RWMutex
	month  time.Time
	dates  []string
	counts map[string]models.CalendarCount
	index  map[string]int
}

func NewEngine(loader Loader, weekStart time.Weekday) *Engine {
	return &Engine{
		loader:    loader,
		weekStart: weekStart,
		counts:    make(map[string]models.CalendarCount),
		index:     make(map[string]int),
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Show makes month the visible window. It recomputes only when the month
// differs from the cached one and reports whether it did.
func (e *Engine) Show(ctx context.Context, month time.Time) bool {
	month = firstOfMonth(month)
	e.mu.RLock()
	same := e.dates != nil && e.month.Equal(month)
	e.mu.RUnlock()
	if same {
		return false
	}
	e.compute(ctx, month)
	return true
}

// Refresh recomputes every cell of the visible window.
func (e *Engine) Refresh(ctx context.Context) {
	e.mu.RLock()
	month, shown := e.month, e.dates != nil
	e.mu.RUnlock()
	if !shown {
		return
	}
	e.compute(ctx, month)
}

func (e *Engine) compute(ctx context.Context, month time.Time) {
	dates := Grid(month, e.weekStart)
	counts := Aggregate(ctx, e.loader, dates)

	index := make(map[string]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.month = month
	e.dates = dates
	e.counts = counts
	e.index = index
	logger.Debug("calendar recomputed", "month", month.Format("2006-01"))
}

// Observe folds a just-saved record into the window. It reports whether the
// record's cell was visible and its summary changed.
func (e *Engine) Observe(rec models.DayRecord) bool {
	next := Summarize(rec)

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.index[rec.Date]; !ok {
		return false
	}
	if e.counts[rec.Date] == next {
		return false
	}
	e.counts[rec.Date] = next
	return true
}

// Invalidate reloads a single visible cell, e.g. after an outside change.
func (e *Engine) Invalidate(ctx context.Context, date string) bool {
	if !e.InWindow(date) {
		return false
	}
	rec, err := e.loader.LoadRecord(ctx, date)
	if err != nil {
		logger.Warn("calendar cell reload failed", "date", date, "error", err)
		return false
	}
	return e.Observe(rec)
}

func (e *Engine) InWindow(date string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.index[date]
	return ok
}

// Counts returns a copy of the visible window's counts.
func (e *Engine) Counts() map[string]models.CalendarCount {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]models.CalendarCount, len(e.counts))
	for k, v := range e.counts {
		out[k] = v
	}
	return out
}

func (e *Engine) Count(date string) (models.CalendarCount, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.counts[date]
	return c, ok
}

// Dates returns the 42 visible date keys in grid order.
func (e *Engine) Dates() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.dates...)
}

func (e *Engine) Month() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.month
}

func (e *Engine) WeekStart() time.Weekday {
	return e.weekStart
}
