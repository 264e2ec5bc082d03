// Package planner owns the resident day record and every mutation of its
// task list: create, toggle, edit, delete, reorder and cross-date moves.
package planner

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/debounce"
	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/storage"
	"github.com/julianstephens/daypad/internal/utils"
)

// Options configures a Session. Only Store is required.
type Options struct {
	Store storage.RecordStore
	IDs   IDIssuer
	Clock Clock

	// NotesDelay is the quiet period before day notes are saved.
	NotesDelay time.Duration
	AfterFunc  debounce.AfterFunc

	// OnSaved runs after every successful save while the session lock is
	// held; it must not call back into the Session.
	OnSaved func(rec models.DayRecord)
}

// Session holds the single resident DayRecord and the focus selection.
type Session struct {
	mu sync.Mutex

	store   storage.RecordStore
	ids     IDIssuer
	clock   Clock
	onSaved func(models.DayRecord)

	current   models.DayRecord
	open      bool
	selection int

	notes *debounce.Group
	// detached keeps the in-memory copy of dates navigated away from while
	// unsaved notes.
	detached map[string]models.DayRecord
	// dirty holds dates whose notes are not on disk yet, including ones
	// whose last save failed.
	dirty map[string]bool
}

func NewSession(opts Options) *Session {
	if opts.IDs == nil {
		opts.IDs = UUIDIssuer{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NotesDelay <= 0 {
		opts.NotesDelay = constants.NotesDebounce
	}
	return &Session{
		store:     opts.Store,
		ids:       opts.IDs,
		clock:     opts.Clock,
		onSaved:   opts.OnSaved,
		selection: -1,
		notes:     debounce.NewGroup(opts.NotesDelay, opts.AfterFunc),
		detached:  make(map[string]models.DayRecord),
		dirty:     make(map[string]bool),
	}
}

func notesChannel(date string) string {
	return "notes:" + date
}

// Open makes date the resident record and clears the selection. Unsaved
// notes for the previously open date are kept in memory and a pending save
// is left to fire on its own.
// When the load fails the session falls back to an empty record and the
// error is returned.
func (s *Session) Open(ctx context.Context, date string) error {
	if _, err := utils.ParseDateKey(date); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open && s.dirty[s.current.Date] {
		s.detached[s.current.Date] = s.current.Clone()
	}
	s.selection = -1
	s.open = true

	if rec, ok := s.detached[date]; ok {
		delete(s.detached, date)
		s.current = rec
		logger.Debug("resumed day from unsaved copy", "date", date)
		return nil
	}

	rec, err := s.store.LoadRecord(ctx, date)
	if err != nil {
		logger.Error("failed to load day", "date", date, "error", err)
		s.current = models.EmptyDayRecord(date)
		return fmt.Errorf("load %s: %w", date, err)
	}
	rec.Date = date
	if rec.Todos == nil {
		rec.Todos = []models.TaskItem{}
	}
	s.current = rec
	return nil
}

// Date returns the resident date key, or "" before the first Open.
func (s *Session) Date() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ""
	}
	return s.current.Date
}

// Snapshot returns a deep copy of the resident record.
func (s *Session) Snapshot() models.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Selection returns the selected index, if any.
func (s *Session) Selection() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection, s.selection >= 0
}

func (s *Session) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(index); err != nil {
		return err
	}
	s.selection = index
	return nil
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = -1
}

// SelectedTask returns a copy of the task targeted by the focus timer.
func (s *Session) SelectedTask() (models.TaskItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection < 0 || s.selection >= len(s.current.Todos) {
		return models.TaskItem{}, false
	}
	return s.current.Todos[s.selection], true
}

// SetNotes replaces the resident day's notes and schedules a debounced save.
func (s *Session) SetNotes(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNoDayOpen
	}
	s.current.Notes = text
	date := s.current.Date
	s.dirty[date] = true
	s.notes.Schedule(notesChannel(date), func() { s.saveNotes(context.Background(), date) })
	return nil
}

// PendingNotes lists, sorted, the dates whose notes have not been saved yet.
func (s *Session) PendingNotes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	dates := make([]string, 0, len(s.dirty))
	for date := range s.dirty {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// saveNotes persists the in-memory copy of date. A failed save keeps the
// copy and the dirty mark so the next trigger or Flush retries it.
func (s *Session) saveNotes(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := logger.With("date", date)
	resident := s.isResidentLocked(date)
	rec, ok := s.detached[date]
	switch {
	case resident:
		rec = s.current.Clone()
	case !ok:
		delete(s.dirty, date)
		return nil
	}

	if err := s.store.SaveRecord(ctx, rec); err != nil {
		l.Error("failed to save notes", "error", err)
		return fmt.Errorf("save %s: %w", date, err)
	}
	delete(s.dirty, date)
	if !resident {
		delete(s.detached, date)
	}
	l.Debug("saved notes")
	s.notifySaved(rec)
	return nil
}

// Flush saves every date with unsaved notes now, retrying ones whose
// earlier save failed. It returns the first error.
func (s *Session) Flush(ctx context.Context) error {
	s.notes.CancelAll()
	var first error
	n := 0
	for _, date := range s.PendingNotes() {
		if err := s.saveNotes(ctx, date); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		n++
	}
	if n > 0 {
		logger.Debug("flushed pending saves", "count", n)
	}
	return first
}

// Close flushes pending saves. The session must not be used afterwards.
func (s *Session) Close(ctx context.Context) error {
	return s.Flush(ctx)
}

func (s *Session) checkOpenLocked() error {
	if !s.open {
		return ErrNoDayOpen
	}
	return nil
}

func (s *Session) checkIndexLocked(index int) error {
	if err := s.checkOpenLocked(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.current.Todos) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.current.Todos))
	}
	return nil
}

// saveCurrentLocked persists the resident record. The in-memory record is
// kept as-is when the save fails.
func (s *Session) saveCurrentLocked(ctx context.Context) error {
	rec := s.current.Clone()
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		logger.Error("failed to save day", "date", rec.Date, "error", err)
		return fmt.Errorf("save %s: %w", rec.Date, err)
	}
	// the full record, notes included, is now on disk
	s.notes.Channel(notesChannel(rec.Date)).Cancel()
	delete(s.dirty, rec.Date)
	s.notifySaved(rec)
	return nil
}

func (s *Session) notifySaved(rec models.DayRecord) {
	if s.onSaved != nil {
		s.onSaved(rec)
	}
}
