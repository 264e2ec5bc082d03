package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/utils"
)

// Create appends a new task to the resident day and saves it.
func (s *Session) Create(ctx context.Context, text string) (models.TaskItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.TaskItem{}, fmt.Errorf("%w: task text is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpenLocked(); err != nil {
		return models.TaskItem{}, err
	}

	item := models.TaskItem{
		ID:        s.ids.IssueTaskID(),
		Text:      text,
		CreatedAt: s.clock(),
	}
	s.current.Todos = append(s.current.Todos, item)
	logger.Debug("created task", "date", s.current.Date, "id", item.ID)
	return item, s.saveCurrentLocked(ctx)
}

func (s *Session) ToggleCompleted(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(index); err != nil {
		return err
	}
	s.current.Todos[index].Completed = !s.current.Todos[index].Completed
	return s.saveCurrentLocked(ctx)
}

// Edit replaces a task's text and notes. Notes are trimmed but internal
// newlines are kept.
func (s *Session) Edit(ctx context.Context, index int, text, notes string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: task text is empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(index); err != nil {
		return err
	}
	s.current.Todos[index].Text = text
	s.current.Todos[index].Notes = strings.TrimSpace(notes)
	return s.saveCurrentLocked(ctx)
}

func (s *Session) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(index); err != nil {
		return err
	}
	s.removeLocked(index)
	return s.saveCurrentLocked(ctx)
}

func (s *Session) removeLocked(index int) {
	todos := s.current.Todos
	s.current.Todos = append(todos[:index:index], todos[index+1:]...)
	s.selection = RemapAfterDelete(s.selection, index)
}

// DropOnItem moves the task at dragged next to the task at target. It
// reports whether the list changed; a drop that lands where the task
// already is neither mutates nor saves.
func (s *Session) DropOnItem(ctx context.Context, dragged, target int, half Half) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(dragged); err != nil {
		return false, err
	}
	if err := s.checkIndexLocked(target); err != nil {
		return false, err
	}
	return s.reorderLocked(ctx, dragged, ItemDropIndex(dragged, target, half))
}

// DropOnZone moves the task at dragged to the top or bottom of the list.
func (s *Session) DropOnZone(ctx context.Context, dragged int, zone Zone) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(dragged); err != nil {
		return false, err
	}
	return s.reorderLocked(ctx, dragged, ZoneDropIndex(dragged, len(s.current.Todos), zone))
}

func (s *Session) reorderLocked(ctx context.Context, dragged, newIndex int) (bool, error) {
	if newIndex == dragged {
		return false, nil
	}
	s.current.Todos = Splice(s.current.Todos, dragged, newIndex)
	s.selection = RemapSelection(s.selection, dragged, newIndex)
	return true, s.saveCurrentLocked(ctx)
}

// MoveToDate relocates the task with id from one date to another. The task
// is appended to the target and saved before it is removed from the source,
// so a failure part way through can leave a duplicate but never loses it.
// Completed and MoveToNextDay are reset on the moved task.
func (s *Session) MoveToDate(ctx context.Context, id, fromDate, toDate string) error {
	for _, d := range []string{fromDate, toDate} {
		if _, err := utils.ParseDateKey(d); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if fromDate == toDate {
		return ErrSameDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.recordLocked(ctx, fromDate)
	if err != nil {
		return err
	}
	idx := src.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s on %s", ErrTaskNotFound, id, fromDate)
	}
	item := src.Todos[idx]
	item.Completed = false
	item.MoveToNextDay = false

	dst, err := s.recordLocked(ctx, toDate)
	if err != nil {
		return err
	}
	dst.Todos = append(dst.Todos, item)
	if err := s.persistLocked(ctx, dst); err != nil {
		return err
	}

	// persisting the target never touches the source's copy, so idx still holds
	if s.isResidentLocked(fromDate) {
		s.removeLocked(idx)
		src = s.current.Clone()
	} else {
		src.Todos = append(src.Todos[:idx:idx], src.Todos[idx+1:]...)
	}
	if err := s.persistLocked(ctx, src); err != nil {
		return err
	}
	logger.Info("moved task", "id", id, "from", fromDate, "to", toDate)
	return nil
}

func (s *Session) isResidentLocked(date string) bool {
	return s.open && s.current.Date == date
}

// recordLocked returns a working copy of date: the resident record, a
// detached unsaved copy, or whatever the store holds.
func (s *Session) recordLocked(ctx context.Context, date string) (models.DayRecord, error) {
	if s.isResidentLocked(date) {
		return s.current.Clone(), nil
	}
	if rec, ok := s.detached[date]; ok {
		return rec.Clone(), nil
	}
	rec, err := s.store.LoadRecord(ctx, date)
	if err != nil {
		logger.Error("failed to load day", "date", date, "error", err)
		return models.DayRecord{}, fmt.Errorf("load %s: %w", date, err)
	}
	rec.Date = date
	return rec, nil
}

// persistLocked saves rec and, only on success, installs it as the resident
// record or the detached copy it came from.
func (s *Session) persistLocked(ctx context.Context, rec models.DayRecord) error {
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		logger.Error("failed to save day", "date", rec.Date, "error", err)
		return fmt.Errorf("save %s: %w", rec.Date, err)
	}
	switch {
	case s.isResidentLocked(rec.Date):
		s.current = rec.Clone()
		s.notes.Channel(notesChannel(rec.Date)).Cancel()
		delete(s.dirty, rec.Date)
	case s.hasDetachedLocked(rec.Date):
		s.detached[rec.Date] = rec.Clone()
	}
	s.notifySaved(rec)
	return nil
}

func (s *Session) hasDetachedLocked(date string) bool {
	_, ok := s.detached[date]
	return ok
}
