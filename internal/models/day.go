package models

import (
	"strings"
	"time"
)

type TaskItem struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Completed     bool      `json:"completed"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	MoveToNextDay bool      `json:"move_to_next_day"`
}

// HasNotes reports whether the task carries notes; whitespace-only notes count as none.
func (t TaskItem) HasNotes() bool {
	return strings.TrimSpace(t.Notes) != ""
}

// DayRecord is the persisted unit: one per calendar date (YYYY-MM-DD).
type DayRecord struct {
	Date  string     `json:"date"`
	Todos []TaskItem `json:"todos"`
	Notes string     `json:"notes"`
}

// EmptyDayRecord returns the record used for a date that has never been saved.
func EmptyDayRecord(date string) DayRecord {
	return DayRecord{Date: date, Todos: []TaskItem{}}
}

// Clone returns a deep copy so callers can't alias the todo slice.
func (r DayRecord) Clone() DayRecord {
	out := r
	out.Todos = make([]TaskItem, len(r.Todos))
	copy(out.Todos, r.Todos)
	return out
}

func (r DayRecord) HasNotes() bool {
	return strings.TrimSpace(r.Notes) != ""
}

func (r DayRecord) IsEmpty() bool {
	return len(r.Todos) == 0 && !r.HasNotes()
}

// IndexOf returns the position of the task with the given id, or -1.
func (r DayRecord) IndexOf(id string) int {
	for i, t := range r.Todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CompletedCount returns how many todos are marked completed.
func (r DayRecord) CompletedCount() int {
	n := 0
	for _, t := range r.Todos {
		if t.Completed {
			n++
		}
	}
	return n
}

// CalendarCount is the per-date summary shown in the month grid.
type CalendarCount struct {
	Total     int  `json:"total"`
	Completed int  `json:"completed"`
	HasNotes  bool `json:"has_notes"`
}
