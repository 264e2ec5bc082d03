// Package validation checks stored day records for integrity problems and
// repairs the ones that can be fixed mechanically.
package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDateKey  ConflictType = "invalid_date_key"
	ConflictDateMismatch    ConflictType = "date_mismatch"
	ConflictMissingTaskID   ConflictType = "missing_task_id"
	ConflictDuplicateTaskID ConflictType = "duplicate_task_id"
	ConflictEmptyTaskText   ConflictType = "empty_task_text"
	ConflictUnreadable      ConflictType = "unreadable_record"
)

// Conflict is one problem found in one stored record.
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string
	TaskIDs     []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
	Checked   int
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return fmt.Sprintf("No conflicts detected in %d day(s).", vr.Checked)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Conflicts detected in %d day(s):\n", vr.Checked)
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Date, c.Description)
	}
	return b.String()
}

// Source is the read side of a storage provider.
type Source interface {
	ListDates(ctx context.Context) ([]string, error)
	LoadRecord(ctx context.Context, date string) (models.DayRecord, error)
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateRecord checks rec as stored under key.
func (v *Validator) ValidateRecord(key string, rec models.DayRecord) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}, Checked: 1}
	add := func(t ConflictType, desc string, ids ...string) {
		result.Conflicts = append(result.Conflicts, Conflict{Type: t, Description: desc, Date: key, TaskIDs: ids})
	}

	if _, err := utils.ParseDateKey(key); err != nil {
		add(ConflictInvalidDateKey, fmt.Sprintf("stored key %q is not a YYYY-MM-DD date", key))
	}
	if rec.Date != "" && rec.Date != key {
		add(ConflictDateMismatch, fmt.Sprintf("record claims date %s but is stored under %s", rec.Date, key))
	}

	seen := make(map[string]int)
	for i, item := range rec.Todos {
		if item.ID == "" {
			add(ConflictMissingTaskID, fmt.Sprintf("task %d (%q) has no id", i+1, item.Text))
		} else {
			seen[item.ID]++
		}
		if strings.TrimSpace(item.Text) == "" {
			add(ConflictEmptyTaskText, fmt.Sprintf("task %d has empty text", i+1), item.ID)
		}
	}

	dups := make([]string, 0)
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	for _, id := range dups {
		add(ConflictDuplicateTaskID, fmt.Sprintf("task id %s appears %d times", id, seen[id]), id)
	}
	return result
}

// ValidateStore checks every stored date. A record that cannot be read is
// reported as a conflict rather than aborting the scan.
func (v *Validator) ValidateStore(ctx context.Context, src Source) (ValidationResult, error) {
	dates, err := src.ListDates(ctx)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("list dates: %w", err)
	}

	result := ValidationResult{Conflicts: []Conflict{}}
	for _, d := range dates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rec, err := src.LoadRecord(ctx, d)
		if err != nil {
			result.Checked++
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnreadable,
				Description: fmt.Sprintf("cannot load record: %v", err),
				Date:        d,
			})
			continue
		}
		r := v.ValidateRecord(d, rec)
		result.Checked += r.Checked
		result.Conflicts = append(result.Conflicts, r.Conflicts...)
	}
	return result, nil
}

// AutoFixRecord repairs rec in place of key: it restamps the date, drops
// tasks with empty text, and gives fresh ids to tasks that lack one or
// repeat an earlier id. The first occurrence of an id keeps it.
func AutoFixRecord(key string, rec models.DayRecord, newID func() string) (models.DayRecord, []FixAction) {
	fixed := rec.Clone()
	var actions []FixAction

	if fixed.Date != key {
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("set date %q to %s", fixed.Date, key),
			SourceConflict: Conflict{Type: ConflictDateMismatch, Date: key},
		})
		fixed.Date = key
	}

	todos := make([]models.TaskItem, 0, len(fixed.Todos))
	seen := make(map[string]bool)
	for _, item := range fixed.Todos {
		if strings.TrimSpace(item.Text) == "" {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("removed empty task %s", item.ID),
				SourceConflict: Conflict{Type: ConflictEmptyTaskText, Date: key, TaskIDs: []string{item.ID}},
			})
			continue
		}
		switch {
		case item.ID == "":
			item.ID = newID()
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("assigned id %s to %q", item.ID, item.Text),
				SourceConflict: Conflict{Type: ConflictMissingTaskID, Date: key},
			})
		case seen[item.ID]:
			old := item.ID
			item.ID = newID()
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("reissued duplicate id %s as %s", old, item.ID),
				SourceConflict: Conflict{Type: ConflictDuplicateTaskID, Date: key, TaskIDs: []string{old}},
			})
		}
		seen[item.ID] = true
		todos = append(todos, item)
	}
	fixed.Todos = todos
	return fixed, actions
}
