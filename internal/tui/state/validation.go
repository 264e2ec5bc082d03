package state

import (
	"fmt"

	"github.com/julianstephens/daypad/internal/validation"
)

// UpdateValidationStatus validates the open day and updates the warning.
func (m *Model) UpdateValidationStatus() {
	rec := m.Session.Snapshot()
	result := validation.New().ValidateRecord(rec.Date, rec)
	if result.HasConflicts() {
		m.ValidationWarning = fmt.Sprintf("⚠ %d validation warning(s) on this day", len(result.Conflicts))
	} else {
		m.ValidationWarning = ""
	}
}

// ValidateStore scans every stored day; the warning is set only when some
// other day has problems, so the open day's own check wins later.
func (m *Model) ValidateStore() {
	result, err := validation.New().ValidateStore(m.Ctx, m.Store)
	if err != nil {
		m.ValidationWarning = "⚠ Validation unavailable"
		return
	}
	if result.HasConflicts() {
		m.ValidationWarning = fmt.Sprintf("⚠ %d problem(s) in stored days; run 'daypad validate --fix'", len(result.Conflicts))
	}
}
