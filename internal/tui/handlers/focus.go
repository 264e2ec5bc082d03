package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/tui/state"
)

// FocusTickMsg redraws the countdown.
type FocusTickMsg time.Time

func focusTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return FocusTickMsg(t) })
}

// StartFocus starts a focus session on the task at index, replacing any
// running one.
func StartFocus(m *state.Model, index int) tea.Cmd {
	rec := m.Session.Snapshot()
	if index < 0 || index >= len(rec.Todos) {
		return nil
	}
	label := rec.Todos[index].Text
	d := m.Config.FocusDuration()
	if err := m.Focus.Start(d, label); err != nil {
		m.SetError(err)
		return nil
	}
	m.SetStatus(fmt.Sprintf("Focusing on %q for %s.", label, d))
	return focusTick()
}

// StopFocus cancels the running focus session.
func StopFocus(m *state.Model) {
	if m.Focus.Stop() {
		m.SetStatus("Focus stopped.")
	}
}

// HandleFocusTick keeps the countdown ticking while a session runs.
func HandleFocusTick(m *state.Model) tea.Cmd {
	if !m.Focus.Running() {
		return nil
	}
	return focusTick()
}
