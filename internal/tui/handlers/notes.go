package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/tui/components/notes"
	"github.com/julianstephens/daypad/internal/tui/state"
)

// OpenNotes switches to the notes editor for the open day.
func OpenNotes(m *state.Model) tea.Cmd {
	m.Notes.Load(m.Session.Snapshot().Notes)
	m.PreviousState = m.State
	m.State = constants.StateNotes
	return m.Notes.Focus()
}

// HandleNotesState edits the day notes; every change is saved after the
// notes debounce window.
func HandleNotesState(m *state.Model, msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.Keys.Back) {
		m.Notes.Blur()
		m.State = constants.StateDay
		m.SyncDay()
		return nil
	}

	var cmd tea.Cmd
	m.Notes, cmd = m.Notes.Update(msg)
	return cmd
}

// HandleNotesMessages applies editor changes to the session.
func HandleNotesMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	changed, ok := msg.(notes.ChangedMsg)
	if !ok {
		return false, nil
	}
	if err := m.Session.SetNotes(changed.Text); err != nil {
		m.SetError(err)
	}
	return true, nil
}
