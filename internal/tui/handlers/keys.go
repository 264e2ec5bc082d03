package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/tui/state"
)

// HandleGlobalKeys handles keys shared by the day and calendar views.
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	k := m.Keys
	switch {
	case key.Matches(msg, k.Quit):
		m.Quitting = true
		Shutdown(m)
		return true, tea.Quit
	case key.Matches(msg, k.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, k.ZoomIn):
		ZoomIn(m)
		return true, nil
	case key.Matches(msg, k.ZoomOut):
		ZoomOut(m)
		return true, nil
	case key.Matches(msg, k.ZoomReset):
		ResetZoom(m)
		return true, nil
	case key.Matches(msg, k.Theme):
		ToggleTheme(m)
		return true, nil
	case key.Matches(msg, k.FocusStop):
		StopFocus(m)
		return true, nil
	case key.Matches(msg, k.Notes):
		return true, OpenNotes(m)
	case key.Matches(msg, k.Day):
		if m.State == constants.StateCalendar {
			m.State = constants.StateDay
		} else {
			ShowCalendar(m)
		}
		return true, nil
	}

	switch m.State {
	case constants.StateDay:
		switch {
		case key.Matches(msg, k.Calendar):
			ShowCalendar(m)
			return true, nil
		case key.Matches(msg, k.PrevDay):
			StepDay(m, -1)
			return true, nil
		case key.Matches(msg, k.NextDay):
			StepDay(m, 1)
			return true, nil
		case key.Matches(msg, k.Today):
			OpenDate(m, m.Today())
			return true, nil
		}
	case constants.StateCalendar:
		switch {
		case key.Matches(msg, k.Back), key.Matches(msg, k.Calendar):
			m.State = constants.StateDay
			return true, nil
		case key.Matches(msg, k.Today):
			JumpCalendarToToday(m)
			return true, nil
		}
	}
	return false, nil
}
