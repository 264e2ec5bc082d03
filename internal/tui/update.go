package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := handlers.HandleEvent(m.Model, msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.DayList.SetWidth(msg.Width - 4)
		m.Notes.SetSize(msg.Width-4, max(msg.Height-10, 3))
		return m, nil

	case handlers.FocusTickMsg:
		return m, handlers.HandleFocusTick(m.Model)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			handlers.Shutdown(m.Model)
			return m, tea.Quit
		}
	}

	if handled, cmd := handlers.HandleDayMessages(m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleCalendarMessages(m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleNotesMessages(m.Model, msg); handled {
		return m, cmd
	}

	switch m.State {
	case constants.StateAdding, constants.StateEditing:
		return m, handlers.HandleTaskFormState(m.Model, msg)
	case constants.StateReschedule:
		return m, handlers.HandleRescheduleState(m.Model, msg)
	case constants.StateConfirmDelete:
		return m, handlers.HandleConfirmDeleteState(m.Model, msg)
	case constants.StateNotes:
		return m, handlers.HandleNotesState(m.Model, msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(m.Model, keyMsg); handled {
			return m, cmd
		}
	}

	switch m.State {
	case constants.StateCalendar:
		return m, handlers.HandleCalendarState(m.Model, msg)
	default:
		return m, handlers.HandleDayState(m.Model, msg)
	}
}
