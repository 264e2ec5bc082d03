package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/julianstephens/daypad/internal/constants"
)

func (m Model) ShortHelp() []key.Binding {
	k := m.Keys
	switch m.State {
	case constants.StateNotes:
		return append(m.Notes.Keys().Bindings(), k.Back)
	case constants.StateCalendar:
		cal := m.CalendarView.Keys()
		return []key.Binding{cal.Open, cal.PrevMonth, cal.NextMonth, k.Back, k.Help}
	}
	day := m.DayList.Keys()
	return []key.Binding{day.Add, day.Toggle, day.Edit, k.Calendar, k.Notes, k.Quit, k.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	k := m.Keys
	global := []key.Binding{k.Day, k.Calendar, k.Notes, k.PrevDay, k.NextDay, k.Today}
	view := []key.Binding{k.ZoomIn, k.ZoomOut, k.ZoomReset, k.Theme, k.FocusStop, k.Quit, k.Help}

	switch m.State {
	case constants.StateNotes:
		return [][]key.Binding{append(m.Notes.Keys().Bindings(), k.Back)}
	case constants.StateCalendar:
		return [][]key.Binding{m.CalendarView.Keys().Bindings(), global, view}
	}
	return [][]key.Binding{m.DayList.Keys().Bindings(), global, view}
}
