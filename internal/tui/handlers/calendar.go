package handlers

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/constants"
	calview "github.com/julianstephens/daypad/internal/tui/components/calendar"
	"github.com/julianstephens/daypad/internal/tui/state"
	"github.com/julianstephens/daypad/internal/utils"
)

// ShowCalendar switches to the month grid around the open day.
func ShowCalendar(m *state.Model) {
	date := m.Session.Date()
	month, err := utils.MonthOf(date)
	if err != nil {
		m.SetError(err)
		return
	}
	m.Calendar.Show(m.Ctx, month)
	m.CalendarView.SetCursor(date, m.Today())
	m.State = constants.StateCalendar
}

// HandleCalendarState forwards keys to the month grid.
func HandleCalendarState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.CalendarView, cmd = m.CalendarView.Update(msg)
	return cmd
}

// HandleCalendarMessages applies navigation emitted by the month grid.
func HandleCalendarMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case calview.MonthMsg:
		m.Calendar.Show(m.Ctx, msg.Month)
		return true, nil
	case calview.OpenDateMsg:
		OpenDate(m, msg.Date)
		m.State = constants.StateDay
		return true, nil
	}
	return false, nil
}

// JumpCalendarToToday moves the grid cursor to today.
func JumpCalendarToToday(m *state.Model) {
	today := m.Today()
	t, err := utils.ParseDateKey(today)
	if err != nil {
		m.SetError(err)
		return
	}
	m.Calendar.Show(m.Ctx, time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC))
	m.CalendarView.SetCursor(today, today)
}
