package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/utils"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateCalendar:
		content = m.Styles.Doc.Render(m.CalendarView.View())
	case constants.StateNotes:
		content = m.Styles.Doc.Render(m.Notes.View())
	case constants.StateAdding, constants.StateEditing, constants.StateReschedule:
		if m.Form != nil {
			content = m.Styles.Doc.Render(m.Form.View())
		}
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.Styles.Doc.Render(m.DayList.View())
	}

	parts := []string{m.viewTabs(), m.viewHeader()}
	if m.ValidationWarning != "" {
		parts = append(parts, m.Styles.Warning.Render(m.ValidationWarning))
	}
	parts = append(parts, content)
	if line := m.viewStatus(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, m.Help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	titles := []struct {
		name  string
		state constants.SessionState
	}{
		{"Day", constants.StateDay},
		{"Calendar", constants.StateCalendar},
		{"Notes", constants.StateNotes},
	}
	current := m.State
	switch current {
	case constants.StateAdding, constants.StateEditing, constants.StateReschedule, constants.StateConfirmDelete:
		current = constants.StateDay
	}

	tabs := make([]string, 0, len(titles))
	for _, t := range titles {
		if t.state == current {
			tabs = append(tabs, m.Styles.ActiveTab.Render(t.name))
		} else {
			tabs = append(tabs, m.Styles.InactiveTab.Render(t.name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	date := m.Session.Date()
	title := date
	if t, err := utils.ParseDateKey(date); err == nil {
		title = t.Format("Monday, January 2 2006")
	}
	if date == m.Today() {
		title += " · today"
	}
	header := m.Styles.Title.Render(" " + title)

	if m.Focus.Running() {
		left := m.Focus.Remaining().Round(time.Second)
		header += "  " + m.Styles.Focus.Render(fmt.Sprintf("◷ %s %s", formatClock(left), m.Focus.Label()))
	}
	return header
}

func (m Model) viewStatus() string {
	if m.Err != "" {
		return m.Styles.Danger.Render(" " + m.Err)
	}
	if m.Status != "" {
		return m.Styles.Status.Render(" " + m.Status)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.Width, max(m.Height-6, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.Styles.Danger.Render(fmt.Sprintf("Delete %q?", m.DeleteText)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func formatClock(d time.Duration) string {
	total := int(d.Seconds())
	s := fmt.Sprintf("%02d:%02d", total/60, total%60)
	return strings.TrimPrefix(s, "0")
}
