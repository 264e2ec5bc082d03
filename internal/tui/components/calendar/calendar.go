// Package calendar renders the six-week month grid with per-day badges and
// a date cursor.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daypad/internal/calendar"
	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/tui/theme"
	"github.com/julianstephens/daypad/internal/utils"
)

// OpenDateMsg asks the parent to open Date in the day view.
type OpenDateMsg struct{ Date string }

// MonthMsg is sent when the cursor leaves the visible month.
type MonthMsg struct{ Month time.Time }

type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Open      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("<", "pgup"),
			key.WithHelp("<", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys(">", "pgdown"),
			key.WithHelp(">", "next month"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open day"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.PrevMonth, k.NextMonth, k.Open}
}

const baseCellWidth = 9

type Model struct {
	keys   KeyMap
	styles theme.Styles
	engine *calendar.Engine
	cursor string
	today  string
	zoom   float64
}

func New(engine *calendar.Engine, styles theme.Styles) Model {
	return Model{keys: DefaultKeyMap(), styles: styles, engine: engine, zoom: 1}
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Cursor() string { return m.cursor }

// SetCursor moves the cursor to date and marks today.
func (m *Model) SetCursor(date, today string) {
	m.cursor = date
	m.today = today
}

func (m *Model) SetStyles(s theme.Styles) { m.styles = s }

func (m *Model) SetZoom(z float64) { m.zoom = z }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.cursor == "" {
		return m, nil
	}

	cur, err := utils.ParseDateKey(m.cursor)
	if err != nil {
		return m, nil
	}

	var next time.Time
	switch {
	case key.Matches(keyMsg, m.keys.Open):
		date := m.cursor
		return m, func() tea.Msg { return OpenDateMsg{Date: date} }
	case key.Matches(keyMsg, m.keys.Left):
		next = cur.AddDate(0, 0, -1)
	case key.Matches(keyMsg, m.keys.Right):
		next = cur.AddDate(0, 0, 1)
	case key.Matches(keyMsg, m.keys.Up):
		next = cur.AddDate(0, 0, -7)
	case key.Matches(keyMsg, m.keys.Down):
		next = cur.AddDate(0, 0, 7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		next = shiftMonth(cur, -1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		next = shiftMonth(cur, 1)
	default:
		return m, nil
	}

	m.cursor = utils.FormatDateKey(next)
	shown := m.engine.Month()
	if next.Year() != shown.Year() || next.Month() != shown.Month() {
		month := time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC)
		return m, func() tea.Msg { return MonthMsg{Month: month} }
	}
	return m, nil
}

// shiftMonth moves by n months, clamping the day to the target month's length.
func shiftMonth(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func (m Model) View() string {
	dates := m.engine.Dates()
	if len(dates) == 0 {
		return m.styles.Muted.Render("Loading calendar…")
	}
	month := m.engine.Month()
	width := theme.Scale(baseCellWidth, m.zoom, 7)
	cell := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(month.Format("January 2006")))
	b.WriteString("\n\n")

	headers := calendar.WeekdayHeaders(m.engine.WeekStart())
	for _, h := range headers {
		b.WriteString(cell.Render(m.styles.Muted.Render(" " + h)))
	}

	for w := 0; w < constants.GridWeeks; w++ {
		b.WriteString("\n")
		for d := 0; d < 7; d++ {
			date := dates[w*7+d]
			count, _ := m.engine.Count(date)
			b.WriteString(cell.Render(m.renderCell(date, month, count)))
		}
	}
	return b.String()
}

func (m Model) renderCell(date string, month time.Time, count models.CalendarCount) string {
	t, err := utils.ParseDateKey(date)
	if err != nil {
		return ""
	}
	label := fmt.Sprintf("%2d", t.Day())
	if date == m.today {
		label = "[" + strings.TrimSpace(label) + "]"
	}

	badge := ""
	if count.Total > 0 {
		badge = fmt.Sprintf("%d/%d", count.Completed, count.Total)
	}
	if count.HasNotes {
		badge += "*"
	}

	style := lipgloss.NewStyle()
	switch {
	case date == m.cursor:
		style = m.styles.Cursor
	case t.Month() != month.Month():
		style = m.styles.OutOfMonth
	case date == m.today:
		style = m.styles.Today
	}

	out := style.Render(" " + label)
	if badge != "" {
		out += " " + m.styles.Badge.Render(badge)
	}
	return out
}
