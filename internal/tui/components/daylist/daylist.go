// Package daylist renders the open day's tasks and turns key presses into
// task operations for the parent model to apply.
package daylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/planner"
	"github.com/julianstephens/daypad/internal/tui/theme"
)

type SelectMsg struct{ Index int }

type ToggleMsg struct{ Index int }

type AddMsg struct{}

type EditMsg struct{ Index int }

type DeleteMsg struct{ Index int }

// ReorderMsg drops the task at Index onto the Half of the task at Target.
type ReorderMsg struct {
	Index  int
	Target int
	Half   planner.Half
}

// ZoneMsg drops the task at Index onto the top or bottom zone.
type ZoneMsg struct {
	Index int
	Zone  planner.Zone
}

type RescheduleMsg struct{ Index int }

type FocusMsg struct{ Index int }

type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Toggle     key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Reschedule key.Binding
	Focus      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle done"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "move to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "move to bottom"),
		),
		Reschedule: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "move to date"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Toggle, k.MoveUp, k.MoveDown, k.Top, k.Bottom, k.Reschedule, k.Focus}
}

type Model struct {
	keys     KeyMap
	styles   theme.Styles
	rec      models.DayRecord
	selected int
	zoom     float64
	width    int
}

func New(styles theme.Styles) Model {
	return Model{keys: DefaultKeyMap(), styles: styles, selected: -1, zoom: 1}
}

func (m Model) Keys() KeyMap { return m.keys }

// SetDay replaces the rendered record and selection.
func (m *Model) SetDay(rec models.DayRecord, selected int) {
	m.rec = rec
	m.selected = selected
}

func (m *Model) SetStyles(s theme.Styles) { m.styles = s }

func (m *Model) SetZoom(z float64) { m.zoom = z }

func (m *Model) SetWidth(w int) { m.width = w }

func (m Model) Init() tea.Cmd {
	return nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Add) {
		return m, emit(AddMsg{})
	}

	n := len(m.rec.Todos)
	if n == 0 {
		return m, nil
	}
	sel := m.selected

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if sel < 0 {
			return m, emit(SelectMsg{Index: n - 1})
		}
		if sel > 0 {
			return m, emit(SelectMsg{Index: sel - 1})
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Down):
		if sel < n-1 {
			return m, emit(SelectMsg{Index: sel + 1})
		}
		return m, nil
	}

	if sel < 0 || sel >= n {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Toggle):
		return m, emit(ToggleMsg{Index: sel})
	case key.Matches(keyMsg, m.keys.Edit):
		return m, emit(EditMsg{Index: sel})
	case key.Matches(keyMsg, m.keys.Delete):
		return m, emit(DeleteMsg{Index: sel})
	case key.Matches(keyMsg, m.keys.MoveUp):
		if sel > 0 {
			return m, emit(ReorderMsg{Index: sel, Target: sel - 1, Half: planner.HalfUpper})
		}
	case key.Matches(keyMsg, m.keys.MoveDown):
		if sel < n-1 {
			return m, emit(ReorderMsg{Index: sel, Target: sel + 1, Half: planner.HalfLower})
		}
	case key.Matches(keyMsg, m.keys.Top):
		return m, emit(ZoneMsg{Index: sel, Zone: planner.ZoneTop})
	case key.Matches(keyMsg, m.keys.Bottom):
		return m, emit(ZoneMsg{Index: sel, Zone: planner.ZoneBottom})
	case key.Matches(keyMsg, m.keys.Reschedule):
		return m, emit(RescheduleMsg{Index: sel})
	case key.Matches(keyMsg, m.keys.Focus):
		return m, emit(FocusMsg{Index: sel})
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.rec.Todos) == 0 {
		return m.styles.Muted.Render("\n  Nothing planned.\n  Press 'a' to add a task.")
	}

	indent := strings.Repeat(" ", theme.Scale(2, m.zoom, 1))
	gap := strings.Repeat("\n", theme.Scale(1, m.zoom, 1)-1)

	rows := make([]string, 0, len(m.rec.Todos))
	for i, t := range m.rec.Todos {
		rows = append(rows, m.row(i, t, indent)+gap)
	}

	footer := m.styles.Muted.Render(fmt.Sprintf("%s%d of %d done", indent, m.rec.CompletedCount(), len(m.rec.Todos)))
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n"), "", footer)
}

func (m Model) row(i int, t models.TaskItem, indent string) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	text := t.Text
	if t.HasNotes() {
		text += " ✎"
	}
	if m.width > 0 {
		text = truncate(text, m.width-len(indent)-8)
	}

	line := fmt.Sprintf("%2d. %s %s", i+1, box, text)
	switch {
	case i == m.selected:
		return indent + m.styles.Selected.Render(line)
	case t.Completed:
		return indent + m.styles.Done.Render(line)
	}
	return indent + line
}

func truncate(s string, max int) string {
	if max < 4 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
