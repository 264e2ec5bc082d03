// Package notes is the day notes editor with a rendered markdown preview.
package notes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/markdown"
	"github.com/julianstephens/daypad/internal/tui/theme"
)

// ChangedMsg carries the editor contents after an edit.
type ChangedMsg struct{ Text string }

type KeyMap struct {
	Preview key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "preview"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Preview}
}

type Model struct {
	keys    KeyMap
	styles  theme.Styles
	area    textarea.Model
	preview bool
	width   int
}

func New(styles theme.Styles) Model {
	ta := textarea.New()
	ta.Placeholder = "Notes for the day (markdown)…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	return Model{keys: DefaultKeyMap(), styles: styles, area: ta}
}

func (m Model) Keys() KeyMap { return m.keys }

// Load replaces the editor contents without emitting a change.
func (m *Model) Load(text string) {
	m.area.SetValue(text)
	m.preview = false
}

func (m Model) Value() string { return m.area.Value() }

func (m Model) Previewing() bool { return m.preview }

func (m *Model) SetStyles(s theme.Styles) { m.styles = s }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.area.SetWidth(width)
	m.area.SetHeight(height)
}

func (m *Model) Focus() tea.Cmd { return m.area.Focus() }

func (m *Model) Blur() { m.area.Blur() }

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Preview) {
		m.preview = !m.preview
		if m.preview {
			m.area.Blur()
			return m, nil
		}
		return m, m.area.Focus()
	}
	if m.preview {
		return m, nil
	}

	before := m.area.Value()
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	if after := m.area.Value(); after != before {
		changed := func() tea.Msg { return ChangedMsg{Text: after} }
		return m, tea.Batch(cmd, changed)
	}
	return m, cmd
}

func (m Model) View() string {
	if !m.preview {
		return m.area.View()
	}
	out := markdown.Render(m.area.Value(), markdown.StyleFor(m.styles.Name), m.width)
	if out == "" {
		return m.styles.Muted.Render("(no notes)")
	}
	return out
}
