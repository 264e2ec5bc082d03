package state

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings that work outside forms and the notes editor.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Day       key.Binding
	Calendar  key.Binding
	Notes     key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	Today     key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding
	Theme     key.Binding
	FocusStop key.Binding
	Back      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Day: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "day/calendar"),
		),
		Calendar: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "calendar"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "day notes"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ZoomReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset zoom"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle theme"),
		),
		FocusStop: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "stop focus"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}
