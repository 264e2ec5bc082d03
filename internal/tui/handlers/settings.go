package handlers

import (
	"fmt"

	"github.com/julianstephens/daypad/internal/tui/state"
)

// ZoomIn, ZoomOut and ResetZoom apply at once; the stored value follows
// after the zoom debounce window.
func ZoomIn(m *state.Model) {
	z := m.Prefs.ZoomIn()
	m.ApplyPrefs()
	m.SetStatus(fmt.Sprintf("Zoom %.1f", z))
}

func ZoomOut(m *state.Model) {
	z := m.Prefs.ZoomOut()
	m.ApplyPrefs()
	m.SetStatus(fmt.Sprintf("Zoom %.1f", z))
}

func ResetZoom(m *state.Model) {
	if err := m.Prefs.ResetZoom(m.Ctx); err != nil {
		m.SetError(err)
	} else {
		m.SetStatus("Zoom reset.")
	}
	m.ApplyPrefs()
}

func ToggleTheme(m *state.Model) {
	if err := m.Prefs.ToggleTheme(m.Ctx); err != nil {
		m.SetError(err)
	} else {
		m.SetStatus(fmt.Sprintf("Theme: %s", m.Prefs.Current().Theme))
	}
	m.ApplyPrefs()
}
