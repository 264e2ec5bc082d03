// Package theme holds the lipgloss styles for the dark and light palettes.
package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daypad/internal/constants"
)

type Styles struct {
	Name string

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	Done        lipgloss.Style
	Badge       lipgloss.Style
	Today       lipgloss.Style
	Cursor      lipgloss.Style
	OutOfMonth  lipgloss.Style
	Danger      lipgloss.Style
	Warning     lipgloss.Style
	Status      lipgloss.Style
	Focus       lipgloss.Style
	Doc         lipgloss.Style
}

type palette struct {
	accent, muted, surface, text, done, danger, warning, ok lipgloss.Color
}

var (
	dark = palette{
		accent:  "205",
		muted:   "240",
		surface: "236",
		text:    "252",
		done:    "242",
		danger:  "196",
		warning: "214",
		ok:      "42",
	}
	light = palette{
		accent:  "161",
		muted:   "246",
		surface: "254",
		text:    "235",
		done:    "248",
		danger:  "160",
		warning: "166",
		ok:      "28",
	}
)

// For returns the styles for a theme preference; unknown names get the
// default theme.
func For(name string) Styles {
	p := dark
	if name == constants.ThemeLight {
		p = light
	} else {
		name = constants.ThemeDark
	}

	return Styles{
		Name: name,
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.accent).
			Background(p.surface).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		Title:      lipgloss.NewStyle().Foreground(p.text).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(p.muted),
		Selected:   lipgloss.NewStyle().Foreground(p.accent).Background(p.surface).Bold(true),
		Done:       lipgloss.NewStyle().Foreground(p.done).Strikethrough(true),
		Badge:      lipgloss.NewStyle().Foreground(p.ok),
		Today:      lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Cursor:     lipgloss.NewStyle().Background(p.surface).Foreground(p.text).Bold(true),
		OutOfMonth: lipgloss.NewStyle().Foreground(p.muted).Faint(true),
		Danger:     lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(p.warning).Italic(true),
		Status:     lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		Focus:      lipgloss.NewStyle().Foreground(p.ok).Bold(true),
		Doc:        lipgloss.NewStyle().Padding(1, 2),
	}
}

// Scale multiplies a base size by the zoom factor, never going below min.
func Scale(base int, zoom float64, min int) int {
	if zoom <= 0 {
		zoom = constants.DefaultZoom
	}
	n := int(math.Round(float64(base) * zoom))
	if n < min {
		return min
	}
	return n
}
