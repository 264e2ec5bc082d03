package models

import (
	"fmt"
	"math"

	"github.com/julianstephens/daypad/internal/constants"
)

// Preferences holds UI preferences persisted alongside day records.
type Preferences struct {
	Zoom  float64 `json:"zoom"`
	Theme string  `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{Zoom: constants.DefaultZoom, Theme: constants.DefaultTheme}
}

// ClampZoom bounds z to the supported range and rounds it to one decimal place.
func ClampZoom(z float64) float64 {
	z = math.Max(constants.ZoomMin, math.Min(constants.ZoomMax, z))
	return math.Round(z*10) / 10
}

func (p Preferences) Validate() error {
	if p.Zoom < constants.ZoomMin || p.Zoom > constants.ZoomMax {
		return fmt.Errorf("zoom %.1f out of range [%.1f, %.1f]", p.Zoom, constants.ZoomMin, constants.ZoomMax)
	}
	switch p.Theme {
	case constants.ThemeDark, constants.ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q", p.Theme)
	}
	return nil
}

// Normalize replaces missing or invalid fields with defaults.
func (p Preferences) Normalize() Preferences {
	if p.Zoom == 0 {
		p.Zoom = constants.DefaultZoom
	}
	p.Zoom = ClampZoom(p.Zoom)
	if p.Theme != constants.ThemeDark && p.Theme != constants.ThemeLight {
		p.Theme = constants.DefaultTheme
	}
	return p
}
