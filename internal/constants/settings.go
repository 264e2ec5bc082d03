package constants

const (
	// Preference keys
	PrefZoom  = "zoom"
	PrefTheme = "theme"

	// Zoom bounds
	ZoomMin     = 0.5
	ZoomMax     = 2.0
	ZoomStep    = 0.1
	DefaultZoom = 1.0

	// Themes
	ThemeDark    = "dark"
	ThemeLight   = "light"
	DefaultTheme = ThemeDark

	DefaultTimezone  = "Local" // Use system local timezone by default
	DefaultWeekStart = "sunday"
)
