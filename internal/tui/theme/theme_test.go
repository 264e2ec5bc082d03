package theme

import (
	"testing"

	"github.com/julianstephens/daypad/internal/constants"
)

func TestFor(t *testing.T) {
	if got := For(constants.ThemeLight).Name; got != constants.ThemeLight {
		t.Errorf("For(light).Name = %q", got)
	}
	if got := For("solarized").Name; got != constants.ThemeDark {
		t.Errorf("For(unknown).Name = %q, want dark", got)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		base int
		zoom float64
		min  int
		want int
	}{
		{9, 1.0, 5, 9},
		{9, 2.0, 5, 18},
		{9, 0.5, 5, 5},
		{2, 1.5, 0, 3},
		{9, 0, 5, 9},
	}
	for _, tt := range tests {
		if got := Scale(tt.base, tt.zoom, tt.min); got != tt.want {
			t.Errorf("Scale(%d, %v, %d) = %d, want %d", tt.base, tt.zoom, tt.min, got, tt.want)
		}
	}
}
