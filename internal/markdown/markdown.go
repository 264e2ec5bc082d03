// Package markdown renders day and task notes for the terminal.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/logger"
)

// StylePlain renders without ANSI escapes, for pipes and tests.
const StylePlain = "notty"

const minWidth = 20

var (
	mu        sync.Mutex
	renderers = map[string]*glamour.TermRenderer{}
)

// StyleFor maps a theme preference to a glamour style name.
func StyleFor(theme string) string {
	if theme == constants.ThemeLight {
		return "light"
	}
	return "dark"
}

// Render renders md with the named style wrapped at width. On any renderer
// error the trimmed source is returned unchanged.
func Render(md, style string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < minWidth {
		width = minWidth
	}

	r, err := renderer(style, width)
	if err != nil {
		logger.Debug("markdown renderer unavailable", "style", style, "error", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func renderer(style string, width int) (*glamour.TermRenderer, error) {
	key := fmt.Sprintf("%s:%d", style, width)

	mu.Lock()
	defer mu.Unlock()
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	// fixed styles only: auto style queries the terminal and can block
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}
