package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/prefs"
)

// PrefsCmd groups the UI preference commands.
type PrefsCmd struct {
	Show  PrefsShowCmd  `cmd:"" default:"1" help:"Show current preferences."`
	Zoom  PrefsZoomCmd  `cmd:"" help:"Change the zoom level (in, out or reset)."`
	Theme PrefsThemeCmd `cmd:"" help:"Set the theme (dark, light or toggle)."`
}

func newController(ctx *cli.Context) (*prefs.Controller, error) {
	c := prefs.New(ctx.Store, prefs.Options{ZoomDelay: ctx.Settings().ZoomDelay()})
	if err := c.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return c, nil
}

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *cli.Context) error {
	ctl, err := newController(ctx)
	if err != nil {
		return err
	}
	p := ctl.Current()
	ctx.Println("Current Preferences:")
	ctx.Printf("  Zoom:   %.1f (%.1f-%.1f)\n", p.Zoom, constants.ZoomMin, constants.ZoomMax)
	ctx.Printf("  Theme:  %s\n", p.Theme)
	return nil
}

type PrefsZoomCmd struct {
	Direction string `arg:"" enum:"in,out,reset" help:"in, out or reset."`
	Steps     int    `short:"n" default:"1" help:"Number of steps to apply."`
}

func (c *PrefsZoomCmd) Run(ctx *cli.Context) error {
	ctl, err := newController(ctx)
	if err != nil {
		return err
	}

	switch strings.ToLower(c.Direction) {
	case "reset":
		if err := ctl.ResetZoom(context.Background()); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}
	case "in", "out":
		step := ctl.ZoomIn
		if strings.ToLower(c.Direction) == "out" {
			step = ctl.ZoomOut
		}
		for i := 0; i < max(c.Steps, 1); i++ {
			step()
		}
		// a one-shot command cannot wait out the debounce window
		ctl.Flush()
	default:
		return fmt.Errorf("unknown zoom direction %q (want in, out or reset)", c.Direction)
	}

	ctx.Printf("Zoom set to %.1f\n", ctl.Current().Zoom)
	return nil
}

type PrefsThemeCmd struct {
	Theme string `arg:"" enum:"dark,light,toggle" help:"dark, light or toggle."`
}

func (c *PrefsThemeCmd) Run(ctx *cli.Context) error {
	ctl, err := newController(ctx)
	if err != nil {
		return err
	}

	bg := context.Background()
	if strings.ToLower(c.Theme) == "toggle" {
		err = ctl.ToggleTheme(bg)
	} else {
		err = ctl.SetTheme(bg, strings.ToLower(c.Theme))
	}
	if err != nil {
		return err
	}
	ctx.Printf("Theme set to %s\n", ctl.Current().Theme)
	return nil
}
