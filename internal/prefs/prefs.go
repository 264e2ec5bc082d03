// Package prefs applies zoom and theme changes in memory at once and
// persists them through the storage provider's preference table.
package prefs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/debounce"
	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/storage"
)

type Options struct {
	// ZoomDelay is the quiet period after the last zoom step before saving.
	ZoomDelay time.Duration
	AfterFunc debounce.AfterFunc
	// OnChange runs with the new preferences after every in-memory change.
	OnChange func(models.Preferences)
}

type Controller struct {
	mu       sync.Mutex
	store    storage.PreferenceStore
	current  models.Preferences
	zoom     *debounce.Channel
	onChange func(models.Preferences)
}

func New(store storage.PreferenceStore, opts Options) *Controller {
	if opts.ZoomDelay <= 0 {
		opts.ZoomDelay = constants.ZoomDebounce
	}
	return &Controller{
		store:    store,
		current:  models.DefaultPreferences(),
		zoom:     debounce.New(opts.ZoomDelay, opts.AfterFunc),
		onChange: opts.OnChange,
	}
}

// Load reads stored preferences. On failure the defaults stay in effect and
// the error is returned.
func (c *Controller) Load(ctx context.Context) error {
	p, err := c.store.GetPreferences(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		logger.Error("failed to load preferences", "error", err)
		return fmt.Errorf("load preferences: %w", err)
	}
	c.current = p.Normalize()
	return nil
}

func (c *Controller) Current() models.Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) ZoomIn() float64  { return c.stepZoom(constants.ZoomStep) }
func (c *Controller) ZoomOut() float64 { return c.stepZoom(-constants.ZoomStep) }

func (c *Controller) stepZoom(delta float64) float64 {
	c.mu.Lock()
	z := models.ClampZoom(c.current.Zoom + delta)
	changed := z != c.current.Zoom
	c.current.Zoom = z
	p := c.current
	c.mu.Unlock()

	if changed {
		c.changed(p)
	}
	c.zoom.Schedule(c.saveLatest)
	return z
}

// ResetZoom restores the default zoom and saves immediately, dropping any
// pending debounced save.
func (c *Controller) ResetZoom(ctx context.Context) error {
	c.zoom.Cancel()
	c.mu.Lock()
	c.current.Zoom = constants.DefaultZoom
	p := c.current
	c.mu.Unlock()

	c.changed(p)
	return c.save(ctx, p)
}

func (c *Controller) SetTheme(ctx context.Context, theme string) error {
	switch theme {
	case constants.ThemeDark, constants.ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q (want %s or %s)", theme, constants.ThemeDark, constants.ThemeLight)
	}
	c.mu.Lock()
	c.current.Theme = theme
	p := c.current
	c.mu.Unlock()

	c.changed(p)
	return c.save(ctx, p)
}

func (c *Controller) ToggleTheme(ctx context.Context) error {
	next := constants.ThemeLight
	if c.Current().Theme == constants.ThemeLight {
		next = constants.ThemeDark
	}
	return c.SetTheme(ctx, next)
}

// Flush saves a pending zoom change now.
func (c *Controller) Flush() {
	c.zoom.Flush()
}

func (c *Controller) saveLatest() {
	if err := c.save(context.Background(), c.Current()); err != nil {
		logger.Error("failed to save zoom", "error", err)
	}
}

func (c *Controller) save(ctx context.Context, p models.Preferences) error {
	if err := c.store.SavePreferences(ctx, p); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	logger.Debug("saved preferences", "zoom", p.Zoom, "theme", p.Theme)
	return nil
}

func (c *Controller) changed(p models.Preferences) {
	if c.onChange != nil {
		c.onChange(p)
	}
}
