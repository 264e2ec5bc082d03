package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/notifier"
)

type trayClient interface {
	Notify(text string) error
	RequestForeground() error
}

var newTray = func() trayClient { return notifier.New() }

// NotifyCmd sends a message to the tray app. Without a message it sends a
// summary of today's open tasks.
type NotifyCmd struct {
	Message    []string `arg:"" optional:"" help:"Message to send."`
	Foreground bool     `help:"Also ask the tray app to raise its window."`
	DryRun     bool     `help:"Print the notification instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	msg := strings.TrimSpace(strings.Join(c.Message, " "))
	if msg == "" {
		summary, err := todaySummary(ctx)
		if err != nil {
			return err
		}
		msg = summary
	}

	if c.DryRun {
		ctx.Println("[DryRun] " + msg)
		return nil
	}

	tray := newTray()
	if err := tray.Notify(msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	if c.Foreground {
		if err := tray.RequestForeground(); err != nil {
			return fmt.Errorf("failed to request foreground: %w", err)
		}
	}
	ctx.Println("✓ Notification sent")
	return nil
}

func todaySummary(ctx *cli.Context) (string, error) {
	today := ctx.Today()
	rec, err := ctx.Store.LoadRecord(context.Background(), today)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", today, err)
	}
	open := len(rec.Todos) - rec.CompletedCount()
	switch {
	case len(rec.Todos) == 0:
		return "Nothing planned for today.", nil
	case open == 0:
		return fmt.Sprintf("All %d tasks done today.", len(rec.Todos)), nil
	}
	return fmt.Sprintf("%d of %d tasks still open today.", open, len(rec.Todos)), nil
}
