package days

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/focus"
	"github.com/julianstephens/daypad/internal/notifier"
)

// newAlerter is swapped out in tests to keep the tray out of the picture.
var newAlerter = func(w io.Writer) focus.Notifier {
	return notifier.Fallback{notifier.New(), &notifier.Bell{W: w}}
}

// FocusCmd runs a focus session for one task and blocks until it ends or
// is interrupted.
type FocusCmd struct {
	N        int           `arg:"" help:"Task number to focus on."`
	Minutes  int           `short:"m" help:"Session length in minutes (defaults to the configured focus minutes)."`
	Duration time.Duration `hidden:"" help:"Session length as a Go duration; overrides --minutes."`
	Date     string        `help:"Day the task belongs to." default:"today"`
}

func (c *FocusCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	rec, err := ctx.Store.LoadRecord(bg, date)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", date, err)
	}
	rec.Date = date
	idx, err := cli.TaskIndex(c.N, rec)
	if err != nil {
		return err
	}
	item := rec.Todos[idx]

	d := c.Duration
	switch {
	case d != 0:
	case c.Minutes != 0:
		d = time.Duration(c.Minutes) * time.Minute
	default:
		d = ctx.Settings().FocusDuration()
	}

	done := make(chan struct{})
	timer := focus.New(focus.Options{
		Notifier:   newAlerter(ctx.Stdout()),
		OnComplete: func(string) { close(done) },
	})
	if err := timer.Start(d, item.Text); err != nil {
		return err
	}
	ctx.Printf("Focusing on %q for %s. Press Ctrl+C to stop.\n", item.Text, d)

	sig, stop := signal.NotifyContext(bg, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-done:
		ctx.Printf("\nFocus session complete: %s\n", item.Text)
	case <-sig.Done():
		left := timer.Remaining()
		timer.Stop()
		ctx.Printf("\nStopped with %s left.\n", left.Round(time.Second))
	}
	return nil
}
