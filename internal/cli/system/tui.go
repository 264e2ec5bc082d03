package system

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/notifier"
	"github.com/julianstephens/daypad/internal/tui"
)

type TuiCmd struct {
	Date string `help:"Day to open first (YYYY-MM-DD, today, tomorrow, yesterday)." default:"today"`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup(context.Background())

	model := tui.NewModel(context.Background(), tui.Options{
		Store:    ctx.Store,
		Config:   ctx.Settings(),
		Notifier: notifier.Fallback{notifier.New(), &notifier.Bell{W: os.Stderr}},
		Date:     date,
		Now:      ctx.Now,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
