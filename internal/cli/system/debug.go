package system

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daypad/internal/calendar"
	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/utils"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show the storage location."`
	DumpDay      *DebugDumpDayCmd      `cmd:"" help:"Dump a day record as JSON."`
	DumpDates    *DebugDumpDatesCmd    `cmd:"" help:"List every stored date as JSON."`
	DumpPrefs    *DebugDumpPrefsCmd    `cmd:"" help:"Dump preferences as JSON."`
	DumpConfig   *DebugDumpConfigCmd   `cmd:"" help:"Dump the effective configuration as JSON."`
	DumpCalendar *DebugDumpCalendarCmd `cmd:"" help:"Dump a month's calendar counts as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// machine-readable
	return printJSON(ctx, map[string]string{
		"backend": ctx.Settings().Storage.Backend,
		"path":    ctx.Store.GetConfigPath(),
	})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Date to dump (YYYY-MM-DD, today, tomorrow, yesterday)."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(cmd.Date)
	if err != nil {
		return err
	}
	rec, err := ctx.Store.LoadRecord(context.Background(), date)
	if err != nil {
		return fmt.Errorf("failed to load day: %w", err)
	}
	rec.Date = date
	return printJSON(ctx, rec)
}

type DebugDumpDatesCmd struct{}

func (cmd *DebugDumpDatesCmd) Run(ctx *cli.Context) error {
	dates, err := ctx.Store.ListDates(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list dates: %w", err)
	}
	return printJSON(ctx, dates)
}

type DebugDumpPrefsCmd struct{}

func (cmd *DebugDumpPrefsCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetPreferences(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	return printJSON(ctx, p)
}

type DebugDumpConfigCmd struct{}

func (cmd *DebugDumpConfigCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, ctx.Settings())
}

type DebugDumpCalendarCmd struct {
	Month string `arg:"" help:"Month to dump (YYYY-MM)."`
}

func (cmd *DebugDumpCalendarCmd) Run(ctx *cli.Context) error {
	month, err := utils.ParseMonth(cmd.Month)
	if err != nil {
		return err
	}
	engine := calendar.NewEngine(ctx.Store, ctx.Settings().WeekStart())
	engine.Show(context.Background(), month)

	type cell struct {
		Date string `json:"date"`
		models.CalendarCount
	}
	cells := make([]cell, 0, len(engine.Dates()))
	counts := engine.Counts()
	for _, d := range engine.Dates() {
		cells = append(cells, cell{Date: d, CalendarCount: counts[d]})
	}
	return printJSON(ctx, cells)
}
