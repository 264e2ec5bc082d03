package days

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/utils"
)

// ExportCmd writes day records as indented JSON. With --from/--to it writes
// an array of every stored record in the range.
type ExportCmd struct {
	Date   string `help:"Single day to export; defaults to today."`
	From   string `help:"First day of a range (inclusive)."`
	To     string `help:"Last day of a range (inclusive); defaults to today."`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	var payload any

	if c.From != "" && c.Date != "" {
		return fmt.Errorf("--date cannot be combined with --from")
	}
	if c.From == "" {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		rec, err := ctx.Store.LoadRecord(bg, date)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", date, err)
		}
		rec.Date = date
		payload = normalized(rec)
	} else {
		recs, err := c.loadRange(bg, ctx)
		if err != nil {
			return err
		}
		payload = recs
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	data = append(data, '\n')

	if c.Output == "" {
		_, err = ctx.Stdout().Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	ctx.Printf("Exported to %s\n", c.Output)
	return nil
}

func (c *ExportCmd) loadRange(bg context.Context, ctx *cli.Context) ([]models.DayRecord, error) {
	from, err := ctx.ResolveDate(c.From)
	if err != nil {
		return nil, err
	}
	to, err := ctx.ResolveDate(c.To)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, fmt.Errorf("--to %s is before --from %s", to, from)
	}

	dates, err := ctx.Store.ListDates(bg)
	if err != nil {
		return nil, fmt.Errorf("failed to list dates: %w", err)
	}
	recs := []models.DayRecord{}
	for _, d := range dates {
		if d < from || d > to {
			continue
		}
		if _, err := utils.ParseDateKey(d); err != nil {
			continue
		}
		rec, err := ctx.Store.LoadRecord(bg, d)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", d, err)
		}
		rec.Date = d
		recs = append(recs, normalized(rec))
	}
	return recs, nil
}

// normalized keeps an empty list as [] rather than null.
func normalized(rec models.DayRecord) models.DayRecord {
	if rec.Todos == nil {
		rec.Todos = []models.TaskItem{}
	}
	return rec
}
