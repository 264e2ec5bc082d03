package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/planner"
	"github.com/julianstephens/daypad/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Repair the conflicts that can be fixed automatically."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	validator := validation.New()

	result, err := validator.ValidateStore(bg, ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to validate storage: %w", err)
	}
	ctx.Println(strings.TrimRight(result.FormatReport(), "\n"))

	if !result.HasConflicts() {
		return nil
	}
	if !c.Fix {
		return fmt.Errorf("validation found %d conflict(s); rerun with --fix to repair", len(result.Conflicts))
	}

	ids := planner.UUIDIssuer{}
	fixed := 0
	for _, date := range conflictDates(result) {
		rec, err := ctx.Store.LoadRecord(bg, date)
		if err != nil {
			ctx.Printf("  ⚠ skipped %s: %v\n", date, err)
			continue
		}
		repaired, actions := validation.AutoFixRecord(date, rec, ids.IssueTaskID)
		if len(actions) == 0 {
			continue
		}
		if err := ctx.Store.SaveRecord(bg, repaired); err != nil {
			return fmt.Errorf("failed to save %s: %w", date, err)
		}
		for _, a := range actions {
			ctx.Printf("  ✓ %s: %s\n", date, a.Action)
			fixed++
		}
	}

	after, err := validator.ValidateStore(bg, ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to re-validate storage: %w", err)
	}
	ctx.Printf("\nApplied %d fix(es).\n", fixed)
	if after.HasConflicts() {
		ctx.Println(strings.TrimRight(after.FormatReport(), "\n"))
		return fmt.Errorf("%d conflict(s) remain after fixing", len(after.Conflicts))
	}
	return nil
}

// conflictDates returns each conflicting date once, in report order.
func conflictDates(result validation.ValidationResult) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, c := range result.Conflicts {
		if c.Date == "" || seen[c.Date] {
			continue
		}
		seen[c.Date] = true
		dates = append(dates, c.Date)
	}
	return dates
}
