// Package days holds the commands that read and change one day's record.
package days

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/markdown"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/utils"
)

const notesWidth = 72

type DayCmd struct {
	Date string `help:"Day to show (YYYY-MM-DD, today, tomorrow, yesterday)." default:"today"`
	Raw  bool   `help:"Print notes without markdown rendering."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
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

	style := markdown.StylePlain
	if !c.Raw {
		if prefs, err := ctx.Store.GetPreferences(bg); err == nil {
			style = markdown.StyleFor(prefs.Theme)
		}
	}
	PrintDay(ctx.Stdout(), rec, style, c.Raw)
	return nil
}

// PrintDay writes a numbered task list followed by the day's notes.
func PrintDay(w io.Writer, rec models.DayRecord, style string, raw bool) {
	fmt.Fprintf(w, "%s  (%d/%d done)\n", dayTitle(rec.Date), rec.CompletedCount(), len(rec.Todos))
	if len(rec.Todos) == 0 {
		fmt.Fprintln(w, "  No tasks.")
	}
	for i, item := range rec.Todos {
		fmt.Fprintf(w, "  %s\n", taskLine(i, item))
		if item.HasNotes() {
			for _, line := range strings.Split(item.Notes, "\n") {
				fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}

	if !rec.HasNotes() {
		return
	}
	fmt.Fprintln(w)
	if raw {
		fmt.Fprintln(w, strings.TrimSpace(rec.Notes))
		return
	}
	fmt.Fprintln(w, markdown.Render(rec.Notes, style, notesWidth))
}

func taskLine(i int, item models.TaskItem) string {
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%2d. %s %s", i+1, box, item.Text)
	if item.HasNotes() {
		line += "  ✎"
	}
	return line
}

func dayTitle(date string) string {
	t, err := utils.ParseDateKey(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2 2006")
}

// monthOrCurrent parses YYYY-MM or falls back to the month containing today.
func monthOrCurrent(ctx *cli.Context, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return utils.MonthOf(ctx.Today())
	}
	return utils.ParseMonth(strings.TrimSpace(s))
}
