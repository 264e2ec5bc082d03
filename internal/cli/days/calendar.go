package days

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/daypad/internal/calendar"
	"github.com/julianstephens/daypad/internal/cli"
)

const cellWidth = 9

type CalendarCmd struct {
	Month     string `help:"Month to show (YYYY-MM); defaults to the current month."`
	WeekStart string `help:"First day of the week (sunday or monday); overrides the config." name:"week-start"`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	month, err := monthOrCurrent(ctx, c.Month)
	if err != nil {
		return err
	}
	weekStart := ctx.Settings().WeekStart()
	if c.WeekStart != "" {
		switch strings.ToLower(c.WeekStart) {
		case "sunday":
			weekStart = time.Sunday
		case "monday":
			weekStart = time.Monday
		default:
			return fmt.Errorf("invalid week start %q (expected sunday or monday)", c.WeekStart)
		}
	}

	engine := calendar.NewEngine(ctx.Store, weekStart)
	engine.Show(context.Background(), month)
	PrintMonth(ctx.Stdout(), engine, ctx.Today())
	return nil
}

// PrintMonth draws the engine's visible window as a text grid. Each cell
// shows the day of month and done/total; "*" marks days with notes and
// brackets mark today.
func PrintMonth(w io.Writer, engine *calendar.Engine, today string) {
	month := engine.Month()
	fmt.Fprintf(w, "%s\n\n", month.Format("January 2006"))

	for _, h := range calendar.WeekdayHeaders(engine.WeekStart()) {
		fmt.Fprintf(w, "%-*s", cellWidth, " "+h)
	}
	fmt.Fprintln(w)

	for i, date := range engine.Dates() {
		fmt.Fprintf(w, "%-*s", cellWidth, cell(engine, date, month, today))
		if i%7 == 6 {
			fmt.Fprintln(w)
		}
	}
}

func cell(engine *calendar.Engine, date string, month time.Time, today string) string {
	day := date[8:]
	if strings.HasPrefix(day, "0") {
		day = " " + day[1:]
	}
	if date[:7] != month.Format("2006-01") {
		day = " ·"
	}
	if date == today {
		day = "[" + strings.TrimSpace(day) + "]"
	} else {
		day = " " + day
	}

	count, ok := engine.Count(date)
	if !ok || (count.Total == 0 && !count.HasNotes) {
		return day
	}
	badge := ""
	if count.Total > 0 {
		badge = fmt.Sprintf("%d/%d", count.Completed, count.Total)
	}
	if count.HasNotes {
		badge += "*"
	}
	return day + " " + badge
}
