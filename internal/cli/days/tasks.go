package days

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/planner"
)

type AddCmd struct {
	Text []string `arg:"" help:"Task text."`
	Date string   `help:"Day to add the task to." default:"today"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	s, err := ctx.OpenDay(bg, date)
	if err != nil {
		return err
	}
	defer s.Close(bg)

	item, err := s.Create(bg, strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	ctx.Printf("Added task %d on %s: %s\n", len(s.Snapshot().Todos), date, item.Text)
	return nil
}

type ToggleCmd struct {
	N    int    `arg:"" help:"Task number."`
	Date string `help:"Day the task belongs to." default:"today"`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	return withTask(ctx, c.Date, c.N, func(bg context.Context, s *planner.Session, idx int) error {
		if err := s.ToggleCompleted(bg, idx); err != nil {
			return err
		}
		item := s.Snapshot().Todos[idx]
		state := "open"
		if item.Completed {
			state = "done"
		}
		ctx.Printf("Task %d marked %s: %s\n", c.N, state, item.Text)
		return nil
	})
}

type EditCmd struct {
	N          int     `arg:"" help:"Task number."`
	Text       *string `help:"New task text."`
	Notes      *string `help:"New task notes."`
	ClearNotes bool    `help:"Remove the task's notes." name:"clear-notes"`
	Date       string  `help:"Day the task belongs to." default:"today"`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if c.Text == nil && c.Notes == nil && !c.ClearNotes {
		return fmt.Errorf("nothing to change: pass --text, --notes or --clear-notes")
	}
	return withTask(ctx, c.Date, c.N, func(bg context.Context, s *planner.Session, idx int) error {
		item := s.Snapshot().Todos[idx]
		text, notes := item.Text, item.Notes
		if c.Text != nil {
			text = *c.Text
		}
		if c.Notes != nil {
			notes = *c.Notes
		}
		if c.ClearNotes {
			notes = ""
		}
		if err := s.Edit(bg, idx, text, notes); err != nil {
			return err
		}
		ctx.Printf("Updated task %d.\n", c.N)
		return nil
	})
}

type DeleteCmd struct {
	N    int    `arg:"" help:"Task number."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
	Date string `help:"Day the task belongs to." default:"today"`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	return withTask(ctx, c.Date, c.N, func(bg context.Context, s *planner.Session, idx int) error {
		item := s.Snapshot().Todos[idx]
		if !c.Yes {
			ok, err := ctx.Confirm(fmt.Sprintf("Delete %q?", item.Text))
			if err != nil {
				return err
			}
			if !ok {
				ctx.Println("Cancelled.")
				return nil
			}
		}
		if err := s.Delete(bg, idx); err != nil {
			return err
		}
		ctx.Printf("Deleted task: %s\n", item.Text)
		return nil
	})
}

type MoveCmd struct {
	N      int    `arg:"" help:"Task number to move."`
	Before int    `help:"Place the task before this task number." xor:"place"`
	After  int    `help:"Place the task after this task number." xor:"place"`
	Top    bool   `help:"Move the task to the top." xor:"place"`
	Bottom bool   `help:"Move the task to the bottom." xor:"place"`
	Date   string `help:"Day the task belongs to." default:"today"`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	return withTask(ctx, c.Date, c.N, func(bg context.Context, s *planner.Session, idx int) error {
		rec := s.Snapshot()
		var moved bool
		var err error
		switch {
		case c.Top:
			moved, err = s.DropOnZone(bg, idx, planner.ZoneTop)
		case c.Bottom:
			moved, err = s.DropOnZone(bg, idx, planner.ZoneBottom)
		case c.Before > 0:
			target, terr := cli.TaskIndex(c.Before, rec)
			if terr != nil {
				return terr
			}
			moved, err = s.DropOnItem(bg, idx, target, planner.HalfUpper)
		case c.After > 0:
			target, terr := cli.TaskIndex(c.After, rec)
			if terr != nil {
				return terr
			}
			moved, err = s.DropOnItem(bg, idx, target, planner.HalfLower)
		default:
			return fmt.Errorf("pass one of --before, --after, --top or --bottom")
		}
		if err != nil {
			return err
		}
		if !moved {
			ctx.Println("Task already in place.")
			return nil
		}
		for i, item := range s.Snapshot().Todos {
			ctx.Printf("  %s\n", taskLine(i, item))
		}
		return nil
	})
}

type RescheduleCmd struct {
	N    int    `arg:"" help:"Task number."`
	To   string `required:"" help:"Destination day (YYYY-MM-DD, today, tomorrow, yesterday)."`
	Date string `help:"Day the task belongs to." default:"today"`
}

func (c *RescheduleCmd) Run(ctx *cli.Context) error {
	to, err := ctx.ResolveDate(c.To)
	if err != nil {
		return err
	}
	return withTask(ctx, c.Date, c.N, func(bg context.Context, s *planner.Session, idx int) error {
		item := s.Snapshot().Todos[idx]
		if err := s.MoveToDate(bg, item.ID, s.Date(), to); err != nil {
			if errors.Is(err, planner.ErrSameDate) {
				return fmt.Errorf("task %d is already on %s", c.N, to)
			}
			return err
		}
		ctx.Printf("Moved %q to %s.\n", item.Text, to)
		return nil
	})
}

// withTask opens the day, resolves the 1-based task number and flushes the
// session when fn returns.
func withTask(ctx *cli.Context, dateArg string, n int, fn func(context.Context, *planner.Session, int) error) error {
	bg := context.Background()
	date, err := ctx.ResolveDate(dateArg)
	if err != nil {
		return err
	}
	s, err := ctx.OpenDay(bg, date)
	if err != nil {
		return err
	}
	defer s.Close(bg)

	idx, err := cli.TaskIndex(n, s.Snapshot())
	if err != nil {
		return err
	}
	return fn(bg, s, idx)
}
