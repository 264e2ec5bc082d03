package days

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/markdown"
)

// NotesCmd prints or replaces a day's notes. "--set -" reads the new notes
// from standard input.
type NotesCmd struct {
	Set   *string `help:"Replace the notes (use - to read stdin)."`
	Clear bool    `help:"Remove the notes."`
	Raw   bool    `help:"Print notes without markdown rendering."`
	Date  string  `help:"Day to use." default:"today"`
}

func (c *NotesCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if c.Set == nil && !c.Clear {
		rec, err := ctx.Store.LoadRecord(bg, date)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", date, err)
		}
		if !rec.HasNotes() {
			ctx.Printf("No notes for %s.\n", date)
			return nil
		}
		if c.Raw {
			ctx.Println(strings.TrimSpace(rec.Notes))
			return nil
		}
		style := markdown.StylePlain
		if p, err := ctx.Store.GetPreferences(bg); err == nil {
			style = markdown.StyleFor(p.Theme)
		}
		ctx.Println(markdown.Render(rec.Notes, style, notesWidth))
		return nil
	}

	text := ""
	if c.Set != nil {
		text = *c.Set
		if text == "-" {
			b, err := io.ReadAll(ctx.Stdin())
			if err != nil {
				return fmt.Errorf("failed to read notes: %w", err)
			}
			text = string(b)
		}
	}

	s, err := ctx.OpenDay(bg, date)
	if err != nil {
		return err
	}
	if err := s.SetNotes(text); err != nil {
		return err
	}
	// Close runs the debounced save now.
	if err := s.Close(bg); err != nil {
		return err
	}
	// the debounced save only logs failures, so read it back
	saved, err := ctx.Store.LoadRecord(bg, date)
	if err != nil || saved.Notes != text {
		return fmt.Errorf("notes for %s were not saved", date)
	}
	if text == "" {
		ctx.Printf("Cleared notes for %s.\n", date)
	} else {
		ctx.Printf("Saved notes for %s.\n", date)
	}
	return nil
}
