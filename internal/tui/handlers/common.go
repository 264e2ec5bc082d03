package handlers

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/tui/state"
	"github.com/julianstephens/daypad/internal/utils"
)

var errTextEmpty = errors.New("task text cannot be empty")

// NewTaskForm creates the form for adding or editing a task.
func NewTaskForm(fm *state.TaskFormModel) *huh.Form {
	title := "New task"
	if fm.Index >= 0 {
		title = fmt.Sprintf("Edit task %d", fm.Index+1)
	}
	fields := []huh.Field{
		huh.NewInput().
			Title(title).
			Value(&fm.Text).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errTextEmpty
				}
				return nil
			}),
	}
	if fm.Index >= 0 {
		fields = append(fields, huh.NewText().
			Title("Notes").
			Description("Markdown; leave empty for none").
			Value(&fm.Notes))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

// NewRescheduleForm creates the form for moving a task to another date.
func NewRescheduleForm(fm *state.RescheduleFormModel, today string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Move to date").
				Description(fmt.Sprintf("%q: YYYY-MM-DD, today, tomorrow or yesterday", fm.Text)).
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := utils.ResolveDate(today, s)
					return err
				}),
		),
	).WithShowHelp(true)
}

// updateForm forwards msg to the active form. Esc aborts back to the day.
func updateForm(m *state.Model, msg tea.Msg) (tea.Cmd, huh.FormState) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.Form = nil
		m.State = constants.StateDay
		return nil, huh.StateAborted
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	return cmd, m.Form.State
}

// Shutdown stops the focus timer and flushes pending saves.
func Shutdown(m *state.Model) {
	m.Focus.Stop()
	m.Prefs.Flush()
	if err := m.Session.Close(m.Ctx); err != nil {
		m.SetError(err)
	}
	if m.Cancel != nil {
		m.Cancel()
	}
}
