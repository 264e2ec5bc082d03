package handlers

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/planner"
	"github.com/julianstephens/daypad/internal/tui/state"
	"github.com/julianstephens/daypad/internal/utils"
)

// HandleTaskFormState handles the add and edit task forms.
func HandleTaskFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	cmd, formState := updateForm(m, msg)

	switch formState {
	case huh.StateCompleted:
		fm := m.TaskForm
		if fm.Index < 0 {
			if _, err := m.Session.Create(m.Ctx, fm.Text); err != nil {
				m.SetError(err)
			} else {
				m.SetStatus("Task added.")
			}
		} else {
			if err := m.Session.Edit(m.Ctx, fm.Index, fm.Text, fm.Notes); err != nil {
				m.SetError(err)
			} else {
				m.SetStatus("Task updated.")
			}
		}
		m.SyncDay()
		m.Form = nil
		m.TaskForm = nil
		m.State = constants.StateDay
	case huh.StateAborted:
		m.Form = nil
		m.TaskForm = nil
		m.State = constants.StateDay
	}
	return cmd
}

// HandleRescheduleState handles the move-to-date form.
func HandleRescheduleState(m *state.Model, msg tea.Msg) tea.Cmd {
	cmd, formState := updateForm(m, msg)

	switch formState {
	case huh.StateCompleted:
		fm := m.RescheduleForm
		from := m.Session.Date()
		to, err := utils.ResolveDate(m.Today(), fm.Date)
		switch {
		case err != nil:
			m.SetError(err)
		default:
			err = m.Session.MoveToDate(m.Ctx, fm.TaskID, from, to)
			switch {
			case errors.Is(err, planner.ErrSameDate):
				m.SetStatus(fmt.Sprintf("%q is already on %s.", fm.Text, to))
			case err != nil:
				m.SetError(err)
			default:
				m.SetStatus(fmt.Sprintf("Moved %q to %s.", fm.Text, to))
			}
		}
		m.SyncDay()
		m.Form = nil
		m.RescheduleForm = nil
		m.State = constants.StateDay
	case huh.StateAborted:
		m.Form = nil
		m.RescheduleForm = nil
		m.State = constants.StateDay
	}
	return cmd
}
