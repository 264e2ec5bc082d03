package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/tui/components/daylist"
	"github.com/julianstephens/daypad/internal/tui/state"
	"github.com/julianstephens/daypad/internal/utils"
)

// OpenDate makes date the open day. On a load failure the day shows empty
// and the error is reported.
func OpenDate(m *state.Model, date string) {
	err := m.Session.Open(m.Ctx, date)
	m.SyncDay()
	m.Notes.Load(m.Session.Snapshot().Notes)
	m.CalendarView.SetCursor(date, m.Today())
	if err != nil {
		m.SetError(err)
		return
	}
	m.SetStatus("")
}

// StepDay opens the day n days away from the open one.
func StepDay(m *state.Model, n int) {
	next, err := utils.AddDays(m.Session.Date(), n)
	if err != nil {
		m.SetError(err)
		return
	}
	OpenDate(m, next)
}

// HandleDayState forwards keys to the task list.
func HandleDayState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.DayList, cmd = m.DayList.Update(msg)
	return cmd
}

// HandleDayMessages applies the operations emitted by the task list.
func HandleDayMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case daylist.SelectMsg:
		if err := m.Session.Select(msg.Index); err != nil {
			m.SetError(err)
		}
		m.SyncDay()
		return true, nil

	case daylist.ToggleMsg:
		if err := m.Session.ToggleCompleted(m.Ctx, msg.Index); err != nil {
			m.SetError(err)
		} else {
			m.SetStatus("")
		}
		m.SyncDay()
		return true, nil

	case daylist.ReorderMsg:
		moved, err := m.Session.DropOnItem(m.Ctx, msg.Index, msg.Target, msg.Half)
		reportMove(m, moved, err)
		return true, nil

	case daylist.ZoneMsg:
		moved, err := m.Session.DropOnZone(m.Ctx, msg.Index, msg.Zone)
		reportMove(m, moved, err)
		return true, nil

	case daylist.AddMsg:
		m.TaskForm = &state.TaskFormModel{Index: -1}
		m.Form = NewTaskForm(m.TaskForm)
		m.State = constants.StateAdding
		return true, m.Form.Init()

	case daylist.EditMsg:
		rec := m.Session.Snapshot()
		if msg.Index < 0 || msg.Index >= len(rec.Todos) {
			return true, nil
		}
		t := rec.Todos[msg.Index]
		m.TaskForm = &state.TaskFormModel{Text: t.Text, Notes: t.Notes, Index: msg.Index}
		m.Form = NewTaskForm(m.TaskForm)
		m.State = constants.StateEditing
		return true, m.Form.Init()

	case daylist.DeleteMsg:
		rec := m.Session.Snapshot()
		if msg.Index < 0 || msg.Index >= len(rec.Todos) {
			return true, nil
		}
		m.DeleteIndex = msg.Index
		m.DeleteText = rec.Todos[msg.Index].Text
		m.State = constants.StateConfirmDelete
		return true, nil

	case daylist.RescheduleMsg:
		rec := m.Session.Snapshot()
		if msg.Index < 0 || msg.Index >= len(rec.Todos) {
			return true, nil
		}
		t := rec.Todos[msg.Index]
		tomorrow, err := utils.AddDays(rec.Date, 1)
		if err != nil {
			m.SetError(err)
			return true, nil
		}
		m.RescheduleForm = &state.RescheduleFormModel{Date: tomorrow, TaskID: t.ID, Text: t.Text}
		m.Form = NewRescheduleForm(m.RescheduleForm, m.Today())
		m.State = constants.StateReschedule
		return true, m.Form.Init()

	case daylist.FocusMsg:
		return true, StartFocus(m, msg.Index)
	}
	return false, nil
}

func reportMove(m *state.Model, moved bool, err error) {
	switch {
	case err != nil:
		m.SetError(err)
	case !moved:
		m.SetStatus("Task already in place.")
	default:
		m.SetStatus("")
	}
	m.SyncDay()
}

// HandleConfirmDeleteState handles the delete confirmation state.
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if err := m.Session.Delete(m.Ctx, m.DeleteIndex); err != nil {
			m.SetError(err)
		} else {
			m.SetStatus(fmt.Sprintf("Deleted %q.", m.DeleteText))
		}
		m.SyncDay()
	case "n", "N", "esc", "q":
	default:
		return nil
	}
	m.DeleteIndex = -1
	m.DeleteText = ""
	m.State = constants.StateDay
	return nil
}
