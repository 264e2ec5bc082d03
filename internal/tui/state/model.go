package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daypad/internal/calendar"
	"github.com/julianstephens/daypad/internal/config"
	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/focus"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/planner"
	"github.com/julianstephens/daypad/internal/prefs"
	"github.com/julianstephens/daypad/internal/storage"
	calview "github.com/julianstephens/daypad/internal/tui/components/calendar"
	"github.com/julianstephens/daypad/internal/tui/components/daylist"
	"github.com/julianstephens/daypad/internal/tui/components/notes"
	"github.com/julianstephens/daypad/internal/tui/theme"
	"github.com/julianstephens/daypad/internal/utils"
)

// TaskFormModel backs the add and edit forms.
type TaskFormModel struct {
	Text  string
	Notes string
	Index int // -1 when adding
}

// RescheduleFormModel backs the move-to-date form.
type RescheduleFormModel struct {
	Date   string
	TaskID string
	Text   string
}

// SavedMsg reports a record the session just persisted.
type SavedMsg struct{ Record models.DayRecord }

// StoreChangedMsg reports a date changed on disk by any process.
type StoreChangedMsg struct{ Key string }

// FocusDoneMsg reports an elapsed focus session.
type FocusDoneMsg struct{ Label string }

// Model is the state shared by the TUI's handlers and views.
type Model struct {
	Ctx      context.Context
	Cancel   context.CancelFunc
	Store    storage.Provider
	Config   *config.Config
	Session  *planner.Session
	Calendar *calendar.Engine
	Prefs    *prefs.Controller
	Focus    *focus.Timer
	Now      func() time.Time

	State         constants.SessionState
	PreviousState constants.SessionState
	Keys          KeyMap
	Help          help.Model
	Styles        theme.Styles

	DayList      daylist.Model
	CalendarView calview.Model
	Notes        notes.Model

	Form           *huh.Form
	TaskForm       *TaskFormModel
	RescheduleForm *RescheduleFormModel

	DeleteIndex int
	DeleteText  string

	// Events carries messages from timer and watcher goroutines into the
	// program loop.
	Events chan tea.Msg

	Status            string
	Err               string
	ValidationWarning string
	Width             int
	Height            int
	Quitting          bool
}

// Today returns the current date key in the configured timezone.
func (m *Model) Today() string {
	loc, err := utils.LoadLocation(m.Config.Timezone)
	if err != nil {
		loc = time.Local
	}
	return utils.FormatDateKey(m.Now().In(loc))
}

// Post hands msg to the program loop without blocking the caller.
func (m *Model) Post(msg tea.Msg) {
	select {
	case m.Events <- msg:
	default:
	}
}

// WaitForEvent is the command that delivers the next posted message.
func (m *Model) WaitForEvent() tea.Cmd {
	events := m.Events
	return func() tea.Msg {
		return <-events
	}
}

// SetError shows err in the status line; nil clears it.
func (m *Model) SetError(err error) {
	if err == nil {
		m.Err = ""
		return
	}
	m.Err = err.Error()
	m.Status = ""
}

func (m *Model) SetStatus(s string) {
	m.Status = s
	m.Err = ""
}

// SyncDay copies the session's record and selection into the list view.
func (m *Model) SyncDay() {
	sel, ok := m.Session.Selection()
	if !ok {
		sel = -1
	}
	m.DayList.SetDay(m.Session.Snapshot(), sel)
	m.UpdateValidationStatus()
}

// ApplyPrefs pushes the current zoom and theme into every view.
func (m *Model) ApplyPrefs() {
	p := m.Prefs.Current()
	m.Styles = theme.For(p.Theme)
	m.DayList.SetStyles(m.Styles)
	m.DayList.SetZoom(p.Zoom)
	m.CalendarView.SetStyles(m.Styles)
	m.CalendarView.SetZoom(p.Zoom)
	m.Notes.SetStyles(m.Styles)
}
