// Package tui is the interactive day planner: the open day's tasks, a month
// calendar, the notes editor and a focus timer.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/calendar"
	"github.com/julianstephens/daypad/internal/config"
	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/debounce"
	"github.com/julianstephens/daypad/internal/focus"
	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/planner"
	"github.com/julianstephens/daypad/internal/prefs"
	"github.com/julianstephens/daypad/internal/storage"
	"github.com/julianstephens/daypad/internal/storage/diskv"
	calview "github.com/julianstephens/daypad/internal/tui/components/calendar"
	"github.com/julianstephens/daypad/internal/tui/components/daylist"
	"github.com/julianstephens/daypad/internal/tui/components/notes"
	"github.com/julianstephens/daypad/internal/tui/handlers"
	"github.com/julianstephens/daypad/internal/tui/state"
	"github.com/julianstephens/daypad/internal/tui/theme"
)

const eventBuffer = 64

type Options struct {
	Store    storage.Provider
	Config   *config.Config
	Notifier focus.Notifier
	// Date is the day to open first; empty means today.
	Date string

	Now       func() time.Time
	AfterFunc debounce.AfterFunc
	IDs       planner.IDIssuer
}

// storeWatcher is implemented by stores that can report outside changes.
type storeWatcher interface {
	Watch(ctx context.Context) (<-chan diskv.Change, error)
}

type Model struct {
	*state.Model
}

func NewModel(ctx context.Context, opts Options) Model {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(ctx)

	sm := &state.Model{
		Ctx:         ctx,
		Cancel:      cancel,
		Store:       opts.Store,
		Config:      opts.Config,
		Now:         opts.Now,
		State:       constants.StateDay,
		Keys:        state.DefaultKeyMap(),
		Help:        help.New(),
		DeleteIndex: -1,
		Events:      make(chan tea.Msg, eventBuffer),
	}

	sm.Session = planner.NewSession(planner.Options{
		Store:      opts.Store,
		IDs:        opts.IDs,
		Clock:      opts.Now,
		NotesDelay: opts.Config.NotesDelay(),
		AfterFunc:  opts.AfterFunc,
		OnSaved: func(rec models.DayRecord) {
			sm.Post(state.SavedMsg{Record: rec})
		},
	})
	sm.Calendar = calendar.NewEngine(opts.Store, opts.Config.WeekStart())
	sm.Prefs = prefs.New(opts.Store, prefs.Options{
		ZoomDelay: opts.Config.ZoomDelay(),
		AfterFunc: opts.AfterFunc,
	})
	sm.Focus = focus.New(focus.Options{
		Notifier:  opts.Notifier,
		AfterFunc: opts.AfterFunc,
		Now:       opts.Now,
		OnComplete: func(label string) {
			sm.Post(state.FocusDoneMsg{Label: label})
		},
	})

	prefsErr := sm.Prefs.Load(ctx)
	sm.Styles = theme.For(sm.Prefs.Current().Theme)
	sm.DayList = daylist.New(sm.Styles)
	sm.CalendarView = calview.New(sm.Calendar, sm.Styles)
	sm.Notes = notes.New(sm.Styles)
	sm.ApplyPrefs()

	date := opts.Date
	if date == "" {
		date = sm.Today()
	}
	handlers.OpenDate(sm, date)
	if sm.Err == "" {
		sm.ValidateStore()
	}
	if prefsErr != nil && sm.Err == "" {
		sm.SetError(prefsErr)
	}

	if w, ok := opts.Store.(storeWatcher); ok {
		watch(sm, w)
	}
	return Model{Model: sm}
}

// watch forwards outside store changes into the program loop until the
// model shuts down.
func watch(m *state.Model, w storeWatcher) {
	changes, err := w.Watch(m.Ctx)
	if err != nil {
		logger.Warn("store watch unavailable", "error", err)
		return
	}
	go func() {
		for c := range changes {
			m.Post(state.StoreChangedMsg{Key: c.Key})
		}
	}()
}

func (m Model) Init() tea.Cmd {
	return m.WaitForEvent()
}
