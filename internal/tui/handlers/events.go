package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/tui/state"
	"github.com/julianstephens/daypad/internal/utils"
)

// HandleEvent applies a message posted from outside the program loop. The
// returned command re-arms the event listener.
func HandleEvent(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case state.SavedMsg:
		m.Calendar.Observe(msg.Record)
		return true, m.WaitForEvent()

	case state.StoreChangedMsg:
		if utils.ValidateDateKey(msg.Key) {
			m.Calendar.Invalidate(m.Ctx, msg.Key)
		}
		return true, m.WaitForEvent()

	case state.FocusDoneMsg:
		logger.Debug("focus complete in tui", "label", msg.Label)
		m.SetStatus(fmt.Sprintf("Focus on %q complete.", msg.Label))
		return true, m.WaitForEvent()
	}
	return false, nil
}
