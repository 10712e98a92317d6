package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clearStatusMsg hides the notification with the matching id. Newer
// notifications bump the id, so an old timer never clears them.
type clearStatusMsg struct {
	id int
}

type prefsSavedMsg struct {
	err error
}

func (m *Model) notify(text string) tea.Cmd {
	return m.setStatus(text, false, NotifyDuration)
}

func (m *Model) notifyError(text string) tea.Cmd {
	return m.setStatus(text, true, NotifyErrorDuration)
}

func (m *Model) setStatus(text string, isError bool, d time.Duration) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusIsError = isError
	id := m.statusID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) handleClearStatus(msg clearStatusMsg) (tea.Model, tea.Cmd) {
	if msg.id == m.statusID {
		m.status = ""
		m.statusIsError = false
	}
	return m, nil
}
