package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// handleModalKey routes input to the open modal and applies its outcome once
// it closes.
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if !closed {
		m.modal = next
		return m, cmd
	}
	m.modal = nil

	fm, ok := next.(*filterModal)
	if !ok {
		return m, cmd
	}
	switch fm.action {
	case filterApply:
		fetch := m.startFetch(m.controller.ApplyFilters(fm.selection))
		return m, tea.Batch(cmd, fetch)
	case filterReset:
		if req, ok := m.controller.ResetAllFilters(); ok {
			fetch := m.startFetch(req)
			return m, tea.Batch(cmd, fetch)
		}
	}
	return m, cmd
}
