package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
)

// handleInputKeys handles keys while the query input has focus
func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = FocusTable
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		// Parse input is a single line
		if m.session.Mode() == query.ParseMode {
			return m.runQuery()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
