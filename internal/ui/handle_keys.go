// internal/ui/handle_keys.go
// Top-level key routing.
package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

// handleKey routes a key to the open popup, the cell editor, the global
// bindings or the focused pane, in that order
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}

	if !m.popupStack.IsEmpty() {
		return m.handlePopupKeys(msg)
	}

	if m.editing {
		return m.handleCellEditor(msg)
	}

	// Typing into the query input never triggers bindings
	if m.focus == FocusInput && isTextKey(msg) {
		return m.handleInputKeys(msg)
	}

	keys := m.config.Keys
	switch {
	case matchKey(msg, keys.Run):
		return m.runQuery()
	case matchKey(msg, keys.Save):
		return m.save()
	case matchKey(msg, keys.ToggleMode):
		return m.toggleMode()
	case matchKey(msg, keys.SwitchFocus):
		return m.switchFocus()
	case matchKey(msg, keys.History):
		return m.openHistory()
	case matchKey(msg, keys.Export):
		return m.openExport()
	case matchKey(msg, keys.Raw):
		return m.openRaw()
	case matchKey(msg, keys.Copy):
		return m, copyToClipboardCmd(m.copyText())
	case matchKey(msg, keys.Reload):
		if m.selection.IsZero() {
			return m, m.fetchCatalogCmd()
		}
		return m.loadRows(m.selection)
	}

	if m.focus == FocusInput {
		return m.handleInputKeys(msg)
	}
	return m.handleTableKeys(msg)
}

// runQuery sends the input in the current mode
func (m Model) runQuery() (Model, tea.Cmd) {
	if m.table == nil {
		m.notes.Show(msgNotLoaded, notify.Info, textdir.LTR)
		return m, nil
	}
	m.session.SetInput(m.input.Value())
	m.querying = true
	return m, m.runQueryCmd()
}

// save sends the canonical matrix of the current table
func (m Model) save() (Model, tea.Cmd) {
	if m.table == nil {
		m.notes.Show(msgNotLoaded, notify.Info, textdir.LTR)
		return m, nil
	}
	m.saving = true
	return m, m.saveCmd()
}

// toggleMode switches between parse and search, converting the input
func (m Model) toggleMode() (Model, tea.Cmd) {
	m.session.SetInput(m.input.Value())
	m.session.ToggleMode()
	m = m.applyMode()
	return m, nil
}

// applyMode sizes the input for the session mode and loads its text
func (m Model) applyMode() Model {
	if m.session.Mode() == query.SearchMode {
		m.input.Placeholder = "Paste text to search..."
		m.input.SetHeight(5)
	} else {
		m.input.Placeholder = "Type a date to parse..."
		m.input.SetHeight(1)
		m.lines = nil
		m.refreshResults()
	}
	m.input.SetValue(m.session.Input())
	return m.resize()
}

func (m Model) switchFocus() (Model, tea.Cmd) {
	if m.focus == FocusTable {
		m.focus = FocusInput
		cmd := m.input.Focus()
		return m, cmd
	}
	m.focus = FocusTable
	m.input.Blur()
	return m, nil
}

// focusInput moves focus to the query input
func (m Model) focusInput() (Model, tea.Cmd) {
	m.focus = FocusInput
	cmd := m.input.Focus()
	return m, tea.Batch(cmd, textarea.Blink)
}
