package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

// handleTableKeys handles keys while the pattern table has focus
func (m Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.config.Keys

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.table != nil && m.cursor < m.table.Len()-1 {
			m.cursor++
		}
		return m, nil
	case "left", "h":
		if m.column > 0 {
			m.column--
		}
		return m, nil
	case "right", "l":
		if m.table != nil && m.column < len(m.table.Columns())-1 {
			m.column++
		}
		return m, nil
	case "home", "g":
		m.cursor = 0
		return m, nil
	case "end", "G":
		if m.table != nil && m.table.Len() > 0 {
			m.cursor = m.table.Len() - 1
		}
		return m, nil
	case "pgup":
		m.cursor = max(m.cursor-m.pageSize(), 0)
		return m, nil
	case "pgdown":
		if m.table != nil {
			m.cursor = min(m.cursor+m.pageSize(), max(m.table.Len()-1, 0))
		}
		return m, nil
	case "?":
		return m.openHelp()
	}

	switch {
	case matchKey(msg, keys.Exit):
		m.Close()
		return m, tea.Quit
	case matchKey(msg, keys.NextLanguage):
		return m.selectLanguage(m.catalog.NextLanguage(m.selection))
	case matchKey(msg, keys.NextPattern):
		return m.selectLanguage(m.catalog.NextPatternType(m.selection))
	}

	if m.table == nil {
		return m, nil
	}

	switch {
	case matchKey(msg, keys.Edit):
		return m.startEdit()
	case matchKey(msg, keys.Delete):
		if err := m.table.ToggleDelete(m.cursor); err != nil {
			m.notes.Show(err.Error(), notify.Error, textdir.LTR)
		}
		return m, nil
	case matchKey(msg, keys.Add):
		return m.openAdd()
	}
	return m, nil
}

// currentField returns the field under the column cursor
func (m Model) currentField() (string, bool) {
	if m.table == nil {
		return "", false
	}
	cols := m.table.Columns()
	if m.column < 0 || m.column >= len(cols) {
		return "", false
	}
	return cols[m.column].Field, true
}

// startEdit opens the cell editor on the cell under the cursor
func (m Model) startEdit() (Model, tea.Cmd) {
	field, ok := m.currentField()
	if !ok {
		return m, nil
	}
	row, err := m.table.Row(m.cursor)
	if err != nil {
		return m, nil
	}
	m.editing = true
	m.cellEditor.Prompt = field + ": "
	m.cellEditor.SetValue(row.Value(field))
	m.cellEditor.CursorEnd()
	m = m.resize()
	cmd := m.cellEditor.Focus()
	return m, cmd
}

// handleCellEditor handles keys while a cell is being edited
func (m Model) handleCellEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.cellEditor.Blur()
		return m.resize(), nil
	case tea.KeyEnter:
		m.editing = false
		m.cellEditor.Blur()
		if m.table == nil {
			return m.resize(), nil
		}
		field, _ := m.currentField()
		if err := m.table.EditCell(m.cursor, field, m.cellEditor.Value()); err != nil {
			m.notes.Show(fmt.Sprintf("Edit failed: %v", err), notify.Error, textdir.LTR)
		}
		return m.resize(), nil
	}

	var cmd tea.Cmd
	m.cellEditor, cmd = m.cellEditor.Update(msg)
	return m, cmd
}
