// internal/ui/handle_popup.go
// Opening, closing and key handling of popups.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/patterns"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/ui/highlight"
)

// handlePopupKeys sends a key to the topmost popup. Esc closes it.
func (m Model) handlePopupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.popupStack.CloseTop(&m)
		return m, nil
	}

	switch m.popupStack.TopName() {
	case popupAdd:
		return m.handleAddKeys(msg)
	case popupHistory:
		return m.handleHistoryKeys(msg)
	case popupExport:
		return m.handleExportKeys(msg)
	case popupRaw:
		if msg.String() == "q" {
			m.popupStack.CloseTop(&m)
			return m, nil
		}
		var cmd tea.Cmd
		m.rawView, cmd = m.rawView.Update(msg)
		return m, cmd
	case popupHelp:
		if msg.String() == "q" || msg.String() == "?" {
			m.popupStack.CloseTop(&m)
		}
		return m, nil
	}
	return m, nil
}

// --- Add row ---

func (m Model) openAdd() (Model, tea.Cmd) {
	cols := m.table.Columns()
	m.addFields = make([]string, 0, len(cols))
	m.addInputs = make([]textinput.Model, 0, len(cols))

	// The type column comes first so suggestions show up immediately
	if m.table.HasField(patterns.TypeField) {
		m.addFields = append(m.addFields, patterns.TypeField)
	}
	for _, c := range cols {
		if c.Field != patterns.TypeField {
			m.addFields = append(m.addFields, c.Field)
		}
	}
	for range m.addFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = 40
		m.addInputs = append(m.addInputs, ti)
	}
	m.addFocus = 0
	m.addSuggestions = m.addSuggestions.SetItems(m.table.SuggestTypes(""))
	m.showAdd = true
	m.popupStack.Push(popupAdd, func(m *Model) bool {
		if !m.showAdd {
			return false
		}
		m.showAdd = false
		m.addInputs = nil
		m.addFields = nil
		return true
	})
	if len(m.addInputs) == 0 {
		return m, nil
	}
	cmd := m.addInputs[0].Focus()
	return m, cmd
}

// onTypeField reports whether the focused add input is the type column
func (m Model) onTypeField() bool {
	return m.addFocus < len(m.addFields) && m.addFields[m.addFocus] == patterns.TypeField
}

func (m Model) focusAddInput(i int) (Model, tea.Cmd) {
	if len(m.addInputs) == 0 {
		return m, nil
	}
	m.addInputs[m.addFocus].Blur()
	m.addFocus = (i + len(m.addInputs)) % len(m.addInputs)
	cmd := m.addInputs[m.addFocus].Focus()
	return m, cmd
}

func (m Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.table == nil {
		m.popupStack.CloseTop(&m)
		return m, nil
	}
	switch msg.String() {
	case "tab":
		m = m.acceptSuggestion()
		return m.focusAddInput(m.addFocus + 1)
	case "shift+tab":
		return m.focusAddInput(m.addFocus - 1)
	case "up":
		if m.onTypeField() {
			m.addSuggestions = m.addSuggestions.MoveUp()
		}
		return m, nil
	case "down":
		if m.onTypeField() {
			m.addSuggestions = m.addSuggestions.MoveDown()
		}
		return m, nil
	case "enter":
		if m.onTypeField() && m.addSuggestions.SelectedItem() != "" {
			return m.acceptSuggestion(), nil
		}
		return m.submitAdd()
	}

	if len(m.addInputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	if m.onTypeField() {
		m.addSuggestions = m.addSuggestions.SetItems(m.table.SuggestTypes(m.addInputs[m.addFocus].Value()))
	}
	return m, cmd
}

// acceptSuggestion copies the selected suggestion into the type input
func (m Model) acceptSuggestion() Model {
	if !m.onTypeField() {
		return m
	}
	if s := m.addSuggestions.SelectedItem(); s != "" {
		m.addInputs[m.addFocus].SetValue(s)
		m.addInputs[m.addFocus].CursorEnd()
		m.addSuggestions = m.addSuggestions.SetItems(m.table.SuggestTypes(s))
	}
	return m
}

// submitAdd inserts the new row and moves the cursor onto it
func (m Model) submitAdd() (Model, tea.Cmd) {
	if m.table == nil {
		m.popupStack.CloseTop(&m)
		return m, nil
	}
	values := make(map[string]string, len(m.addFields))
	for i, f := range m.addFields {
		values[f] = m.addInputs[i].Value()
	}
	m.cursor = m.table.AddRow(values)
	m.popupStack.CloseTop(&m)
	return m, nil
}

// --- History ---

func (m Model) openHistory() (Model, tea.Cmd) {
	if m.historyStore == nil {
		m.notes.Show("History is disabled.", notify.Info, textdir.LTR)
		return m, nil
	}
	if m.selection.IsZero() {
		m.notes.Show(msgNotLoaded, notify.Info, textdir.LTR)
		return m, nil
	}
	m.showHistory = true
	m.historyFilter.SetValue("")
	m.popupStack.Push(popupHistory, func(m *Model) bool {
		if !m.showHistory {
			return false
		}
		m.showHistory = false
		m.historyFilter.Blur()
		return true
	})
	m = m.resize()
	cmd := m.historyFilter.Focus()
	return m, tea.Batch(cmd, m.loadHistoryCmd(""))
}

func (m Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.historyList = m.historyList.MoveUp()
		return m, nil
	case "down":
		m.historyList = m.historyList.MoveDown()
		return m, nil
	case "ctrl+d":
		if item, ok := m.historyList.SelectedItem().(HistoryItemAdapter); ok {
			return m, m.deleteHistoryCmd(item.ID(), m.historyFilter.Value())
		}
		return m, nil
	case "enter":
		item, ok := m.historyList.SelectedItem().(HistoryItemAdapter)
		if !ok {
			return m, nil
		}
		m.popupStack.CloseTop(&m)
		return m.restoreEntry(item)
	}

	before := m.historyFilter.Value()
	var cmd tea.Cmd
	m.historyFilter, cmd = m.historyFilter.Update(msg)
	if after := m.historyFilter.Value(); after != before {
		return m, tea.Batch(cmd, m.loadHistoryCmd(strings.TrimSpace(after)))
	}
	return m, cmd
}

// restoreEntry loads a past run's mode and input into the query input
func (m Model) restoreEntry(item HistoryItemAdapter) (Model, tea.Cmd) {
	m.session.SetInput(m.input.Value())
	m.session.SetMode(query.Mode(item.Mode()))
	m.session.SetInput(item.Input())
	m = m.applyMode()
	return m.focusInput()
}

// --- Export ---

func (m Model) openExport() (Model, tea.Cmd) {
	if m.table == nil {
		m.notes.Show(msgNotLoaded, notify.Info, textdir.LTR)
		return m, nil
	}
	m.showExport = true
	m.exportInput.SetValue(fmt.Sprintf("%s-%s.csv", m.selection.Language, m.selection.PatternType))
	m.exportInput.CursorEnd()
	m.popupStack.Push(popupExport, func(m *Model) bool {
		if !m.showExport {
			return false
		}
		m.showExport = false
		m.exportInput.Blur()
		return true
	})
	cmd := m.exportInput.Focus()
	return m, cmd
}

func (m Model) handleExportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		filename := m.exportInput.Value()
		m.popupStack.CloseTop(&m)
		return m, m.exportTableCmd(filename)
	}
	var cmd tea.Cmd
	m.exportInput, cmd = m.exportInput.Update(msg)
	return m, cmd
}

// --- Raw response ---

func (m Model) openRaw() (Model, tea.Cmd) {
	if m.lastRaw == nil {
		m.notes.Show("No response to show yet.", notify.Info, textdir.LTR)
		return m, nil
	}
	m.showRaw = true
	m = m.resize()
	m.rawView.SetContent(highlight.Value(m.lastRaw))
	m.rawView.GotoTop()
	m.popupStack.Push(popupRaw, func(m *Model) bool {
		if !m.showRaw {
			return false
		}
		m.showRaw = false
		return true
	})
	return m, nil
}

// --- Help ---

func (m Model) openHelp() (Model, tea.Cmd) {
	m.showHelp = true
	m.popupStack.Push(popupHelp, func(m *Model) bool {
		if !m.showHelp {
			return false
		}
		m.showHelp = false
		return true
	})
	return m, nil
}
