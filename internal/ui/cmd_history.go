package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// loadHistoryCmd loads the runs of the current selection, filtered by
// input substring when filter is not empty
func (m Model) loadHistoryCmd(filter string) tea.Cmd {
	store := m.historyStore
	sel := m.selection
	limit := m.config.HistoryLimit
	return func() tea.Msg {
		if store == nil {
			return HistoryLoadedMsg{}
		}
		total, err := store.Count(sel.Language, sel.PatternType)
		if err != nil {
			return HistoryLoadedMsg{Err: err}
		}
		if filter != "" {
			entries, err := store.Search(sel.Language, sel.PatternType, filter, limit)
			return HistoryLoadedMsg{Entries: entries, Total: total, Err: err}
		}
		entries, err := store.List(sel.Language, sel.PatternType, limit, 0)
		return HistoryLoadedMsg{Entries: entries, Total: total, Err: err}
	}
}

// deleteHistoryCmd removes one entry and reloads the list
func (m Model) deleteHistoryCmd(id int64, filter string) tea.Cmd {
	store := m.historyStore
	reload := m.loadHistoryCmd(filter)
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		if err := store.Delete(id); err != nil {
			return HistoryLoadedMsg{Err: err}
		}
		return reload()
	}
}
