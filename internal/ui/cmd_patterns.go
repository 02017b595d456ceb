package ui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/catalog"
)

// fetchCatalogCmd loads the languages and their pattern types
func (m Model) fetchCatalogCmd() tea.Cmd {
	gw := m.gateway
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		c, err := gw.FetchCatalog(ctx)
		return CatalogLoadedMsg{Catalog: c, Err: err}
	}
}

// loadRows starts a fetch for sel and marks every earlier fetch stale
func (m Model) loadRows(sel catalog.Selection) (Model, tea.Cmd) {
	m.loadSeq++
	m.selection = sel
	m.table = nil
	m.loading = true
	m = m.closeTablePopups()
	m.querying = false
	m.editing = false
	m.cursor, m.column = 0, 0
	m.lines = nil
	m.lastRaw = nil
	m.refreshResults()
	log.Printf("loading rows for %s (seq %d)", sel, m.loadSeq)
	return m, m.fetchRowsCmd(sel, m.loadSeq)
}

func (m Model) fetchRowsCmd(sel catalog.Selection, seq int) tea.Cmd {
	gw := m.gateway
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rows, err := gw.FetchRows(ctx, sel)
		return RowsLoadedMsg{Selection: sel, Seq: seq, Rows: rows, Err: err}
	}
}

// closeTablePopups closes what works on the current table and would be
// left pointing at nothing once it is replaced
func (m Model) closeTablePopups() Model {
	m.popupStack.Close(popupAdd, &m)
	m.popupStack.Close(popupExport, &m)
	m.cellEditor.Blur()
	return m
}

// saveCmd sends the canonical matrix of the current table. The checkpoint
// is taken now so later edits can be told apart once the save returns.
func (m Model) saveCmd() tea.Cmd {
	gw := m.gateway
	sel := m.selection
	matrix := m.table.CanonicalMatrix()
	cp := m.table.Checkpoint()
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := gw.SaveRows(ctx, sel, matrix)
		return SaveCompleteMsg{Selection: sel, Rows: len(matrix), Checkpoint: cp, Err: err}
	}
}
