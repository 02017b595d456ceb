package ui

import (
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
)

const (
	chromeLines   = 3 // title, status bar, key hints
	tableOverhead = 4 // borders, header and its rule
	minTableRows  = 3
)

// layout splits the terminal height between the table and the results
func (m Model) layout() (tableRows, resultsHeight int) {
	avail := m.height - chromeLines - (m.input.Height() + 2)
	if m.editing {
		avail--
	}
	if m.session.Mode() == query.SearchMode {
		resultsHeight = max(avail/3, 3)
		avail -= resultsHeight + 1
	}
	return max(avail-tableOverhead, minTableRows), resultsHeight
}

// pageSize is how many table rows fit on screen
func (m Model) pageSize() int {
	rows, _ := m.layout()
	return rows
}

// resize applies the current dimensions to the sized components
func (m Model) resize() Model {
	if m.width == 0 {
		return m
	}
	m.input.SetWidth(max(m.width-4, 10))
	m.cellEditor.Width = max(m.width-len(m.cellEditor.Prompt)-4, 10)

	_, resultsHeight := m.layout()
	m.results.Width = m.width
	m.results.Height = resultsHeight
	m.refreshResults()

	popupWidth := max(min(m.width-10, 100), 20)
	popupHeight := max(m.height-10, 5)
	m.rawView.Width = popupWidth - 6
	m.rawView.Height = popupHeight - 4
	m.historyList = m.historyList.SetSize(popupWidth-6, popupHeight-6)
	return m
}
