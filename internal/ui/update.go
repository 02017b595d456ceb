// internal/ui/update.go
package ui

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/api"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/catalog"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/patterns"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

// Update handles messages and updates model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NotificationMsg:
		m.note = msg.Note
		return m, m.waitForNotification()

	case CatalogLoadedMsg:
		return m.handleCatalogLoaded(msg)

	case RowsLoadedMsg:
		return m.handleRowsLoaded(msg)

	case SaveCompleteMsg:
		return m.handleSaveComplete(msg)

	case ParseResultMsg:
		if msg.Seq != m.loadSeq {
			log.Printf("dropping parse result for stale selection (seq %d, now %d)", msg.Seq, m.loadSeq)
			return m, nil
		}
		m.querying = false
		m.lastRaw = msg.Outcome.Result
		m.session.Publish(msg.Outcome.Note)
		return m, nil

	case SearchResultMsg:
		if msg.Seq != m.loadSeq {
			log.Printf("dropping search result for stale selection (seq %d, now %d)", msg.Seq, m.loadSeq)
			return m, nil
		}
		m.querying = false
		if msg.Outcome.OK {
			m.lines = msg.Outcome.Lines
			m.lastRaw = msg.Outcome.Items
		} else {
			m.lines = nil
		}
		m.session.Publish(msg.Outcome.Note)
		m.refreshResults()
		return m, nil

	case HistoryLoadedMsg:
		if msg.Err != nil {
			m.notes.Show(fmt.Sprintf("History error: %v", msg.Err), notify.Error, textdir.LTR)
			return m, nil
		}
		m.history = msg.Entries
		m.historyTotal = msg.Total
		m.historyList = m.historyList.SetItems(ConvertToItems(msg.Entries))
		return m, nil

	case ExportCompleteMsg:
		if msg.Err != nil {
			m.notes.Show(fmt.Sprintf("Export failed: %v", msg.Err), notify.Error, textdir.LTR)
			return m, nil
		}
		m.notes.Show(fmt.Sprintf("Exported %d rows to %s", msg.Rows, msg.Path), notify.Info, textdir.LTR)
		return m, nil

	case ClipboardCopiedMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, errNothingToCopy) {
				m.notes.Show(msgNothingToCopy, notify.Info, textdir.LTR)
			} else {
				m.notes.Show(fmt.Sprintf("Clipboard error: %v", msg.Err), notify.Error, textdir.LTR)
			}
			return m, nil
		}
		log.Printf("copied %d bytes to clipboard", len(msg.Text))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	if m.focus == FocusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// handleSaveComplete reloads the rows after a save, unless the table was
// changed while the save was in flight or an edit or add is under way.
// Then the saved values become the baseline in place and the newer work
// stays unsaved.
func (m Model) handleSaveComplete(msg SaveCompleteMsg) (Model, tea.Cmd) {
	m.saving = false
	if msg.Err != nil {
		m.notes.Show(saveReason(msg.Err), notify.Error, textdir.LTR)
		return m, nil
	}
	m.notes.Show(msgSaved, notify.Success, textdir.LTR)

	if msg.Selection != m.selection || m.table == nil || !m.table.Owns(msg.Checkpoint) {
		return m, nil
	}
	if !m.table.ChangedSince(msg.Checkpoint) && !m.editing && !m.showAdd {
		return m.loadRows(m.selection)
	}

	removed, err := m.table.Commit(msg.Checkpoint)
	if err != nil {
		log.Printf("commit save: %v", err)
		return m, nil
	}
	m = m.shiftCursor(removed)
	log.Printf("table changed during save, committed in place (%d deleted rows dropped)", len(removed))
	return m, nil
}

// shiftCursor keeps the cursor on the same row after rows were dropped.
// An edit of a dropped row is abandoned.
func (m Model) shiftCursor(removed []int) Model {
	before := 0
	for _, i := range removed {
		switch {
		case i < m.cursor:
			before++
		case i == m.cursor && m.editing:
			m.editing = false
			m.cellEditor.Blur()
			m = m.resize()
		}
	}
	m.cursor -= before
	if n := m.table.Len(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

func (m Model) handleCatalogLoaded(msg CatalogLoadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.loading = false
		m.notes.Show(fmt.Sprintf("Could not load languages: %v", msg.Err), notify.Error, textdir.LTR)
		return m, nil
	}
	m.catalog = msg.Catalog

	prev := catalog.Selection{PatternType: m.config.DefaultPatternType}
	sel, err := m.catalog.Select(prev, m.config.DefaultLanguage)
	if errors.Is(err, catalog.ErrUnknownLanguage) {
		log.Printf("default language: %v", err)
		sel, err = m.catalog.Select(prev, "")
	}
	if err != nil {
		m.loading = false
		m.notes.Show(err.Error(), notify.Error, textdir.LTR)
		return m, nil
	}
	return m.loadRows(sel)
}

func (m Model) handleRowsLoaded(msg RowsLoadedMsg) (Model, tea.Cmd) {
	if msg.Seq != m.loadSeq {
		log.Printf("dropping rows for %s (seq %d, now %d)", msg.Selection, msg.Seq, m.loadSeq)
		return m, nil
	}
	m.loading = false
	if msg.Err != nil {
		m.notes.Show(fmt.Sprintf("Could not load patterns: %v", msg.Err), notify.Error, textdir.LTR)
		return m, nil
	}
	m.table = patterns.New(msg.Rows.Fields, msg.Rows.Records)
	m.cursor, m.column = 0, 0
	return m, nil
}

// selectLanguage switches language, keeping the pattern type when the new
// language has one of the same name
func (m Model) selectLanguage(next catalog.Selection, err error) (Model, tea.Cmd) {
	if err != nil {
		m.notes.Show(err.Error(), notify.Error, textdir.LTR)
		return m, nil
	}
	if next == m.selection {
		return m, nil
	}
	return m.loadRows(next)
}

// saveReason is the user-facing text of a failed save
func saveReason(err error) string {
	var se *api.SaveError
	if errors.As(err, &se) {
		return se.Reason
	}
	return api.DefaultSaveReason
}
