package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/history"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
)

// runQueryCmd parses or searches the current input against the current
// table. The session, selection and matrix are captured by value.
func (m Model) runQueryCmd() tea.Cmd {
	session := m.session
	sel := m.selection
	matrix := m.table.CanonicalMatrix()
	seq := m.loadSeq
	store := m.historyStore
	timeout := m.config.RequestTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		entry := &history.HistoryEntry{
			Language:    sel.Language,
			PatternType: sel.PatternType,
			Mode:        string(session.Mode()),
			Input:       session.Input(),
		}

		if session.Mode() == query.ParseMode {
			out := session.TryParse(ctx, sel, matrix)
			entry.Summary = out.Message
			switch {
			case out.Matched:
				entry.Status = history.StatusMatched
			case out.Result.Error:
				entry.Status = history.StatusError
			default:
				entry.Status = history.StatusNoMatch
			}
			recordHistory(store, entry, start)
			return ParseResultMsg{Seq: seq, Outcome: out, Entry: entry}
		}

		out := session.TrySearch(ctx, sel, matrix)
		if out.OK {
			n := query.CountMatches(out.Lines)
			entry.Summary = fmt.Sprintf("%d matches", n)
			entry.Status = history.StatusMatched
			if n == 0 {
				entry.Status = history.StatusNoMatch
			}
		} else {
			entry.Status = history.StatusError
			entry.Summary = out.Message()
		}
		recordHistory(store, entry, start)
		return SearchResultMsg{Seq: seq, Outcome: out, Entry: entry}
	}
}

// recordHistory stores a finished run. History is best effort.
func recordHistory(store *history.Store, entry *history.HistoryEntry, start time.Time) {
	entry.ExecutedAt = time.Now()
	entry.DurationMs = time.Since(start).Milliseconds()
	if store == nil {
		return
	}
	if err := store.Add(entry); err != nil {
		log.Printf("history add: %v", err)
	}
}
