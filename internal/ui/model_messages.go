// internal/ui/model_messages.go
// Consolidated message types for Bubble Tea Update cycle
package ui

import (
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/api"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/catalog"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/history"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/patterns"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
)

// CatalogLoadedMsg is sent when the language catalog arrives
type CatalogLoadedMsg struct {
	Catalog catalog.Catalog
	Err     error
}

// RowsLoadedMsg is sent when a pattern matrix arrives. Seq identifies the
// fetch so responses for an abandoned selection can be dropped.
type RowsLoadedMsg struct {
	Selection catalog.Selection
	Seq       int
	Rows      api.Rows
	Err       error
}

// SaveCompleteMsg is sent when a save finishes
type SaveCompleteMsg struct {
	Selection  catalog.Selection
	Rows       int
	Checkpoint *patterns.Checkpoint
	Err        error
}

// ParseResultMsg is sent when a parse finishes. Its notification is
// published only if Seq is still current.
type ParseResultMsg struct {
	Seq     int
	Outcome query.ParseOutcome
	Entry   *history.HistoryEntry
}

// SearchResultMsg is sent when a search finishes
type SearchResultMsg struct {
	Seq     int
	Outcome query.SearchOutcome
	Entry   *history.HistoryEntry
}

// NotificationMsg carries the latest value of the notification channel
type NotificationMsg struct {
	Note *notify.Notification
}

// HistoryLoadedMsg sent when history loads from SQLite
type HistoryLoadedMsg struct {
	Entries []history.HistoryEntry
	Total   int
	Err     error
}

// ExportCompleteMsg is sent when export is complete
type ExportCompleteMsg struct {
	Path string
	Rows int
	Err  error
}

// ClipboardCopiedMsg is sent when clipboard copy completes
type ClipboardCopiedMsg struct {
	Text string
	Err  error
}
