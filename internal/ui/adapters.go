package ui

import (
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/history"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/ui/components/historylist"
)

// HistoryItemAdapter wraps HistoryEntry to implement historylist.Item
type HistoryItemAdapter struct {
	entry history.HistoryEntry
}

// NewHistoryItemAdapter creates a new adapter
func NewHistoryItemAdapter(entry history.HistoryEntry) HistoryItemAdapter {
	return HistoryItemAdapter{entry: entry}
}

func (a HistoryItemAdapter) ID() int64                      { return a.entry.ID }
func (a HistoryItemAdapter) Input() string                  { return a.entry.Input }
func (a HistoryItemAdapter) InputPreview(maxLen int) string { return a.entry.InputPreview(maxLen) }
func (a HistoryItemAdapter) Mode() string                   { return a.entry.Mode }
func (a HistoryItemAdapter) Status() string                 { return a.entry.Status }
func (a HistoryItemAdapter) Summary() string                { return a.entry.Summary }
func (a HistoryItemAdapter) DurationMs() int64              { return a.entry.DurationMs }
func (a HistoryItemAdapter) ExecutedAtFormatted() string {
	return a.entry.ExecutedAt.Format("2006-01-02 15:04")
}

// Entry returns the underlying HistoryEntry
func (a HistoryItemAdapter) Entry() history.HistoryEntry { return a.entry }

// ConvertToItems converts a slice of HistoryEntry to historylist.Item slice
func ConvertToItems(entries []history.HistoryEntry) []historylist.Item {
	items := make([]historylist.Item, len(entries))
	for i, e := range entries {
		items[i] = NewHistoryItemAdapter(e)
	}
	return items
}
