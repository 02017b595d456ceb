// internal/history/entry.go
package history

import "time"

// Status values of an entry
const (
	StatusMatched = "matched"
	StatusNoMatch = "no_match"
	StatusError   = "error"
)

// HistoryEntry represents a single parse or search run
type HistoryEntry struct {
	ID          int64
	Language    string
	PatternType string
	Mode        string // "parse", "search"
	Input       string
	ExecutedAt  time.Time
	DurationMs  int64
	Status      string
	Summary     string // notification shown, or match count for searches
}

// InputPreview returns the input on one line, truncated to maxLen
func (e *HistoryEntry) InputPreview(maxLen int) string {
	q := []rune(e.Input)
	for i, r := range q {
		if r == '\n' {
			q[i] = '⏎'
		}
	}
	if len(q) > maxLen && maxLen > 3 {
		return string(q[:maxLen-3]) + "..."
	}
	return string(q)
}
