package ui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
)

var errNothingToCopy = errors.New(msgNothingToCopy)

// copyText returns what the copy key puts on the clipboard: the result
// lines in search mode, else the current notification
func (m Model) copyText() string {
	if m.session.Mode() == query.SearchMode && len(m.lines) > 0 {
		texts := make([]string, len(m.lines))
		for i, l := range m.lines {
			texts[i] = l.Text()
		}
		return strings.Join(texts, "\n")
	}
	if m.note != nil {
		return m.note.Message
	}
	return ""
}

// copyToClipboardCmd copies text to the system clipboard
func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return ClipboardCopiedMsg{Err: errNothingToCopy}
		}
		if err := clipboard.WriteAll(text); err != nil {
			return ClipboardCopiedMsg{Err: err}
		}
		return ClipboardCopiedMsg{Text: text}
	}
}
