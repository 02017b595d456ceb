// internal/ui/model_helpers.go
// Small helper functions used across the UI layer
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// matchKey returns true if the key message matches any of the provided key strings
func matchKey(msg tea.KeyMsg, keys []string) bool {
	keyStr := msg.String()
	for _, k := range keys {
		if k == keyStr {
			return true
		}
	}
	return false
}

// isTextKey reports whether the key types text into a focused input
func isTextKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
}

// keyLabel joins the bindings of an action for display
func keyLabel(keys []string) string {
	return strings.Join(keys, "/")
}

// firstKey returns the first binding of an action, or def
func firstKey(keys []string, def string) string {
	if len(keys) > 0 {
		return keys[0]
	}
	return def
}

// truncate shortens s to maxWidth terminal cells
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
