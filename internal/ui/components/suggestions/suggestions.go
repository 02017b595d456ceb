// Package suggestions provides the dropdown of known pattern types shown
// while adding a row.
package suggestions

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the suggestions dropdown
type Styles struct {
	Box      lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4C566A")).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D8DEE9")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2E3440")).
			Background(lipgloss.Color("#88C0D0")),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4C566A")).
			Italic(true),
	}
}

// Model represents the suggestions state. No item is selected until the
// user moves into the list.
type Model struct {
	items    []string
	selected int
	maxShow  int
	styles   Styles
}

// New creates a new suggestions model
func New() Model {
	return Model{
		selected: -1,
		maxShow:  5,
		styles:   DefaultStyles(),
	}
}

// SetItems sets the suggestion items and resets the selection
func (m Model) SetItems(items []string) Model {
	m.items = items
	m.selected = -1
	return m
}

// SetStyles sets custom styles
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	return m
}

// Items returns all items
func (m Model) Items() []string {
	return m.items
}

// SelectedItem returns the selected item, or "" when none is selected
func (m Model) SelectedItem() string {
	if m.selected >= 0 && m.selected < len(m.items) {
		return m.items[m.selected]
	}
	return ""
}

// MoveUp moves selection up; moving above the first item deselects
func (m Model) MoveUp() Model {
	if m.selected >= 0 {
		m.selected--
	}
	return m
}

// MoveDown moves selection down
func (m Model) MoveDown() Model {
	if m.selected < len(m.items)-1 {
		m.selected++
	}
	return m
}

// View renders the suggestions dropdown
func (m Model) View() string {
	if len(m.items) == 0 {
		return m.styles.Empty.Render("new type")
	}

	start := 0
	if m.selected > m.maxShow/2 {
		start = m.selected - m.maxShow/2
	}
	end := start + m.maxShow
	if end > len(m.items) {
		end = len(m.items)
		start = max(end-m.maxShow, 0)
	}

	var views []string
	for i := start; i < end; i++ {
		style := m.styles.Item
		prefix := "  "
		if i == m.selected {
			style = m.styles.Selected
			prefix = "> "
		}
		views = append(views, style.Render(prefix+m.items[i]))
	}
	return m.styles.Box.Render(strings.Join(views, "\n"))
}
