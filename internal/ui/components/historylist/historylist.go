// Package historylist provides a scrollable list of past parse and search
// runs with selection.
package historylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item represents a single list item
type Item interface {
	ID() int64
	Input() string
	InputPreview(maxLen int) string
	Mode() string
	Status() string
	Summary() string
	DurationMs() int64
	ExecutedAtFormatted() string
}

// Styles for the list
type Styles struct {
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Mode        lipgloss.Style
	Meta        lipgloss.Style
	Summary     lipgloss.Style
	SuccessIcon lipgloss.Style
	ErrorIcon   lipgloss.Style
	Faint       lipgloss.Style
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	textFaint := lipgloss.Color("#4C566A")
	return Styles{
		Item:        lipgloss.NewStyle().PaddingLeft(1),
		Selected:    lipgloss.NewStyle().PaddingLeft(1).Background(lipgloss.Color("#3B4252")),
		Mode:        lipgloss.NewStyle().Foreground(lipgloss.Color("#88C0D0")).Bold(true),
		Meta:        lipgloss.NewStyle().Foreground(textFaint),
		Summary:     lipgloss.NewStyle().Foreground(lipgloss.Color("#D8DEE9")),
		SuccessIcon: lipgloss.NewStyle().Foreground(lipgloss.Color("#A3BE8C")),
		ErrorIcon:   lipgloss.NewStyle().Foreground(lipgloss.Color("#BF616A")),
		Faint:       lipgloss.NewStyle().Foreground(textFaint),
	}
}

// Model represents the list state
type Model struct {
	items    []Item
	selected int
	width    int
	height   int
	viewport viewport.Model
	styles   Styles
}

// New creates a new list model
func New() Model {
	return Model{
		viewport: viewport.New(60, 10),
		styles:   DefaultStyles(),
	}
}

// SetItems replaces the items in the list
func (m Model) SetItems(items []Item) Model {
	m.items = items
	if m.selected >= len(items) {
		m.selected = 0
	}
	m.updateViewport()
	m.viewport.GotoTop()
	return m
}

// SetSize sets the component dimensions
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateViewport()
	return m
}

// SetStyles sets custom styles
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	m.updateViewport()
	return m
}

// Len returns the number of items
func (m Model) Len() int {
	return len(m.items)
}

// Selected returns the currently selected index
func (m Model) Selected() int {
	return m.selected
}

// SelectedItem returns the currently selected item
func (m Model) SelectedItem() Item {
	if m.selected >= 0 && m.selected < len(m.items) {
		return m.items[m.selected]
	}
	return nil
}

// MoveUp moves selection up
func (m Model) MoveUp() Model {
	if m.selected > 0 {
		m.selected--
		m.updateViewport()
		m = m.ensureVisible()
	}
	return m
}

// MoveDown moves selection down
func (m Model) MoveDown() Model {
	if m.selected < len(m.items)-1 {
		m.selected++
		m.updateViewport()
		m = m.ensureVisible()
	}
	return m
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the list
func (m Model) View() string {
	if len(m.items) == 0 {
		return m.styles.Faint.Render("No queries run for this pattern set yet.")
	}
	return m.viewport.View()
}

func (m *Model) updateViewport() {
	sections := make([]string, 0, len(m.items))
	for i := range m.items {
		sections = append(sections, m.renderItem(i))
	}
	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderItem renders a single item as an input line and a meta line
func (m *Model) renderItem(i int) string {
	item := m.items[i]

	style := m.styles.Item
	if i == m.selected {
		style = m.styles.Selected
	}
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}

	icon, iconStyle := "✓", m.styles.SuccessIcon
	if item.Status() != "matched" {
		icon, iconStyle = "✗", m.styles.ErrorIcon
	}

	var content strings.Builder
	content.WriteString(iconStyle.Render(icon) + " ")
	content.WriteString(m.styles.Mode.Render(fmt.Sprintf("%-6s", item.Mode())) + " ")
	content.WriteString(item.InputPreview(max(m.width-14, 10)))
	content.WriteString("\n")

	meta := fmt.Sprintf("   %s | %dms", item.ExecutedAtFormatted(), item.DurationMs())
	content.WriteString(m.styles.Meta.Render(meta))
	if s := item.Summary(); s != "" {
		content.WriteString(m.styles.Meta.Render(" | ") + m.styles.Summary.Render(s))
	}

	return style.Render(content.String())
}

// ensureVisible keeps the selected item in view
func (m Model) ensureVisible() Model {
	if len(m.items) == 0 {
		return m
	}

	top := 0
	for i := 0; i < m.selected; i++ {
		top += lipgloss.Height(m.renderItem(i))
	}
	bottom := top + lipgloss.Height(m.renderItem(m.selected))

	vTop := m.viewport.YOffset
	vBottom := vTop + m.viewport.Height

	if top < vTop {
		m.viewport.SetYOffset(top)
	} else if bottom > vBottom {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
	return m
}
