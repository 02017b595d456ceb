// internal/ui/render.go
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
	eztable "github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/ui/components/table"
)

// View renders the model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderTitle(),
		m.renderTable(),
	}
	if m.editing {
		sections = append(sections, m.cellEditor.View())
	}
	sections = append(sections, m.renderInput())
	if m.session.Mode() == query.SearchMode {
		sections = append(sections, PanelTitleStyle.Render("Results"), m.results.View())
	}

	main := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Pin the status bar and hints to the bottom
	used := lipgloss.Height(main) + 2
	if pad := m.height - used; pad > 0 {
		main += strings.Repeat("\n", pad)
	}
	main = lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar(), m.renderHints())

	return m.renderPopups(main)
}

func (m Model) renderTitle() string {
	title := PanelTitleStyle.Render("Historic dates · patterns")
	if m.selection.IsZero() {
		return title
	}
	return title + " " + MetaStyle.Render(m.catalog.Describe(m.selection))
}

func (m Model) renderTable() string {
	if m.table == nil {
		if m.loading {
			return MetaStyle.Render(m.spinner.View() + " Loading patterns...")
		}
		return MetaStyle.Render("No patterns loaded.")
	}
	if m.table.Len() == 0 {
		return MetaStyle.Render("No patterns yet. Press " + firstKey(m.config.Keys.Add, "a") + " to add one.")
	}

	field, _ := m.currentField()
	grid := eztable.FromPatterns(m.table, eztable.Options{
		Cursor:      m.cursor,
		ColumnFocus: field,
		PageSize:    m.pageSize(),
		Focused:     m.focus == FocusTable && !m.editing,
	})
	return grid.View()
}

func (m Model) renderInput() string {
	label := "Parse"
	if m.session.Mode() == query.SearchMode {
		label = "Search"
	}
	style := InputStyle
	if m.focus == FocusInput {
		style = InputFocusedStyle
	}
	return style.Width(max(m.width-2, 10)).Render(PromptStyle.Render(label) + "\n" + m.input.View())
}
