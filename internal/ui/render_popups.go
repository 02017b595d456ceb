package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// renderPopups composites the open popups over main, bottom first
func (m Model) renderPopups(main string) string {
	if m.showHistory {
		main = m.renderHistoryPopup(main)
	}
	if m.showRaw {
		main = m.renderRawPopup(main)
	}
	if m.showAdd {
		main = m.renderAddPopup(main)
	}
	if m.showExport {
		main = m.renderExportPopup(main)
	}
	if m.showHelp {
		main = m.renderHelpPopup(main)
	}
	return main
}

func (m Model) popupWidth() int {
	return max(min(m.width-10, 100), 20)
}

func (m Model) renderAddPopup(main string) string {
	var content strings.Builder
	content.WriteString(PopupTitleStyle.Render("Add pattern"))
	content.WriteString("\n\n")

	for i, field := range m.addFields {
		content.WriteString(FieldLabelStyle.Render(field))
		content.WriteString(m.addInputs[i].View())
		content.WriteString("\n")
		if i == m.addFocus && m.onTypeField() {
			content.WriteString(lipgloss.NewStyle().MarginLeft(10).Render(m.addSuggestions.View()))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(MetaStyle.Render("tab:next field • ↑/↓:suggestions • enter:add • esc:cancel"))

	popupBox := PopupStyle.Width(min(m.popupWidth(), 70)).Render(content.String())
	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}

func (m Model) renderHistoryPopup(main string) string {
	var content strings.Builder
	title := fmt.Sprintf("History · %s", m.selection)
	content.WriteString(PopupTitleStyle.Render(title))
	content.WriteString(" ")
	content.WriteString(MetaStyle.Render(fmt.Sprintf("(%d of %d runs)", len(m.history), m.historyTotal)))
	content.WriteString("\n\n")
	content.WriteString(m.historyFilter.View())
	content.WriteString("\n\n")
	content.WriteString(m.historyList.View())
	content.WriteString("\n\n")
	content.WriteString(MetaStyle.Render("↑/↓:select • enter:load • ctrl+d:delete • esc:close"))

	popupBox := PopupStyle.Width(m.popupWidth()).Render(content.String())
	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}

func (m Model) renderExportPopup(main string) string {
	var content strings.Builder
	content.WriteString(PopupTitleStyle.Render("Export patterns to CSV"))
	content.WriteString("\n\n")
	content.WriteString(m.exportInput.View())
	content.WriteString("\n\n")
	if m.config.ExportDir != "" {
		content.WriteString(MetaStyle.Render("Relative paths are saved under " + m.config.ExportDir))
		content.WriteString("\n")
	}
	content.WriteString(MetaStyle.Render("enter:export • esc:cancel"))

	popupBox := PopupStyle.Width(60).Render(content.String())
	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}

func (m Model) renderRawPopup(main string) string {
	var content strings.Builder
	content.WriteString(PopupTitleStyle.Render("Last response"))
	content.WriteString("\n\n")
	content.WriteString(m.rawView.View())
	content.WriteString("\n\n")
	content.WriteString(MetaStyle.Render(fmt.Sprintf("%3.f%% • ↑/↓:scroll • esc:close", m.rawView.ScrollPercent()*100)))

	popupBox := PopupStyle.Width(m.popupWidth()).Render(content.String())
	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}
