package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/ui/icons"
)

func (m Model) renderStatusBar() string {
	var parts []string

	// 1. Mode
	modeStyle := ParseModeStyle
	if m.session.Mode() == query.SearchMode {
		modeStyle = SearchModeStyle
	}
	parts = append(parts, modeStyle.Render(strings.ToUpper(string(m.session.Mode()))))

	// 2. Selection and its dependencies
	if !m.selection.IsZero() {
		parts = append(parts, SelectionStyle.Render(m.selection.String()))
		if deps := m.catalog.Dependencies(m.selection); len(deps) > 0 {
			parts = append(parts, DependencyStyle.Render("needs "+strings.Join(deps, ", ")))
		}
	}

	// 3. Row counts and unsaved marker
	if m.table != nil {
		live, deleted, modified := m.table.Counts()
		counts := fmt.Sprintf("%d rows", live)
		if deleted > 0 {
			counts += fmt.Sprintf(" · %d deleted", deleted)
		}
		if modified > 0 {
			counts += fmt.Sprintf(" · %d modified", modified)
		}
		parts = append(parts, DependencyStyle.Render(counts))
		if m.table.Modified() {
			parts = append(parts, UnsavedStyle.Render(icons.IconUnsaved+" unsaved"))
		}
	}

	// 4. Loading indicator
	if m.busy() {
		label := "Running..."
		switch {
		case m.loading:
			label = "Loading..."
		case m.saving:
			label = "Saving..."
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(AccentColor()).Padding(0, 1).Render(m.spinner.View()+label))
	}

	left := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	// 5. Notification fills the rest, aligned by its direction
	if m.note != nil {
		room := m.width - lipgloss.Width(left)
		if room > 4 {
			style := NotificationStyle(m.note.Severity).Width(room)
			text := icons.ForSeverity(m.note.Severity) + " " + m.note.Message
			if m.note.Direction == textdir.RTL {
				style = style.Align(lipgloss.Right)
			}
			left += style.Render(truncate(text, room-2))
		}
	}

	return StatusBarStyle.Width(m.width).MaxHeight(1).Render(left)
}

// renderHints shows the most useful keys for the focused pane
func (m Model) renderHints() string {
	k := m.config.Keys
	var hints []string
	switch {
	case !m.popupStack.IsEmpty():
		hints = []string{"esc:close"}
	case m.editing:
		hints = []string{"enter:apply", "esc:cancel"}
	case m.focus == FocusInput:
		hints = []string{
			firstKey(k.Run, "ctrl+r") + ":run",
			firstKey(k.ToggleMode, "ctrl+t") + ":mode",
			firstKey(k.SwitchFocus, "tab") + ":table",
			firstKey(k.History, "ctrl+h") + ":history",
			"esc:table",
		}
	default:
		hints = []string{
			firstKey(k.Edit, "enter") + ":edit",
			firstKey(k.Add, "a") + ":add",
			firstKey(k.Delete, "d") + ":delete",
			firstKey(k.Save, "ctrl+s") + ":save",
			firstKey(k.NextLanguage, "L") + ":language",
			firstKey(k.NextPattern, "P") + ":patterns",
			firstKey(k.SwitchFocus, "tab") + ":input",
			"?:help",
		}
	}
	return MetaStyle.Render(truncate(strings.Join(hints, icons.IconSeparator), m.width))
}
