package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

func (m Model) renderHelpPopup(main string) string {
	var content strings.Builder

	content.WriteString(PopupTitleStyle.Render("Keyboard Shortcuts"))
	content.WriteString("\n\n")

	keys := m.config.Keys

	section := func(name string, bindings []struct{ key, desc string }) {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(HighlightColor()).Render(name) + "\n")
		for _, b := range bindings {
			content.WriteString(fmt.Sprintf("  %s %s\n", KeyStyle.Render(b.key), KeyDescStyle.Render(b.desc)))
		}
		content.WriteString("\n")
	}

	section("Patterns", []struct{ key, desc string }{
		{"↑/↓/←/→", "Move (also h/j/k/l)"},
		{keyLabel(keys.Edit), "Edit cell"},
		{keyLabel(keys.Add), "Add pattern"},
		{keyLabel(keys.Delete), "Delete / restore row"},
		{keyLabel(keys.Save), "Save patterns"},
		{keyLabel(keys.Reload), "Reload, dropping edits"},
		{keyLabel(keys.Export), "Export to CSV"},
	})

	section("Selection", []struct{ key, desc string }{
		{keyLabel(keys.NextLanguage), "Next language"},
		{keyLabel(keys.NextPattern), "Next pattern type"},
	})

	section("Query", []struct{ key, desc string }{
		{keyLabel(keys.SwitchFocus), "Focus table / input"},
		{keyLabel(keys.Run), "Parse or search"},
		{keyLabel(keys.ToggleMode), "Toggle parse / search"},
		{keyLabel(keys.History), "Query history"},
		{keyLabel(keys.Raw), "Show last response"},
		{keyLabel(keys.Copy), "Copy result"},
	})

	section("Other", []struct{ key, desc string }{
		{"esc", "Close popup"},
		{keyLabel(keys.Exit), "Quit"},
	})

	content.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Esc or q to close"))

	popupBox := PopupStyle.
		Width(56).
		MaxHeight(m.height - 2).
		Render(content.String())

	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}
