package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/api"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/query"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/ui/icons"
)

// refreshResults re-renders the search lines into the results viewport
func (m *Model) refreshResults() {
	if len(m.lines) == 0 {
		m.results.SetContent(MetaStyle.Render("No search results yet."))
		return
	}
	rendered := make([]string, len(m.lines))
	for i, l := range m.lines {
		rendered[i] = renderLine(l, m.results.Width)
	}
	m.results.SetContent(strings.Join(rendered, "\n"))
}

// renderLine renders one result line. RTL lines are right aligned.
func renderLine(l query.Line, width int) string {
	var b strings.Builder
	for _, f := range l {
		if !f.Matched() {
			b.WriteString(f.Text)
			continue
		}
		b.WriteString(MatchStyle.Render(f.Text))
		b.WriteString(AnnotationStyle.Render(" " + annotation(f.Matches)))
	}

	style := lipgloss.NewStyle()
	if width > 0 {
		style = style.Width(width)
	}
	if l.Direction() == textdir.RTL {
		style = style.Align(lipgloss.Right)
	}
	return style.Render(b.String())
}

// annotation lists what each match parsed and evaluated to
func annotation(matches []api.Match) string {
	parts := make([]string, len(matches))
	for i, mt := range matches {
		parts[i] = mt.Parsed + " " + textdir.Classify(mt.Eval).Arrow() + " " + mt.Eval
	}
	return icons.IconMatch + strings.Join(parts, "; ") + icons.IconMatchEnd
}
