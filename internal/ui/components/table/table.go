// Package table renders a pattern table with bubble-table.
package table

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"
	"github.com/mattn/go-runewidth"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/patterns"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

// Nord colors
const (
	ColorForeground = "#D8DEE9" // Nord4: Light gray
	ColorComment    = "#4C566A" // Nord3: Dark gray
	ColorGreen      = "#A3BE8C" // Nord14: Green
	ColorOrange     = "#D08770" // Nord12: Orange
	ColorRed        = "#BF616A" // Nord11: Red
	ColorYellow     = "#EBCB8B" // Nord13: Yellow
	ColorTeal       = "#8FBCBB" // Nord7: Teal
)

const (
	// indexKey is the row number column, never a pattern field
	indexKey = "__row__"
	maxWidth = 40
	minWidth = 6
)

// Options controls what the grid shows
type Options struct {
	Cursor      int
	ColumnFocus string
	PageSize    int
	Focused     bool
}

// New creates a new bubble-table with the Nord theme
func New(cols []bbtable.Column) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorForeground))).
		HeaderStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorTeal)).
			Bold(true)).
		HighlightStyle(lipgloss.NewStyle().
			Background(lipgloss.Color("#3B4252")).
			Bold(true)).
		BorderRounded()
}

// FromPatterns builds the grid of a pattern table. Modified cells are
// marked, deleted rows struck through, and RTL cells right aligned.
func FromPatterns(t *patterns.Table, opts Options) bbtable.Model {
	if t == nil {
		return bbtable.New(nil)
	}

	widths := columnWidths(t)
	cols := []bbtable.Column{bbtable.NewColumn(indexKey, "#", digits(t.Len())+2)}
	for _, c := range t.Columns() {
		title := c.Header
		if c.Field == opts.ColumnFocus {
			title = "▸" + title
		}
		cols = append(cols, bbtable.NewColumn(c.Field, title, widths[c.Field]))
	}

	rows := make([]bbtable.Row, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		r, _ := t.Row(i)
		data := bbtable.RowData{
			indexKey: bbtable.NewStyledCell(rowMarker(i, r), lipgloss.NewStyle().Foreground(lipgloss.Color(ColorComment))),
		}
		for _, c := range t.Columns() {
			cell := r.Fields[c.Field]
			data[c.Field] = bbtable.NewStyledCell(cell.Value, CellStyle(cell, r.Deleted))
		}
		rows = append(rows, bbtable.NewRow(data))
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	return New(cols).
		WithRows(rows).
		WithPageSize(pageSize).
		Focused(opts.Focused).
		WithHighlightedRow(opts.Cursor)
}

// CellStyle returns the style of a pattern cell
func CellStyle(c *patterns.Cell, deleted bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForeground))
	if c.Direction == textdir.RTL {
		style = style.Align(lipgloss.Right)
	}
	switch {
	case deleted:
		style = style.Foreground(lipgloss.Color(ColorComment)).Strikethrough(true)
	case c.Modified:
		style = style.Foreground(lipgloss.Color(ColorYellow)).Italic(true)
	}
	return style
}

func rowMarker(i int, r *patterns.Row) string {
	n := strconv.Itoa(i + 1)
	switch {
	case r.Deleted:
		return n + "-"
	case r.Added:
		return n + "+"
	case r.Modified():
		return n + "*"
	}
	return n
}

func columnWidths(t *patterns.Table) map[string]int {
	widths := make(map[string]int)
	for _, c := range t.Columns() {
		widths[c.Field] = runewidth.StringWidth(c.Header) + 1
	}
	for i := 0; i < t.Len(); i++ {
		r, _ := t.Row(i)
		for field, cell := range r.Fields {
			if w := runewidth.StringWidth(cell.Value); w > widths[field] {
				widths[field] = w
			}
		}
	}
	for f, w := range widths {
		w += 2
		if w > maxWidth {
			w = maxWidth
		}
		if w < minWidth {
			w = minWidth
		}
		widths[f] = w
	}
	return widths
}

func digits(n int) int {
	return len(strconv.Itoa(n))
}
