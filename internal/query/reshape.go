package query

import (
	"strings"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/api"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

// Fragment is a piece of one display line with the annotations of the
// search item it came from
type Fragment struct {
	Text      string
	Matches   []api.Match
	Direction textdir.Direction
}

// Matched reports whether the fragment carries any annotation
func (f Fragment) Matched() bool {
	return len(f.Matches) > 0
}

// Line is one physical line of the searched text
type Line []Fragment

// Direction is RTL when any fragment of the line is
func (l Line) Direction() textdir.Direction {
	for _, f := range l {
		if f.Direction == textdir.RTL {
			return textdir.RTL
		}
	}
	return textdir.LTR
}

// Text joins the fragments of the line
func (l Line) Text() string {
	var b strings.Builder
	for _, f := range l {
		b.WriteString(f.Text)
	}
	return b.String()
}

// Reshape rewraps search items onto the lines they were found on. The
// first physical line of an item continues the open line; every following
// one starts a new line.
func Reshape(items []api.SearchItem) []Line {
	lines := []Line{{}}
	for _, item := range items {
		for i, text := range strings.Split(item.Text, "\n") {
			frag := Fragment{
				Text:      text,
				Matches:   item.Matches,
				Direction: textdir.Classify(text),
			}
			if i == 0 {
				last := len(lines) - 1
				lines[last] = append(lines[last], frag)
				continue
			}
			lines = append(lines, Line{frag})
		}
	}
	return lines
}
