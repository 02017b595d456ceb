// Package query runs parse and search requests for the current pattern
// table and shapes the results for display.
package query

import (
	"context"
	"strings"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/api"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/catalog"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/notify"
	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

// NoMatchMessage is shown when a parse finds no pattern
const NoMatchMessage = "No pattern matched!"

// parseSeparator stands in for a newline while in parse mode
const parseSeparator = "   "

// Mode selects how input is sent to the engine
type Mode string

const (
	ParseMode  Mode = "parse"
	SearchMode Mode = "search"
)

// Gateway is the part of the engine client a session needs
type Gateway interface {
	Parse(ctx context.Context, sel catalog.Selection, input string, matrix [][]string) api.ParseResult
	Search(ctx context.Context, sel catalog.Selection, input string, matrix [][]string) api.SearchResult
}

// ParseOutcome is what a parse produced and what was shown for it
type ParseOutcome struct {
	Result  api.ParseResult
	Matched bool
	Message string
	Note    *notify.Notification
}

// Session holds the query input and mode. It is a value type so a copy
// can be handed to a running request.
type Session struct {
	gateway Gateway
	notes   *notify.Channel
	mode    Mode
	input   string
}

// NewSession creates a session in parse mode
func NewSession(gw Gateway, notes *notify.Channel) Session {
	return Session{gateway: gw, notes: notes, mode: ParseMode}
}

// Mode returns the current mode
func (s Session) Mode() Mode {
	return s.mode
}

// Input returns the current input text
func (s Session) Input() string {
	return s.input
}

// SetInput replaces the input text
func (s *Session) SetInput(input string) {
	s.input = input
}

// SetMode switches mode, converting the input between its single-line
// and multi-line forms
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	switch m {
	case ParseMode:
		s.input = ToParseInput(s.input)
	case SearchMode:
		s.input = ToSearchInput(s.input)
	default:
		return
	}
	s.mode = m
}

// ToggleMode switches between parse and search
func (s *Session) ToggleMode() {
	if s.mode == ParseMode {
		s.SetMode(SearchMode)
		return
	}
	s.SetMode(ParseMode)
}

// ToParseInput joins lines with a run of three spaces. Lossy: literal
// three-space runs become newlines on the way back.
func ToParseInput(input string) string {
	return strings.Join(strings.Split(input, "\n"), parseSeparator)
}

// ToSearchInput splits three-space runs back into lines
func ToSearchInput(input string) string {
	return strings.Join(strings.Split(input, parseSeparator), "\n")
}

// TryParse parses the input with the given rows. The notification for
// the outcome is returned in Note and is not published.
func (s Session) TryParse(ctx context.Context, sel catalog.Selection, matrix [][]string) ParseOutcome {
	res := s.gateway.Parse(ctx, sel, s.input, matrix)

	if res.Expression == "" {
		return ParseOutcome{
			Result:  res,
			Message: NoMatchMessage,
			Note:    &notify.Notification{Message: NoMatchMessage, Severity: notify.Error, Direction: textdir.LTR},
		}
	}

	dir := textdir.LTR
	if res.Evaluated != "" {
		dir = textdir.Classify(res.Evaluated)
	}
	msg := res.Expression + " " + dir.Arrow() + " " + res.Evaluated
	return ParseOutcome{
		Result:  res,
		Matched: true,
		Message: msg,
		Note:    &notify.Notification{Message: msg, Severity: notify.Success, Direction: dir},
	}
}

// SearchOutcome is what a search produced. Note is nil when the search
// succeeded, which clears the current notification.
type SearchOutcome struct {
	Lines []Line
	Items []api.SearchItem
	OK    bool
	Note  *notify.Notification
}

// Message returns the failure reason, if any
func (o SearchOutcome) Message() string {
	if o.Note == nil {
		return ""
	}
	return o.Note.Message
}

// TrySearch searches the input and returns the matches laid out per line
func (s Session) TrySearch(ctx context.Context, sel catalog.Selection, matrix [][]string) SearchOutcome {
	res := s.gateway.Search(ctx, sel, s.input, matrix)
	if res.Error {
		return SearchOutcome{Note: &notify.Notification{Message: res.Message, Severity: notify.Error, Direction: textdir.LTR}}
	}
	return SearchOutcome{Lines: Reshape(res.Items), Items: res.Items, OK: true}
}

// Publish shows n on the session's channel, or clears it when n is nil.
// Callers publish only once they know the result is still current.
func (s Session) Publish(n *notify.Notification) {
	if s.notes == nil {
		return
	}
	if n == nil {
		s.notes.Clear()
		return
	}
	s.notes.Show(n.Message, n.Severity, n.Direction)
}

// CountMatches returns how many fragments carry annotations
func CountMatches(lines []Line) int {
	n := 0
	for _, l := range lines {
		for _, f := range l {
			if f.Matched() {
				n++
			}
		}
	}
	return n
}
