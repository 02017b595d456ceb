package api

import (
	"encoding/json"
	"fmt"
)

// Header is the fixed column order the server expects on save
var Header = []string{"type", "pattern", "value"}

// Rows is a pattern matrix split into its header and field-keyed records
type Rows struct {
	Fields  []string
	Records []map[string]string
}

// ParseResult is the outcome of a parse request. An empty Expression means
// no pattern matched.
type ParseResult struct {
	Expression string `json:"expression"`
	Evaluated  string `json:"evaluated"`
	Error      bool   `json:"error"`
}

// Match is one annotation the engine attached to a piece of text
type Match struct {
	Parsed string `json:"parsed"`
	Eval   string `json:"eval"`
}

// SearchItem is a span of the searched text, possibly spanning several lines
type SearchItem struct {
	Text    string  `json:"text"`
	Matches []Match `json:"matches,omitempty"`
}

// SearchResult holds either the matched items or, when Error is set, a message
type SearchResult struct {
	Items   []SearchItem
	Message string
	Error   bool
}

type queryRequest struct {
	Input string     `json:"input"`
	Rows  [][]string `json:"rows"`
}

type saveRequest struct {
	Rows [][]string `json:"rows"`
}

type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type parseResponse struct {
	Expression *string `json:"expression"`
	Evaluated  *string `json:"evaluated"`
	Error      bool    `json:"error"`
}

type searchResponse struct {
	Result json.RawMessage `json:"result"`
	Error  bool            `json:"error"`
}

// decode resolves the union-typed result field: a list of items on success,
// a message string on failure.
func (r searchResponse) decode() (SearchResult, error) {
	if r.Error {
		var msg string
		if err := json.Unmarshal(r.Result, &msg); err != nil {
			msg = string(r.Result)
		}
		return SearchResult{Message: msg, Error: true}, nil
	}
	var items []SearchItem
	if len(r.Result) > 0 && string(r.Result) != "null" {
		if err := json.Unmarshal(r.Result, &items); err != nil {
			return SearchResult{}, fmt.Errorf("decode search result: %w", err)
		}
	}
	return SearchResult{Items: items}, nil
}
