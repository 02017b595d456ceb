// Package catalog describes the languages served by the pattern engine and
// the pattern types available for each of them.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

var (
	ErrEmptyCatalog    = errors.New("catalog has no languages")
	ErrUnknownLanguage = errors.New("unknown language")
)

// PatternType is one named category of patterns of a language
type PatternType struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Eval         string   `json:"eval"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Display renders the pattern type as shown in the selector
func (p PatternType) Display() string {
	return fmt.Sprintf("%s {%s}", p.Name, p.Key)
}

// Language is a catalog entry
type Language struct {
	ID        string
	Display   string
	Direction textdir.Direction
	Patterns  []PatternType
}

// PatternType looks up a pattern type by name
func (l Language) PatternType(name string) (PatternType, bool) {
	for _, p := range l.Patterns {
		if p.Name == name {
			return p, true
		}
	}
	return PatternType{}, false
}

type languageJSON struct {
	Display   string        `json:"display"`
	Direction string        `json:"direction"`
	Patterns  []PatternType `json:"patterns"`
}

// Catalog lists languages in the order the server sent them
type Catalog struct {
	languages []Language
}

// New builds a catalog from languages in display order
func New(languages ...Language) Catalog {
	return Catalog{languages: languages}
}

// Languages returns all languages in order
func (c Catalog) Languages() []Language {
	return c.languages
}

// Len returns the number of languages
func (c Catalog) Len() int {
	return len(c.languages)
}

// Language looks up a language by id
func (c Catalog) Language(id string) (Language, bool) {
	for _, l := range c.languages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}

// UnmarshalJSON decodes the languages object keeping its key order,
// which decides the initial selection.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}

	var languages []Language
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected language key, got %v", tok)
		}

		var raw languageJSON
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("catalog: language %s: %w", id, err)
		}
		display := raw.Display
		if display == "" {
			display = id
		}
		languages = append(languages, Language{
			ID:        id,
			Display:   display,
			Direction: textdir.ParseDirection(raw.Direction),
			Patterns:  raw.Patterns,
		})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	c.languages = languages
	return nil
}

// MarshalJSON writes the catalog back in wire form, keeping order
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range c.languages {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(l.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(languageJSON{
			Display:   l.Display,
			Direction: l.Direction.String(),
			Patterns:  l.Patterns,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Selection identifies the pattern set being edited
type Selection struct {
	Language    string
	PatternType string
}

// IsZero reports whether nothing is selected yet
func (s Selection) IsZero() bool {
	return s.Language == "" || s.PatternType == ""
}

func (s Selection) String() string {
	return s.Language + "/" + s.PatternType
}

// Initial selects the first pattern type of the first language
func (c Catalog) Initial() (Selection, error) {
	return c.Select(Selection{}, "")
}

// Select switches to language, keeping the previously selected pattern
// type when the new language has one with the same name. An empty language
// picks the first one.
func (c Catalog) Select(prev Selection, language string) (Selection, error) {
	if len(c.languages) == 0 {
		return Selection{}, ErrEmptyCatalog
	}

	lang := c.languages[0]
	if language != "" {
		l, ok := c.Language(language)
		if !ok {
			return Selection{}, fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
		}
		lang = l
	}
	if len(lang.Patterns) == 0 {
		return Selection{}, fmt.Errorf("language %s has no pattern types", lang.ID)
	}

	sel := Selection{Language: lang.ID, PatternType: lang.Patterns[0].Name}
	if _, ok := lang.PatternType(prev.PatternType); ok {
		sel.PatternType = prev.PatternType
	}
	return sel, nil
}

// SelectPatternType changes the pattern type within the current language
func (c Catalog) SelectPatternType(sel Selection, name string) (Selection, error) {
	lang, ok := c.Language(sel.Language)
	if !ok {
		return sel, fmt.Errorf("%w: %s", ErrUnknownLanguage, sel.Language)
	}
	if _, ok := lang.PatternType(name); !ok {
		return sel, fmt.Errorf("language %s has no pattern type %s", sel.Language, name)
	}
	sel.PatternType = name
	return sel, nil
}

// NextLanguage cycles to the following language, wrapping around
func (c Catalog) NextLanguage(sel Selection) (Selection, error) {
	if len(c.languages) == 0 {
		return sel, ErrEmptyCatalog
	}
	next := 0
	for i, l := range c.languages {
		if l.ID == sel.Language {
			next = (i + 1) % len(c.languages)
			break
		}
	}
	return c.Select(sel, c.languages[next].ID)
}

// NextPatternType cycles to the following pattern type of the selected language
func (c Catalog) NextPatternType(sel Selection) (Selection, error) {
	lang, ok := c.Language(sel.Language)
	if !ok {
		return sel, fmt.Errorf("%w: %s", ErrUnknownLanguage, sel.Language)
	}
	if len(lang.Patterns) == 0 {
		return sel, fmt.Errorf("language %s has no pattern types", lang.ID)
	}
	next := 0
	for i, p := range lang.Patterns {
		if p.Name == sel.PatternType {
			next = (i + 1) % len(lang.Patterns)
			break
		}
	}
	sel.PatternType = lang.Patterns[next].Name
	return sel, nil
}

// Describe renders a selection for the status bar, e.g. "Hebrew › dates {date}"
func (c Catalog) Describe(sel Selection) string {
	lang, ok := c.Language(sel.Language)
	if !ok {
		return sel.String()
	}
	p, ok := lang.PatternType(sel.PatternType)
	if !ok {
		return lang.Display + " › " + sel.PatternType
	}
	return lang.Display + " › " + p.Display()
}

// Dependencies lists the pattern type names the selection's evaluation may reference
func (c Catalog) Dependencies(sel Selection) []string {
	lang, ok := c.Language(sel.Language)
	if !ok {
		return nil
	}
	p, ok := lang.PatternType(sel.PatternType)
	if !ok {
		return nil
	}
	return p.Dependencies
}
