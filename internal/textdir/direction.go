// Package textdir classifies text as right-to-left or left-to-right.
package textdir

import "strings"

// Direction is the writing direction of a piece of text
type Direction int

const (
	LTR Direction = iota
	RTL
)

// Bounds of the Hebrew Unicode block
const (
	hebrewFirst = '\u0590'
	hebrewLast  = '\u05FF'
)

// Classify returns RTL when text contains at least one character of the Hebrew block
func Classify(text string) Direction {
	for _, r := range text {
		if r >= hebrewFirst && r <= hebrewLast {
			return RTL
		}
	}
	return LTR
}

// ParseDirection reads the catalog form ("rtl"/"ltr"). Anything else is LTR.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "rtl") {
		return RTL
	}
	return LTR
}

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Arrow returns the glyph pointing in reading direction
func (d Direction) Arrow() string {
	if d == RTL {
		return "←"
	}
	return "→"
}
