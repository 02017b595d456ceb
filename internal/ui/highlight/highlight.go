// Package highlight colors engine responses for the raw response popup.
package highlight

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	formatter = "terminal256"
	style     = "nord"
)

// Indent pretty-prints a JSON document. Input that is not valid JSON is
// returned unchanged.
func Indent(src []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, src, "", "  "); err != nil {
		return string(src)
	}
	return buf.String()
}

// JSON returns src indented and syntax highlighted with ANSI colors. On a
// lexer or formatter failure the indented text is returned plain.
func JSON(src []byte) string {
	text := Indent(src)
	var out strings.Builder
	if err := quick.Highlight(&out, text, "json", formatter, style); err != nil {
		return text
	}
	return strings.TrimRight(out.String(), "\n")
}

// Value marshals v and highlights it like JSON
func Value(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return err.Error()
	}
	return JSON(data)
}
