// Package patterns holds the editable pattern table of one language and
// pattern type.
package patterns

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

// TypeField is the column rows are clustered by
const TypeField = "type"

var (
	ErrRowOutOfRange = errors.New("row out of range")
	ErrUnknownField  = errors.New("unknown field")
)

// Column is one field of the table, in server order
type Column struct {
	Header string
	Field  string
}

// Cell is an editable value. Direction always follows Value.
type Cell struct {
	Value     string
	Original  string
	Direction textdir.Direction
	Modified  bool
}

func newCell(value string) *Cell {
	return &Cell{
		Value:     value,
		Original:  value,
		Direction: textdir.Classify(value),
	}
}

// Row is a pattern record. Rows are identified by position only.
type Row struct {
	Fields  map[string]*Cell
	Deleted bool
	// Added rows were created locally and stay modified
	Added bool
}

// Value returns the current value of field, or "" when absent
func (r *Row) Value(field string) string {
	if c, ok := r.Fields[field]; ok {
		return c.Value
	}
	return ""
}

// Modified reports whether any cell of the row differs from what was loaded
func (r *Row) Modified() bool {
	for _, c := range r.Fields {
		if c.Modified {
			return true
		}
	}
	return false
}

// Table is the ordered, soft-deletable set of rows for one selection.
// Derived values are recomputed after every mutation.
type Table struct {
	columns []Column
	rows    []*Row

	matrix  [][]string
	types   []string
	version int
}

// New builds a table from the header fields and the field-keyed records
func New(fields []string, records []map[string]string) *Table {
	t := &Table{
		columns: make([]Column, len(fields)),
		rows:    make([]*Row, 0, len(records)),
	}
	for i, f := range fields {
		t.columns[i] = Column{Header: f, Field: f}
	}
	for _, rec := range records {
		row := &Row{Fields: make(map[string]*Cell, len(fields))}
		for _, f := range fields {
			row.Fields[f] = newCell(rec[f])
		}
		t.rows = append(t.rows, row)
	}
	t.recompute()
	return t
}

// Columns returns the table shape
func (t *Table) Columns() []Column {
	return t.columns
}

// HasField reports whether field is a column of the table
func (t *Table) HasField(field string) bool {
	for _, c := range t.columns {
		if c.Field == field {
			return true
		}
	}
	return false
}

// Len returns the number of rows, deleted ones included
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the row at index i
func (t *Table) Row(i int) (*Row, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	return t.rows[i], nil
}

// EditCell sets a cell value. Editing back to the loaded value clears the
// modified flag, except on added rows.
func (t *Table) EditCell(row int, field, value string) error {
	r, err := t.Row(row)
	if err != nil {
		return err
	}
	c, ok := r.Fields[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	c.Value = value
	c.Direction = textdir.Classify(value)
	c.Modified = r.Added || value != c.Original

	t.version++
	t.recompute()
	return nil
}

// ToggleDelete flips the deleted flag. The row keeps its position so it
// can be restored.
func (t *Table) ToggleDelete(row int) error {
	r, err := t.Row(row)
	if err != nil {
		return err
	}
	r.Deleted = !r.Deleted
	t.version++
	t.recompute()
	return nil
}

// AddRow inserts a new row right after the last live row of the same type,
// or at the end when there is none. Fields not in values are left empty; values
// for unknown fields are ignored. Returns the index of the new row.
func (t *Table) AddRow(values map[string]string) int {
	row := &Row{
		Fields: make(map[string]*Cell, len(t.columns)),
		Added:  true,
	}
	for _, col := range t.columns {
		v := values[col.Field]
		row.Fields[col.Field] = &Cell{
			Value:     v,
			Direction: textdir.Classify(v),
			Modified:  true,
		}
	}

	typ := values[TypeField]
	at := len(t.rows)
	for i := len(t.rows) - 1; i >= 0; i-- {
		if !t.rows[i].Deleted && t.rows[i].Value(TypeField) == typ {
			at = i + 1
			break
		}
	}

	t.rows = append(t.rows, nil)
	copy(t.rows[at+1:], t.rows[at:])
	t.rows[at] = row

	t.version++
	t.recompute()
	return at
}

// CanonicalMatrix returns the values of all rows not deleted, in column
// order. It is what gets saved and sent along with queries.
func (t *Table) CanonicalMatrix() [][]string {
	out := make([][]string, len(t.matrix))
	for i, r := range t.matrix {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// DistinctTypes returns the sorted set of type values over rows not deleted
func (t *Table) DistinctTypes() []string {
	return append([]string(nil), t.types...)
}

// SuggestTypes filters the known types by a case-insensitive substring
func (t *Table) SuggestTypes(query string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, typ := range t.types {
		if strings.Contains(strings.ToLower(typ), q) {
			out = append(out, typ)
		}
	}
	return out
}

// Modified reports whether the table has unsaved changes
func (t *Table) Modified() bool {
	for _, r := range t.rows {
		if r.Deleted || r.Modified() {
			return true
		}
	}
	return false
}

// Counts returns the number of live, deleted and modified rows
func (t *Table) Counts() (live, deleted, modified int) {
	for _, r := range t.rows {
		switch {
		case r.Deleted:
			deleted++
		case r.Modified():
			modified++
		}
		if !r.Deleted {
			live++
		}
	}
	return live, deleted, modified
}

func (t *Table) recompute() {
	matrix := make([][]string, 0, len(t.rows))
	seen := make(map[string]bool)
	types := []string{}
	hasType := t.HasField(TypeField)

	for _, r := range t.rows {
		if r.Deleted {
			continue
		}
		values := make([]string, len(t.columns))
		for i, col := range t.columns {
			values[i] = r.Value(col.Field)
		}
		matrix = append(matrix, values)

		if !hasType {
			continue
		}
		typ := r.Value(TypeField)
		if !seen[typ] {
			seen[typ] = true
			types = append(types, typ)
		}
	}
	sort.Strings(types)

	t.matrix = matrix
	t.types = types
}
