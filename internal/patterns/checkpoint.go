package patterns

import "errors"

// ErrForeignCheckpoint is returned when a checkpoint was taken on another table
var ErrForeignCheckpoint = errors.New("checkpoint belongs to another table")

type rowState struct {
	values  map[string]string
	deleted bool
}

// Checkpoint records the rows of a table as they were when a save was
// issued. Once the save succeeds, Commit makes those values the loaded
// baseline without touching anything changed since.
type Checkpoint struct {
	table   *Table
	version int
	rows    map[*Row]rowState
}

// Checkpoint captures the current rows
func (t *Table) Checkpoint() *Checkpoint {
	cp := &Checkpoint{
		table:   t,
		version: t.version,
		rows:    make(map[*Row]rowState, len(t.rows)),
	}
	for _, r := range t.rows {
		values := make(map[string]string, len(r.Fields))
		for f, c := range r.Fields {
			values[f] = c.Value
		}
		cp.rows[r] = rowState{values: values, deleted: r.Deleted}
	}
	return cp
}

// Owns reports whether cp was taken on t
func (t *Table) Owns(cp *Checkpoint) bool {
	return cp != nil && cp.table == t
}

// ChangedSince reports whether any edit, add or delete happened after cp
func (t *Table) ChangedSince(cp *Checkpoint) bool {
	return !t.Owns(cp) || t.version != cp.version
}

// Commit treats the rows captured by cp as saved. Rows deleted at the
// checkpoint and still deleted are dropped; rows restored since then
// become added rows. Cells keep their current value and are modified
// only where they differ from what was saved. Rows added after the
// checkpoint are left alone. Returns the indices, before the commit, of
// the dropped rows.
func (t *Table) Commit(cp *Checkpoint) ([]int, error) {
	if !t.Owns(cp) {
		return nil, ErrForeignCheckpoint
	}

	var removed []int
	kept := make([]*Row, 0, len(t.rows))
	for i, r := range t.rows {
		st, ok := cp.rows[r]
		switch {
		case !ok:
		case st.deleted && r.Deleted:
			removed = append(removed, i)
			continue
		case st.deleted:
			r.Added = true
			for _, c := range r.Fields {
				c.Original = ""
				c.Modified = true
			}
		default:
			r.Added = false
			for f, c := range r.Fields {
				c.Original = st.values[f]
				c.Modified = c.Value != c.Original
			}
		}
		kept = append(kept, r)
	}
	t.rows = kept

	t.recompute()
	return removed, nil
}
