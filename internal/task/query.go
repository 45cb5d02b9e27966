package task

import (
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/row"
	"github.com/tristanschneider/syx-sub002/internal/table"
)

// Result is what query<Rows...>() returns: the set of tables matched at
// build time, to be iterated from inside the task callback at execution
// time. It is deliberately resolved once, when the builder runs, not
// per-frame: table membership for a schema is static after the
// database-creation phase (§3).
type Result struct {
	tables []*table.Table
}

// Tables returns the matched tables in query order.
func (r *Result) Tables() []*table.Table { return r.tables }

// Len returns the number of matched tables.
func (r *Result) Len() int { return len(r.tables) }

// RowOf fetches the typed row of the given row type from table t, for
// callers iterating Result.Tables() and wanting a concrete *row.Dense[T] to
// index into. Returns ok=false if t has no such row or it is not a
// *row.Dense[T]; SparseRowOf covers sparse rows.
func RowOf[T any](t *table.Table, typeID ident.RowTypeID) (*row.Dense[T], bool) {
	r, ok := t.Row(typeID)
	if !ok {
		return nil, false
	}
	d, ok := r.(*row.Dense[T])
	return d, ok
}

// SparseRowOf is RowOf's counterpart for sparse-backed row types.
func SparseRowOf[T any](t *table.Table, typeID ident.RowTypeID) (*row.Sparse[T], bool) {
	r, ok := t.Row(typeID)
	if !ok {
		return nil, false
	}
	d, ok := r.(*row.Sparse[T])
	return d, ok
}
