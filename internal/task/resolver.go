package task

import (
	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/table"
)

// Resolver is what getResolver(row-types...) returns: a way to look up a
// value via StableRef without the caller knowing which table it currently
// lives in. It combines the mapping pool's location lookup with a
// database's table index.
type Resolver struct {
	pool *ident.Pool
	db   *db.Database
	rows []ident.RowTypeID
	last *ident.Resolver
}

func newResolver(pool *ident.Pool, database *db.Database, rows []ident.RowTypeID) *Resolver {
	return &Resolver{pool: pool, db: database, rows: rows, last: ident.NewResolver(pool)}
}

// Table resolves ref to the table and row index it currently lives at.
func (r *Resolver) Table(ref ident.StableRef) (*table.Table, int, bool) {
	loc, ok := r.last.Resolve(ref)
	if !ok {
		return nil, 0, false
	}
	tbl, ok := r.db.TryGet(loc.Table)
	if !ok {
		return nil, 0, false
	}
	return tbl, loc.Index, true
}

// Get fetches ref's current value of the declared row type T, or ok=false
// if ref is stale or the table it resolves to does not carry that row.
func Get[T any](r *Resolver, ref ident.StableRef, typeID ident.RowTypeID) (T, bool) {
	var zero T
	tbl, idx, ok := r.Table(ref)
	if !ok {
		return zero, false
	}
	dense, ok := RowOf[T](tbl, typeID)
	if !ok {
		return zero, false
	}
	return *dense.At(idx), true
}
