// Package db implements the runtime database: an indexed collection of
// tables, cross-table lookup by row type, and the per-thread shadow
// databases worker threads append into without synchronization.
package db

import (
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/table"
)

// MainIndex is the conventional DBIndex of the single main database. Shadow
// databases are indexed 1..N by worker thread index + 1.
const MainIndex = 0

// Database is a set of tables, all sharing the same DBIndex and the same
// mapping pool.
type Database struct {
	index int
	pool  *ident.Pool
	tables []*table.Table
}

// New creates an empty database at the given DBIndex, backed by pool. Use
// MainIndex for the single main database; shadow databases use a distinct
// index per worker thread but must share the same pool as the main
// database, per §4.4.
func New(index int, pool *ident.Pool) *Database {
	return &Database{index: index, pool: pool}
}

// Index returns this database's DBIndex.
func (d *Database) Index() int { return d.index }

// Pool returns the shared mapping pool.
func (d *Database) Pool() *ident.Pool { return d.pool }

// AddTable creates and registers a new table, assigning it the next
// TableIndex in this database. Table ids are immutable once assigned, per
// §3: tables are added during the database-creation phase only.
func (d *Database) AddTable() *table.Table {
	id := ident.TableID{DBIndex: d.index, TableIndex: len(d.tables)}
	t := table.New(id, d.pool)
	d.tables = append(d.tables, t)
	return t
}

// TryGet returns the table with the given id, or nil if out of range or
// from a different database.
func (d *Database) TryGet(id ident.TableID) (*table.Table, bool) {
	if id.DBIndex != d.index {
		return nil, false
	}
	if id.TableIndex < 0 || id.TableIndex >= len(d.tables) {
		return nil, false
	}
	return d.tables[id.TableIndex], true
}

// Tables returns every table in this database, in creation order.
func (d *Database) Tables() []*table.Table {
	out := make([]*table.Table, len(d.tables))
	copy(out, d.tables)
	return out
}

// Query returns every table that contains all of the given row types.
// Query<Rows...>() in §4.5's terms: the caller supplies the RowTypeIDs of
// the compile-time types it declared.
func (d *Database) Query(rowTypes ...ident.RowTypeID) []*table.Table {
	var out []*table.Table
	for _, t := range d.tables {
		if tableHasAll(t, rowTypes) {
			out = append(out, t)
		}
	}
	return out
}

func tableHasAll(t *table.Table, rowTypes []ident.RowTypeID) bool {
	for _, rt := range rowTypes {
		if _, ok := t.Row(rt); !ok {
			return false
		}
	}
	return true
}

// DirtyTables returns every table reporting Dirty(), i.e. every table that
// has had elements appended since the last migration barrier (§9's
// dirty-flagging open question). MigrateShadowInto does not call it; it
// applies the same Dirty() check to each table itself.
func (d *Database) DirtyTables() []*table.Table {
	var out []*table.Table
	for _, t := range d.tables {
		if t.Dirty() {
			out = append(out, t)
		}
	}
	return out
}
