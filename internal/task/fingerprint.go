// Package task implements the per-task-definition builder and the
// fingerprint the scheduler reads to decide which tasks may run in
// parallel and which must serialize, per §4.5 and §4.6.
package task

import "github.com/tristanschneider/syx-sub002/internal/ident"

// AccessMode distinguishes a read declaration from a write declaration. It
// is what "whether a row type is const-qualified" resolves to at the type
// level in the original design; here the caller states it explicitly.
type AccessMode int

const (
	AccessRead AccessMode = iota
	AccessWrite
)

func (m AccessMode) String() string {
	if m == AccessWrite {
		return "write"
	}
	return "read"
}

// rowQuery is one query<Rows...>() or query<Rows...>(table-id) declaration.
// Table is the zero value (and tableScoped false) for the whole-database
// query<Rows...>() form, which applies to every table containing the rows.
type rowQuery struct {
	rows        []ident.RowTypeID
	mode        AccessMode
	table       ident.TableID
	tableScoped bool
}

// Fingerprint is the set of access declarations a task builder accumulated.
// The scheduler uses it, never the task's callback, to compute conflicts.
type Fingerprint struct {
	queries        []rowQuery
	resolverRows   []ident.RowTypeID
	modifiedTables []ident.TableID
	wholeDatabase  bool
	synchronous    bool
}

func (f *Fingerprint) addQuery(mode AccessMode, rows []ident.RowTypeID) {
	f.queries = append(f.queries, rowQuery{rows: rows, mode: mode})
}

func (f *Fingerprint) addTableQuery(table ident.TableID, mode AccessMode, rows []ident.RowTypeID) {
	f.queries = append(f.queries, rowQuery{rows: rows, mode: mode, table: table, tableScoped: true})
}

func (f *Fingerprint) addResolver(rows []ident.RowTypeID) {
	f.resolverRows = append(f.resolverRows, rows...)
}

func (f *Fingerprint) addModifier(table ident.TableID) {
	f.modifiedTables = append(f.modifiedTables, table)
}

// TableRows is satisfied by *table.Table; conflict evaluation needs only a
// table's row types.
type TableRows interface {
	RowTypes() []ident.RowTypeID
}

// TableLookup resolves a table id to its row-type set, used only to decide
// whether a structural (modify-structure) declaration on one table overlaps
// another task's row-level declarations.
type TableLookup func(ident.TableID) (TableRows, bool)

func rowsIntersect(a, b []ident.RowTypeID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func containsRow(rows []ident.RowTypeID, target ident.RowTypeID) bool {
	for _, r := range rows {
		if r == target {
			return true
		}
	}
	return false
}

func touchesAnyRow(f *Fingerprint) bool {
	return len(f.queries) > 0 || len(f.resolverRows) > 0 || len(f.modifiedTables) > 0 || f.wholeDatabase
}

// rowsTouchingTable resolves every row type a task's (possibly table-scoped)
// queries and resolvers reference that could plausibly live in table t,
// using lookup to expand unscoped queries against t's actual schema.
func (f *Fingerprint) rowsTouchingTable(t ident.TableID, lookup TableLookup) (read, write []ident.RowTypeID) {
	tbl, ok := lookup(t)
	var schema []ident.RowTypeID
	if ok {
		schema = tbl.RowTypes()
	}
	for _, q := range f.queries {
		if q.tableScoped {
			if q.table == t {
				if q.mode == AccessWrite {
					write = append(write, q.rows...)
				} else {
					read = append(read, q.rows...)
				}
			}
			continue
		}
		for _, r := range q.rows {
			if containsRow(schema, r) {
				if q.mode == AccessWrite {
					write = append(write, r)
				} else {
					read = append(read, r)
				}
			}
		}
	}
	for _, r := range f.resolverRows {
		if containsRow(schema, r) {
			read = append(read, r)
		}
	}
	return read, write
}

// Conflicts reports whether a and b must be ordered relative to each other
// rather than allowed to run concurrently, per the rules in §4.6: RW, WW,
// structural, whole-database and synchronous-pinning conflicts.
func Conflicts(a, b *Fingerprint, lookup TableLookup) bool {
	if a.synchronous || b.synchronous {
		return true
	}
	if a.wholeDatabase || b.wholeDatabase {
		return touchesAnyRow(a) && touchesAnyRow(b)
	}

	for _, qa := range a.queries {
		for _, qb := range b.queries {
			if qa.tableScoped && qb.tableScoped && qa.table != qb.table {
				continue
			}
			if !rowsIntersect(qa.rows, qb.rows) {
				continue
			}
			if qa.mode == AccessWrite || qb.mode == AccessWrite {
				return true
			}
		}
	}

	for _, mt := range a.modifiedTables {
		br, bw := b.rowsTouchingTable(mt, lookup)
		if len(br) > 0 || len(bw) > 0 {
			return true
		}
		for _, other := range b.modifiedTables {
			if other == mt {
				return true
			}
		}
	}
	for _, mt := range b.modifiedTables {
		ar, aw := a.rowsTouchingTable(mt, lookup)
		if len(ar) > 0 || len(aw) > 0 {
			return true
		}
	}

	return false
}
