// Package row implements the four row-storage variants a table may hold —
// dense, sparse, shared, and tag — behind a small type-erased interface so
// a table can coordinate resize, swap-remove, and migration across rows of
// unrelated Go types without reflection in the hot path.
package row

import "github.com/tristanschneider/syx-sub002/internal/ident"

// Row is the type-erased interface every row storage variant implements. A
// table holds rows behind this interface and discriminates on Kind once,
// at query time, rather than per element.
type Row interface {
	TypeID() ident.RowTypeID
	Kind() ident.RowKind
	// Len reports the row's element count, which must equal the owning
	// table's element count for dense and sparse rows, and mirror it for
	// shared and tag rows.
	Len() int
	// Grow extends the row by n elements with default-value semantics.
	// n == 0 is a no-op.
	Grow(n int)
	// SwapRemove erases element i by moving the current last element
	// (Len()-1) into position i, then shrinking by one. i == Len()-1
	// degenerates to a pop.
	SwapRemove(i int)
}

// Mover is implemented by row variants that can copy a single element's
// value into another row of the same concrete type during migration. Rows
// without meaningful per-element payload (shared, tag) still implement it
// as a no-op: their presence in the destination is already established by
// Grow.
type Mover interface {
	Row
	// MoveElement copies the value at srcIndex into dst at dstIndex. dst
	// must be the same concrete type as the receiver; callers (Table.Migrate)
	// only invoke this after matching TypeID, which implies matching type.
	MoveElement(srcIndex int, dst Row, dstIndex int)
}
