// Package table implements the runtime table: an ordered set of rows keyed
// by row-type id, all required to report the same element count after any
// structural operation, plus the add/swap-remove/migrate discipline that
// keeps that invariant and keeps stable references pointed at the right
// place.
package table

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/row"
)

// Table is an ordered collection of rows sharing an element count.
type Table struct {
	id    ident.TableID
	pool  *ident.Pool
	rows  map[ident.RowTypeID]row.Row
	order []ident.RowTypeID // canonical order, for coherent resize across rows
	count int

	stableIDType ident.RowTypeID
	hasStableID  bool

	dirty bool // set by AddElements and on Migrate's destination, cleared by ClearDirty; see shadow-db usage in db package
}

// New creates an empty table with the given id, backed by pool for any
// stable-id row it is later given.
func New(id ident.TableID, pool *ident.Pool) *Table {
	return &Table{
		id:   id,
		pool: pool,
		rows: make(map[ident.RowTypeID]row.Row),
	}
}

// ID returns the table's identity.
func (t *Table) ID() ident.TableID { return t.id }

// Len returns the table's current element count.
func (t *Table) Len() int { return t.count }

// Dirty reports whether any element has been added (by AddElements, or as
// the destination of Migrate) since the last ClearDirty call. Migrate does
// not clear the source's flag. Thread-local shadow tables use this to skip scanning
// empty tables at the migration barrier (§9's dirty-flagging open question).
func (t *Table) Dirty() bool { return t.dirty }

// AddRow registers r under its own TypeID. It must be called before any
// elements exist if row-count coherence is to be preserved; r's current Len
// must already equal the table's count (callers register rows when a table
// is first assembled, when the count is 0).
func (t *Table) AddRow(r row.Row) error {
	if _, exists := t.rows[r.TypeID()]; exists {
		return fmt.Errorf("table: row type %v already registered", r.TypeID())
	}
	if r.Len() != t.count {
		return fmt.Errorf("table: row type %v has length %d, want %d to stay size-coherent", r.TypeID(), r.Len(), t.count)
	}
	t.rows[r.TypeID()] = r
	t.order = append(t.order, r.TypeID())
	return nil
}

// SetStableIDRow marks typeID (which must already be registered via AddRow
// as a *row.Dense[ident.StableRef]) as the table's stable-id row, enrolling
// the table in the event pipeline and mapping-slot maintenance.
func (t *Table) SetStableIDRow(typeID ident.RowTypeID) error {
	r, ok := t.rows[typeID]
	if !ok {
		return fmt.Errorf("table: cannot set stable-id row: type %v not registered", typeID)
	}
	if _, ok := r.(*row.Dense[ident.StableRef]); !ok {
		return fmt.Errorf("table: stable-id row must be a dense row of ident.StableRef")
	}
	t.stableIDType = typeID
	t.hasStableID = true
	return nil
}

// HasStableIDRow reports whether this table participates in the event
// pipeline.
func (t *Table) HasStableIDRow() bool { return t.hasStableID }

// StableRefAt returns the stable reference of the element currently at
// index i, if this table carries a stable-id row.
func (t *Table) StableRefAt(i int) (ident.StableRef, bool) {
	if !t.hasStableID {
		return ident.StableRef{}, false
	}
	return *t.stableRow().At(i), true
}

// Pool returns the mapping pool backing this table's stable refs.
func (t *Table) Pool() *ident.Pool { return t.pool }

func (t *Table) stableRow() *row.Dense[ident.StableRef] {
	return t.rows[t.stableIDType].(*row.Dense[ident.StableRef])
}

// Row returns the row registered under typeID, if any.
func (t *Table) Row(typeID ident.RowTypeID) (row.Row, bool) {
	r, ok := t.rows[typeID]
	return r, ok
}

// RowTypes returns the table's registered row types in their canonical
// (registration) order.
func (t *Table) RowTypes() []ident.RowTypeID {
	out := make([]ident.RowTypeID, len(t.order))
	copy(out, t.order)
	return out
}

// reserve extends every row by n elements without minting new StableRefs;
// it is the mechanism shared by AddElements (which does mint fresh refs
// for the new range) and Migrate (which instead copies existing refs in).
func (t *Table) reserve(n int) int {
	start := t.count
	if n == 0 {
		return start
	}
	for _, id := range t.order {
		t.rows[id].Grow(n)
	}
	t.count += n
	return start
}

// AddElements extends every row by n elements, default-constructed, and
// returns the starting index of the new contiguous run. n == 0 is a no-op
// that returns the current size. If the table has a stable-id row, each new
// element is assigned a freshly minted StableRef.
func (t *Table) AddElements(n int) int {
	start := t.reserve(n)
	if n == 0 {
		return start
	}
	t.dirty = true
	if t.hasStableID {
		sr := t.stableRow()
		for i := 0; i < n; i++ {
			idx := start + i
			*sr.At(idx) = t.pool.Alloc(t.id, idx)
		}
	}
	return start
}

// swapRemoveRaw performs the mechanical row swap-remove and count update,
// relocating the mapping slot of whichever element the swap moves (the
// current last element, if it isn't the one being erased) but never
// releasing the slot of the erased element itself — callers decide whether
// that element is being destroyed (SwapRemove) or relocated elsewhere
// (Migrate).
func (t *Table) swapRemoveRaw(i int) {
	last := t.count - 1
	if t.hasStableID && i != last {
		moved := *t.stableRow().At(last)
		t.pool.Relocate(moved, t.id, i)
	}
	for _, id := range t.order {
		t.rows[id].SwapRemove(i)
	}
	t.count--
}

// SwapRemove destroys the element at i: the last element moves into its
// place (or it's simply popped, if i was already last), and — if the table
// has a stable-id row — the removed element's mapping slot is released,
// invalidating any outstanding StableRef to it.
func (t *Table) SwapRemove(i int) {
	if t.hasStableID {
		removed := *t.stableRow().At(i)
		t.swapRemoveRaw(i)
		t.pool.Release(removed)
		return
	}
	t.swapRemoveRaw(i)
}

// Migrate moves count elements starting at srcIndex from t into dst,
// row-by-row for every row type present (by matching TypeID) in both
// tables, and swap-removes them from t afterward. Rows that exist in only
// one of the two tables are silently skipped — the mechanism that lets a
// thread-local shadow table (whose schema is a subset of the main table's)
// migrate cleanly. If both tables carry a stable-id row, the StableRef
// values themselves are copied byte-for-byte (so the ref's identity is
// unchanged) and the mapping pool is told the slot now lives in dst — no
// StableRef holder anywhere ever observes an invalidation from this.
//
// srcIndex/dst/t must not alias the same table at overlapping ranges; that
// is an unchecked precondition, not a runtime error.
func (t *Table) Migrate(srcIndex int, dst *Table, count int) error {
	if count == 0 {
		return nil
	}
	if srcIndex < 0 || srcIndex+count > t.count {
		return fmt.Errorf("table: migrate range [%d,%d) out of bounds for table of size %d", srcIndex, srcIndex+count, t.count)
	}

	dstStart := dst.reserve(count)

	for k := 0; k < count; k++ {
		si := srcIndex + k
		di := dstStart + k
		for _, typeID := range t.order {
			dstRow, ok := dst.rows[typeID]
			if !ok {
				continue // row type exists only in source: dropped silently, per schema-subset tolerance
			}
			srcRow := t.rows[typeID]
			mover, ok := srcRow.(row.Mover)
			if !ok {
				continue
			}
			mover.MoveElement(si, dstRow, di)
		}
		if t.hasStableID && dst.hasStableID {
			copied := *dst.stableRow().At(di)
			dst.pool.Relocate(copied, dst.id, di)
		}
	}

	// Removed high-to-low: each swapRemoveRaw moves the table's *current*
	// last element into the hole. Removing low-to-high would repeatedly
	// relocate that moved element into srcIndex, stomping the dst relocation
	// the copy loop above already did for later elements in the migrated
	// range. Going high-to-low, every index still inside [srcIndex,
	// srcIndex+count) is removed before the table's last element can ever
	// be one of the elements we just migrated.
	for k := count - 1; k >= 0; k-- {
		t.swapRemoveRaw(srcIndex + k)
	}
	dst.dirty = true
	return nil
}

// ClearDirty resets the dirty flag, called by the migration barrier once a
// shadow table has been fully drained into the main database.
func (t *Table) ClearDirty() { t.dirty = false }
