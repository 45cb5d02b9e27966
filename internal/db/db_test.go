package db

import (
	"testing"

	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/row"
	"github.com/tristanschneider/syx-sub002/internal/table"
)

// denseRow fetches tbl's row of the given type as a *row.Dense[T], failing
// the second return value if the row is absent or a different storage kind.
func denseRow[T any](tbl *table.Table, typeID ident.RowTypeID) (*row.Dense[T], bool) {
	r, ok := tbl.Row(typeID)
	if !ok {
		return nil, false
	}
	d, ok := r.(*row.Dense[T])
	return d, ok
}

var positionType = ident.NewRowTypeID("Position")
var velocityType = ident.NewRowTypeID("Velocity")
var stableIDType = ident.NewRowTypeID("StableID")

func TestQueryReturnsTablesWithAllRowTypes(t *testing.T) {
	pool := ident.NewPool()
	d := New(MainIndex, pool)

	t1 := d.AddTable()
	t1.AddRow(row.NewDense[int](positionType))
	t1.AddRow(row.NewDense[int](velocityType))

	t2 := d.AddTable()
	t2.AddRow(row.NewDense[int](positionType))

	got := d.Query(positionType, velocityType)
	if len(got) != 1 || got[0].ID() != t1.ID() {
		t.Fatalf("expected only t1 to match, got %v", got)
	}

	got = d.Query(positionType)
	if len(got) != 2 {
		t.Fatalf("expected both tables to match position-only query, got %d", len(got))
	}
}

func TestTryGetOutOfRangeOrWrongDatabase(t *testing.T) {
	pool := ident.NewPool()
	d := New(MainIndex, pool)
	d.AddTable()

	if _, ok := d.TryGet(ident.TableID{DBIndex: MainIndex, TableIndex: 5}); ok {
		t.Fatalf("expected miss for out-of-range table index")
	}
	if _, ok := d.TryGet(ident.TableID{DBIndex: 1, TableIndex: 0}); ok {
		t.Fatalf("expected miss for table id from a different database")
	}
}

func buildMatchingSchema(t *testing.T, d *Database, shadow bool) {
	t.Helper()
	tbl := d.AddTable()
	if err := tbl.AddRow(row.NewDense[int](positionType)); err != nil {
		t.Fatal(err)
	}
	ids := row.NewDense[ident.StableRef](stableIDType)
	if err := tbl.AddRow(ids); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetStableIDRow(stableIDType); err != nil {
		t.Fatal(err)
	}
	if !shadow {
		// Main-only cold row the shadow schema omits.
		if err := tbl.AddRow(row.NewDense[int](velocityType)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMigrateShadowIntoDrainsAndClearsDirty(t *testing.T) {
	pool := ident.NewPool()
	main := New(MainIndex, pool)
	shadow := New(1, pool)

	buildMatchingSchema(t, main, false)
	buildMatchingSchema(t, shadow, true)

	shadowTable := shadow.Tables()[0]
	const n = 4
	start := shadowTable.AddElements(n)
	pos, ok := denseRow[int](shadowTable, positionType)
	if !ok {
		t.Fatal("expected shadow table to carry a position row")
	}
	ids, ok := denseRow[ident.StableRef](shadowTable, stableIDType)
	if !ok {
		t.Fatal("expected shadow table to carry a stable-id row")
	}
	refs := make([]ident.StableRef, n)
	for i := 0; i < n; i++ {
		*pos.At(start + i) = 100 + i
		refs[i] = *ids.At(start + i)
	}

	if err := MigrateShadowInto(shadow, main); err != nil {
		t.Fatalf("migrate shadow into main: %v", err)
	}

	if shadowTable.Len() != 0 {
		t.Fatalf("expected shadow table drained to zero, got %d", shadowTable.Len())
	}
	if shadowTable.Dirty() {
		t.Fatalf("expected dirty flag cleared after migration")
	}
	mainTable := main.Tables()[0]
	if mainTable.Len() != n {
		t.Fatalf("expected main table to receive %d elements, got %d", n, mainTable.Len())
	}

	mainPos, ok := denseRow[int](mainTable, positionType)
	if !ok {
		t.Fatal("expected main table to carry a position row")
	}
	seen := make(map[int]bool, n)
	for i, ref := range refs {
		loc, ok := pool.Resolve(ref)
		if !ok {
			t.Fatalf("migrated element %d's ref must remain valid after shadow migration", i)
		}
		if loc.Table != mainTable.ID() {
			t.Fatalf("element %d: expected ref to resolve into main table, got %+v", i, loc.Table)
		}
		if seen[loc.Index] {
			t.Fatalf("element %d: ref resolved to index %d already claimed by another ref", i, loc.Index)
		}
		seen[loc.Index] = true
		if *mainPos.At(loc.Index) != 100+i {
			t.Fatalf("element %d: expected position %d at resolved index %d, got %d", i, 100+i, loc.Index, *mainPos.At(loc.Index))
		}
	}
}

func TestMigrateShadowIntoSkipsCleanTables(t *testing.T) {
	pool := ident.NewPool()
	main := New(MainIndex, pool)
	shadow := New(1, pool)
	buildMatchingSchema(t, main, false)
	buildMatchingSchema(t, shadow, true)

	if err := MigrateShadowInto(shadow, main); err != nil {
		t.Fatalf("migrate of an untouched shadow must not error: %v", err)
	}
	if main.Tables()[0].Len() != 0 {
		t.Fatalf("expected no-op migration to leave main table empty")
	}
}
