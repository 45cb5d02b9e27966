package table

import (
	"testing"

	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/row"
)

var (
	positionType = ident.NewRowTypeID("Position")
	velocityType = ident.NewRowTypeID("Velocity")
	stableIDType = ident.NewRowTypeID("StableID")
)

type fixture struct {
	pool *ident.Pool
	tbl  *Table
	pos  *row.Dense[int]
	vel  *row.Dense[int]
	ids  *row.Dense[ident.StableRef]
}

func newFixture(t *testing.T, tableIndex int, withStableID bool) *fixture {
	t.Helper()
	pool := ident.NewPool()
	tbl := New(ident.TableID{TableIndex: tableIndex}, pool)
	pos := row.NewDense[int](positionType)
	vel := row.NewDense[int](velocityType)
	if err := tbl.AddRow(pos); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddRow(vel); err != nil {
		t.Fatal(err)
	}
	var ids *row.Dense[ident.StableRef]
	if withStableID {
		ids = row.NewDense[ident.StableRef](stableIDType)
		if err := tbl.AddRow(ids); err != nil {
			t.Fatal(err)
		}
		if err := tbl.SetStableIDRow(stableIDType); err != nil {
			t.Fatal(err)
		}
	}
	return &fixture{pool: pool, tbl: tbl, pos: pos, vel: vel, ids: ids}
}

func TestAddElementsZeroIsNoOp(t *testing.T) {
	f := newFixture(t, 0, false)
	f.tbl.AddElements(3)
	start := f.tbl.AddElements(0)
	if start != 3 {
		t.Fatalf("expected AddElements(0) to return current size 3, got %d", start)
	}
	if f.tbl.Len() != 3 {
		t.Fatalf("expected size unchanged")
	}
}

func TestAddThenSwapRemoveRoundTrips(t *testing.T) {
	f := newFixture(t, 0, false)
	f.tbl.AddElements(4)
	for f.tbl.Len() > 0 {
		f.tbl.SwapRemove(0)
	}
	if f.tbl.Len() != 0 {
		t.Fatalf("expected table back to empty, got %d", f.tbl.Len())
	}
}

func TestSwapRemoveLastDegeneratesToPop(t *testing.T) {
	f := newFixture(t, 0, false)
	f.tbl.AddElements(2)
	*f.pos.At(0) = 1
	*f.pos.At(1) = 2
	f.tbl.SwapRemove(1)
	if f.tbl.Len() != 1 || *f.pos.At(0) != 1 {
		t.Fatalf("expected pop semantics, got len=%d val=%d", f.tbl.Len(), *f.pos.At(0))
	}
}

func TestStableRefSurvivesSwapRemoveOfOtherElement(t *testing.T) {
	f := newFixture(t, 0, true)
	start := f.tbl.AddElements(3)
	ref1 := *f.ids.At(start + 1)

	// Remove element 0; element 2 (the last) moves into slot 0, so ref1
	// (pointing at logical index 1) must still resolve to index 1.
	f.tbl.SwapRemove(0)

	loc, ok := f.pool.Resolve(ref1)
	if !ok {
		t.Fatalf("ref to untouched element must remain valid")
	}
	if loc.Index != 1 {
		t.Fatalf("expected ref to still point at index 1, got %d", loc.Index)
	}
}

func TestSwapRemoveOfStableIDElementInvalidatesRef(t *testing.T) {
	f := newFixture(t, 0, true)
	start := f.tbl.AddElements(2)
	ref0 := *f.ids.At(start)

	f.tbl.SwapRemove(0)

	if _, ok := f.pool.Resolve(ref0); ok {
		t.Fatalf("expected ref of destroyed element to be stale")
	}
}

func TestMigratePreservesStableRefAndUpdatesLocation(t *testing.T) {
	pool := ident.NewPool()
	src := New(ident.TableID{TableIndex: 0}, pool)
	dst := New(ident.TableID{TableIndex: 1}, pool)

	srcPos := row.NewDense[int](positionType)
	dstPos := row.NewDense[int](positionType)
	srcIDs := row.NewDense[ident.StableRef](stableIDType)
	dstIDs := row.NewDense[ident.StableRef](stableIDType)

	for _, r := range []struct {
		tbl *Table
		row row.Row
	}{{src, srcPos}, {src, srcIDs}, {dst, dstPos}, {dst, dstIDs}} {
		if err := r.tbl.AddRow(r.row); err != nil {
			t.Fatal(err)
		}
	}
	if err := src.SetStableIDRow(stableIDType); err != nil {
		t.Fatal(err)
	}
	if err := dst.SetStableIDRow(stableIDType); err != nil {
		t.Fatal(err)
	}

	start := src.AddElements(1)
	*srcPos.At(start) = 123
	ref := *srcIDs.At(start)

	if err := src.Migrate(start, dst, 1); err != nil {
		t.Fatal(err)
	}

	if src.Len() != 0 {
		t.Fatalf("expected source drained, got %d", src.Len())
	}
	if dst.Len() != 1 {
		t.Fatalf("expected dest to have 1 element, got %d", dst.Len())
	}
	if *dstPos.At(0) != 123 {
		t.Fatalf("expected migrated value 123, got %d", *dstPos.At(0))
	}

	loc, ok := pool.Resolve(ref)
	if !ok {
		t.Fatalf("migrated element's ref must remain valid (not invalidated)")
	}
	if loc.Table.TableIndex != 1 || loc.Index != 0 {
		t.Fatalf("expected ref to resolve into dst table at index 0, got %+v", loc)
	}
}

func TestMigrateMultipleElementsPreservesEachRef(t *testing.T) {
	pool := ident.NewPool()
	src := New(ident.TableID{TableIndex: 0}, pool)
	dst := New(ident.TableID{TableIndex: 1}, pool)

	srcPos := row.NewDense[int](positionType)
	dstPos := row.NewDense[int](positionType)
	srcIDs := row.NewDense[ident.StableRef](stableIDType)
	dstIDs := row.NewDense[ident.StableRef](stableIDType)

	for _, r := range []struct {
		tbl *Table
		row row.Row
	}{{src, srcPos}, {src, srcIDs}, {dst, dstPos}, {dst, dstIDs}} {
		if err := r.tbl.AddRow(r.row); err != nil {
			t.Fatal(err)
		}
	}
	if err := src.SetStableIDRow(stableIDType); err != nil {
		t.Fatal(err)
	}
	if err := dst.SetStableIDRow(stableIDType); err != nil {
		t.Fatal(err)
	}

	const n = 4
	start := src.AddElements(n)
	refs := make([]ident.StableRef, n)
	for i := 0; i < n; i++ {
		*srcPos.At(start + i) = 100 + i
		refs[i] = *srcIDs.At(start + i)
	}

	if err := src.Migrate(start, dst, n); err != nil {
		t.Fatal(err)
	}

	if src.Len() != 0 {
		t.Fatalf("expected source drained, got %d", src.Len())
	}
	if dst.Len() != n {
		t.Fatalf("expected dest to have %d elements, got %d", n, dst.Len())
	}

	seen := make(map[int]bool, n)
	for i, ref := range refs {
		loc, ok := pool.Resolve(ref)
		if !ok {
			t.Fatalf("migrated element %d's ref must remain valid", i)
		}
		if loc.Table.TableIndex != 1 {
			t.Fatalf("element %d: expected ref to resolve into dst table, got table %+v", i, loc.Table)
		}
		if seen[loc.Index] {
			t.Fatalf("element %d: ref resolved to index %d already claimed by another ref", i, loc.Index)
		}
		seen[loc.Index] = true
		if *dstPos.At(loc.Index) != 100+i {
			t.Fatalf("element %d: expected position %d at resolved index %d, got %d", i, 100+i, loc.Index, *dstPos.At(loc.Index))
		}
	}
}

func TestMigrateToleratesSchemaSubset(t *testing.T) {
	// dst (a "shadow" stand-in) lacks the velocity row the source has.
	pool := ident.NewPool()
	src := New(ident.TableID{TableIndex: 0}, pool)
	dst := New(ident.TableID{TableIndex: 1}, pool)

	srcPos := row.NewDense[int](positionType)
	srcVel := row.NewDense[int](velocityType)
	dstPos := row.NewDense[int](positionType)

	if err := src.AddRow(srcPos); err != nil {
		t.Fatal(err)
	}
	if err := src.AddRow(srcVel); err != nil {
		t.Fatal(err)
	}
	if err := dst.AddRow(dstPos); err != nil {
		t.Fatal(err)
	}

	start := src.AddElements(1)
	*srcPos.At(start) = 7
	*srcVel.At(start) = 9

	if err := src.Migrate(start, dst, 1); err != nil {
		t.Fatalf("migrate with schema subset must not fail: %v", err)
	}
	if *dstPos.At(0) != 7 {
		t.Fatalf("expected position to migrate, got %d", *dstPos.At(0))
	}
}

func TestDirtyFlagTracksAddAndClearsOnMigrate(t *testing.T) {
	pool := ident.NewPool()
	src := New(ident.TableID{TableIndex: 0}, pool)
	dst := New(ident.TableID{TableIndex: 1}, pool)
	p1 := row.NewDense[int](positionType)
	p2 := row.NewDense[int](positionType)
	src.AddRow(p1)
	dst.AddRow(p2)

	if src.Dirty() {
		t.Fatalf("fresh table should not be dirty")
	}
	start := src.AddElements(1)
	if !src.Dirty() {
		t.Fatalf("expected dirty after AddElements")
	}
	src.Migrate(start, dst, 1)
	src.ClearDirty()
	if src.Dirty() {
		t.Fatalf("expected dirty cleared after migration barrier drains the table")
	}
}
