package ident

import "sync"

// Version tags a mapping slot's occupant generation. A StableRef is valid
// only while its ExpectedVersion matches the slot's current Version.
type Version uint32

// StableRef is a (mapping-slot, expected-version) pair: a non-owning,
// relocation-tolerant handle to an element. It survives migration between
// tables and swap-removal within a table; it becomes stale the moment the
// referenced element is destroyed.
type StableRef struct {
	Slot            int
	ExpectedVersion Version
}

// Location is the unpacked (table, element-index) an alive StableRef
// resolves to.
type Location struct {
	Table TableID
	Index int
}

type mappingSlot struct {
	loc     Location
	version Version
	free    bool
}

// Pool is the single process-wide store of mapping slots shared between
// the main database and every per-thread shadow database. Slot allocation
// and version bookkeeping are the only state a StableRef ever indirects
// through, which is what lets an element migrate between tables (even
// between a shadow database and the main one) without invalidating
// references held elsewhere.
//
// Slots are allocated by Table.AddElements (including on per-thread shadow
// tables, which share this pool), relocated by swap-remove and Migrate, and
// released by SwapRemove. The mutex makes each of those calls safe from
// any goroutine.
type Pool struct {
	mu    sync.Mutex
	slots []mappingSlot
	free  []int
}

// NewPool creates an empty mapping pool.
func NewPool() *Pool {
	return &Pool{}
}

// Alloc reserves a slot for a freshly created element and returns the
// StableRef naming it. Slots are drawn from the free-list first and the
// pool is extended monotonically once the free-list is empty.
func (p *Pool) Alloc(table TableID, index int) StableRef {
	p.mu.Lock()
	defer p.mu.Unlock()

	var slotIdx int
	if n := len(p.free); n > 0 {
		slotIdx = p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[slotIdx].free = false
		p.slots[slotIdx].loc = Location{Table: table, Index: index}
	} else {
		slotIdx = len(p.slots)
		p.slots = append(p.slots, mappingSlot{loc: Location{Table: table, Index: index}, version: 1})
	}

	return StableRef{Slot: slotIdx, ExpectedVersion: p.slots[slotIdx].version}
}

// Resolve unpacks a StableRef into its current location. It fails (ok=false)
// if the slot's version no longer matches the ref's expected version —
// the sole mechanism for detecting a dangling reference, requiring no heap
// scan.
func (p *Pool) Resolve(ref StableRef) (Location, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolveLocked(ref)
}

func (p *Pool) resolveLocked(ref StableRef) (Location, bool) {
	if ref.Slot < 0 || ref.Slot >= len(p.slots) {
		return Location{}, false
	}
	slot := p.slots[ref.Slot]
	if slot.free || slot.version != ref.ExpectedVersion {
		return Location{}, false
	}
	return slot.loc, true
}

// Relocate updates a live slot's location in place, e.g. after a migration
// or an in-table swap-remove moved the referenced element. It never
// invalidates the ref: only the location changes, the version does not
// advance. Returns false if the ref was already stale.
func (p *Pool) Relocate(ref StableRef, table TableID, index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.resolveLocked(ref); !ok {
		return false
	}
	p.slots[ref.Slot].loc = Location{Table: table, Index: index}
	return true
}

// Release destroys the element behind ref: the slot's version advances,
// invalidating every outstanding copy of ref, and the slot returns to the
// free-list. A second Release of an already-released ref (or of a ref
// whose version no longer matches, e.g. a duplicate destroy request in the
// same frame) is a harmless no-op — this is the idempotence the event
// pipeline's double-destroy handling relies on.
func (p *Pool) Release(ref StableRef) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.resolveLocked(ref); !ok {
		return false
	}
	p.slots[ref.Slot].free = true
	p.slots[ref.Slot].version++
	p.free = append(p.free, ref.Slot)
	return true
}

// Len reports the number of slots ever allocated, live or free. Exposed for
// tests asserting free-list reuse.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}

// Resolver wraps a Pool and records the last ref it resolved and where it
// resolved to. Every Resolve still takes the pool's lock and reads the
// slot, so a repeated lookup of the same ref costs the same as the first.
type Resolver struct {
	pool    *Pool
	lastRef StableRef
	lastLoc Location
	cached  bool
}

// NewResolver creates a Resolver bound to pool.
func NewResolver(pool *Pool) *Resolver {
	return &Resolver{pool: pool}
}

// Resolve looks up ref in the pool and returns its current location. When
// ref is the recorded last hit, the recorded location is refreshed, or the
// record dropped if ref has gone stale.
func (r *Resolver) Resolve(ref StableRef) (Location, bool) {
	if r.cached && r.lastRef == ref {
		// Re-validate: the cached hit could have been released since.
		if loc, ok := r.pool.Resolve(ref); ok {
			r.lastLoc = loc
			return loc, true
		}
		r.cached = false
		return Location{}, false
	}
	loc, ok := r.pool.Resolve(ref)
	if ok {
		r.lastRef = ref
		r.lastLoc = loc
		r.cached = true
	}
	return loc, ok
}
