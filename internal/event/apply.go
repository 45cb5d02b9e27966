package event

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/ident"
)

// pending captures one element's destroy/move intent by StableRef rather
// than by index, so that later swap-removes and migrations (which shuffle
// other elements' indices) never invalidate the target this applier is
// about to act on.
type pending struct {
	ref  ident.StableRef
	dest ident.TableID
}

// Apply runs process-events for every table in database that carries both
// a stable-id row and an event row: it collects destroy and move targets
// in one pass over the (unspecified-order) sparse event row, then destroys
// before migrating, per §4.7. Destroy takes precedence: an element with
// both flags set in the same frame is destroyed, and its move is skipped.
func Apply(database *db.Database) error {
	for _, t := range database.Tables() {
		if !t.HasStableIDRow() {
			continue
		}
		evRow, ok := eventRow(t)
		if !ok {
			continue
		}

		var destroys, moves []pending
		evRow.Range(func(index int, ev Event) bool {
			ref, ok := t.StableRefAt(index)
			if !ok {
				return true
			}
			switch {
			case ev.Flags.Has(Destroyed):
				destroys = append(destroys, pending{ref: ref})
			case ev.Flags.Has(Moved):
				moves = append(moves, pending{ref: ref, dest: ev.Destination})
			}
			return true
		})

		pool := t.Pool()
		for _, p := range destroys {
			loc, ok := pool.Resolve(p.ref)
			if !ok {
				continue // already gone: duplicate destroy request, idempotent no-op
			}
			tbl, ok := database.TryGet(loc.Table)
			if !ok {
				continue
			}
			tbl.SwapRemove(loc.Index)
		}

		for _, p := range moves {
			loc, ok := pool.Resolve(p.ref)
			if !ok {
				continue // destroyed earlier this pass: destroy took precedence
			}
			src, ok := database.TryGet(loc.Table)
			if !ok {
				continue
			}
			dst, ok := database.TryGet(p.dest)
			if !ok {
				return fmt.Errorf("event: move destination %+v does not exist", p.dest)
			}
			if err := src.Migrate(loc.Index, dst, 1); err != nil {
				return fmt.Errorf("event: migrating moved element: %w", err)
			}
		}
	}
	return nil
}

// Clear empties every event row in database, the final pipeline phase.
func Clear(database *db.Database) {
	for _, t := range database.Tables() {
		r, ok := eventRow(t)
		if !ok {
			continue
		}
		r.Range(func(i int, _ Event) bool {
			r.Delete(i)
			return true
		})
	}
}
