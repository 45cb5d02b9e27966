// Package eventvalidator implements the optional event validator module of
// §4.7: it asserts, between phases, that each stable-id element's observed
// location matches its last event-declared destination, catching
// module-authoring bugs such as emitting a move that never actually ran.
package eventvalidator

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/event"
	"github.com/tristanschneider/syx-sub002/internal/ident"
)

// Violation describes one element whose observed location disagreed with
// its declared event.
type Violation struct {
	Ref      ident.StableRef
	Expected ident.TableID
	Observed ident.TableID
	Destroyed bool
}

func (v Violation) Error() string {
	if v.Destroyed {
		return fmt.Sprintf("eventvalidator: element declared destroyed still resolves to table %+v", v.Observed)
	}
	return fmt.Sprintf("eventvalidator: element declared moved to %+v actually resolves to %+v", v.Expected, v.Observed)
}

// Validate scans every table's event row and compares each pending move or
// destroy declaration against the mapping pool's current resolution. Call
// this between processEvents and clearEvents, before the declarations are
// wiped; it returns the first violation found, or nil.
func Validate(database *db.Database) error {
	for _, t := range database.Tables() {
		if !t.HasStableIDRow() {
			continue
		}
		evRow, ok := t.Row(event.RowType)
		if !ok {
			continue
		}
		sparse, ok := evRow.(interface {
			Range(func(int, event.Event) bool)
		})
		if !ok {
			continue
		}
		var violation error
		sparse.Range(func(index int, ev event.Event) bool {
			// The event row itself may have migrated along with its owning
			// element, so the index we're iterating here is the row's
			// current position, not necessarily the ref this entry was
			// originally filed against. Re-derive the ref from the row
			// we're scanning rather than assuming it is stale.
			ref, ok := t.StableRefAt(index)
			if !ok {
				return true
			}
			loc, resolved := t.Pool().Resolve(ref)
			switch {
			case ev.Flags.Has(event.Destroyed):
				if resolved {
					violation = Violation{Ref: ref, Observed: loc.Table, Destroyed: true}
					return false
				}
			case ev.Flags.Has(event.Moved):
				if !resolved || loc.Table != ev.Destination {
					observed := ident.TableID{}
					if resolved {
						observed = loc.Table
					}
					violation = Violation{Ref: ref, Expected: ev.Destination, Observed: observed}
					return false
				}
			}
			return true
		})
		if violation != nil {
			return violation
		}
	}
	return nil
}
