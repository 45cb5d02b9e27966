// Package event implements the four-phase event pipeline of §4.7: a sparse
// per-element event row, and an applier that processes destroy and move
// requests once per frame, destroy taking precedence over move.
package event

import (
	"github.com/tristanschneider/syx-sub002/internal/ident"
)

// Flags is the set of pending actions declared against an element this
// frame. A create event carries no action in the applier: creation is
// already reflected by the table's element count at the time the row was
// appended.
type Flags uint8

const (
	Create Flags = 1 << iota
	Moved
	Destroyed
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Event is the sparse row's value type. Destination is meaningful only when
// Moved is set.
type Event struct {
	Flags       Flags
	Destination ident.TableID
}

// RowType is the row-type identity shared by every event row in every
// table that carries one; the applier looks up this one id regardless of
// which table it is scanning.
var RowType = ident.NewRowTypeID("Event")
