package event

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/row"
	"github.com/tristanschneider/syx-sub002/internal/table"
)

// NewRow creates an empty event row of length 0. Table.AddRow accepts it
// only while the table still has no elements.
func NewRow() *row.Sparse[Event] {
	return row.NewSparse[Event](RowType)
}

func eventRow(t *table.Table) (*row.Sparse[Event], bool) {
	r, ok := t.Row(RowType)
	if !ok {
		return nil, false
	}
	s, ok := r.(*row.Sparse[Event])
	return s, ok
}

// Destroy appends a destroy request for the element at index i in t. It
// OR-merges onto whatever event is already pending, so a duplicate destroy
// request in the same frame is harmless: the applier only ever observes
// "destroy is set or not", never a count.
func Destroy(t *table.Table, i int) error {
	r, ok := eventRow(t)
	if !ok {
		return fmt.Errorf("event: table %+v has no event row", t.ID())
	}
	r.Update(i, func(e Event) Event {
		e.Flags |= Destroyed
		return e
	})
	return nil
}

// MarkCreate appends a create notification for the element at index i in t,
// OR-merging onto any event already pending for that index.
func MarkCreate(t *table.Table, i int) error {
	r, ok := eventRow(t)
	if !ok {
		return fmt.Errorf("event: table %+v has no event row", t.ID())
	}
	r.Update(i, func(e Event) Event {
		e.Flags |= Create
		return e
	})
	return nil
}

// Move appends a move-to-dst request for the element at index i in t.
func Move(t *table.Table, i int, dst ident.TableID) error {
	r, ok := eventRow(t)
	if !ok {
		return fmt.Errorf("event: table %+v has no event row", t.ID())
	}
	r.Update(i, func(e Event) Event {
		e.Flags |= Moved
		e.Destination = dst
		return e
	})
	return nil
}

