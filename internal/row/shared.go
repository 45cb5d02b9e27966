package row

import "github.com/tristanschneider/syx-sub002/internal/ident"

// Shared stores a single T for the whole table. It reports the table's
// element count (so a table's invariant "every row reports the same
// count" holds) but Get returns the same reference for the whole table.
type Shared[T any] struct {
	typeID ident.RowTypeID
	value  T
	count  int
}

// NewShared creates a shared row with the given initial value.
func NewShared[T any](typeID ident.RowTypeID, initial T) *Shared[T] {
	return &Shared[T]{typeID: typeID, value: initial}
}

func (s *Shared[T]) TypeID() ident.RowTypeID { return s.typeID }
func (s *Shared[T]) Kind() ident.RowKind     { return ident.KindShared }
func (s *Shared[T]) Len() int                { return s.count }

// Get returns a mutable reference to the table's single value.
func (s *Shared[T]) Get() *T {
	return &s.value
}

func (s *Shared[T]) Grow(n int) {
	s.count += n
}

func (s *Shared[T]) SwapRemove(int) {
	s.count--
}

// MoveElement is a no-op: a shared row's single value belongs to the table,
// not to any one element, so migrating elements does not move it. The
// destination table keeps whatever shared value it already had (including
// its own zero value if this is the first migration into an empty shadow
// replica).
func (s *Shared[T]) MoveElement(int, Row, int) {}

var (
	_ Row   = (*Shared[int])(nil)
	_ Mover = (*Shared[int])(nil)
)
