package row

import "github.com/tristanschneider/syx-sub002/internal/ident"

// Sparse is an associative (element-index -> T) row. Most elements have no
// entry; iteration order is unspecified and callers must not rely on it —
// this is the variant events live in, per §9's design notes, so that a
// quiet frame costs nothing and clearing is never O(table size).
type Sparse[T any] struct {
	typeID ident.RowTypeID
	data   map[int]T
	count  int // mirrors the owning table's element count, not len(data)
}

// NewSparse creates an empty sparse row.
func NewSparse[T any](typeID ident.RowTypeID) *Sparse[T] {
	return &Sparse[T]{typeID: typeID, data: make(map[int]T)}
}

func (s *Sparse[T]) TypeID() ident.RowTypeID { return s.typeID }
func (s *Sparse[T]) Kind() ident.RowKind     { return ident.KindSparse }
func (s *Sparse[T]) Len() int                { return s.count }

// Get returns the value at i and whether one is present.
func (s *Sparse[T]) Get(i int) (T, bool) {
	v, ok := s.data[i]
	return v, ok
}

// GetOrAdd returns the entry at i, inserting a zero-value entry first if
// none exists yet.
func (s *Sparse[T]) GetOrAdd(i int) T {
	v, ok := s.data[i]
	if !ok {
		var zero T
		s.data[i] = zero
		return zero
	}
	return v
}

// Set writes i's value directly, adding the entry if absent.
func (s *Sparse[T]) Set(i int, v T) {
	s.data[i] = v
}

// Update applies fn to the current value at i (the zero value if absent)
// and stores the result, giving callers get_or_add-then-mutate semantics
// in one call — the shape the event row uses to OR a new bit into an
// element's pending event bitfield.
func (s *Sparse[T]) Update(i int, fn func(T) T) {
	s.data[i] = fn(s.data[i])
}

// Delete removes the entry at i, if any, without affecting Len (the table
// element still exists; only its sparse payload is cleared).
func (s *Sparse[T]) Delete(i int) {
	delete(s.data, i)
}

// Range iterates present entries in unspecified order, stopping early if fn
// returns false.
func (s *Sparse[T]) Range(fn func(index int, value T) bool) {
	for i, v := range s.data {
		if !fn(i, v) {
			return
		}
	}
}

func (s *Sparse[T]) Grow(n int) {
	s.count += n
}

// SwapRemove erases logical element i. If a tail entry exists at the
// current last index, it is relabeled to i (preserving its value); entries
// for both positions are otherwise simply absent, which is valid sparse
// state.
func (s *Sparse[T]) SwapRemove(i int) {
	last := s.count - 1
	if i != last {
		if v, ok := s.data[last]; ok {
			s.data[i] = v
		} else {
			delete(s.data, i)
		}
		delete(s.data, last)
	} else {
		delete(s.data, i)
	}
	s.count--
}

func (s *Sparse[T]) MoveElement(srcIndex int, dst Row, dstIndex int) {
	other := dst.(*Sparse[T])
	if v, ok := s.data[srcIndex]; ok {
		other.data[dstIndex] = v
	}
}

var (
	_ Row   = (*Sparse[int])(nil)
	_ Mover = (*Sparse[int])(nil)
)
