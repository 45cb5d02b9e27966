package row

import "github.com/tristanschneider/syx-sub002/internal/ident"

// Dense is a contiguous buffer of T, one value per element. Grow preserves
// default-value semantics: grown slots are the zero value of T.
type Dense[T any] struct {
	typeID ident.RowTypeID
	data   []T
}

// NewDense creates an empty dense row for the given row type identity.
func NewDense[T any](typeID ident.RowTypeID) *Dense[T] {
	return &Dense[T]{typeID: typeID}
}

func (d *Dense[T]) TypeID() ident.RowTypeID { return d.typeID }
func (d *Dense[T]) Kind() ident.RowKind     { return ident.KindDense }
func (d *Dense[T]) Len() int                { return len(d.data) }

// At returns a mutable reference to element i.
func (d *Dense[T]) At(i int) *T {
	return &d.data[i]
}

func (d *Dense[T]) Grow(n int) {
	if n == 0 {
		return
	}
	var zero T
	for k := 0; k < n; k++ {
		d.data = append(d.data, zero)
	}
}

func (d *Dense[T]) SwapRemove(i int) {
	last := len(d.data) - 1
	if i != last {
		d.data[i] = d.data[last]
	}
	var zero T
	d.data[last] = zero
	d.data = d.data[:last]
}

func (d *Dense[T]) MoveElement(srcIndex int, dst Row, dstIndex int) {
	other := dst.(*Dense[T])
	other.data[dstIndex] = d.data[srcIndex]
}

var (
	_ Row   = (*Dense[int])(nil)
	_ Mover = (*Dense[int])(nil)
)
