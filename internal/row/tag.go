package row

import "github.com/tristanschneider/syx-sub002/internal/ident"

// Tag is a zero-payload presence marker used purely for querying: a table
// either has the tag row or it doesn't, and every element in the table
// carries it.
type Tag struct {
	typeID ident.RowTypeID
	count  int
}

// NewTag creates an empty tag row.
func NewTag(typeID ident.RowTypeID) *Tag {
	return &Tag{typeID: typeID}
}

func (t *Tag) TypeID() ident.RowTypeID { return t.typeID }
func (t *Tag) Kind() ident.RowKind     { return ident.KindTag }
func (t *Tag) Len() int                { return t.count }

func (t *Tag) Grow(n int) {
	t.count += n
}

func (t *Tag) SwapRemove(int) {
	t.count--
}

func (t *Tag) MoveElement(int, Row, int) {}

var (
	_ Row   = (*Tag)(nil)
	_ Mover = (*Tag)(nil)
)
