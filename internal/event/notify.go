package event

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/table"
)

// NotifyingModifier wraps a table's AddElements so that callers never have
// to remember to raise a Create event themselves: every element it adds is
// tagged Create in the same call.
type NotifyingModifier struct {
	tbl *table.Table
}

// NewNotifyingModifier wraps tbl, which must already carry an event row.
func NewNotifyingModifier(tbl *table.Table) (*NotifyingModifier, error) {
	if _, ok := eventRow(tbl); !ok {
		return nil, fmt.Errorf("event: table %+v has no event row to notify through", tbl.ID())
	}
	return &NotifyingModifier{tbl: tbl}, nil
}

// AddElements adds count elements to the wrapped table, marks each one
// Create, and returns the index of the first added element.
func (m *NotifyingModifier) AddElements(count int) int {
	start := m.tbl.AddElements(count)
	for i := start; i < start+count; i++ {
		MarkCreate(m.tbl, i)
	}
	return start
}

// Table returns the table this modifier wraps.
func (m *NotifyingModifier) Table() *table.Table { return m.tbl }
