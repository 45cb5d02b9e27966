package task

import "github.com/tristanschneider/syx-sub002/internal/table"

// Modifier grants modify-structure access to one table: AddElements,
// SwapRemove, and Migrate, per getModifierForTable in §4.5. It is a thin
// wrapper so that structural access is only reachable through a builder
// declaration that also contributed the corresponding fingerprint entry.
type Modifier struct {
	tbl *table.Table
}

func (m *Modifier) AddElements(n int) int { return m.tbl.AddElements(n) }

func (m *Modifier) SwapRemove(i int) { m.tbl.SwapRemove(i) }

func (m *Modifier) Migrate(srcIndex int, dst *Modifier, count int) error {
	return m.tbl.Migrate(srcIndex, dst.tbl, count)
}

func (m *Modifier) Table() *table.Table { return m.tbl }
