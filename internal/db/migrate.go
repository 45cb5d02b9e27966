package db

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/ident"
)

// MigrateShadowInto drains every table of shadow into its structurally
// corresponding table in main (matched by TableIndex, since shadow and main
// databases are built by replaying the same module schema-declaration
// hooks in the same order) and clears each table's dirty flag.
//
// This is the migration task described in §4.4: it must run as a barrier
// while no simulation task is executing, because it mutates both the shadow
// and the main tables and relocates every migrated element's mapping slot.
// It allocates no new slots; those were allocated when the elements were
// added to the shadow table.
func MigrateShadowInto(shadow, main *Database) error {
	for _, shadowTable := range shadow.Tables() {
		if !shadowTable.Dirty() {
			continue
		}
		mainTable, ok := main.TryGet(ident.TableID{DBIndex: main.index, TableIndex: shadowTable.ID().TableIndex})
		if !ok {
			return fmt.Errorf("db: shadow table %d has no corresponding main table", shadowTable.ID().TableIndex)
		}
		n := shadowTable.Len()
		if n > 0 {
			if err := shadowTable.Migrate(0, mainTable, n); err != nil {
				return fmt.Errorf("db: migrating shadow table %d: %w", shadowTable.ID().TableIndex, err)
			}
		}
		shadowTable.ClearDirty()
	}
	return nil
}
