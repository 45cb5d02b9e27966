package scene

import (
	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/event"
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/row"
)

// ClearedTagType is the row type marking a table as cleared-with-scene: any
// table carrying this tag has every element destroyed as soon as the active
// scene starts tearing down, without each module having to wire its own
// uninit task for it.
var ClearedTagType = ident.NewRowTypeID("IsClearedWithScene")

// NewClearedTag creates an empty cleared-with-scene tag row.
func NewClearedTag() *row.Tag {
	return row.NewTag(ClearedTagType)
}

// DefaultCleanup destroys every element of every table tagged
// ClearedTagType, once machine enters NeedsUninit. Intended to run once per
// frame as an unconditional task — it checks the machine's state itself
// rather than being wrapped in Gate, since it isn't scoped to one scene.
func DefaultCleanup(database *db.Database, machine *Machine) error {
	if machine.State() != NeedsUninit {
		return nil
	}
	for _, tbl := range database.Tables() {
		if _, ok := tbl.Row(ClearedTagType); !ok {
			continue
		}
		n := tbl.Len()
		for i := 0; i < n; i++ {
			if err := event.Destroy(tbl, i); err != nil {
				return err
			}
		}
	}
	return nil
}
