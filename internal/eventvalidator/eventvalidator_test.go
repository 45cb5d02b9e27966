package eventvalidator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/event"
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/row"
)

var positionType = ident.NewRowTypeID("Position")

func newTable(t *testing.T, database *db.Database) *row.Dense[ident.StableRef] {
	t.Helper()
	tbl := database.AddTable()
	require.NoError(t, tbl.AddRow(row.NewDense[int](positionType)))
	ids := row.NewDense[ident.StableRef](ident.NewRowTypeID("StableID"))
	require.NoError(t, tbl.AddRow(ids))
	require.NoError(t, tbl.SetStableIDRow(ids.TypeID()))
	require.NoError(t, tbl.AddRow(event.NewRow()))
	return ids
}

func TestValidatePassesAfterCorrectlyAppliedEvents(t *testing.T) {
	pool := ident.NewPool()
	database := db.New(db.MainIndex, pool)
	ids := newTable(t, database)
	tbl := database.Tables()[0]
	tblB := database.AddTable()
	require.NoError(t, tblB.AddRow(row.NewDense[int](positionType)))
	idsB := row.NewDense[ident.StableRef](ident.NewRowTypeID("StableID"))
	require.NoError(t, tblB.AddRow(idsB))
	require.NoError(t, tblB.SetStableIDRow(idsB.TypeID()))
	require.NoError(t, tblB.AddRow(event.NewRow()))

	start := tbl.AddElements(1)
	_ = *ids.At(start)
	require.NoError(t, event.Move(tbl, start, tblB.ID()))
	require.NoError(t, event.Apply(database))

	require.NoError(t, Validate(database))
}

func TestValidateCatchesUnappliedDestroy(t *testing.T) {
	pool := ident.NewPool()
	database := db.New(db.MainIndex, pool)
	newTable(t, database)
	tbl := database.Tables()[0]

	start := tbl.AddElements(1)
	require.NoError(t, event.Destroy(tbl, start))
	// Deliberately skip event.Apply to simulate a module that declared the
	// event but never actually ran the applier.

	err := Validate(database)
	require.Error(t, err)
}
