// Package demo provides a minimal module used by cmd/simkernel to exercise
// the kernel end to end: a position/velocity table and a task that
// integrates velocity into position every frame.
package demo

import (
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/kmodule"
	"github.com/tristanschneider/syx-sub002/internal/row"
	"github.com/tristanschneider/syx-sub002/internal/task"
)

var (
	PositionType = ident.NewRowTypeID("demo.Position")
	VelocityType = ident.NewRowTypeID("demo.Velocity")
	StableIDType = ident.NewRowTypeID("demo.StableID")
)

// MovementModule owns the Position/Velocity table and the task that
// integrates one into the other every frame.
type MovementModule struct{}

func (MovementModule) Name() string { return "demo.movement" }

func (MovementModule) CreateDatabase(args *kmodule.CreateDatabaseArgs) {
	tbl := args.Database.AddTable()
	_ = tbl.AddRow(row.NewDense[float64](PositionType))
	_ = tbl.AddRow(row.NewDense[float64](VelocityType))
	ids := row.NewDense[ident.StableRef](StableIDType)
	_ = tbl.AddRow(ids)
	_ = tbl.SetStableIDRow(StableIDType)
}

func (MovementModule) Update(f *task.Factory) {
	b := f.NewBuilder()
	positions := b.Query(task.AccessWrite, PositionType, VelocityType)
	b.SetName("demo.movement.integrate")
	b.SetCallback(func(*task.Args) {
		for _, t := range positions.Tables() {
			pos, ok := task.RowOf[float64](t, PositionType)
			if !ok {
				continue
			}
			vel, ok := task.RowOf[float64](t, VelocityType)
			if !ok {
				continue
			}
			for i := 0; i < t.Len(); i++ {
				*pos.At(i) += *vel.At(i)
			}
		}
	})
}
