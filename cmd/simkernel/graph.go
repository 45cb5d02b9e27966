package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/demo"
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/kmodule"
	"github.com/tristanschneider/syx-sub002/internal/scheduler"
	"github.com/tristanschneider/syx-sub002/internal/task"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the update-phase scheduler graph as Graphviz dot",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool := ident.NewPool()
		database := db.New(db.MainIndex, pool)
		reg := kmodule.NewRegistry()
		reg.Register(demo.MovementModule{})
		reg.CreateDatabases(&kmodule.CreateDatabaseArgs{Database: database})

		tasks, err := reg.Update(database)
		if err != nil {
			return fmt.Errorf("simkernel: building update tasks: %w", err)
		}
		lookup := func(id ident.TableID) (task.TableRows, bool) {
			return database.TryGet(id)
		}
		g := scheduler.Build(tasks, lookup)
		fmt.Println(g.DOT())
		return nil
	},
}
