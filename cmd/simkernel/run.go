package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/demo"
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/kmodule"
	"github.com/tristanschneider/syx-sub002/internal/scheduler"
	"github.com/tristanschneider/syx-sub002/internal/task"
)

var frameCount int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo module set for a fixed number of frames",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("simkernel: creating trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
		defer tp.Shutdown(ctx)
		otel.SetTracerProvider(tp)

		metricExporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("simkernel: creating metric exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
		defer mp.Shutdown(ctx)
		otel.SetMeterProvider(mp)

		pool := ident.NewPool()
		database := db.New(db.MainIndex, pool)
		reg := kmodule.NewRegistry()
		reg.Register(demo.MovementModule{})
		reg.CreateDatabases(&kmodule.CreateDatabaseArgs{Database: database})

		lookup := func(id ident.TableID) (task.TableRows, bool) {
			return database.TryGet(id)
		}

		exec, err := scheduler.NewExecutor(4, func(i int) *task.Args {
			return &task.Args{ThreadIndex: i, Main: database}
		})
		if err != nil {
			return err
		}

		for frame := 0; frame < frameCount; frame++ {
			tasks, err := reg.Update(database)
			if err != nil {
				return fmt.Errorf("simkernel: frame %d: %w", frame, err)
			}
			g := scheduler.Build(tasks, lookup)
			if err := exec.Run(ctx, g); err != nil {
				return fmt.Errorf("simkernel: frame %d: %w", frame, err)
			}
		}
		fmt.Printf("ran %d frames\n", frameCount)
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&frameCount, "frames", 60, "number of frames to run")
}
