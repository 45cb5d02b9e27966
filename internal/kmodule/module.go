// Package kmodule implements the module framework of §4.8: modules expose
// a subset of a fixed hook set, invoked in registration order with no
// automatic topological sort.
package kmodule

import (
	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/task"
)

// CreateDatabaseArgs is passed to CreateDatabase and CreateDependentDatabase.
// IsShadow and ThreadIndex let a module distinguish building the main
// database's schema from replaying the same schema declarations against a
// per-thread shadow database, which is how this kernel clones a shadow's
// schema instead of building a generic reflection-based row-factory.
type CreateDatabaseArgs struct {
	Database    *db.Database
	IsShadow    bool
	ThreadIndex int
}

// Module is a marker interface; a concrete module implements whichever of
// the hook interfaces below it needs. The framework type-asserts each hook
// rather than requiring every method, so "every module exposes a subset of
// the hook set" (§4.8) is enforced structurally rather than by convention.
type Module interface {
	Name() string
}

type DatabaseCreator interface {
	CreateDatabase(args *CreateDatabaseArgs)
}

type DependentDatabaseCreator interface {
	CreateDependentDatabase(args *CreateDatabaseArgs)
}

type SchedulerInitializer interface {
	InitScheduler(b *task.Builder)
}

type Initializer interface {
	Init(b *task.Builder)
}

type DependentInitializer interface {
	DependentInit(b *task.Builder)
}

type Updater interface {
	Update(f *task.Factory)
}

type EventPreProcessor interface {
	PreProcessEvents(f *task.Factory)
}

type EventProcessor interface {
	ProcessEvents(f *task.Factory)
}

type EventPostProcessor interface {
	PostProcessEvents(f *task.Factory)
}

type EventClearer interface {
	ClearEvents(f *task.Factory)
}
