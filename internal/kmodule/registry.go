package kmodule

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/task"
)

// Registry holds modules in registration order and dispatches each hook to
// whichever modules implement it, in that same order. It performs no
// topological sort — the application orders Register calls so producers
// register before consumers, per §4.8.
type Registry struct {
	modules []Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Register appends m to the registration order.
func (r *Registry) Register(m Module) {
	r.modules = append(r.modules, m)
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []Module {
	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// CreateDatabases calls CreateDatabase then CreateDependentDatabase on
// every module that implements them, each pass in registration order, so
// that createDependentDatabase may assume every module's own tables exist.
func (r *Registry) CreateDatabases(args *CreateDatabaseArgs) {
	for _, m := range r.modules {
		if c, ok := m.(DatabaseCreator); ok {
			c.CreateDatabase(args)
		}
	}
	for _, m := range r.modules {
		if c, ok := m.(DependentDatabaseCreator); ok {
			c.CreateDependentDatabase(args)
		}
	}
}

// ReplicateShadowSchema rebuilds a shadow database's schema by re-invoking
// CreateDatabases with IsShadow set, so a shadow's tables are produced by
// the exact same declarations as main's, just scoped to fewer rows if a
// module chooses to branch on args.IsShadow.
func (r *Registry) ReplicateShadowSchema(shadow *db.Database, threadIndex int) {
	r.CreateDatabases(&CreateDatabaseArgs{Database: shadow, IsShadow: true, ThreadIndex: threadIndex})
}

// InitScheduler calls InitScheduler on every module that implements it.
func (r *Registry) InitScheduler(database *db.Database) error {
	for _, m := range r.modules {
		if s, ok := m.(SchedulerInitializer); ok {
			b := task.NewBuilder(database)
			s.InitScheduler(b)
			if _, err := b.Finalize(); err != nil {
				return fmt.Errorf("kmodule: %s.InitScheduler: %w", m.Name(), err)
			}
		}
	}
	return nil
}

// Init calls Init on every module that implements it, in registration order.
func (r *Registry) Init(database *db.Database) error {
	return r.dispatchInspector(database, func(m Module, b *task.Builder) bool {
		i, ok := m.(Initializer)
		if ok {
			i.Init(b)
		}
		return ok
	})
}

// DependentInit runs after Init, for modules that must see init complete.
func (r *Registry) DependentInit(database *db.Database) error {
	return r.dispatchInspector(database, func(m Module, b *task.Builder) bool {
		i, ok := m.(DependentInitializer)
		if ok {
			i.DependentInit(b)
		}
		return ok
	})
}

func (r *Registry) dispatchInspector(database *db.Database, call func(Module, *task.Builder) bool) error {
	for _, m := range r.modules {
		b := task.NewBuilder(database)
		if !call(m, b) {
			continue
		}
		if _, err := b.Finalize(); err != nil {
			return fmt.Errorf("kmodule: %s init hook: %w", m.Name(), err)
		}
	}
	return nil
}

// Update gathers every task registered by Updater modules' Update hook,
// in registration order.
func (r *Registry) Update(database *db.Database) ([]*task.AppTask, error) {
	return r.dispatchFactory(database, func(m Module, f *task.Factory) {
		if u, ok := m.(Updater); ok {
			u.Update(f)
		}
	})
}

func (r *Registry) PreProcessEvents(database *db.Database) ([]*task.AppTask, error) {
	return r.dispatchFactory(database, func(m Module, f *task.Factory) {
		if u, ok := m.(EventPreProcessor); ok {
			u.PreProcessEvents(f)
		}
	})
}

func (r *Registry) ProcessEvents(database *db.Database) ([]*task.AppTask, error) {
	return r.dispatchFactory(database, func(m Module, f *task.Factory) {
		if u, ok := m.(EventProcessor); ok {
			u.ProcessEvents(f)
		}
	})
}

func (r *Registry) PostProcessEvents(database *db.Database) ([]*task.AppTask, error) {
	return r.dispatchFactory(database, func(m Module, f *task.Factory) {
		if u, ok := m.(EventPostProcessor); ok {
			u.PostProcessEvents(f)
		}
	})
}

func (r *Registry) ClearEvents(database *db.Database) ([]*task.AppTask, error) {
	return r.dispatchFactory(database, func(m Module, f *task.Factory) {
		if u, ok := m.(EventClearer); ok {
			u.ClearEvents(f)
		}
	})
}

func (r *Registry) dispatchFactory(database *db.Database, call func(Module, *task.Factory)) ([]*task.AppTask, error) {
	f := task.NewFactory(database)
	for _, m := range r.modules {
		call(m, f)
	}
	return f.Finalize()
}
