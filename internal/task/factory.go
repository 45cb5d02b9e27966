package task

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/db"
)

// Factory hands out Builders for hooks that may register more than one task
// per invocation (update, and each event-pipeline phase), collecting their
// finalized AppTasks in registration order.
type Factory struct {
	database *db.Database
	builders []*Builder
}

// NewFactory creates a Factory bound to database.
func NewFactory(database *db.Database) *Factory {
	return &Factory{database: database}
}

// NewBuilder creates a Builder and registers it with the factory so a later
// call to Finalize collects it.
func (f *Factory) NewBuilder() *Builder {
	b := NewBuilder(f.database)
	f.builders = append(f.builders, b)
	return b
}

// Finalize finalizes every builder created through this factory, in
// creation order, skipping discarded ones.
func (f *Factory) Finalize() ([]*AppTask, error) {
	var out []*AppTask
	for i, b := range f.builders {
		at, err := b.Finalize()
		if err != nil {
			return nil, fmt.Errorf("task: finalizing builder %d: %w", i, err)
		}
		if at != nil {
			out = append(out, at)
		}
	}
	return out, nil
}
