package task

import (
	"fmt"

	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/ident"
	"github.com/tristanschneider/syx-sub002/internal/table"
)

// Builder is the transient per-task-definition object described in §4.5. A
// module's update/preProcessEvents/etc hook receives one, declares its
// access, supplies a callback, and Finalize produces the AppTask the
// scheduler will place in the graph.
type Builder struct {
	database *db.Database
	fp       Fingerprint
	pinning  Pinning
	thread   int
	name     string
	callback func(*Args)
	discarded bool
}

// NewBuilder creates a builder bound to database, used to resolve
// query<Rows...>() against the tables that currently exist.
func NewBuilder(database *db.Database) *Builder {
	return &Builder{database: database}
}

// Query declares read or write access to every table containing all of
// rows, and returns the matched tables for iteration inside the callback.
func (b *Builder) Query(mode AccessMode, rows ...ident.RowTypeID) *Result {
	b.fp.addQuery(mode, rows)
	return &Result{tables: b.database.Query(rows...)}
}

// QueryTable is Query scoped to one table.
func (b *Builder) QueryTable(id ident.TableID, mode AccessMode, rows ...ident.RowTypeID) *Result {
	b.fp.addTableQuery(id, mode, rows)
	tbl, ok := b.database.TryGet(id)
	if !ok {
		return &Result{}
	}
	for _, r := range rows {
		if _, ok := tbl.Row(r); !ok {
			return &Result{}
		}
	}
	return &Result{tables: []*table.Table{tbl}}
}

// GetResolver declares the ability to look up rows via StableRef.
func (b *Builder) GetResolver(rows ...ident.RowTypeID) *Resolver {
	b.fp.addResolver(rows)
	return newResolver(b.database.Pool(), b.database, rows)
}

// GetModifierForTable declares modify-structure access to id's table.
func (b *Builder) GetModifierForTable(id ident.TableID) (*Modifier, error) {
	tbl, ok := b.database.TryGet(id)
	if !ok {
		return nil, fmt.Errorf("task: no table %+v in database", id)
	}
	b.fp.addModifier(id)
	return &Modifier{tbl: tbl}, nil
}

// GetDatabase declares a whole-database (coarse) dependency: this task
// serializes against every other coarse user and every task that touches
// any row, per §4.6.
func (b *Builder) GetDatabase() *db.Database {
	b.fp.wholeDatabase = true
	return b.database
}

// SetPinning sets the task's thread constraint. threadIndex is required
// (and only meaningful) for PinSpecific.
func (b *Builder) SetPinning(p Pinning, threadIndex ...int) {
	b.pinning = p
	if p == PinSpecific && len(threadIndex) > 0 {
		b.thread = threadIndex[0]
	}
	if p == PinSynchronous {
		b.fp.synchronous = true
	}
}

// SetCallback supplies the task's work.
func (b *Builder) SetCallback(fn func(*Args)) {
	b.callback = fn
}

// SetName sets a debug label surfaced in scheduler traces and DOT dumps.
func (b *Builder) SetName(s string) {
	b.name = s
}

// Discard marks this builder as inert: it contributes no task. Used as a
// short-lived read-only inspector during the init phase, per §4.5.
func (b *Builder) Discard() {
	b.discarded = true
}

// Discarded reports whether Discard was called.
func (b *Builder) Discarded() bool { return b.discarded }

// Finalize produces the AppTask, or (nil, nil) if the builder was
// discarded. A builder that was never given a callback yields an error.
func (b *Builder) Finalize() (*AppTask, error) {
	if b.discarded {
		return nil, nil
	}
	if b.callback == nil {
		return nil, fmt.Errorf("task: builder %q finalized without a callback", b.name)
	}
	fp := b.fp
	return &AppTask{
		Fingerprint: &fp,
		Callback:    b.callback,
		Pinning:     b.pinning,
		ThreadIndex: b.thread,
		Name:        b.name,
	}, nil
}
