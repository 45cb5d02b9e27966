// Package eventbus is an optional JetStream sink for the event pipeline:
// when a JetStream context is attached, Sink.PublishTable publishes each
// pending destroy/move entry of a table's event row as an Envelope, for
// external observers (devtools, replay tooling). event.Apply does not call
// it; a task in an event phase does. The
// kernel itself never subscribes back to it — this is fire-and-forget,
// mirroring the teacher's own "supplementary, not a prerequisite" stance
// on its JetStream publishing.
package eventbus

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tristanschneider/syx-sub002/internal/db"
	"github.com/tristanschneider/syx-sub002/internal/event"
	"github.com/tristanschneider/syx-sub002/internal/ident"
)

// Sink publishes event envelopes to JetStream, if attached.
type Sink struct {
	mu sync.RWMutex
	js nats.JetStreamContext
}

// New creates a Sink with no JetStream context attached; Publish is then a
// no-op, which is the default (JetStream publishing is opt-in).
func New() *Sink {
	return &Sink{}
}

// SetJetStream attaches js; Publish calls after this point will publish.
func (s *Sink) SetJetStream(js nats.JetStreamContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.js = js
}

// Enabled reports whether a JetStream context is attached.
func (s *Sink) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.js != nil
}

// PublishTable scans t's event row (if any) and publishes one envelope per
// pending destroy or move entry. Intended to be called right before the
// event row is cleared, from a processEvents or postProcessEvents task.
func (s *Sink) PublishTable(database *db.Database, tableID ident.TableID) {
	s.mu.RLock()
	js := s.js
	s.mu.RUnlock()
	if js == nil {
		return
	}

	tbl, ok := database.TryGet(tableID)
	if !ok || !tbl.HasStableIDRow() {
		return
	}
	r, ok := tbl.Row(event.RowType)
	if !ok {
		return
	}
	sparse, ok := r.(interface {
		Range(func(int, event.Event) bool)
	})
	if !ok {
		return
	}

	sparse.Range(func(index int, ev event.Event) bool {
		if ev.Flags&(event.Moved|event.Destroyed) == 0 {
			return true
		}
		ref, ok := tbl.StableRefAt(index)
		if !ok {
			return true
		}
		env := Envelope{
			Table:       tableID,
			Index:       index,
			Ref:         ref,
			Flags:       ev.Flags,
			Destination: ev.Destination,
			PublishedAt: time.Now().UTC(),
		}
		s.publish(js, env)
		return true
	})
}

func (s *Sink) publish(js nats.JetStreamContext, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("eventbus: failed to marshal envelope for table %+v: %v", env.Table, err)
		return
	}
	subject := SubjectFor(env.Table.DBIndex, env.Table.TableIndex)
	if _, err := js.Publish(subject, data); err != nil {
		log.Printf("eventbus: publish to %s failed: %v", subject, err)
	}
}
