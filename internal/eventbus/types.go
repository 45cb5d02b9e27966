package eventbus

import (
	"time"

	"github.com/tristanschneider/syx-sub002/internal/event"
	"github.com/tristanschneider/syx-sub002/internal/ident"
)

// Envelope is what gets published to JetStream for one element's pending
// destroy/move event — an optional, purely observational
// sink; nothing in the kernel reads events back off JetStream.
type Envelope struct {
	Table       ident.TableID `json:"table"`
	Index       int           `json:"index"`
	Ref         ident.StableRef `json:"ref"`
	Flags       event.Flags   `json:"flags"`
	Destination ident.TableID `json:"destination,omitempty"`
	PublishedAt time.Time     `json:"published_at"`
}
