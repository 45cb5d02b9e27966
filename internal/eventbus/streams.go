package eventbus

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

const (
	// StreamKernelEvents is the JetStream stream backing the optional
	// event-pipeline sink.
	StreamKernelEvents = "KERNEL_EVENTS"
	// SubjectKernelPrefix prefixes every subject this package publishes to.
	SubjectKernelPrefix = "kernel."
)

// SubjectFor returns the NATS subject an envelope for the given table
// index is published under: "kernel.<dbIndex>.<tableIndex>".
func SubjectFor(dbIndex, tableIndex int) string {
	return fmt.Sprintf("%s%d.%d", SubjectKernelPrefix, dbIndex, tableIndex)
}

// EnsureStream creates the KERNEL_EVENTS stream if it doesn't already
// exist. Call once during application startup when JetStream is enabled.
func EnsureStream(js nats.JetStreamContext) error {
	if _, err := js.StreamInfo(StreamKernelEvents); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     StreamKernelEvents,
			Subjects: []string{SubjectKernelPrefix + ">"},
			Storage:  nats.FileStorage,
			MaxMsgs:  10000,
			MaxBytes: 100 << 20,
		})
		if err != nil {
			return fmt.Errorf("eventbus: create %s stream: %w", StreamKernelEvents, err)
		}
	}
	return nil
}
