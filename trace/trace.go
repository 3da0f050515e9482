// Package trace collects advisory diagnostics from the translation
// engine.
//
// Every operation of interest emits an Event: a packet sampled into a
// translation block, a branch obligation recorded or cleared, the
// remaining cycle budget after a packet, a pipeline phase transition,
// or a block dispatch. Tracers are advisory only; consumers of the
// engine must depend on its structured outputs, never on trace text.
package trace

import "github.com/rs/xid"

// An Event is one diagnostic record.
type Event struct {
	// ID uniquely identifies the event.
	ID string

	// Kind groups events: "packet", "obligation", "budget", "tb",
	// "phase", "dispatch".
	Kind string

	// Where names the emitting component, e.g. "translation.Builder".
	Where string

	// What is the human-readable detail.
	What string
}

// A Tracer consumes diagnostic events.
type Tracer interface {
	Record(e Event)
}

// NewID generates a unique event ID.
func NewID() string {
	return xid.New().String()
}

// NilTracer discards all events. It is the default tracer of every
// component that accepts one.
type NilTracer struct{}

// Record discards the event.
func (NilTracer) Record(Event) {}

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	tracers []Tracer
}

// NewMultiTracer creates a tracer that forwards each event to all the
// given tracers in order.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers}
}

// Record forwards the event.
func (t *MultiTracer) Record(e Event) {
	for _, tr := range t.tracers {
		tr.Record(e)
	}
}
