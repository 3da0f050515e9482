package sploop

import (
	"fmt"

	"github.com/sarchlab/vliwdbt/insts"
	"github.com/sarchlab/vliwdbt/trace"
	"github.com/sarchlab/vliwdbt/translation"
)

// machine holds the parts shared by the single and nested loop
// machines: the guest stream, the builder, the phase cache, and the
// resolved kernel-start index.
type machine struct {
	id         int
	stream     []insts.ExecutePacket
	builder    *translation.Builder
	dispatcher Dispatcher
	tracer     trace.Tracer
	cache      *Cache

	// kernelStart is the stream index immediately following the
	// SPLOOP marker packet, or -1 until the prolog resolves it.
	kernelStart int
}

// Option configures a loop machine.
type Option func(*machine)

// WithTracer routes the machine's diagnostics to t.
func WithTracer(t trace.Tracer) Option {
	return func(m *machine) {
		m.tracer = t
	}
}

// WithBuilder makes the machine translate through b, sharing its
// block-ID sequence with other users.
func WithBuilder(b *translation.Builder) Option {
	return func(m *machine) {
		m.builder = b
	}
}

// WithCache makes the machine use a shared translation cache. Entries
// are keyed by loop instance, so several loops may share one cache.
func WithCache(c *Cache) Option {
	return func(m *machine) {
		m.cache = c
	}
}

// WithLoopID sets the loop instance identity used in cache keys.
func WithLoopID(id int) Option {
	return func(m *machine) {
		m.id = id
	}
}

func newMachine(stream []insts.ExecutePacket, d Dispatcher, opts []Option) machine {
	m := machine{
		stream:      stream,
		dispatcher:  d,
		tracer:      trace.NilTracer{},
		kernelStart: -1,
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.builder == nil {
		m.builder = translation.NewBuilder()
	}
	if m.cache == nil {
		m.cache = NewCache()
	}

	return m
}

// resolveKernelStart locates the SPLOOP marker and fixes the kernel
// start at the packet after it.
func (m *machine) resolveKernelStart() error {
	if m.kernelStart >= 0 {
		return nil
	}

	for i, ep := range m.stream {
		if ep.HasKind(insts.KindSploop) {
			m.kernelStart = i + 1
			return nil
		}
	}

	return fmt.Errorf("%w: no SPLOOP marker in stream",
		ErrUnresolvedKernelBoundary)
}

func (m *machine) dispatch(where string, tb *translation.TranslationBlock) {
	m.dispatcher.Dispatch(tb)
	m.record("dispatch", where, "dispatched TB%d (%s)", tb.ID, tb.Phase)
}

func (m *machine) record(kind, where, format string, args ...any) {
	m.tracer.Record(trace.Event{
		ID:    trace.NewID(),
		Kind:  kind,
		Where: where,
		What:  fmt.Sprintf(format, args...),
	})
}
