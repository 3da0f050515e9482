package translation

import (
	"fmt"

	"github.com/sarchlab/vliwdbt/insts"
	"github.com/sarchlab/vliwdbt/trace"
)

// Builder constructs translation blocks from an execute-packet stream.
// It assigns block IDs monotonically and owns the branch-delay tracker
// threaded through successive builds.
type Builder struct {
	nextID  int
	tracker *BranchDelayTracker
	tracer  trace.Tracer
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTracer routes the builder's diagnostics to t.
func WithTracer(t trace.Tracer) BuilderOption {
	return func(b *Builder) {
		b.tracer = t
	}
}

// WithTracker makes the builder record branch obligations in t instead
// of a fresh tracker.
func WithTracker(t *BranchDelayTracker) BuilderOption {
	return func(b *Builder) {
		b.tracker = t
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		tracker: NewBranchDelayTracker(),
		tracer:  trace.NilTracer{},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Tracker returns the branch-delay tracker. After a build, its
// MinOutstanding gives the cycle budget left for a follow-on block.
func (b *Builder) Tracker() *BranchDelayTracker {
	return b.tracker
}

// Build translates packets from startIndex under the TB-length
// constraint strategy: packets are appended in stream order until the
// cycle budget runs out or the stream ends. When a packet issues a
// branch whose delay-slot count is smaller than the remaining budget,
// the budget is clamped down to that count, since control may leave
// the block once the delay slots expire. The first packet is always
// included even if its cost alone exceeds the budget.
func (b *Builder) Build(
	stream []insts.ExecutePacket,
	startIndex, maxCycles int,
) (*TranslationBlock, error) {
	if startIndex < 0 || startIndex >= len(stream) {
		return nil, fmt.Errorf("%w: start %d, stream has %d packets",
			ErrStreamIndexOutOfRange, startIndex, len(stream))
	}

	tb := &TranslationBlock{
		ID:         b.allocID(),
		StartIndex: startIndex,
		MaxCycles:  maxCycles,
	}

	cycles := maxCycles
	index := startIndex

	// The budget check sits at the loop bottom so the first packet is
	// sampled unconditionally (progress guarantee).
	for index < len(stream) {
		ep := stream[index]
		tb.Packets = append(tb.Packets, ep)
		b.record("packet", "TB%d sampled %s", tb.ID, ep)

		minDelay, constrained := ep.MinBranchDelay()
		for _, in := range ep.Insts {
			if in.Kind == insts.KindBranch {
				b.tracker.Record(in)
				b.record("obligation",
					"TB%d saved branch context: delay=%d, target=%s",
					tb.ID, in.DelaySlots, in.Operands)
			}
		}

		cycles -= ep.Cycles
		index++

		if constrained && minDelay < cycles {
			b.record("budget",
				"TB%d branch with delay=%d constrains remaining cycles",
				tb.ID, minDelay)
			cycles = minDelay
		}

		b.record("budget", "TB%d remaining cycles: %d", tb.ID, cycles)

		if cycles <= 0 {
			break
		}
	}

	tb.EndIndex = index - 1
	b.record("tb", "TB%d closed: EP%d..EP%d (%d packets)",
		tb.ID, tb.StartIndex+1, tb.EndIndex+1, len(tb.Packets))

	return tb, nil
}

// BuildRange translates the inclusive packet range [startIndex,
// endIndex] as one block labeled with the given phase. Phase machines
// use it for the prolog/kernel/overlap footprints, whose extents are
// fixed by loop structure rather than a cycle budget.
func (b *Builder) BuildRange(
	stream []insts.ExecutePacket,
	startIndex, endIndex int,
	phase Phase,
) (*TranslationBlock, error) {
	if startIndex < 0 || startIndex >= len(stream) ||
		endIndex < startIndex || endIndex >= len(stream) {
		return nil, fmt.Errorf("%w: range [%d, %d], stream has %d packets",
			ErrStreamIndexOutOfRange, startIndex, endIndex, len(stream))
	}

	tb := &TranslationBlock{
		ID:         b.allocID(),
		StartIndex: startIndex,
		EndIndex:   endIndex,
		Phase:      phase,
	}
	tb.Packets = append(tb.Packets, stream[startIndex:endIndex+1]...)

	b.record("tb", "TB%d (%s) covers EP%d..EP%d (%d packets)",
		tb.ID, phase, startIndex+1, endIndex+1, len(tb.Packets))

	return tb, nil
}

func (b *Builder) allocID() int {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Builder) record(kind, format string, args ...any) {
	b.tracer.Record(trace.Event{
		ID:    trace.NewID(),
		Kind:  kind,
		Where: "translation.Builder",
		What:  fmt.Sprintf(format, args...),
	})
}
