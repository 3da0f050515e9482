// Package translation builds translation blocks from guest
// execute-packet streams.
//
// A TranslationBlock (TB) is a contiguous run of execute packets
// translated together as one cache/dispatch unit. Block length is
// constrained by outstanding branch delay slots: once a branch issues,
// control may leave the block after its delay slots expire, so no more
// than that many further cycles of packets may be sampled into the
// block.
package translation

import "github.com/sarchlab/vliwdbt/insts"

// Phase labels a translation block with the pipelined-loop segment it
// covers. PhaseNone marks straight-line blocks.
type Phase uint8

// Pipelined-loop phases.
const (
	PhaseNone Phase = iota
	PhaseProlog
	PhaseKernel
	PhaseOverlap
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseProlog:
		return "prolog"
	case PhaseKernel:
		return "kernel"
	case PhaseOverlap:
		return "overlap"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// A TranslationBlock is an ordered run of execute packets plus the
// bookkeeping needed to reuse it. Packets keep stream order; they are
// never reordered across packet boundaries.
type TranslationBlock struct {
	// ID is unique and monotonically assigned by the Builder.
	ID int

	// Packets are the execute packets covered by the block, in stream
	// order.
	Packets []insts.ExecutePacket

	// StartIndex and EndIndex are inclusive indices into the
	// originating stream. EndIndex = StartIndex + len(Packets) - 1.
	StartIndex int
	EndIndex   int

	// MaxCycles is the cycle budget the block was built under. Zero
	// for range-built phase blocks.
	MaxCycles int

	// Phase is the pipelined-loop segment this block covers, or
	// PhaseNone for straight-line blocks.
	Phase Phase
}
