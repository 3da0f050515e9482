// Package insts provides the VLIW guest-code model.
//
// Guest code arrives as a sequence of execute packets: bundles of
// instructions that the hardware issues together in one cycle. The
// decoder that produces these records from raw machine words lives
// outside this module; the packet streams in the guest package stand
// in for it.
//
// Usage:
//
//	ep := insts.ExecutePacket{Num: 1, Cycles: 1, Insts: []insts.Instruction{
//		{Kind: insts.KindBranch, Mnemonic: "B", Unit: ".S2", DelaySlots: 5, Operands: "LOOP"},
//	}}
//	delay, ok := ep.MinBranchDelay()
package insts

// Kind classifies an instruction for the translation algorithms.
// Fields the algorithms never branch on (unit, operands) stay opaque
// text.
type Kind uint8

// Instruction kinds.
const (
	KindOther Kind = iota
	KindBranch
	KindStore
	KindLoad
	KindArithmetic
	KindNop
	KindSploop   // SPLOOP marker: opens a software-pipelined loop body
	KindSpkernel // SPKERNEL marker: steady-state kernel boundary
	KindSpmask   // SPMASK marker: predicate-guarded partial execution
)

// Instruction is one decoded guest instruction. Instances are treated
// as immutable values once constructed.
type Instruction struct {
	Kind     Kind
	Mnemonic string
	Unit     string // functional-unit label, e.g. ".S2"

	// DelaySlots is the number of branch delay slots. Meaningful only
	// for KindBranch.
	DelaySlots int

	// Predicate is the guard register text, e.g. "[B1]". Empty means
	// unconditional.
	Predicate string

	Operands string

	// Line is the source line the instruction came from (provenance).
	Line int

	// Parallel marks an instruction co-issued with the one before it
	// (the "||" prefix in assembly listings).
	Parallel bool
}

// ExecutePacket is one cycle bundle of co-issued instructions, in
// program order (not execution order).
type ExecutePacket struct {
	Num    int // sequence number within the stream, 1-based
	Cycles int // cycle cost of the packet
	Insts  []Instruction
}

// MinBranchDelay returns the smallest delay-slot count among the
// branches in the packet. ok is false when the packet holds no branch.
func (ep ExecutePacket) MinBranchDelay() (delay int, ok bool) {
	for _, in := range ep.Insts {
		if in.Kind != KindBranch {
			continue
		}
		if !ok || in.DelaySlots < delay {
			delay = in.DelaySlots
			ok = true
		}
	}
	return delay, ok
}

// HasKind reports whether any instruction in the packet has kind k.
func (ep ExecutePacket) HasKind(k Kind) bool {
	for _, in := range ep.Insts {
		if in.Kind == k {
			return true
		}
	}
	return false
}

// OnlyKind reports whether the packet consists solely of instructions
// of kind k.
func (ep ExecutePacket) OnlyKind(k Kind) bool {
	if len(ep.Insts) == 0 {
		return false
	}
	for _, in := range ep.Insts {
		if in.Kind != k {
			return false
		}
	}
	return true
}
