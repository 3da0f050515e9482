package sploop

import (
	"fmt"

	"github.com/sarchlab/vliwdbt/insts"
	"github.com/sarchlab/vliwdbt/translation"
)

// NestedLoop translates a software-pipelined loop nested inside an
// outer loop.
//
// Beyond the inner prolog and kernel, a nested loop has an overlap
// region: the outer-loop epilog fused with the next inner-loop prolog
// under an SPMASK predicate guard. Fusing the two avoids a separate
// branch-and-refill sequence on every outer iteration after the
// first, which is kernel reuse applied to the outer-iteration seam.
//
//	Prolog:  packets before the kernel start, dispatched once per
//	         inner-loop start.
//	Kernel:  packets from the kernel start up to (excluding) the first
//	         branch packet, dispatched ILC times.
//	Overlap: the fixed region from that boundary to stream end,
//	         translated once and reused by every later outer
//	         iteration; each visit replays the cached prolog and
//	         kernel to restart the inner loop.
//	Done:    terminal.
type NestedLoop struct {
	machine
	state State

	// overlapStart is the index of the branch packet that ends the
	// steady-state kernel, or -1 until the kernel scan resolves it.
	overlapStart int
}

// NewNestedLoop creates a nested-loop machine with ilc inner
// iterations, rilc as the ILC reload value, and a1 outer iterations.
func NewNestedLoop(
	stream []insts.ExecutePacket,
	ilc, rilc, a1 int,
	d Dispatcher,
	opts ...Option,
) *NestedLoop {
	return &NestedLoop{
		machine: newMachine(stream, d, opts),
		state: State{
			Phase: translation.PhaseProlog,
			ILC:   ilc,
			RILC:  rilc,
			A1:    a1,
		},
		overlapStart: -1,
	}
}

// State returns the current counter state.
func (l *NestedLoop) State() State {
	return l.state
}

// Translate returns the block for the given phase, translating it on
// first request and serving the cache afterwards.
func (l *NestedLoop) Translate(phase translation.Phase) (*translation.TranslationBlock, error) {
	key := Key{LoopID: l.id, Phase: phase}
	if tb, ok := l.cache.Lookup(key); ok {
		return tb, nil
	}

	var (
		tb  *translation.TranslationBlock
		err error
	)

	switch phase {
	case translation.PhaseProlog:
		if err := l.resolveKernelStart(); err != nil {
			return nil, err
		}
		tb, err = l.builder.BuildRange(
			l.stream, 0, l.kernelStart-1, translation.PhaseProlog)

	case translation.PhaseKernel:
		if l.kernelStart < 0 {
			return nil, ErrInvalidPhaseOrder
		}
		if err := l.resolveKernelEnd(); err != nil {
			return nil, err
		}
		tb, err = l.builder.BuildRange(
			l.stream, l.kernelStart, l.overlapStart-1, translation.PhaseKernel)

	case translation.PhaseOverlap:
		if l.overlapStart < 0 {
			return nil, ErrInvalidPhaseOrder
		}
		tb, err = l.builder.BuildRange(
			l.stream, l.overlapStart, len(l.stream)-1, translation.PhaseOverlap)

	default:
		return nil, ErrInvalidPhaseOrder
	}

	if err != nil {
		return nil, err
	}

	l.cache.Insert(key, tb)
	l.record("tb", "sploop.NestedLoop", "translated %s into TB%d", phase, tb.ID)

	return tb, nil
}

// resolveKernelEnd scans for the branch packet that ends the
// steady-state body. Packets consisting only of SPMASK markers are
// excluded from the scan.
func (l *NestedLoop) resolveKernelEnd() error {
	if l.overlapStart >= 0 {
		return nil
	}

	for i := l.kernelStart; i < len(l.stream); i++ {
		ep := l.stream[i]
		if ep.OnlyKind(insts.KindSpmask) {
			continue
		}
		if ep.HasKind(insts.KindBranch) {
			if i == l.kernelStart {
				return fmt.Errorf("%w: kernel body is empty",
					ErrUnresolvedKernelBoundary)
			}
			l.overlapStart = i
			return nil
		}
	}

	return fmt.Errorf("%w: no branch terminates the kernel",
		ErrUnresolvedKernelBoundary)
}

// Step performs the work of the current phase and advances the state.
// In the Done phase it is a no-op.
func (l *NestedLoop) Step() error {
	switch l.state.Phase {
	case translation.PhaseProlog:
		return l.stepProlog()
	case translation.PhaseKernel:
		return l.stepKernel()
	case translation.PhaseOverlap:
		return l.stepOverlap()
	default:
		return nil
	}
}

// Run steps the machine until all outer iterations complete.
func (l *NestedLoop) Run() error {
	for l.state.Phase != translation.PhaseDone {
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (l *NestedLoop) stepProlog() error {
	tb, err := l.Translate(translation.PhaseProlog)
	if err != nil {
		return err
	}

	l.dispatch("sploop.NestedLoop", tb)
	if err := l.state.decrementILC(); err != nil {
		return err
	}

	if l.state.ILC > 0 {
		l.transition(translation.PhaseKernel)
		return nil
	}

	return l.finishOuterIteration()
}

func (l *NestedLoop) stepKernel() error {
	tb, err := l.Translate(translation.PhaseKernel)
	if err != nil {
		return err
	}

	for i := 0; i < l.state.ILC; i++ {
		l.dispatch("sploop.NestedLoop", tb)
	}
	l.state.ILC = 0

	return l.finishOuterIteration()
}

func (l *NestedLoop) stepOverlap() error {
	tb, err := l.Translate(translation.PhaseOverlap)
	if err != nil {
		return err
	}
	l.dispatch("sploop.NestedLoop", tb)

	// The overlap restarts the inner loop: replay the cached prolog,
	// then the cached kernel for the remaining inner iterations.
	prolog, err := l.Translate(translation.PhaseProlog)
	if err != nil {
		return err
	}
	l.dispatch("sploop.NestedLoop", prolog)
	if err := l.state.decrementILC(); err != nil {
		return err
	}

	if l.state.ILC > 0 {
		kernel, err := l.Translate(translation.PhaseKernel)
		if err != nil {
			return err
		}
		for i := 0; i < l.state.ILC; i++ {
			l.dispatch("sploop.NestedLoop", kernel)
		}
		l.state.ILC = 0
	}

	return l.finishOuterIteration()
}

// finishOuterIteration reloads the inner counter and retires one outer
// iteration.
func (l *NestedLoop) finishOuterIteration() error {
	l.state.ILC = l.state.RILC
	if err := l.state.decrementA1(); err != nil {
		return err
	}

	if l.state.A1 > 0 {
		l.transition(translation.PhaseOverlap)
	} else {
		l.transition(translation.PhaseDone)
	}

	return nil
}

func (l *NestedLoop) transition(next translation.Phase) {
	l.record("phase", "sploop.NestedLoop", "%s -> %s (ILC=%d, RILC=%d, A1=%d)",
		l.state.Phase, next, l.state.ILC, l.state.RILC, l.state.A1)
	l.state.Phase = next
}
