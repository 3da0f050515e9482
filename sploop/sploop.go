// Package sploop drives translation of software-pipelined loops
// (SPLOOP/SPKERNEL/SPMASK regions).
//
// A pipelined loop has a small number of structurally distinct
// phases: the prolog that fills the pipeline, the steady-state kernel,
// and, for nested loops, the overlap region that fuses the outer-loop
// epilog with the next inner-loop prolog under an SPMASK predicate
// guard. Each phase is translated exactly once per loop instance and
// the cached block is replayed for every dynamic iteration, modeling
// the translation-cache amortization a DBT lives on.
package sploop

import (
	"errors"

	"github.com/sarchlab/vliwdbt/translation"
)

// Contract-violation errors. They indicate caller mis-sequencing and
// are surfaced immediately, never retried.
var (
	// ErrInvalidPhaseOrder reports a phase translation requested
	// before its prerequisites were established.
	ErrInvalidPhaseOrder = errors.New("invalid phase order")

	// ErrCounterUnderflow reports an ILC/RILC/A1 update that would go
	// negative.
	ErrCounterUnderflow = errors.New("loop counter underflow")

	// ErrUnresolvedKernelBoundary reports a kernel-scoped translation
	// request while the kernel start or end index cannot be resolved
	// from the stream's markers.
	ErrUnresolvedKernelBoundary = errors.New("unresolved kernel boundary")
)

// A Dispatcher consumes translated blocks. Dispatch is a logged event
// for the engine, not execution; translation and dispatch never
// overlap.
type Dispatcher interface {
	Dispatch(tb *translation.TranslationBlock)
}

// State is the pipelined-loop counter state, threaded through phase
// transitions as an explicit value.
type State struct {
	Phase translation.Phase

	// ILC is the inner loop counter: inner iterations remaining.
	ILC int

	// RILC is the reload value for ILC at the outer-iteration seam.
	// Zero for non-nested loops.
	RILC int

	// A1 is the outer loop counter. Irrelevant for non-nested loops.
	A1 int
}

func (s *State) decrementILC() error {
	if s.ILC <= 0 {
		return ErrCounterUnderflow
	}
	s.ILC--
	return nil
}

func (s *State) decrementA1() error {
	if s.A1 <= 0 {
		return ErrCounterUnderflow
	}
	s.A1--
	return nil
}
