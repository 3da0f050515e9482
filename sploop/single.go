package sploop

import (
	"github.com/sarchlab/vliwdbt/insts"
	"github.com/sarchlab/vliwdbt/translation"
)

// Loop translates a non-nested software-pipelined loop.
//
// The hardware's first iteration executes a longer pipeline-fill
// footprint; every later iteration executes only the steady-state
// kernel. The machine translates each footprint once and replays the
// cached block:
//
//	Prolog: whole stream (setup plus one full pass including the
//	        kernel body), dispatched once.
//	Kernel: packets from the kernel start to stream end, dispatched
//	        exactly ILC times.
//	Done:   terminal.
type Loop struct {
	machine
	state State
}

// NewLoop creates a single-loop machine over the given stream with ilc
// inner iterations.
func NewLoop(stream []insts.ExecutePacket, ilc int, d Dispatcher, opts ...Option) *Loop {
	return &Loop{
		machine: newMachine(stream, d, opts),
		state: State{
			Phase: translation.PhaseProlog,
			ILC:   ilc,
		},
	}
}

// State returns the current counter state.
func (l *Loop) State() State {
	return l.state
}

// Translate returns the block for the given phase, translating it on
// first request and serving the cache afterwards.
func (l *Loop) Translate(phase translation.Phase) (*translation.TranslationBlock, error) {
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
			l.stream, 0, len(l.stream)-1, translation.PhaseProlog)

	case translation.PhaseKernel:
		if l.kernelStart < 0 {
			return nil, ErrInvalidPhaseOrder
		}
		tb, err = l.builder.BuildRange(
			l.stream, l.kernelStart, len(l.stream)-1, translation.PhaseKernel)

	default:
		return nil, ErrInvalidPhaseOrder
	}

	if err != nil {
		return nil, err
	}

	l.cache.Insert(key, tb)
	l.record("tb", "sploop.Loop", "translated %s into TB%d", phase, tb.ID)

	return tb, nil
}

// Step performs the work of the current phase and advances the state.
// In the Done phase it is a no-op.
func (l *Loop) Step() error {
	switch l.state.Phase {
	case translation.PhaseProlog:
		return l.stepProlog()
	case translation.PhaseKernel:
		return l.stepKernel()
	default:
		return nil
	}
}

// Run steps the machine until the loop completes.
func (l *Loop) Run() error {
	for l.state.Phase != translation.PhaseDone {
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) stepProlog() error {
	tb, err := l.Translate(translation.PhaseProlog)
	if err != nil {
		return err
	}

	l.dispatch("sploop.Loop", tb)
	if err := l.state.decrementILC(); err != nil {
		return err
	}

	if l.state.ILC > 0 {
		l.transition(translation.PhaseKernel)
	} else {
		l.transition(translation.PhaseDone)
	}

	return nil
}

func (l *Loop) stepKernel() error {
	tb, err := l.Translate(translation.PhaseKernel)
	if err != nil {
		return err
	}

	for i := 0; i < l.state.ILC; i++ {
		l.dispatch("sploop.Loop", tb)
	}
	l.state.ILC = 0

	l.transition(translation.PhaseDone)
	return nil
}

func (l *Loop) transition(next translation.Phase) {
	l.record("phase", "sploop.Loop", "%s -> %s (ILC=%d)",
		l.state.Phase, next, l.state.ILC)
	l.state.Phase = next
}
