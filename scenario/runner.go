package scenario

import (
	"fmt"
	"io"

	"github.com/sarchlab/vliwdbt/guest"
	"github.com/sarchlab/vliwdbt/insts"
	"github.com/sarchlab/vliwdbt/sploop"
	"github.com/sarchlab/vliwdbt/trace"
	"github.com/sarchlab/vliwdbt/translation"
)

// LogDispatcher records block dispatches as text lines. Dispatch is a
// logged event for this engine, not execution.
type LogDispatcher struct {
	w io.Writer

	// Dispatched collects the dispatched blocks in order.
	Dispatched []*translation.TranslationBlock
}

// NewLogDispatcher creates a dispatcher that narrates to w.
func NewLogDispatcher(w io.Writer) *LogDispatcher {
	return &LogDispatcher{w: w}
}

// Dispatch logs and records the block.
func (d *LogDispatcher) Dispatch(tb *translation.TranslationBlock) {
	d.Dispatched = append(d.Dispatched, tb)
	fmt.Fprintf(d.w, "dispatch TB%d (%s, EP%d..EP%d)\n",
		tb.ID, tb.Phase, tb.StartIndex+1, tb.EndIndex+1)
}

// Runner drives the four canned scenarios against the engine.
type Runner struct {
	config *Config
	out    io.Writer
	tracer trace.Tracer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput directs the runner's narration to w.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// WithTracer routes engine diagnostics to t.
func WithTracer(t trace.Tracer) RunnerOption {
	return func(r *Runner) {
		r.tracer = t
	}
}

// NewRunner creates a Runner for the given configuration.
func NewRunner(config *Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		config: config,
		out:    io.Discard,
		tracer: trace.NilTracer{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RunStraightLine translates the branch-heavy straight-line region
// into a chain of translation blocks. Each follow-on block starts
// right after its predecessor and inherits as its budget the smallest
// outstanding branch delay, falling back to the configured budget when
// no obligation is pending.
func (r *Runner) RunStraightLine() ([]*translation.TranslationBlock, error) {
	stream := guest.StraightLine()
	builder := translation.NewBuilder(translation.WithTracer(r.tracer))

	var blocks []*translation.TranslationBlock
	start := 0
	budget := r.config.Budget

	for start < len(stream) {
		fmt.Fprintf(r.out, "translating TB from EP%d with budget %d\n",
			start+1, budget)

		tb, err := builder.Build(stream, start, budget)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, tb)

		fmt.Fprintf(r.out, "TB%d covers EP%d..EP%d (%d packets)\n",
			tb.ID, tb.StartIndex+1, tb.EndIndex+1, len(tb.Packets))

		start = tb.EndIndex + 1
		if min, ok := builder.Tracker().MinOutstanding(); ok {
			budget = min
		} else {
			budget = r.config.Budget
		}
	}

	return blocks, nil
}

// RunReorder applies the deferred-store strategy to the co-issued
// store/load packet and returns the reordered packet.
func (r *Runner) RunReorder() insts.ExecutePacket {
	ep := guest.ParallelLoadStore()
	fmt.Fprintf(r.out, "before: %s\n", ep)

	reordered := translation.DeferStores(ep)
	fmt.Fprintf(r.out, "after:  %s\n", reordered)

	return reordered
}

// RunPipelinedLoop runs the single software-pipelined loop to
// completion and returns its final state.
func (r *Runner) RunPipelinedLoop() (sploop.State, error) {
	d := NewLogDispatcher(r.out)
	loop := sploop.NewLoop(
		guest.PipelinedLoop(), r.config.SingleILC, d,
		sploop.WithTracer(r.tracer),
	)

	if err := loop.Run(); err != nil {
		return loop.State(), err
	}

	fmt.Fprintf(r.out, "pipelined loop done after %d dispatches\n",
		len(d.Dispatched))

	return loop.State(), nil
}

// RunNestedLoop runs the nested software-pipelined loop to completion
// and returns its final state.
func (r *Runner) RunNestedLoop() (sploop.State, error) {
	d := NewLogDispatcher(r.out)
	loop := sploop.NewNestedLoop(
		guest.NestedPipelinedLoop(),
		r.config.NestedILC, r.config.NestedRILC, r.config.NestedA1,
		d,
		sploop.WithTracer(r.tracer),
	)

	if err := loop.Run(); err != nil {
		return loop.State(), err
	}

	fmt.Fprintf(r.out, "nested loop done after %d dispatches\n",
		len(d.Dispatched))

	return loop.State(), nil
}

// RunAll sequences the four scenarios.
func (r *Runner) RunAll() error {
	fmt.Fprintln(r.out, "--- straight-line translation ---")
	if _, err := r.RunStraightLine(); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "--- deferred-store reordering ---")
	r.RunReorder()

	fmt.Fprintln(r.out, "--- software-pipelined loop ---")
	if _, err := r.RunPipelinedLoop(); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "--- nested software-pipelined loop ---")
	if _, err := r.RunNestedLoop(); err != nil {
		return err
	}

	return nil
}
