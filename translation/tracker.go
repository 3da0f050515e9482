package translation

import "github.com/sarchlab/vliwdbt/insts"

// obligation is one outstanding branch whose delay slots have not yet
// expired.
type obligation struct {
	remainingDelay int
	target         string
	line           int
}

// BranchDelayTracker tracks branches whose delay slots may span
// translation-block boundaries. It has a single mutable owner per
// block build and must not be shared across concurrent builds.
type BranchDelayTracker struct {
	obligations []obligation
}

// NewBranchDelayTracker creates an empty tracker.
func NewBranchDelayTracker() *BranchDelayTracker {
	return &BranchDelayTracker{}
}

// Record appends the obligation for an issued branch.
func (t *BranchDelayTracker) Record(in insts.Instruction) {
	if in.Kind != insts.KindBranch {
		return
	}

	t.obligations = append(t.obligations, obligation{
		remainingDelay: in.DelaySlots,
		target:         in.Operands,
		line:           in.Line,
	})
}

// MinOutstanding returns the smallest remaining delay among pending
// obligations. ok is false when no obligation is pending, i.e. the
// next build is unconstrained. As a side effect, obligations whose
// delay has expired are discarded.
func (t *BranchDelayTracker) MinOutstanding() (min int, ok bool) {
	for _, o := range t.obligations {
		if !ok || o.remainingDelay < min {
			min = o.remainingDelay
			ok = true
		}
	}

	kept := t.obligations[:0]
	for _, o := range t.obligations {
		if o.remainingDelay > 0 {
			kept = append(kept, o)
		}
	}
	t.obligations = kept

	return min, ok
}

// Pending returns the number of outstanding obligations.
func (t *BranchDelayTracker) Pending() int {
	return len(t.obligations)
}
