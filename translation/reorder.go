package translation

import "github.com/sarchlab/vliwdbt/insts"

// DeferStores reorders one packet's instructions for correct
// load/store ordering: every store moves to the end of the packet,
// preserving relative order among stores and among non-stores.
//
// Within one execute packet all functional units read pre-packet
// state, so a translated store must not precede a co-issued load that
// reads the same location. Deferring stores lets loads see pre-packet
// state while stores still commit at the packet boundary.
//
// The input packet is not modified. The function is idempotent.
func DeferStores(ep insts.ExecutePacket) insts.ExecutePacket {
	out := ep
	out.Insts = make([]insts.Instruction, 0, len(ep.Insts))

	var deferred []insts.Instruction
	for _, in := range ep.Insts {
		if in.Kind == insts.KindStore {
			deferred = append(deferred, in)
			continue
		}
		out.Insts = append(out.Insts, in)
	}
	out.Insts = append(out.Insts, deferred...)

	return out
}
