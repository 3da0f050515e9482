package sploop_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vliwdbt/guest"
	"github.com/sarchlab/vliwdbt/insts"
	"github.com/sarchlab/vliwdbt/sploop"
	"github.com/sarchlab/vliwdbt/translation"
)

var _ = Describe("NestedLoop", func() {
	var (
		stream     []insts.ExecutePacket
		dispatcher *recordingDispatcher
	)

	BeforeEach(func() {
		stream = guest.NestedPipelinedLoop()
		dispatcher = &recordingDispatcher{}
	})

	It("should run three outer iterations with ILC=7, RILC=7, A1=3", func() {
		loop := sploop.NewNestedLoop(stream, 7, 7, 3, dispatcher)

		Expect(loop.Run()).To(Succeed())

		// First outer iteration: 1 prolog + 6 kernels. Each of the two
		// overlap visits: 1 overlap + 1 prolog + 6 kernels.
		Expect(dispatcher.withPhase(translation.PhaseProlog)).To(HaveLen(3))
		Expect(dispatcher.withPhase(translation.PhaseKernel)).To(HaveLen(18))
		Expect(dispatcher.withPhase(translation.PhaseOverlap)).To(HaveLen(2))
		Expect(dispatcher.blocks).To(HaveLen(23))

		state := loop.State()
		Expect(state.Phase).To(Equal(translation.PhaseDone))
		Expect(state.A1).To(Equal(0))
		Expect(state.ILC).To(Equal(7))
	})

	It("should translate each phase exactly once", func() {
		loop := sploop.NewNestedLoop(stream, 7, 7, 3, dispatcher)

		Expect(loop.Run()).To(Succeed())

		for _, phase := range []translation.Phase{
			translation.PhaseProlog,
			translation.PhaseKernel,
			translation.PhaseOverlap,
		} {
			blocks := dispatcher.withPhase(phase)
			for _, tb := range blocks {
				Expect(tb).To(BeIdenticalTo(blocks[0]))
			}
		}
	})

	It("should slice the stream at the marker boundaries", func() {
		loop := sploop.NewNestedLoop(stream, 7, 7, 3, dispatcher)

		Expect(loop.Run()).To(Succeed())

		prolog := dispatcher.withPhase(translation.PhaseProlog)[0]
		kernel := dispatcher.withPhase(translation.PhaseKernel)[0]
		overlap := dispatcher.withPhase(translation.PhaseOverlap)[0]

		// SPLOOP sits at index 5, the kernel-ending branch at index 10.
		Expect(prolog.StartIndex).To(Equal(0))
		Expect(prolog.EndIndex).To(Equal(5))
		Expect(kernel.StartIndex).To(Equal(6))
		Expect(kernel.EndIndex).To(Equal(9))
		Expect(overlap.StartIndex).To(Equal(10))
		Expect(overlap.EndIndex).To(Equal(len(stream) - 1))
	})

	It("should reload the inner counter at every outer seam", func() {
		loop := sploop.NewNestedLoop(stream, 3, 5, 2, dispatcher)

		Expect(loop.Run()).To(Succeed())

		// After the seam the inner counter reloads from RILC, so the
		// overlap visit replays the kernel RILC-1 times.
		Expect(dispatcher.withPhase(translation.PhaseKernel)).To(HaveLen(2 + 4))
		Expect(loop.State().ILC).To(Equal(5))
	})

	It("should finish without an overlap visit when A1 is 1", func() {
		loop := sploop.NewNestedLoop(stream, 7, 7, 1, dispatcher)

		Expect(loop.Run()).To(Succeed())

		Expect(dispatcher.withPhase(translation.PhaseOverlap)).To(BeEmpty())
		Expect(loop.State().Phase).To(Equal(translation.PhaseDone))
		Expect(loop.State().A1).To(Equal(0))
	})

	It("should refuse kernel translation before the prolog", func() {
		loop := sploop.NewNestedLoop(stream, 7, 7, 3, dispatcher)

		_, err := loop.Translate(translation.PhaseKernel)

		Expect(err).To(MatchError(sploop.ErrInvalidPhaseOrder))
	})

	It("should refuse overlap translation before the kernel scan", func() {
		loop := sploop.NewNestedLoop(stream, 7, 7, 3, dispatcher)

		_, err := loop.Translate(translation.PhaseOverlap)

		Expect(err).To(MatchError(sploop.ErrInvalidPhaseOrder))
	})

	It("should fail when no branch terminates the kernel", func() {
		unterminated := []insts.ExecutePacket{
			{Num: 1, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindSploop, Mnemonic: "SPLOOP", Operands: "1"},
			}},
			{Num: 2, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindLoad, Mnemonic: "LDW"},
			}},
			{Num: 3, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindSpkernel, Mnemonic: "SPKERNEL"},
			}},
		}
		loop := sploop.NewNestedLoop(unterminated, 2, 2, 2, dispatcher)

		err := loop.Run()

		Expect(err).To(MatchError(sploop.ErrUnresolvedKernelBoundary))
	})

	It("should skip SPMASK-only packets when scanning for the kernel end", func() {
		masked := []insts.ExecutePacket{
			{Num: 1, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindArithmetic, Mnemonic: "MVC", Operands: "A8, ILC"},
			}},
			{Num: 2, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindSploop, Mnemonic: "SPLOOP", Operands: "1"},
			}},
			{Num: 3, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindLoad, Mnemonic: "LDW"},
			}},
			{Num: 4, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindSpmask, Mnemonic: "SPMASK"},
			}},
			{Num: 5, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindBranch, Mnemonic: "BR", DelaySlots: 5, Operands: "TARGET"},
			}},
			{Num: 6, Cycles: 1, Insts: []insts.Instruction{
				{Kind: insts.KindNop, Mnemonic: "NOP"},
			}},
		}
		loop := sploop.NewNestedLoop(masked, 2, 2, 2, dispatcher)

		Expect(loop.Run()).To(Succeed())

		kernel := dispatcher.withPhase(translation.PhaseKernel)[0]
		overlap := dispatcher.withPhase(translation.PhaseOverlap)[0]
		Expect(kernel.StartIndex).To(Equal(2))
		Expect(kernel.EndIndex).To(Equal(3))
		Expect(overlap.StartIndex).To(Equal(4))
	})

	It("should underflow when the outer counter starts at zero", func() {
		loop := sploop.NewNestedLoop(stream, 1, 1, 0, dispatcher)

		err := loop.Run()

		Expect(err).To(MatchError(sploop.ErrCounterUnderflow))
	})

	It("should underflow when the inner counter starts at zero", func() {
		loop := sploop.NewNestedLoop(stream, 0, 7, 3, dispatcher)

		err := loop.Run()

		Expect(err).To(MatchError(sploop.ErrCounterUnderflow))
	})
})
