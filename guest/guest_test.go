package guest_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vliwdbt/guest"
	"github.com/sarchlab/vliwdbt/insts"
)

var _ = Describe("Guest streams", func() {
	It("should number packets sequentially from 1", func() {
		for _, stream := range [][]insts.ExecutePacket{
			guest.StraightLine(),
			guest.PipelinedLoop(),
			guest.NestedPipelinedLoop(),
		} {
			for i, ep := range stream {
				Expect(ep.Num).To(Equal(i + 1))
				Expect(ep.Cycles).To(BeNumerically(">", 0))
				Expect(ep.Insts).NotTo(BeEmpty())
			}
		}
	})

	Describe("StraightLine", func() {
		It("should open with five delay-5 branches", func() {
			stream := guest.StraightLine()

			Expect(stream).To(HaveLen(13))
			for _, ep := range stream[:5] {
				delay, ok := ep.MinBranchDelay()
				Expect(ok).To(BeTrue())
				Expect(delay).To(Equal(5))
			}
		})

		It("should co-issue the predicated SUB with a branch", func() {
			ep := guest.StraightLine()[5]

			Expect(ep.Insts).To(HaveLen(2))
			Expect(ep.Insts[0].Predicate).To(Equal("[B1]"))
			Expect(ep.Insts[1].Kind).To(Equal(insts.KindBranch))
			Expect(ep.Insts[1].Parallel).To(BeTrue())
		})
	})

	Describe("ParallelLoadStore", func() {
		It("should issue the store before the co-issued load", func() {
			ep := guest.ParallelLoadStore()

			Expect(ep.Insts).To(HaveLen(2))
			Expect(ep.Insts[0].Kind).To(Equal(insts.KindStore))
			Expect(ep.Insts[1].Kind).To(Equal(insts.KindLoad))
			Expect(ep.Insts[1].Parallel).To(BeTrue())
		})
	})

	Describe("PipelinedLoop", func() {
		It("should place the SPLOOP marker at index 3", func() {
			stream := guest.PipelinedLoop()

			Expect(stream).To(HaveLen(8))
			Expect(stream[3].HasKind(insts.KindSploop)).To(BeTrue())
		})

		It("should close the body with SPKERNEL and a co-issued store", func() {
			last := guest.PipelinedLoop()[7]

			Expect(last.HasKind(insts.KindSpkernel)).To(BeTrue())
			Expect(last.HasKind(insts.KindStore)).To(BeTrue())
		})
	})

	Describe("NestedPipelinedLoop", func() {
		It("should place the SPLOOP marker at index 5", func() {
			stream := guest.NestedPipelinedLoop()

			Expect(stream).To(HaveLen(15))
			Expect(stream[5].HasKind(insts.KindSploop)).To(BeTrue())
		})

		It("should end the steady-state kernel with a branch at index 10", func() {
			stream := guest.NestedPipelinedLoop()

			Expect(stream[10].HasKind(insts.KindBranch)).To(BeTrue())
			for _, ep := range stream[6:10] {
				Expect(ep.HasKind(insts.KindBranch)).To(BeFalse())
			}
		})

		It("should guard the overlap region with SPMASK", func() {
			overlap := guest.NestedPipelinedLoop()[11]

			Expect(overlap.HasKind(insts.KindSpmask)).To(BeTrue())
			for _, in := range overlap.Insts[1:] {
				Expect(in.Predicate).To(Equal("[A1]"))
				Expect(in.Parallel).To(BeTrue())
			}
		})
	})
})
