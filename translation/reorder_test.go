package translation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vliwdbt/insts"
	"github.com/sarchlab/vliwdbt/translation"
)

var _ = Describe("DeferStores", func() {
	It("should move a store behind a co-issued load", func() {
		ep := insts.ExecutePacket{Num: 1, Cycles: 1, Insts: []insts.Instruction{
			{Kind: insts.KindStore, Mnemonic: "STW", Operands: "B2, *B0++"},
			{Kind: insts.KindLoad, Mnemonic: "LDW", Operands: "*A1++, A2", Parallel: true},
		}}

		out := translation.DeferStores(ep)

		Expect(out.Insts).To(HaveLen(2))
		Expect(out.Insts[0].Kind).To(Equal(insts.KindLoad))
		Expect(out.Insts[1].Kind).To(Equal(insts.KindStore))
	})

	It("should preserve relative order among stores and among non-stores", func() {
		ep := insts.ExecutePacket{Insts: []insts.Instruction{
			{Kind: insts.KindStore, Mnemonic: "STW", Operands: "first"},
			{Kind: insts.KindArithmetic, Mnemonic: "ADD"},
			{Kind: insts.KindStore, Mnemonic: "STB", Operands: "second"},
			{Kind: insts.KindLoad, Mnemonic: "LDW"},
		}}

		out := translation.DeferStores(ep)

		Expect(out.Insts[0].Mnemonic).To(Equal("ADD"))
		Expect(out.Insts[1].Mnemonic).To(Equal("LDW"))
		Expect(out.Insts[2].Operands).To(Equal("first"))
		Expect(out.Insts[3].Operands).To(Equal("second"))
	})

	It("should be idempotent", func() {
		ep := insts.ExecutePacket{Insts: []insts.Instruction{
			{Kind: insts.KindStore, Mnemonic: "STW"},
			{Kind: insts.KindLoad, Mnemonic: "LDW", Parallel: true},
			{Kind: insts.KindStore, Mnemonic: "STB", Parallel: true},
		}}

		once := translation.DeferStores(ep)
		twice := translation.DeferStores(once)

		Expect(twice).To(Equal(once))
	})

	It("should keep a store-free packet unchanged", func() {
		ep := insts.ExecutePacket{Insts: []insts.Instruction{
			{Kind: insts.KindArithmetic, Mnemonic: "ADD"},
			{Kind: insts.KindNop, Mnemonic: "NOP"},
		}}

		out := translation.DeferStores(ep)

		Expect(out.Insts).To(Equal(ep.Insts))
	})

	It("should not modify the input packet", func() {
		ep := insts.ExecutePacket{Insts: []insts.Instruction{
			{Kind: insts.KindStore, Mnemonic: "STW"},
			{Kind: insts.KindLoad, Mnemonic: "LDW"},
		}}

		translation.DeferStores(ep)

		Expect(ep.Insts[0].Kind).To(Equal(insts.KindStore))
	})

	It("should preserve packet number and cycle cost", func() {
		ep := insts.ExecutePacket{Num: 9, Cycles: 2, Insts: []insts.Instruction{
			{Kind: insts.KindStore, Mnemonic: "STW"},
		}}

		out := translation.DeferStores(ep)

		Expect(out.Num).To(Equal(9))
		Expect(out.Cycles).To(Equal(2))
	})
})
