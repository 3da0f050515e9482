// Package guest supplies canned VLIW execute-packet streams.
//
// The streams stand in for the instruction decoder, which lives
// outside this module: each function returns a fully-materialized
// code region the way the decoder would hand it to the translation
// engine. The contents are TI C6000-style assembly fragments covering
// the cases the engine must handle, with branch delay slots, co-issued
// load/store packets, and single and nested software-pipelined loops.
package guest

import "github.com/sarchlab/vliwdbt/insts"

func packet(num, cycles int, ins ...insts.Instruction) insts.ExecutePacket {
	return insts.ExecutePacket{Num: num, Cycles: cycles, Insts: ins}
}

// StraightLine returns a branch-heavy straight-line region: five
// back-to-back delay-5 branches, a predicated SUB co-issued with a
// branch, a register branch, and a NOP/arithmetic tail. Exercises
// branch-delay obligations spanning translation-block boundaries.
func StraightLine() []insts.ExecutePacket {
	stream := make([]insts.ExecutePacket, 0, 13)

	for i := 1; i <= 5; i++ {
		stream = append(stream, packet(i, 1, insts.Instruction{
			Kind: insts.KindBranch, Mnemonic: "B", Unit: ".S2",
			DelaySlots: 5, Operands: "LOOP", Line: i,
		}))
	}

	stream = append(stream, packet(6, 1,
		insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "SUB", Unit: ".D2",
			Operands: "B1, 0x1, B1", Line: 6, Predicate: "[B1]",
		},
		insts.Instruction{
			Kind: insts.KindBranch, Mnemonic: "B", Unit: ".S1",
			DelaySlots: 5, Operands: "LOOP", Line: 7,
			Predicate: "[B1]", Parallel: true,
		},
	))

	stream = append(stream, packet(7, 1, insts.Instruction{
		Kind: insts.KindBranch, Mnemonic: "B", Unit: ".S2",
		DelaySlots: 5, Operands: "B3", Line: 8,
	}))

	for i := 8; i <= 11; i++ {
		stream = append(stream, packet(i, 1, insts.Instruction{
			Kind: insts.KindNop, Mnemonic: "NOP", Line: 9 + (i - 8),
		}))
	}

	stream = append(stream,
		packet(12, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MV", Unit: ".L1",
			Operands: "A10, A2", Line: 12,
		}),
		packet(13, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "ADD", Unit: ".L1",
			Operands: "A4, A2, A4", Line: 13,
		}),
	)

	return stream
}

// ParallelLoadStore returns a single packet co-issuing a store and a
// load, in that program order. Naive in-order translation would let
// the store clobber the location before the load samples it.
func ParallelLoadStore() insts.ExecutePacket {
	return packet(1, 1,
		insts.Instruction{
			Kind: insts.KindStore, Mnemonic: "STW", Unit: ".D2",
			Operands: "B2, *B0++", Line: 1,
		},
		insts.Instruction{
			Kind: insts.KindLoad, Mnemonic: "LDW", Unit: ".D1",
			Operands: "*A1++, A2", Line: 2, Parallel: true,
		},
	)
}

// PipelinedLoop returns a single software-pipelined loop: counter
// setup, the SPLOOP marker, and a load/move/store body closed by
// SPKERNEL. The kernel starts at index 4 (EP5).
func PipelinedLoop() []insts.ExecutePacket {
	return []insts.ExecutePacket{
		packet(1, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MVK", Unit: ".S",
			Operands: "8, A0", Line: 1,
		}),
		packet(2, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MVC", Unit: ".S",
			Operands: "A0, ILC", Line: 2,
		}),
		packet(3, 3, insts.Instruction{
			Kind: insts.KindNop, Mnemonic: "NOP", Operands: "3", Line: 3,
		}),
		packet(4, 1, insts.Instruction{
			Kind: insts.KindSploop, Mnemonic: "SPLOOP", Operands: "1", Line: 4,
		}),
		packet(5, 1, insts.Instruction{
			Kind: insts.KindLoad, Mnemonic: "LDW", Unit: ".D",
			DelaySlots: 4, Operands: "*A1++, A2", Line: 5,
		}),
		packet(6, 4, insts.Instruction{
			Kind: insts.KindNop, Mnemonic: "NOP", Operands: "4", Line: 6,
		}),
		packet(7, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MV", Unit: ".L1X",
			Operands: "A2, B2", Line: 7,
		}),
		packet(8, 1,
			insts.Instruction{
				Kind: insts.KindSpkernel, Mnemonic: "SPKERNEL",
				Operands: "6, 0", Line: 8,
			},
			insts.Instruction{
				Kind: insts.KindStore, Mnemonic: "STW", Unit: ".D",
				Operands: "B2, *B0++", Line: 9, Parallel: true,
			},
		),
	}
}

// NestedPipelinedLoop returns a software-pipelined loop nested in an
// outer loop: ILC/RILC setup, a predicated SPLOOP, the inner body
// closed by SPKERNELR, the branch ending the steady-state kernel, and
// the SPMASK-guarded overlap region that refills the next inner
// iteration. The kernel starts at index 6 (EP7).
func NestedPipelinedLoop() []insts.ExecutePacket {
	return []insts.ExecutePacket{
		packet(1, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MVK", Unit: ".S",
			Operands: "7, A8", Line: 1,
		}),
		packet(2, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MVC", Unit: ".S",
			Operands: "A8, ILC", Line: 2,
		}),
		packet(3, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MVC", Unit: ".S",
			Operands: "A8, RILC", Line: 3,
		}),
		packet(4, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MVK", Unit: ".S",
			Operands: "1, A1", Line: 4,
		}),
		packet(5, 3, insts.Instruction{
			Kind: insts.KindNop, Mnemonic: "NOP", Operands: "3", Line: 5,
		}),
		packet(6, 1, insts.Instruction{
			Kind: insts.KindSploop, Mnemonic: "SPLOOP", Operands: "1",
			Line: 6, Predicate: "[A1]",
		}),
		packet(7, 1, insts.Instruction{
			Kind: insts.KindLoad, Mnemonic: "LDW", Unit: ".D1",
			Operands: "*A4++, A0", Line: 7,
		}),
		packet(8, 4, insts.Instruction{
			Kind: insts.KindNop, Mnemonic: "NOP", Operands: "4", Line: 8,
		}),
		packet(9, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "MV", Unit: ".L2X",
			Operands: "A0, B0", Line: 9,
		}),
		packet(10, 1,
			insts.Instruction{
				Kind: insts.KindSpkernel, Mnemonic: "SPKERNELR", Line: 10,
			},
			insts.Instruction{
				Kind: insts.KindStore, Mnemonic: "STW", Unit: ".D2",
				Operands: "B0, *B4++", Line: 11, Parallel: true,
			},
		),
		packet(11, 1, insts.Instruction{
			Kind: insts.KindBranch, Mnemonic: "BR", Unit: ".S2",
			DelaySlots: 5, Operands: "TARGET", Line: 12,
		}),
		packet(12, 1,
			insts.Instruction{
				Kind: insts.KindSpmask, Mnemonic: "SPMASK", Unit: ".D",
				Line: 13,
			},
			insts.Instruction{
				Kind: insts.KindBranch, Mnemonic: "B",
				Operands: "BR TARGET", Line: 14,
				Predicate: "[A1]", Parallel: true,
			},
			insts.Instruction{
				Kind: insts.KindArithmetic, Mnemonic: "SUB", Unit: ".S1",
				Operands: "A1, 1, A1", Line: 15,
				Predicate: "[A1]", Parallel: true,
			},
			insts.Instruction{
				Kind: insts.KindLoad, Mnemonic: "LDW", Unit: ".D1",
				Operands: "*A6, A0", Line: 16,
				Predicate: "[A1]", Parallel: true,
			},
			insts.Instruction{
				Kind: insts.KindArithmetic, Mnemonic: "ADD", Unit: ".L1",
				Operands: "A6, 4, A4", Line: 17,
				Predicate: "[A1]", Parallel: true,
			},
		),
		packet(13, 4, insts.Instruction{
			Kind: insts.KindNop, Mnemonic: "NOP", Operands: "4", Line: 18,
		}),
		packet(14, 1, insts.Instruction{
			Kind: insts.KindArithmetic, Mnemonic: "OR", Unit: ".S2",
			Operands: "B6, 0, B4", Line: 19,
		}),
		packet(15, 1, insts.Instruction{
			Kind: insts.KindNop, Mnemonic: "NOP", Line: 20,
		}),
	}
}
