package insts

import (
	"fmt"
	"strings"
)

// String renders an instruction the way it appears in an assembly
// listing: "|| [B1] SUB .D2 B1, 0x1, B1".
func (in Instruction) String() string {
	var b strings.Builder

	if in.Parallel {
		b.WriteString("|| ")
	}
	if in.Predicate != "" {
		b.WriteString(in.Predicate)
		b.WriteByte(' ')
	}
	b.WriteString(in.Mnemonic)
	if in.Unit != "" {
		b.WriteByte(' ')
		b.WriteString(in.Unit)
	}
	if in.Operands != "" {
		b.WriteByte(' ')
		b.WriteString(in.Operands)
	}

	return b.String()
}

// String renders a packet as "EP6: [B1] SUB .D2 B1, 0x1, B1 | ...".
func (ep ExecutePacket) String() string {
	parts := make([]string, len(ep.Insts))
	for i, in := range ep.Insts {
		parts[i] = in.String()
	}
	return fmt.Sprintf("EP%d: %s", ep.Num, strings.Join(parts, " "))
}
