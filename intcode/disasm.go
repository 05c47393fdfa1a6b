package intcode

import (
	"fmt"
	"strings"
)

// Disassemble returns a textual form of the instruction at addr in mem
// and the address of the following instruction. Position parameters are
// shown as [n], immediate ones as #n and relative ones as [rb+n]. Words
// that do not decode to a valid instruction are shown as DATA.
//
// Disassemble reads mem without growing it; parameters beyond its end
// read as zero.
func Disassemble(mem []int64, addr int) (string, int) {
	return disassemble(func(a int64) int64 {
		if a < int64(len(mem)) {
			return mem[a]
		}
		return 0
	}, int64(len(mem)), addr)
}

// Disassemble is like the package function of the same name, reading
// m's memory in place.
func (m *Machine) Disassemble(addr int) (string, int) {
	return disassemble(m.Peek, m.size, addr)
}

func disassemble(cell func(int64) int64, size int64, addr int) (string, int) {
	if addr < 0 || int64(addr) >= size {
		return "DATA 0", addr + 1
	}
	var (
		w  = Instr(cell(int64(addr)))
		op = w.Op()
		b  strings.Builder
	)
	if !op.Valid() {
		return fmt.Sprintf("DATA %d", int64(w)), addr + 1
	}
	b.WriteString(op.String())
	n := op.Params()
	for i := 1; i <= n; i++ {
		v := cell(int64(addr + i))
		b.WriteByte(' ')
		switch mode := w.Mode(i); {
		case mode == Position:
			fmt.Fprintf(&b, "[%d]", v)
		case mode == Immediate && !op.Writes(i):
			fmt.Fprintf(&b, "#%d", v)
		case mode == Relative:
			fmt.Fprintf(&b, "[rb%+d]", v)
		default:
			return fmt.Sprintf("DATA %d", int64(w)), addr + 1
		}
	}
	return b.String(), addr + 1 + n
}
