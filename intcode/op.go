package intcode

import "fmt"

// Instr is a raw instruction word: an opcode in the two low decimal
// digits and one parameter mode per higher digit.
type Instr int64

// Op returns the opcode of the instruction, without its modes.
func (w Instr) Op() Op { return Op(w % 100) }

// Mode returns the addressing mode of parameter i, counting from 1.
// Parameters without an explicit digit are in Position mode.
func (w Instr) Mode(i int) Mode {
	v := int64(w) / 100
	for ; i > 1; i-- {
		v /= 10
	}
	return Mode(v % 10)
}

// Modes returns the explicitly encoded modes, least significant first.
func (w Instr) Modes() []Mode {
	var ms []Mode
	for v := int64(w) / 100; v > 0; v /= 10 {
		ms = append(ms, Mode(v%10))
	}
	return ms
}

func (w Instr) String() string {
	return fmt.Sprintf("%d", int64(w))
}

// Op represents an Intcode opcode.
type Op int64

const (
	ADD  Op = 1
	MUL  Op = 2
	IN   Op = 3
	OUT  Op = 4
	JNZ  Op = 5
	JZ   Op = 6
	LT   Op = 7
	EQ   Op = 8
	ARB  Op = 9
	HALT Op = 99
)

var opNames = map[Op]string{
	ADD:  "ADD",
	MUL:  "MUL",
	IN:   "IN",
	OUT:  "OUT",
	JNZ:  "JNZ",
	JZ:   "JZ",
	LT:   "LT",
	EQ:   "EQ",
	ARB:  "ARB",
	HALT: "HALT",
}

// Valid reports whether op is in the opcode table.
func (op Op) Valid() bool {
	_, ok := opNames[op]
	return ok
}

// Params reports the number of parameters taken by op.
func (op Op) Params() int {
	switch op {
	case ADD, MUL, LT, EQ:
		return 3
	case JNZ, JZ:
		return 2
	case IN, OUT, ARB:
		return 1
	}
	return 0
}

// Writes reports whether parameter i of op is a destination address.
func (op Op) Writes(i int) bool {
	switch op {
	case ADD, MUL, LT, EQ:
		return i == 3
	case IN:
		return i == 1
	}
	return false
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int64(op))
}

// Mode is a parameter addressing mode.
type Mode int64

const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", int64(m))
}
