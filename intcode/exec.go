package intcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// State is the outcome of executing one or more instructions.
type State int

const (
	Running   State = iota // more instructions can be executed
	Halted                 // HALT was decoded; PC stays on it
	Suspended              // an output was produced with suspend-on-output set
	Errored                // a fault or input error stopped execution
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Suspended:
		return "suspended"
	case Errored:
		return "errored"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Run executes instructions until the machine halts, suspends after an
// output, or fails. Calling Run on a halted machine returns Halted again
// without side effects. After Suspended, Run resumes at the instruction
// following the output. After Errored the PC points to the instruction
// that failed, so a driver may fix the cause (for example by appending
// inputs) and call Run again.
func (m *Machine) Run() (State, error) {
	for {
		if st, err := m.Step(); st != Running {
			return st, err
		}
	}
}

// Step executes the instruction at m.PC. Errored is returned with a
// non-nil error; a *Fault unless reading interactive input failed.
func (m *Machine) Step() (st State, err error) {
	var (
		pc = m.PC
		w  Instr
	)
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case *Fault:
				e.Instr, e.Addr = w, pc
				if m.obs != nil {
					m.obs.Fault(m, e)
				}
				st, err = Errored, e
			case inputError:
				st, err = Errored, e.err
			default:
				panic(e)
			}
		}
	}()

	w = Instr(m.read(int64(pc)))

	switch op := w.Op(); op {
	case ADD, MUL, LT, EQ:
		a, b, dst := m.param(w, 1), m.param(w, 2), m.addr(w, 3)
		var v int64
		switch op {
		case ADD:
			v = a + b
		case MUL:
			v = a * b
		case LT:
			v = boolCell(a < b)
		case EQ:
			v = boolCell(a == b)
		}
		m.write(dst, v)
		m.PC += 4
	case IN:
		dst := m.addr(w, 1)
		m.write(dst, m.input())
		m.PC += 2
	case OUT:
		v := m.param(w, 1)
		m.outputs = append(m.outputs, v)
		m.PC += 2
		m.steps++
		if m.echo && m.obs != nil {
			m.obs.Output(m, v)
		}
		if m.suspend {
			return Suspended, nil
		}
		return Running, nil
	case JNZ, JZ:
		cond, target := m.param(w, 1), m.param(w, 2)
		if (cond != 0) == (op == JNZ) {
			m.PC = int(target)
		} else {
			m.PC += 3
		}
	case ARB:
		m.RelBase += m.param(w, 1)
		m.PC += 2
	case HALT:
		return Halted, nil
	default:
		panic(&Fault{Code: InvalidOpcode})
	}
	m.steps++
	return Running, nil
}

// param returns the value of parameter i of w.
func (m *Machine) param(w Instr, i int) int64 {
	v := m.read(int64(m.PC + i))
	switch mode := w.Mode(i); mode {
	case Immediate:
		return v
	case Relative:
		v += m.RelBase
		fallthrough
	case Position:
		if v < 0 {
			panic(&Fault{Code: InvalidAddress, Param: i, Mode: mode, Target: v})
		}
		return m.read(v)
	default:
		panic(&Fault{Code: InvalidMode, Param: i, Mode: mode})
	}
}

// addr returns the destination address named by parameter i of w.
func (m *Machine) addr(w Instr, i int) int64 {
	v := m.read(int64(m.PC + i))
	mode := w.Mode(i)
	switch mode {
	case Position:
	case Relative:
		v += m.RelBase
	default:
		panic(&Fault{Code: InvalidMode, Param: i, Mode: mode})
	}
	if v < 0 {
		panic(&Fault{Code: InvalidAddress, Param: i, Mode: mode, Target: v})
	}
	return v
}

// input pops the head of the input queue, falling back to the
// interactive console when one is configured.
func (m *Machine) input() int64 {
	if len(m.inputs) > 0 {
		v := m.inputs[0]
		m.inputs = m.inputs[1:]
		return v
	}
	if m.console == nil {
		panic(&Fault{Code: StarvedInput})
	}
	if m.prompt != nil {
		fmt.Fprint(m.prompt, "input: ")
	}
	line, err := m.console.ReadString('\n')
	if line = strings.TrimSpace(line); line == "" && err != nil {
		panic(inputError{errors.Wrap(err, "reading input")})
	}
	v, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		panic(inputError{errors.Wrapf(err, "input %q", line)})
	}
	return v
}

type inputError struct{ err error }

func boolCell(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Fault is returned by Step and Run when the program cannot continue.
type Fault struct {
	Code   FaultCode
	Instr  Instr // instruction word being executed
	Addr   int   // PC at the time of the fault
	Param  int   // offending parameter, counting from 1; 0 if none
	Mode   Mode  // mode of the offending parameter
	Target int64 // computed address, for InvalidAddress
}

func (f *Fault) Error() string {
	s := fmt.Sprintf("%s executing %d at %d", f.Code, int64(f.Instr), f.Addr)
	switch {
	case f.Code == InvalidAddress && f.Param > 0:
		s += fmt.Sprintf(" (param %d, %s mode, address %d)", f.Param, f.Mode, f.Target)
	case f.Code == InvalidAddress:
		s += fmt.Sprintf(" (address %d)", f.Target)
	case f.Code == InvalidMode:
		s += fmt.Sprintf(" (param %d, %s mode)", f.Param, f.Mode)
	}
	return s
}

// Is reports whether target is f's FaultCode, so that
// errors.Is(err, intcode.StarvedInput) matches any starved-input fault.
func (f *Fault) Is(target error) bool {
	c, ok := target.(FaultCode)
	return ok && c == f.Code
}

// FaultCode signifies the kind of condition that stopped execution.
type FaultCode byte

const (
	InvalidOpcode  FaultCode = 0x01
	InvalidAddress FaultCode = 0x02
	InvalidMode    FaultCode = 0x03
	StarvedInput   FaultCode = 0x04
)

func (c FaultCode) String() string {
	if s, ok := map[FaultCode]string{
		InvalidOpcode:  "invalid opcode",
		InvalidAddress: "invalid address",
		InvalidMode:    "invalid mode",
		StarvedInput:   "input starved",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%.2x)", byte(c))
}

func (c FaultCode) Error() string { return c.String() }
