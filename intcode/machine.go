// Package intcode provides an implementation of an Intcode computer,
// called Machine, that executes Intcode programs against a growable
// memory with a pair of input and output queues.
package intcode

import (
	"bufio"
	"io"
	"log"
	"math"

	"golang.org/x/exp/maps"
)

// denseLimit is the length up to which memory grows contiguously. Cells
// first touched beyond it are kept in a sparse map, so that a program
// naming a huge address costs one map entry.
const denseLimit = 1 << 20

// Machine is an Intcode computer.
//
// A Machine is not safe for concurrent use. Drivers that interleave
// several machines move values between their queues at suspension points.
type Machine struct {
	PC      int   // next instruction
	RelBase int64 // offset for Relative mode parameters

	mem     []int64         // cells [0, len(mem))
	far     map[int64]int64 // cells at len(mem) and above
	size    int64           // memory length
	inputs  []int64
	outputs []int64

	echo    bool
	suspend bool
	obs     Observer
	console *bufio.Reader
	prompt  io.Writer

	steps int64
}

// Observer is notified of the events a Machine would otherwise print:
// echoed outputs and faults.
type Observer interface {
	Output(m *Machine, v int64)
	Fault(m *Machine, f *Fault)
}

// LogObserver returns an Observer that reports to l.
func LogObserver(l *log.Logger) Observer { return logObserver{l} }

type logObserver struct{ l *log.Logger }

func (o logObserver) Output(m *Machine, v int64) { o.l.Printf("output: %d", v) }
func (o logObserver) Fault(m *Machine, f *Fault) { o.l.Print(f) }

// Option configures a Machine.
type Option func(*Machine)

// Echo sets whether outputs are reported to the Observer. It is on by
// default and has no effect without an Observer.
func Echo(on bool) Option { return func(m *Machine) { m.echo = on } }

// SuspendOnOutput sets whether Run returns after every output.
func SuspendOnOutput(on bool) Option { return func(m *Machine) { m.suspend = on } }

// Inputs sets the initial input queue.
func Inputs(vs ...int64) Option { return func(m *Machine) { m.SetInputs(vs...) } }

// Observe sets the Observer.
func Observe(o Observer) Option { return func(m *Machine) { m.obs = o } }

// Interactive enables reading a line from r whenever an input instruction
// finds the input queue empty. If prompt is not nil a prompt is written
// to it before each read. Without this option an empty queue is a
// StarvedInput fault.
func Interactive(r io.Reader, prompt io.Writer) Option {
	return func(m *Machine) {
		m.console = bufio.NewReader(r)
		m.prompt = prompt
	}
}

// New returns a Machine loaded with a copy of program.
func New(program []int64, opts ...Option) *Machine {
	m := &Machine{
		mem:  copyCells(program),
		size: int64(len(program)),
		echo: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Clone returns a deep copy of m. The copy shares m's Observer and
// interactive input source.
func (m *Machine) Clone() *Machine {
	c := *m
	c.mem = copyCells(m.mem)
	if m.far != nil {
		c.far = maps.Clone(m.far)
	}
	c.inputs = copyCells(m.inputs)
	c.outputs = copyCells(m.outputs)
	return &c
}

// Load replaces the memory with a copy of program. Registers and queues
// are left as they are.
func (m *Machine) Load(program []int64) {
	m.mem = copyCells(program)
	m.far = nil
	m.size = int64(len(program))
}

// Memory returns a copy of the memory. Once an access beyond 1<<20 cells
// has made memory sparse, only the contiguous part is copied; Len still
// reports the full length and Peek reads any cell.
func (m *Machine) Memory() []int64 { return copyCells(m.mem) }

// Len returns the current memory length.
func (m *Machine) Len() int64 { return m.size }

// Peek returns the value at addr without growing memory. Addresses
// outside memory read as zero.
func (m *Machine) Peek(addr int64) int64 {
	if addr < 0 {
		return 0
	}
	return m.cell(addr)
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() int64 { return m.steps }

// SetInputs replaces the input queue.
func (m *Machine) SetInputs(vs ...int64) { m.inputs = copyCells(vs) }

// AppendInputs adds vs to the tail of the input queue.
func (m *Machine) AppendInputs(vs ...int64) { m.inputs = append(m.inputs, vs...) }

// Inputs returns a copy of the pending inputs.
func (m *Machine) Inputs() []int64 { return copyCells(m.inputs) }

// Outputs returns a copy of the output queue.
func (m *Machine) Outputs() []int64 { return copyCells(m.outputs) }

// DrainOutputs returns the output queue and empties it.
func (m *Machine) DrainOutputs() []int64 {
	out := m.outputs
	m.outputs = nil
	return out
}

// SetEcho sets whether outputs are reported to the Observer.
func (m *Machine) SetEcho(on bool) { m.echo = on }

// SetSuspendOnOutput sets whether Run returns after every output.
func (m *Machine) SetSuspendOnOutput(on bool) { m.suspend = on }

// ResetPosition rewinds the PC to 0. Memory, queues and the relative base
// are untouched, so a program that patched itself runs patched.
func (m *Machine) ResetPosition() { m.PC = 0 }

// Reset rewinds the PC and relative base and empties both queues.
func (m *Machine) Reset() {
	m.PC = 0
	m.RelBase = 0
	m.inputs = nil
	m.outputs = nil
}

// Read returns the value at addr, growing memory as needed.
func (m *Machine) Read(addr int64) (int64, error) {
	if addr < 0 {
		return 0, &Fault{Code: InvalidAddress, Addr: m.PC, Target: addr}
	}
	m.grow(addr)
	return m.cell(addr), nil
}

// Write stores v at addr, growing memory as needed.
func (m *Machine) Write(addr, v int64) error {
	if addr < 0 {
		return &Fault{Code: InvalidAddress, Addr: m.PC, Target: addr}
	}
	m.grow(addr)
	m.set(addr, v)
	return nil
}

// grow extends memory with zeros so that addr is valid. Below denseLimit
// the contiguous part is extended; past it only the length changes.
func (m *Machine) grow(addr int64) {
	if addr < m.size {
		return
	}
	if addr < denseLimit {
		m.mem = append(m.mem, make([]int64, addr+1-m.size)...)
	}
	if m.size = addr + 1; m.size < 0 {
		m.size = math.MaxInt64
	}
}

func (m *Machine) cell(addr int64) int64 {
	if addr < int64(len(m.mem)) {
		return m.mem[addr]
	}
	return m.far[addr]
}

func (m *Machine) set(addr, v int64) {
	if addr < int64(len(m.mem)) {
		m.mem[addr] = v
		return
	}
	if m.far == nil {
		m.far = make(map[int64]int64)
	}
	m.far[addr] = v
}

func (m *Machine) read(addr int64) int64 {
	if addr < 0 {
		panic(&Fault{Code: InvalidAddress, Target: addr})
	}
	m.grow(addr)
	return m.cell(addr)
}

func (m *Machine) write(addr, v int64) {
	m.grow(addr)
	m.set(addr, v)
}

func copyCells(vs []int64) []int64 {
	if vs == nil {
		return nil
	}
	return append(make([]int64, 0, len(vs)), vs...)
}
