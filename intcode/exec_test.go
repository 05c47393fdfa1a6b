package intcode

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestStep(t *testing.T) {
	c := newStepTestCase
	for i, c := range []*stepTestCase{
		c(1, 4, 5, 6, 10, 20).want().mem(6, 30).pc(4),
		c(1101, 3, 4, 0).want().mem(0, 7).pc(4),
		c(1002, 4, 3, 4, 33).want().mem(4, 99).pc(4),
		c(2, 0, 0, 0).want().mem(0, 4).pc(4),
		c(21101, 2, 3, 1).rb(10).want().mem(11, 5).pc(4),

		c(1107, 1, 2, 0).want().mem(0, 1).pc(4),
		c(1107, 2, 1, 0).want().mem(0, 0).pc(4),
		c(1108, 5, 5, 0).want().mem(0, 1).pc(4),
		c(1108, 5, 6, 0).want().mem(0, 0).pc(4),
		c(7, 4, 5, 6, 3, 9).want().mem(6, 1).pc(4),

		c(3, 2).inputs(7).want().mem(2, 7).inputs().pc(2),
		c(3, 2).inputs(7, 8).want().mem(2, 7).inputs(8).pc(2),
		c(203, 1).rb(10).inputs(5).want().mem(11, 5).inputs().pc(2),

		c(4, 2, 42).want().outputs(42).pc(2),
		c(104, -3).want().outputs(-3).pc(2),
		c(204, -1, 77).rb(3).want().outputs(77).pc(2),
		c(104, 5).suspend().want().outputs(5).pc(2).state(Suspended),

		c(1105, 1, 7).want().pc(7),
		c(1105, 0, 7).want().pc(3),
		c(1106, 0, 7).want().pc(7),
		c(1106, 1, 7).want().pc(3),
		c(5, 3, 4, 1, 9).want().pc(9),

		c(109, 19).want().rb(19).pc(2),
		c(109, -1).want().rb(-1).pc(2),
		c(209, -1, -5).rb(3).want().rb(-2).pc(2),

		c(99).want().state(Halted),
		c(1099).want().state(Halted),

		c(42).want().fault(InvalidOpcode),
		c(-1).want().fault(InvalidOpcode),
		c(0).want().fault(InvalidOpcode),
		c(1, 0, 0, -1).want().fault(InvalidAddress),
		c(1, -1, 0, 0).want().fault(InvalidAddress),
		c(2201, -5, 0, 0).want().fault(InvalidAddress),
		c(203, 0).rb(-3).inputs(1).want().fault(InvalidAddress),
		c(11101, 1, 1, 0).want().fault(InvalidMode),
		c(301, 0, 0, 0).want().fault(InvalidMode),
		c(103, 0).inputs(1).want().fault(InvalidMode),
		c(3, 0).want().fault(StarvedInput),
	} {
		t.Run(fmt.Sprintf("%s_%d", Instr(c.m.mem[0]).Op(), i), func(t *testing.T) {
			st, err := c.m.Step()
			if st != c.st {
				t.Errorf("got state %v, want %v", st, c.st)
			}
			if c.code == 0 && err != nil {
				t.Errorf("got error %v, want nil", err)
			}
			if c.code != 0 && !errors.Is(err, c.code) {
				t.Errorf("got error %v, want %v", err, c.code)
			}
			if g, w := c.m.mem, c.w.mem; !memEq(g, w) {
				t.Errorf("memory is\n\t%v\nwant\n\t%v", g, w)
			}
			if g, w := c.m.PC, c.w.PC; g != w {
				t.Errorf("PC is %d, want %d", g, w)
			}
			if g, w := c.m.RelBase, c.w.RelBase; g != w {
				t.Errorf("RelBase is %d, want %d", g, w)
			}
			if g, w := c.m.inputs, c.w.inputs; !cellsEq(g, w) {
				t.Errorf("inputs are %v, want %v", g, w)
			}
			if g, w := c.m.outputs, c.w.outputs; !cellsEq(g, w) {
				t.Errorf("outputs are %v, want %v", g, w)
			}
		})
	}
}

type stepTestCase struct {
	m, w *Machine
	st   State
	code FaultCode
	set  *Machine
}

func newStepTestCase(program ...int64) *stepTestCase {
	c := &stepTestCase{}
	c.m = New(program)
	c.w = New(program)
	c.set = c.m
	return c
}

func (c *stepTestCase) mem(addr int64, vs ...int64) *stepTestCase {
	for i, v := range vs {
		c.set.Write(addr+int64(i), v)
		if c.set == c.m {
			c.w.Write(addr+int64(i), v)
		}
	}
	return c
}

func (c *stepTestCase) pc(pc int) *stepTestCase {
	c.set.PC = pc
	if c.set == c.m {
		c.w.PC = pc
	}
	return c
}

func (c *stepTestCase) rb(rb int64) *stepTestCase {
	c.set.RelBase = rb
	if c.set == c.m {
		c.w.RelBase = rb
	}
	return c
}

func (c *stepTestCase) inputs(vs ...int64) *stepTestCase {
	c.set.SetInputs(vs...)
	if c.set == c.m {
		c.w.SetInputs(vs...)
	}
	return c
}

func (c *stepTestCase) outputs(vs ...int64) *stepTestCase {
	c.set.outputs = copyCells(vs)
	return c
}

func (c *stepTestCase) suspend() *stepTestCase {
	c.m.suspend = true
	c.w.suspend = true
	return c
}

func (c *stepTestCase) want() *stepTestCase {
	c.set = c.w
	return c
}

func (c *stepTestCase) state(st State) *stepTestCase {
	c.st = st
	return c
}

func (c *stepTestCase) fault(code FaultCode) *stepTestCase {
	c.st = Errored
	c.code = code
	return c
}

// memEq compares memories, treating cells past the end as zero.
func memEq(a, b []int64) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if cellAt(a, i) != cellAt(b, i) {
			return false
		}
	}
	return true
}

func cellAt(mem []int64, i int) int64 {
	if i < len(mem) {
		return mem[i]
	}
	return 0
}

func cellsEq(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const compare8 = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
	"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
	"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

var quine = []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}

func TestRun(t *testing.T) {
	for _, c := range []struct {
		name    string
		program []int64
		inputs  []int64
		outputs []int64
		mem     []int64 // leading cells of memory after halting, if set
	}{
		{name: "add_mul", program: []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50},
			mem: []int64{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
		{name: "patch_halt", program: []int64{1, 0, 0, 0, 99}, mem: []int64{2, 0, 0, 0, 99}},
		{name: "square", program: []int64{2, 4, 4, 5, 99, 0}, mem: []int64{2, 4, 4, 5, 99, 9801}},
		{name: "rewrite_ahead", program: []int64{1, 1, 1, 4, 99, 5, 6, 0, 99},
			mem: []int64{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{name: "self_patch", program: []int64{1101, 98, 1, 4, 0}, mem: []int64{1101, 98, 1, 4, 99}},
		{name: "echo", program: []int64{3, 0, 4, 0, 99}, inputs: []int64{7}, outputs: []int64{7}},
		{name: "eq8_imm", program: []int64{3, 3, 1108, -1, 8, 3, 4, 3, 99}, inputs: []int64{8}, outputs: []int64{1}},
		{name: "eq8_imm_no", program: []int64{3, 3, 1108, -1, 8, 3, 4, 3, 99}, inputs: []int64{5}, outputs: []int64{0}},
		{name: "eq8_pos", program: []int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, inputs: []int64{8}, outputs: []int64{1}},
		{name: "lt8_pos", program: []int64{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, inputs: []int64{3}, outputs: []int64{1}},
		{name: "lt8_imm", program: []int64{3, 3, 1107, -1, 8, 3, 4, 3, 99}, inputs: []int64{9}, outputs: []int64{0}},
		{name: "jump_pos", program: []int64{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9},
			inputs: []int64{0}, outputs: []int64{0}},
		{name: "jump_imm", program: []int64{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1},
			inputs: []int64{5}, outputs: []int64{1}},
		{name: "compare8_below", program: mustParse(compare8), inputs: []int64{7}, outputs: []int64{999}},
		{name: "compare8_equal", program: mustParse(compare8), inputs: []int64{8}, outputs: []int64{1000}},
		{name: "compare8_above", program: mustParse(compare8), inputs: []int64{9}, outputs: []int64{1001}},
		{name: "quine", program: quine, outputs: quine},
		{name: "wide_mul", program: []int64{1102, 34915192, 34915192, 7, 4, 7, 99, 0},
			outputs: []int64{1219070632396864}},
		{name: "wide_literal", program: []int64{104, 1125899906842624, 99}, outputs: []int64{1125899906842624}},
	} {
		t.Run(c.name, func(t *testing.T) {
			m := New(c.program, Inputs(c.inputs...))
			st, err := m.Run()
			if st != Halted || err != nil {
				t.Fatalf("Run returned %v, %v; want halted", st, err)
			}
			if g := m.Outputs(); !cellsEq(g, c.outputs) {
				t.Errorf("outputs are %v, want %v", g, c.outputs)
			}
			if c.mem != nil {
				if g := m.Memory()[:len(c.mem)]; !cellsEq(g, c.mem) {
					t.Errorf("memory is\n\t%v\nwant\n\t%v", g, c.mem)
				}
			}
		})
	}
}

func TestRelativeWrite(t *testing.T) {
	// ARB 20; ADD #3 #4 -> [rb+5]; OUT [25]; HALT
	m := New([]int64{109, 20, 21101, 3, 4, 5, 4, 25, 99})
	if st, err := m.Run(); st != Halted {
		t.Fatalf("Run returned %v, %v", st, err)
	}
	if v, _ := m.Read(25); v != 7 {
		t.Errorf("memory[25] = %d, want 7", v)
	}
	if g, w := m.Outputs(), []int64{7}; !cellsEq(g, w) {
		t.Errorf("outputs are %v, want %v", g, w)
	}
	if m.RelBase != 20 {
		t.Errorf("RelBase is %d, want 20", m.RelBase)
	}
}

func TestSuspendEquivalence(t *testing.T) {
	for _, c := range []struct {
		name    string
		program []int64
		inputs  []int64
	}{
		{"quine", quine, nil},
		{"compare8", mustParse(compare8), []int64{8}},
		{"count", []int64{1101, 0, 0, 20, 4, 20, 1001, 20, 1, 20, 1007, 20, 5, 21, 1005, 21, 4, 99}, nil},
	} {
		t.Run(c.name, func(t *testing.T) {
			whole := New(c.program, Inputs(c.inputs...))
			if st, err := whole.Run(); st != Halted {
				t.Fatalf("Run returned %v, %v", st, err)
			}

			stepped := New(c.program, Inputs(c.inputs...), SuspendOnOutput(true))
			var outs []int64
			for i := 0; ; i++ {
				if i > 1000 {
					t.Fatal("too many suspensions")
				}
				st, err := stepped.Run()
				if st == Halted {
					break
				}
				if st != Suspended {
					t.Fatalf("Run returned %v, %v", st, err)
				}
				got := stepped.DrainOutputs()
				if len(got) != 1 {
					t.Fatalf("suspended with outputs %v, want exactly one", got)
				}
				outs = append(outs, got...)
			}
			if g, w := outs, whole.Outputs(); !cellsEq(g, w) {
				t.Errorf("suspended outputs are %v, want %v", g, w)
			}
			if g, w := stepped.Memory(), whole.Memory(); !cellsEq(g, w) {
				t.Errorf("suspended memory is\n\t%v\nwant\n\t%v", g, w)
			}
		})
	}
}

func TestGrowth(t *testing.T) {
	m := New([]int64{1101, 7, 8, 1000, 99})
	if st, err := m.Run(); st != Halted {
		t.Fatalf("Run returned %v, %v", st, err)
	}
	if g, w := m.Len(), int64(1001); g != w {
		t.Fatalf("Len is %d, want %d", g, w)
	}
	mem := m.Memory()
	for i := 5; i < 1000; i++ {
		if mem[i] != 0 {
			t.Fatalf("memory[%d] = %d, want 0", i, mem[i])
		}
	}
	if mem[1000] != 15 {
		t.Errorf("memory[1000] = %d, want 15", mem[1000])
	}

	if err := m.Write(10, 3); err != nil {
		t.Fatal(err)
	}
	if g, w := m.Len(), int64(1001); g != w {
		t.Errorf("Len after near write is %d, want %d", g, w)
	}
	if v, _ := m.Read(1000); v != 15 {
		t.Errorf("memory[1000] after near write = %d, want 15", v)
	}
	if v, _ := m.Read(2000); v != 0 || m.Len() != 2001 {
		t.Errorf("Read(2000) = %d with Len %d, want 0 with Len 2001", v, m.Len())
	}
}

func TestSparseGrowth(t *testing.T) {
	const far = 1 << 62
	m := New([]int64{1101, 1, 1, far, 4, far, 99})
	if st, err := m.Run(); st != Halted {
		t.Fatalf("Run returned %v, %v", st, err)
	}
	if g, w := m.Outputs(), []int64{2}; !cellsEq(g, w) {
		t.Errorf("outputs are %v, want %v", g, w)
	}
	if g, w := m.Len(), int64(far+1); g != w {
		t.Errorf("Len is %d, want %d", g, w)
	}
	if v, _ := m.Read(far); v != 2 {
		t.Errorf("memory[1<<62] = %d, want 2", v)
	}
	if v := m.Peek(far - 1); v != 0 {
		t.Errorf("memory[1<<62-1] = %d, want 0", v)
	}

	if err := m.Write(denseLimit+5, 9); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Read(denseLimit + 5); v != 9 || m.Len() != far+1 {
		t.Errorf("Read(denseLimit+5) = %d with Len %d, want 9 with Len %d", v, m.Len(), int64(far+1))
	}
	if g := len(m.Memory()); g != 7 {
		t.Errorf("contiguous memory has %d cells, want 7", g)
	}

	c := m.Clone()
	c.Write(far, 3)
	if v := m.Peek(far); v != 2 {
		t.Errorf("memory[1<<62] = %d after writing the clone, want 2", v)
	}

	m.Load([]int64{99})
	if v := m.Peek(far); v != 0 || m.Len() != 1 {
		t.Errorf("after Load memory[1<<62] = %d with Len %d, want 0 with Len 1", v, m.Len())
	}
}

func TestPeek(t *testing.T) {
	m := New([]int64{5, 6})
	for addr, want := range map[int64]int64{-1: 0, 0: 5, 1: 6, 100: 0} {
		if g := m.Peek(addr); g != want {
			t.Errorf("Peek(%d) = %d, want %d", addr, g, want)
		}
	}
	if m.Len() != 2 {
		t.Errorf("Len is %d after Peek, want 2", m.Len())
	}
}

func TestNegativeAddress(t *testing.T) {
	m := New([]int64{99})
	if _, err := m.Read(-1); !errors.Is(err, InvalidAddress) {
		t.Errorf("Read(-1) returned %v, want %v", err, InvalidAddress)
	}
	if err := m.Write(-4, 1); !errors.Is(err, InvalidAddress) {
		t.Errorf("Write(-4) returned %v, want %v", err, InvalidAddress)
	}
	if m.Len() != 1 {
		t.Errorf("Len is %d, want 1", m.Len())
	}
}

func TestFault(t *testing.T) {
	for _, c := range []struct {
		program []int64
		want    Fault
		msg     string
	}{
		{
			[]int64{1, 0, 0, -1},
			Fault{Code: InvalidAddress, Instr: 1, Param: 3, Mode: Position, Target: -1},
			"invalid address executing 1 at 0 (param 3, position mode, address -1)",
		},
		{
			[]int64{109, -10, 2201, 3, 0, 0},
			Fault{Code: InvalidAddress, Instr: 2201, Addr: 2, Param: 1, Mode: Relative, Target: -7},
			"invalid address executing 2201 at 2 (param 1, relative mode, address -7)",
		},
		{
			[]int64{11101, 1, 1, 0},
			Fault{Code: InvalidMode, Instr: 11101, Param: 3, Mode: Immediate},
			"invalid mode executing 11101 at 0 (param 3, immediate mode)",
		},
		{
			[]int64{1105, 1, 3, 42},
			Fault{Code: InvalidOpcode, Instr: 42, Addr: 3},
			"invalid opcode executing 42 at 3",
		},
		{
			[]int64{1105, 1, -2},
			Fault{Code: InvalidAddress, Addr: -2, Target: -2},
			"invalid address executing 0 at -2 (address -2)",
		},
		{
			[]int64{1101, 1, 1, 5, 3, 0},
			Fault{Code: StarvedInput, Instr: 3, Addr: 4},
			"input starved executing 3 at 4",
		},
	} {
		t.Run(c.msg, func(t *testing.T) {
			m := New(c.program)
			st, err := m.Run()
			if st != Errored {
				t.Fatalf("Run returned %v, want %v", st, Errored)
			}
			f, ok := err.(*Fault)
			if !ok {
				t.Fatalf("got error %#v, want *Fault", err)
			}
			if *f != c.want {
				t.Errorf("got fault %+v, want %+v", *f, c.want)
			}
			if g := f.Error(); g != c.msg {
				t.Errorf("got message %q, want %q", g, c.msg)
			}
			if m.PC != c.want.Addr {
				t.Errorf("PC is %d, want %d", m.PC, c.want.Addr)
			}
		})
	}
}

func TestInvalidOpcodeLeavesMemory(t *testing.T) {
	program := []int64{77, 0, 0, 0, 99}
	m := New(program)
	st, err := m.Run()
	if st != Errored || !errors.Is(err, InvalidOpcode) {
		t.Fatalf("Run returned %v, %v; want %v", st, err, InvalidOpcode)
	}
	if g := m.Memory(); !cellsEq(g, program) {
		t.Errorf("memory is %v, want %v", g, program)
	}
	if m.Steps() != 0 {
		t.Errorf("Steps is %d, want 0", m.Steps())
	}
}

func TestStarvedRetry(t *testing.T) {
	m := New([]int64{3, 0, 4, 0, 99})
	st, err := m.Run()
	if st != Errored || !errors.Is(err, StarvedInput) {
		t.Fatalf("Run returned %v, %v; want %v", st, err, StarvedInput)
	}
	if m.PC != 0 {
		t.Fatalf("PC is %d, want 0", m.PC)
	}
	m.AppendInputs(9)
	if st, err := m.Run(); st != Halted {
		t.Fatalf("Run after AppendInputs returned %v, %v", st, err)
	}
	if g, w := m.Outputs(), []int64{9}; !cellsEq(g, w) {
		t.Errorf("outputs are %v, want %v", g, w)
	}
}

func TestHaltIdempotent(t *testing.T) {
	m := New([]int64{104, 1, 99})
	for i := 0; i < 3; i++ {
		if st, err := m.Run(); st != Halted || err != nil {
			t.Fatalf("Run #%d returned %v, %v", i, st, err)
		}
		if m.PC != 2 {
			t.Errorf("Run #%d left PC at %d, want 2", i, m.PC)
		}
	}
	if g, w := m.Outputs(), []int64{1}; !cellsEq(g, w) {
		t.Errorf("outputs are %v, want %v", g, w)
	}
	if g, w := m.Steps(), int64(1); g != w {
		t.Errorf("Steps is %d, want %d", g, w)
	}
}

func TestInteractive(t *testing.T) {
	for _, c := range []struct {
		in      string
		st      State
		outputs []int64
	}{
		{"12\n", Halted, []int64{12}},
		{"  -4  \n", Halted, []int64{-4}},
		{"5", Halted, []int64{5}},
		{"x\n", Errored, nil},
		{"", Errored, nil},
	} {
		t.Run(fmt.Sprintf("%q", c.in), func(t *testing.T) {
			var prompt bytes.Buffer
			m := New([]int64{3, 0, 4, 0, 99}, Interactive(strings.NewReader(c.in), &prompt))
			st, err := m.Run()
			if st != c.st {
				t.Fatalf("Run returned %v, %v; want %v", st, err, c.st)
			}
			if st == Errored {
				if _, ok := err.(*Fault); ok {
					t.Errorf("got fault %v, want input error", err)
				}
				return
			}
			if g, w := prompt.String(), "input: "; g != w {
				t.Errorf("prompt is %q, want %q", g, w)
			}
			if g := m.Outputs(); !cellsEq(g, c.outputs) {
				t.Errorf("outputs are %v, want %v", g, c.outputs)
			}
		})
	}
}

func TestInteractiveQueueFirst(t *testing.T) {
	var prompt bytes.Buffer
	m := New([]int64{3, 0, 3, 1, 4, 0, 4, 1, 99},
		Inputs(1), Interactive(strings.NewReader("2\n"), &prompt))
	if st, err := m.Run(); st != Halted {
		t.Fatalf("Run returned %v, %v", st, err)
	}
	if g, w := m.Outputs(), []int64{1, 2}; !cellsEq(g, w) {
		t.Errorf("outputs are %v, want %v", g, w)
	}
	if g := strings.Count(prompt.String(), "input: "); g != 1 {
		t.Errorf("prompted %d times, want 1", g)
	}
}

type recorder struct {
	outputs []int64
	faults  []*Fault
}

func (r *recorder) Output(m *Machine, v int64) { r.outputs = append(r.outputs, v) }
func (r *recorder) Fault(m *Machine, f *Fault) { r.faults = append(r.faults, f) }

func TestObserver(t *testing.T) {
	r := &recorder{}
	m := New([]int64{104, 1, 104, 2, 42}, Observe(r))
	st, err := m.Run()
	if st != Errored {
		t.Fatalf("Run returned %v, %v", st, err)
	}
	if g, w := r.outputs, []int64{1, 2}; !cellsEq(g, w) {
		t.Errorf("observed outputs %v, want %v", g, w)
	}
	if len(r.faults) != 1 || r.faults[0] != err {
		t.Errorf("observed faults %v, want [%v]", r.faults, err)
	}

	r = &recorder{}
	m = New([]int64{104, 1, 99}, Observe(r), Echo(false))
	m.Run()
	if len(r.outputs) != 0 {
		t.Errorf("observed outputs %v with echo off", r.outputs)
	}
	m.SetEcho(true)
	m.ResetPosition()
	m.Run()
	if g, w := r.outputs, []int64{1}; !cellsEq(g, w) {
		t.Errorf("observed outputs %v, want %v", g, w)
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	m := New([]int64{104, 3, 3, 0}, Observe(LogObserver(log.New(&buf, "", 0))))
	m.Run()
	want := "output: 3\ninput starved executing 3 at 2\n"
	if g := buf.String(); g != want {
		t.Errorf("logged %q, want %q", g, want)
	}
}

func TestCloneIndependent(t *testing.T) {
	m := New([]int64{3, 0, 4, 0, 99}, Inputs(5))
	c := m.Clone()
	if st, _ := m.Run(); st != Halted {
		t.Fatalf("Run returned %v", st)
	}
	if c.PC != 0 || len(c.Outputs()) != 0 || len(c.Inputs()) != 1 {
		t.Fatalf("clone changed: PC %d, outputs %v, inputs %v", c.PC, c.Outputs(), c.Inputs())
	}
	c.SetInputs(6)
	c.Run()
	if g, w := c.Outputs(), []int64{6}; !cellsEq(g, w) {
		t.Errorf("clone outputs are %v, want %v", g, w)
	}
	if v, _ := m.Read(0); v != 5 {
		t.Errorf("memory[0] = %d, want 5", v)
	}
}

func TestNewCopiesProgram(t *testing.T) {
	program := []int64{1101, 1, 1, 0, 99}
	m := New(program)
	m.Run()
	if program[0] != 1101 {
		t.Errorf("program[0] = %d after Run, want 1101", program[0])
	}
	mem := m.Memory()
	mem[0] = 0
	if v, _ := m.Read(0); v != 2 {
		t.Errorf("memory[0] = %d, want 2", v)
	}
}

func TestResetPosition(t *testing.T) {
	m := New([]int64{1, 0, 0, 0, 99})
	m.Run()
	m.ResetPosition()
	m.Run()
	if v, _ := m.Read(0); v != 4 {
		t.Errorf("memory[0] = %d after rerun, want 4", v)
	}

	m = New([]int64{109, 3, 104, 1, 99}, Inputs(1, 2))
	m.Run()
	m.Reset()
	if m.PC != 0 || m.RelBase != 0 || len(m.Inputs()) != 0 || len(m.Outputs()) != 0 {
		t.Errorf("Reset left PC %d, RelBase %d, inputs %v, outputs %v",
			m.PC, m.RelBase, m.Inputs(), m.Outputs())
	}
}

func TestDrainOutputs(t *testing.T) {
	m := New([]int64{104, 1, 104, 2, 99})
	m.Run()
	if g, w := m.DrainOutputs(), []int64{1, 2}; !cellsEq(g, w) {
		t.Errorf("DrainOutputs returned %v, want %v", g, w)
	}
	if g := m.Outputs(); len(g) != 0 {
		t.Errorf("outputs after drain are %v", g)
	}
}

func TestStateString(t *testing.T) {
	for st, want := range map[State]string{
		Running:   "running",
		Halted:    "halted",
		Suspended: "suspended",
		Errored:   "errored",
		State(9):  "state(9)",
	} {
		if g := st.String(); g != want {
			t.Errorf("State(%d).String() returned %q, want %q", int(st), g, want)
		}
	}
}

func mustParse(s string) []int64 {
	p, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return p
}
