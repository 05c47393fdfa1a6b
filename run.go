package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/sregea/advent-of-code-2019/intcode"
)

type runConfig struct {
	inputs      []int64
	patches     []patch
	peeks       []int64
	interactive bool
	trace       bool
}

// run executes the program in file to completion, printing its outputs
// and the peeked memory cells to stdout.
func run(file string, cfg runConfig) error {
	program, err := intcode.LoadFile(file)
	if err != nil {
		return err
	}
	if program, err = applyPatches(program, cfg.patches); err != nil {
		return err
	}

	opts := []intcode.Option{
		intcode.Inputs(cfg.inputs...),
		intcode.Observe(printer{os.Stdout}),
	}
	if cfg.interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("-interactive needs a terminal on stdin")
		}
		opts = append(opts, intcode.Interactive(os.Stdin, os.Stderr))
	}
	m := intcode.New(program, opts...)

	if cfg.trace {
		err = trace(os.Stderr, m)
	} else {
		_, err = m.Run()
	}
	if err != nil {
		return errors.Wrap(err, file)
	}
	for _, addr := range cfg.peeks {
		v, _ := m.Read(addr)
		fmt.Printf("memory[%d] = %d\n", addr, v)
	}
	return nil
}

// trace runs m to completion, writing every instruction to w before it
// is executed.
func trace(w io.Writer, m *intcode.Machine) error {
	for {
		s, _ := m.Disassemble(m.PC)
		fmt.Fprintf(w, "%6d  %-28s rb=%d\n", m.PC, s, m.RelBase)
		switch st, err := m.Step(); st {
		case intcode.Halted:
			return nil
		case intcode.Errored:
			return err
		}
	}
}

// applyPatches returns program with every patch written to it.
func applyPatches(program []int64, patches []patch) ([]int64, error) {
	if len(patches) == 0 {
		return program, nil
	}
	m := intcode.New(program)
	for _, p := range patches {
		if err := m.Write(p.addr, p.value); err != nil {
			return nil, errors.Wrapf(err, "patch %d=%d", p.addr, p.value)
		}
	}
	mem := m.Memory()
	if int64(len(mem)) != m.Len() {
		return nil, errors.Errorf("patched program would have %d cells", m.Len())
	}
	return mem, nil
}

// printer prints outputs as they are produced.
type printer struct{ w io.Writer }

func (p printer) Output(m *intcode.Machine, v int64)     { fmt.Fprintf(p.w, "output: %d\n", v) }
func (p printer) Fault(*intcode.Machine, *intcode.Fault) {}
