package maze

import (
	"github.com/pkg/errors"

	"github.com/sregea/advent-of-code-2019/intcode"
)

// ErrHalted is returned by MachineDroid when its program has stopped.
var ErrHalted = errors.New("droid program halted")

// Droid moves one step at a time and reports what it found.
type Droid interface {
	Move(d Direction) (Tile, error)
}

// MachineDroid is a Droid whose controller is an Intcode program.
type MachineDroid struct {
	m *intcode.Machine
}

// NewMachineDroid returns a Droid driven by m.
func NewMachineDroid(m *intcode.Machine) *MachineDroid {
	return &MachineDroid{m: m}
}

// Machine returns the controlling Machine.
func (d *MachineDroid) Machine() *intcode.Machine { return d.m }

// Move feeds dir to the program, runs it until it produces a status and
// returns that status.
func (d *MachineDroid) Move(dir Direction) (Tile, error) {
	m := d.m
	m.DrainOutputs()
	m.SetInputs(int64(dir))
	m.SetSuspendOnOutput(true)
	st, err := m.Run()
	switch st {
	case intcode.Suspended:
	case intcode.Halted:
		return Unknown, ErrHalted
	default:
		return Unknown, errors.Wrapf(err, "moving %v", dir)
	}
	out := m.DrainOutputs()
	if len(out) != 1 {
		return Unknown, errors.Errorf("moving %v: got %d outputs, want 1", dir, len(out))
	}
	t := Tile(out[0])
	if !t.valid() {
		return Unknown, errors.Errorf("moving %v: bad status %d", dir, out[0])
	}
	return t, nil
}
