package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/sregea/advent-of-code-2019/intcode"
	"github.com/sregea/advent-of-code-2019/maze"
)

var driveKeys = map[byte]maze.Direction{
	'w': maze.North, 'k': maze.North,
	's': maze.South, 'j': maze.South,
	'a': maze.West, 'h': maze.West,
	'd': maze.East, 'l': maze.East,
}

// drive lets the user steer the droid controlled by the program in file
// from the keyboard, drawing the grid after every move.
func drive(file string, patches []patch) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("-drive needs a terminal on stdin")
	}
	program, err := intcode.LoadFile(file)
	if err != nil {
		return err
	}
	if program, err = applyPatches(program, patches); err != nil {
		return err
	}
	d := maze.NewMachineDroid(intcode.New(program, intcode.Echo(false)))

	restore, err := setRawIO()
	if err != nil {
		return err
	}
	defer restore()

	g := maze.NewGrid()
	g.Set(g.Origin, maze.Open)
	status := "w/a/s/d or h/j/k/l to move, q to quit"
	in := bufio.NewReader(os.Stdin)
	for {
		draw(g, status)
		c, err := in.ReadByte()
		if err != nil {
			return err
		}
		if c == 'q' || c == 3 || c == 4 {
			return nil
		}
		dir, ok := driveKeys[c]
		if !ok {
			status = fmt.Sprintf("unknown key %q", c)
			continue
		}
		t, err := d.Move(dir)
		if err != nil {
			return err
		}
		p := g.Droid.Move(dir)
		g.Set(p, t)
		if t.Passable() {
			g.Droid = p
		}
		status = fmt.Sprintf("%v: %v at %v", dir, t, p)
	}
}

// draw clears the terminal and draws g. Raw mode needs explicit carriage
// returns.
func draw(g *maze.Grid, status string) {
	s := strings.ReplaceAll(g.String(), "\n", "\r\n")
	fmt.Printf("\x1b[H\x1b[2J%s\r\n%s\r\n", s, status)
}
