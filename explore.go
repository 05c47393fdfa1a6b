package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sregea/advent-of-code-2019/intcode"
	"github.com/sregea/advent-of-code-2019/maze"
)

type mazeConfig struct {
	patches []patch
	png     string
	scale   int
	gui     bool
	delay   time.Duration
}

// exploreMaze maps the area around the droid controlled by the program
// in file and reports the distance to the oxygen system and the time
// oxygen takes to fill the area.
func exploreMaze(file string, cfg mazeConfig) error {
	program, err := intcode.LoadFile(file)
	if err != nil {
		return err
	}
	if program, err = applyPatches(program, cfg.patches); err != nil {
		return err
	}
	d := maze.NewMachineDroid(intcode.New(program, intcode.Echo(false)))

	var g *maze.Grid
	if cfg.gui {
		g, err = exploreWindow(maze.NewWindow("intcode maze", cfg.scale), d, cfg.delay)
	} else {
		g, err = maze.Explore(d)
	}
	if err != nil {
		return err
	}
	if err := report(os.Stdout, g); err != nil {
		return err
	}
	if cfg.png == "" {
		return nil
	}
	f, err := os.Create(cfg.png)
	if err != nil {
		return err
	}
	if err := maze.WritePNG(f, g, cfg.scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// display is the part of maze.Window that exploreWindow drives.
type display interface {
	Show(g *maze.Grid)
	Run(exit <-chan bool) error
}

// exploreWindow explores while showing progress on w. After a successful
// exploration it returns once the window is closed; a failed exploration
// closes the window.
func exploreWindow(w display, d maze.Droid, delay time.Duration) (*maze.Grid, error) {
	var (
		ctx, cancel = context.WithCancel(context.Background())
		exit        = make(chan bool)
		stop        sync.Once
		result      = make(chan *maze.Grid, 1)
		errc        = make(chan error, 1)
	)
	defer cancel()
	closeExit := func() { stop.Do(func() { close(exit) }) }
	go func() {
		g, err := maze.Explore(d, maze.Context(ctx), maze.Progress(func(g *maze.Grid, _ maze.Point) {
			w.Show(g)
			time.Sleep(delay)
		}))
		if err != nil {
			errc <- err
			closeExit()
			return
		}
		w.Show(g)
		result <- g
	}()
	err := w.Run(exit)
	closeExit()
	if err != nil {
		return nil, errors.Wrap(err, "maze window")
	}
	cancel()
	select {
	case g := <-result:
		return g, nil
	case err := <-errc:
		if errors.Is(err, context.Canceled) {
			return nil, errors.New("window closed before exploration finished")
		}
		return nil, err
	}
}

func report(w io.Writer, g *maze.Grid) error {
	fmt.Fprint(w, g)
	oxy, ok := g.Oxygen()
	if !ok {
		return errors.New("oxygen system not found")
	}
	steps, err := maze.ShortestPath(g, g.Origin, oxy)
	if err != nil {
		return err
	}
	minutes, err := maze.Eccentricity(g, oxy)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "oxygen system at %v, %d moves from the start\n", oxy, steps)
	fmt.Fprintf(w, "oxygen fills the area in %d minutes\n", minutes)
	return nil
}
