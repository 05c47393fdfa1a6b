package maze

import (
	"context"

	"github.com/pkg/errors"
)

// ExploreOption configures Explore.
type ExploreOption func(*explorer)

// Progress registers f to be called after every droid move with the grid
// and the droid's position. The grid must not be retained.
func Progress(f func(g *Grid, droid Point)) ExploreOption {
	return func(e *explorer) { e.progress = f }
}

// Context stops Explore with ctx's error once ctx is done.
func Context(ctx context.Context) ExploreOption {
	return func(e *explorer) { e.ctx = ctx }
}

type explorer struct {
	ctx      context.Context
	progress func(*Grid, Point)
}

type frame struct {
	p    Point
	next int       // index into Directions of the next neighbour to probe
	back Direction // move that returns to the parent; 0 at the origin
}

// Explore maps every location reachable from the droid's starting point.
// The traversal is depth first; once all neighbours of a location have
// been probed the droid walks back the way it came, so it finishes where
// it started.
func Explore(d Droid, opts ...ExploreOption) (*Grid, error) {
	var e explorer
	for _, opt := range opts {
		opt(&e)
	}
	g := NewGrid()
	g.Set(g.Origin, Open)

	stack := []frame{{p: g.Origin}}
	for len(stack) > 0 {
		if e.ctx != nil && e.ctx.Err() != nil {
			return g, e.ctx.Err()
		}
		top := &stack[len(stack)-1]
		if top.next == len(Directions) {
			if top.back != 0 {
				t, err := d.Move(top.back)
				if err != nil {
					return g, errors.Wrapf(err, "backtracking from %v", top.p)
				}
				if !t.Passable() {
					return g, errors.Errorf("backtracking from %v: hit %v", top.p, t)
				}
				g.Droid = top.p.Move(top.back)
				e.report(g)
			}
			stack = stack[:len(stack)-1]
			continue
		}
		dir := Directions[top.next]
		top.next++
		q := top.p.Move(dir)
		if g.Known(q) {
			continue
		}
		t, err := d.Move(dir)
		if err != nil {
			return g, errors.Wrapf(err, "probing %v", q)
		}
		g.Set(q, t)
		if t == Wall {
			e.report(g)
			continue
		}
		g.Droid = q
		e.report(g)
		stack = append(stack, frame{p: q, back: dir.Reverse()})
	}
	return g, nil
}

func (e *explorer) report(g *Grid) {
	if e.progress != nil {
		e.progress(g, g.Droid)
	}
}
