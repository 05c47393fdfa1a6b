package maze

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Grid is the explored part of an unbounded plane.
type Grid struct {
	Origin Point // where exploration started
	Droid  Point // last known droid position

	tiles    map[Point]Tile
	min, max Point
	oxygen   Point
	found    bool
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{tiles: make(map[Point]Tile)}
}

// Set records t at p.
func (g *Grid) Set(p Point, t Tile) {
	if len(g.tiles) == 0 {
		g.min, g.max = p, p
	}
	g.tiles[p] = t
	if p.X < g.min.X {
		g.min.X = p.X
	}
	if p.Y < g.min.Y {
		g.min.Y = p.Y
	}
	if p.X > g.max.X {
		g.max.X = p.X
	}
	if p.Y > g.max.Y {
		g.max.Y = p.Y
	}
	if t == Oxygen {
		g.oxygen, g.found = p, true
	}
}

// At returns the tile at p, or Unknown.
func (g *Grid) At(p Point) Tile {
	if t, ok := g.tiles[p]; ok {
		return t
	}
	return Unknown
}

// Known reports whether p has been probed.
func (g *Grid) Known(p Point) bool {
	_, ok := g.tiles[p]
	return ok
}

// Len returns the number of probed locations.
func (g *Grid) Len() int { return len(g.tiles) }

// Bounds returns the smallest and largest coordinates probed.
func (g *Grid) Bounds() (min, max Point) { return g.min, g.max }

// Oxygen returns the location of the oxygen system, if it was found.
func (g *Grid) Oxygen() (Point, bool) { return g.oxygen, g.found }

// Points returns the probed locations, north to south then west to east.
func (g *Grid) Points() []Point {
	ps := maps.Keys(g.tiles)
	slices.SortFunc(ps, func(a, b Point) bool {
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		return a.X < b.X
	})
	return ps
}

// Clone returns a copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.tiles = maps.Clone(g.tiles)
	return &c
}

var symbols = map[Tile]byte{
	Wall:    '#',
	Open:    ' ',
	Oxygen:  'O',
	Unknown: ' ',
}

// String draws the grid with north at the top: '#' for walls, 'O' for the
// oxygen system and 'D' for the droid.
func (g *Grid) String() string {
	var b strings.Builder
	for y := g.max.Y; y >= g.min.Y; y-- {
		for x := g.min.X; x <= g.max.X; x++ {
			p := Point{x, y}
			if p == g.Droid && g.At(p) != Oxygen {
				b.WriteByte('D')
				continue
			}
			b.WriteByte(symbols[g.At(p)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
