// Package maze explores the area around a repair droid controlled by an
// Intcode program and answers distance questions about the result.
package maze

import "fmt"

// Direction is a movement command, encoded as the droid expects it.
type Direction int64

const (
	North Direction = 1
	South Direction = 2
	West  Direction = 3
	East  Direction = 4
)

// Directions lists the movement commands in the order they are tried.
var Directions = [...]Direction{North, South, West, East}

// Reverse returns the direction that undoes d.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	}
	return d
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	}
	return fmt.Sprintf("direction(%d)", int64(d))
}

// Tile is the droid's status reply after a move.
type Tile int64

const (
	Wall    Tile = 0 // the droid hit a wall and did not move
	Open    Tile = 1 // the droid moved
	Oxygen  Tile = 2 // the droid moved onto the oxygen system
	Unknown Tile = -1
)

// Passable reports whether the droid can stand on t.
func (t Tile) Passable() bool { return t == Open || t == Oxygen }

func (t Tile) valid() bool { return t == Wall || t == Open || t == Oxygen }

func (t Tile) String() string {
	switch t {
	case Wall:
		return "wall"
	case Open:
		return "open"
	case Oxygen:
		return "oxygen"
	case Unknown:
		return "unknown"
	}
	return fmt.Sprintf("tile(%d)", int64(t))
}

// Point is a grid location. Y grows northward.
type Point struct{ X, Y int }

// Move returns the location one step from p in direction d.
func (p Point) Move(d Direction) Point {
	switch d {
	case North:
		p.Y++
	case South:
		p.Y--
	case West:
		p.X--
	case East:
		p.X++
	}
	return p
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }
