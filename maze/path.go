package maze

import (
	"container/heap"

	"github.com/pkg/errors"
)

// ShortestPath returns the number of moves needed to walk from one
// location to another through passable tiles.
func ShortestPath(g *Grid, from, to Point) (int, error) {
	dist, err := Distances(g, from)
	if err != nil {
		return 0, err
	}
	n, ok := dist[to]
	if !ok {
		return 0, errors.Errorf("%v is not reachable from %v", to, from)
	}
	return n, nil
}

// Eccentricity returns the largest distance from one location to any
// other passable location reachable from it. For the oxygen system this
// is the number of minutes oxygen takes to fill the area.
func Eccentricity(g *Grid, from Point) (int, error) {
	dist, err := Distances(g, from)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, n := range dist {
		if n > max {
			max = n
		}
	}
	return max, nil
}

// Distances returns the walking distance from one location to every
// passable location reachable from it, using Dijkstra's algorithm with
// unit edge weights.
func Distances(g *Grid, from Point) (map[Point]int, error) {
	if !g.At(from).Passable() {
		return nil, errors.Errorf("start %v is %v", from, g.At(from))
	}
	dist := map[Point]int{from: 0}
	q := &queue{{from, 0}}
	for q.Len() > 0 {
		it := heap.Pop(q).(item)
		if it.dist > dist[it.p] {
			continue
		}
		for _, d := range Directions {
			n := it.p.Move(d)
			if !g.At(n).Passable() {
				continue
			}
			nd := it.dist + 1
			if old, ok := dist[n]; ok && old <= nd {
				continue
			}
			dist[n] = nd
			heap.Push(q, item{n, nd})
		}
	}
	return dist, nil
}

type item struct {
	p    Point
	dist int
}

type queue []item

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}
