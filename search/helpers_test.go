// File: search/helpers_test.go
package search_test

import (
	"container/heap"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// mustParse builds a grid from a layout or fails the test.
func mustParse(t testing.TB, layout string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(layout)
	require.NoError(t, err)
	return g
}

// mustState builds a State over g or fails the test.
func mustState(t testing.TB, g *grid.Grid, opts ...search.Option) *search.State {
	t.Helper()
	st, err := search.NewState(g, opts...)
	require.NoError(t, err)
	return st
}

// settleOrder runs the search to completion and returns every settled cell in order.
func settleOrder(t testing.TB, g *grid.Grid, opts ...search.Option) ([]grid.Coord, search.Result) {
	t.Helper()
	var order []grid.Coord
	opts = append(opts, search.WithOnSettle(func(c grid.Coord) { order = append(order, c) }))
	st := mustState(t, g, opts...)
	res, err := search.Run(context.Background(), st)
	require.NoError(t, err)
	return order, res
}

// randomGrid returns a w×h grid with Source at (0,0), Goal at (w-1,h-1) and
// roughly density of the remaining cells Blocked.
func randomGrid(rng *rand.Rand, w, h int, density float64) *grid.Grid {
	g, _ := grid.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rng.Float64() < density {
				_ = g.SetKind(grid.Coord{X: x, Y: y}, grid.Blocked)
			}
		}
	}
	_ = g.SetKind(grid.Coord{X: 0, Y: 0}, grid.Source)
	_ = g.SetKind(grid.Coord{X: w - 1, Y: h - 1}, grid.Goal)
	return g
}

//----------------------------------------------------------------------------//
// Reference shortest path (independent of the step engine)
//----------------------------------------------------------------------------//

// oracleItem is a (cell, distance) heap entry.
type oracleItem struct {
	idx  int
	dist int64
}

// oraclePQ is a min-heap ordered by dist, used with lazy decrease-key:
// duplicates are pushed and stale entries skipped when popped.
type oraclePQ []oracleItem

func (pq oraclePQ) Len() int            { return len(pq) }
func (pq oraclePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq oraclePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *oraclePQ) Push(x interface{}) { *pq = append(*pq, x.(oracleItem)) }
func (pq *oraclePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

// oracleCost computes the true minimum Source→Goal cost under the 10/14 model
// with the same blocked-cell and corner rules, or -1 when unreachable.
func oracleCost(g *grid.Grid, diagonal, cornerCutting bool) int64 {
	src, _ := g.FindFirst(grid.Source)
	dst, _ := g.FindFirst(grid.Goal)

	const inf = int64(1) << 62
	dist := make([]int64, g.Len())
	visited := make([]bool, g.Len())
	for i := range dist {
		dist[i] = inf
	}
	conn := grid.Conn4
	if diagonal {
		conn = grid.Conn8
	}

	pq := oraclePQ{}
	dist[g.Index(src)] = 0
	heap.Push(&pq, oracleItem{idx: g.Index(src), dist: 0})
	for pq.Len() > 0 {
		it := heap.Pop(&pq).(oracleItem)
		if visited[it.idx] {
			continue
		}
		visited[it.idx] = true
		u := g.Coordinate(it.idx)
		for _, d := range grid.Directions(conn) {
			v := u.Add(d)
			if !g.InBounds(v) || g.KindAt(g.Index(v)) == grid.Blocked {
				continue
			}
			w := search.OrthogonalCost
			if d.Diagonal() {
				w = search.DiagonalCost
				a, _ := g.Kind(grid.Coord{X: u.X + d.DX, Y: u.Y})
				b, _ := g.Kind(grid.Coord{X: u.X, Y: u.Y + d.DY})
				if !cornerCutting && a == grid.Blocked && b == grid.Blocked {
					continue
				}
			}
			vi := g.Index(v)
			if nd := it.dist + w; nd < dist[vi] {
				dist[vi] = nd
				heap.Push(&pq, oracleItem{idx: vi, dist: nd})
			}
		}
	}
	if d := dist[g.Index(dst)]; d != inf {
		return d
	}
	return -1
}
