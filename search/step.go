package search

import (
	"fmt"

	"github.com/katalvlaran/pathviz/grid"
)

// Step advances the search by exactly one settled cell:
//
//  1. Select the open cell with the smallest key (gCost under UniformCost,
//     fCost under WeightedAStar), earliest inserted on ties.
//  2. Settle it: remove it from the open set and freeze its cost.
//  3. Expand its neighbours in grid.Directions order, skipping cells outside
//     the grid or not traversable from it.
//  4. Discover: add neighbours not yet in the open set.
//  5. Relax: lower a neighbour's gCost (and fCost) when the route through the
//     settled cell is strictly cheaper, recording the settled cell as parent.
//
// Returns ErrNotSeeded before a successful Seed and ErrFrontierEmpty when the
// open set is empty. An exhausted open set after a step is reported through
// StepResult.Status, not as an error. ErrSettledInFrontier signals a broken
// settle discipline.
//
// Complexity: O(n) selection for FrontierList, O(log n) for FrontierHeap,
// plus O(8) expansion.
func (s *State) Step() (StepResult, error) {
	if !s.seeded {
		return StepResult{}, ErrNotSeeded
	}
	if s.open.Len() == 0 {
		return StepResult{Status: s.Status()}, ErrFrontierEmpty
	}

	// 1) Select.
	cur := s.open.PopMin()
	at := s.grid.Coordinate(cur)
	if s.settled[cur] {
		return StepResult{}, fmt.Errorf("%w: %s", ErrSettledInFrontier, at)
	}

	// 2) Settle. From here on g, f and parent of cur are frozen.
	s.settled[cur] = true
	s.settledCount++
	s.opts.OnSettle(at)

	res := StepResult{Settled: at}

	// 3) Expand.
	for _, d := range s.dirs {
		next := at.Add(d)
		if !s.grid.InBounds(next) {
			continue
		}
		ni := s.grid.Index(next)
		if !s.traversable(at, d, ni) {
			continue
		}

		// 4) Discover.
		if !s.open.Contains(ni) {
			s.open.Push(ni)
			res.Discovered = append(res.Discovered, next)
			s.opts.OnDiscover(next)
		}

		// 5) Relax.
		if s.relax(cur, ni, d) {
			res.Relaxed = append(res.Relaxed, next)
		}
	}

	res.OpenLen = s.open.Len()
	res.Status = s.Status()

	return res, nil
}

// traversable reports whether the neighbour ni, reached from `from` by d, is a
// candidate: not Blocked, not settled and, for a diagonal without corner
// cutting, at least one of the two orthogonal corner cells is not Blocked.
func (s *State) traversable(from grid.Coord, d grid.Direction, ni int) bool {
	if s.grid.KindAt(ni) == grid.Blocked || s.settled[ni] {
		return false
	}
	if !d.Diagonal() || s.opts.AllowCornerCutting {
		return true
	}
	// Both corners are in bounds whenever the diagonal target is.
	cornerX := s.grid.KindAt(s.grid.Index(grid.Coord{X: from.X + d.DX, Y: from.Y}))
	cornerY := s.grid.KindAt(s.grid.Index(grid.Coord{X: from.X, Y: from.Y + d.DY}))

	return cornerX != grid.Blocked || cornerY != grid.Blocked
}

// relax lowers the cost of ni through cur if strictly cheaper. Reports whether it did.
func (s *State) relax(cur, ni int, d grid.Direction) bool {
	cost := OrthogonalCost
	if d.Diagonal() {
		cost = DiagonalCost
	}
	candidate := s.g[cur] + cost
	if candidate >= s.g[ni] {
		return false
	}

	old := s.g[ni]
	s.parent[ni] = cur
	s.g[ni] = candidate
	s.f[ni] = float64(candidate) + s.opts.Algorithm.estimate(s.grid.Coordinate(ni), s.grid.Coordinate(s.goal))
	s.open.Update(ni)
	s.opts.OnRelax(s.grid.Coordinate(ni), old, candidate)

	return true
}
