package search

import (
	"fmt"

	"github.com/katalvlaran/pathviz/grid"
)

// Reconstruct walks parent links from the settled Goal back to the Source
// (the cell whose gCost is 0), marking every parent it visits as on-path.
// The Goal itself is not marked; the Source is. The returned Path lists cells
// from Source to Goal.
//
// Returns ErrNotSeeded, ErrGoalNotSettled, or ErrBrokenParentChain when a cell
// on the chain has no parent before the Source is reached or the chain is
// longer than the grid (a cycle).
// Complexity: O(path length).
func (s *State) Reconstruct() (Path, error) {
	if !s.seeded {
		return Path{}, ErrNotSeeded
	}
	if !s.settled[s.goal] {
		return Path{}, ErrGoalNotSettled
	}
	for i := range s.onPath {
		s.onPath[i] = false
	}

	cells := []grid.Coord{s.grid.Coordinate(s.goal)}
	cur := s.goal
	for hops := 0; s.g[cur] != 0; hops++ {
		if hops >= s.grid.Len() {
			return Path{}, fmt.Errorf("%w: cycle through %s", ErrBrokenParentChain, s.grid.Coordinate(cur))
		}
		p := s.parent[cur]
		if p < 0 {
			return Path{}, fmt.Errorf("%w: %s has no parent", ErrBrokenParentChain, s.grid.Coordinate(cur))
		}
		s.onPath[p] = true
		cells = append(cells, s.grid.Coordinate(p))
		cur = p
	}

	// Reverse to Source → Goal.
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}

	return Path{Cells: cells, Cost: s.g[s.goal]}, nil
}
