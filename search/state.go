package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pathviz/grid"
)

// State holds the mutable per-run data of one search over a Grid: costs,
// parents, settled and on-path flags, the open set, and the Source/Goal chosen
// at seed time. The Grid is shared, not copied; its kinds must not change while
// a run is in progress.
//
// A State is reused across runs via Reset and Seed. It is not safe for
// concurrent use.
type State struct {
	grid *grid.Grid
	opts Options
	dirs []grid.Direction

	g       []int64   // gCost per cell; Unreached when unreached
	f       []float64 // fCost per cell; +Inf when unreached
	parent  []int     // parent index per cell; -1 when none
	settled []bool
	onPath  []bool
	open    frontier

	source, goal int // row-major indices; -1 until seeded
	seeded       bool
	settledCount int
}

// NewState allocates search data for g and applies the options.
// Returns ErrNilGrid for a nil grid, ErrBadWeight or ErrOptionViolation for
// invalid options.
// Complexity: O(W×H) time and memory.
func NewState(g *grid.Grid, opts ...Option) (*State, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	n := g.Len()
	s := &State{
		grid:    g,
		g:       make([]int64, n),
		f:       make([]float64, n),
		parent:  make([]int, n),
		settled: make([]bool, n),
		onPath:  make([]bool, n),
	}
	s.apply(cfg)

	return s, nil
}

// apply installs cfg, rebuilds the open set for the chosen frontier and resets.
func (s *State) apply(cfg Options) {
	s.opts = cfg
	s.dirs = grid.Directions(cfg.Connectivity())
	s.open = newFrontier(cfg.Frontier, s.grid.Len(), s.key)
	s.Reset()
}

// key is the frontier ordering key of a cell under the active algorithm.
func (s *State) key(idx int) float64 {
	return s.opts.Algorithm.priority(s.g[idx], s.f[idx])
}

// Configure applies opts on top of the current options and resets the state.
// On error the state is left untouched.
func (s *State) Configure(opts ...Option) error {
	cfg := s.opts
	cfg.err = nil
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return cfg.err
	}
	s.apply(cfg)

	return nil
}

// Options returns the active configuration.
func (s *State) Options() Options { return s.opts }

// Grid returns the grid this state searches.
func (s *State) Grid() *grid.Grid { return s.grid }

// Reset clears every per-run field: costs to +∞, parents to none, settled and
// on-path flags to false, the open set emptied, Source/Goal forgotten.
// Kinds and coordinates are untouched. Reset is idempotent.
// Complexity: O(W×H).
func (s *State) Reset() {
	inf := math.Inf(1)
	for i := range s.g {
		s.g[i] = Unreached
		s.f[i] = inf
		s.parent[i] = -1
		s.settled[i] = false
		s.onPath[i] = false
	}
	s.open.Clear()
	s.source, s.goal = -1, -1
	s.seeded = false
	s.settledCount = 0
}

// Seed resets the state, then scans the grid in row-major order for the first
// Source and the first Goal. The Source gets gCost = fCost = 0 and becomes
// the only member of the open set.
//
// Returns ErrNoSource and/or ErrNoGoal (joined when both are missing); on
// error nothing is seeded and Step will refuse to run.
func (s *State) Seed() error {
	s.Reset()

	src, okSrc := s.grid.FindFirst(grid.Source)
	goal, okGoal := s.grid.FindFirst(grid.Goal)
	var errs []error
	if !okSrc {
		errs = append(errs, ErrNoSource)
	}
	if !okGoal {
		errs = append(errs, ErrNoGoal)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s.source = s.grid.Index(src)
	s.goal = s.grid.Index(goal)
	s.g[s.source] = 0
	s.f[s.source] = 0
	s.open.Push(s.source)
	s.seeded = true

	return nil
}

// Seeded reports whether the last Seed succeeded.
func (s *State) Seeded() bool { return s.seeded }

// Source returns the Source chosen at seed time.
func (s *State) Source() (grid.Coord, bool) {
	if !s.seeded {
		return grid.Coord{}, false
	}
	return s.grid.Coordinate(s.source), true
}

// Goal returns the Goal chosen at seed time.
func (s *State) Goal() (grid.Coord, bool) {
	if !s.seeded {
		return grid.Coord{}, false
	}
	return s.grid.Coordinate(s.goal), true
}

// GoalSettled reports whether the Goal has been settled.
func (s *State) GoalSettled() bool {
	return s.seeded && s.settled[s.goal]
}

// Exhausted reports whether the open set emptied without settling the Goal.
func (s *State) Exhausted() bool {
	return s.seeded && !s.settled[s.goal] && s.open.Len() == 0
}

// Status summarises progress: GoalSettled, Exhausted or Searching.
func (s *State) Status() Status {
	switch {
	case s.GoalSettled():
		return StatusGoalSettled
	case s.Exhausted():
		return StatusExhausted
	default:
		return StatusSearching
	}
}

// OpenLen returns the size of the open set.
func (s *State) OpenLen() int { return s.open.Len() }

// SettledCount returns how many cells have been settled this run.
func (s *State) SettledCount() int { return s.settledCount }

// GCost returns the gCost at c; Unreached for unreached or out-of-bounds cells.
func (s *State) GCost(c grid.Coord) int64 {
	if !s.grid.InBounds(c) {
		return Unreached
	}
	return s.g[s.grid.Index(c)]
}

// FCost returns the fCost at c; +Inf for unreached or out-of-bounds cells.
func (s *State) FCost(c grid.Coord) float64 {
	if !s.grid.InBounds(c) {
		return math.Inf(1)
	}
	return s.f[s.grid.Index(c)]
}

// Parent returns the cell c was last relaxed from.
func (s *State) Parent(c grid.Coord) (grid.Coord, bool) {
	if !s.grid.InBounds(c) {
		return grid.Coord{}, false
	}
	p := s.parent[s.grid.Index(c)]
	if p < 0 {
		return grid.Coord{}, false
	}
	return s.grid.Coordinate(p), true
}

// Settled reports whether c has been settled.
func (s *State) Settled(c grid.Coord) bool {
	return s.grid.InBounds(c) && s.settled[s.grid.Index(c)]
}

// InOpen reports whether c is in the open set.
func (s *State) InOpen(c grid.Coord) bool {
	return s.grid.InBounds(c) && s.open.Contains(s.grid.Index(c))
}

// OnPath reports whether c was marked by the last Reconstruct.
func (s *State) OnPath(c grid.Coord) bool {
	return s.grid.InBounds(c) && s.onPath[s.grid.Index(c)]
}

// Inspect returns a read-only view of the cell at c.
func (s *State) Inspect(c grid.Coord) (Cell, error) {
	if !s.grid.InBounds(c) {
		return Cell{}, fmt.Errorf("%w: %s", grid.ErrOutOfBounds, c)
	}
	return s.cellAt(s.grid.Index(c)), nil
}

// Cells calls fn with a view of every cell in row-major order until fn returns false.
func (s *State) Cells(fn func(Cell) bool) {
	for i := 0; i < s.grid.Len(); i++ {
		if !fn(s.cellAt(i)) {
			return
		}
	}
}

func (s *State) cellAt(i int) Cell {
	c := Cell{
		Coord:   s.grid.Coordinate(i),
		Kind:    s.grid.KindAt(i),
		GCost:   s.g[i],
		FCost:   s.f[i],
		Settled: s.settled[i],
		Open:    s.open.Contains(i),
		OnPath:  s.onPath[i],
	}
	if p := s.parent[i]; p >= 0 {
		c.Parent = s.grid.Coordinate(p)
		c.HasParent = true
	}
	return c
}
