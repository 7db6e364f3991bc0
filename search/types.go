// Package search defines the algorithm variants, configuration options,
// step results and sentinel errors for the step-wise grid search engine.
//
// Cost model:
//
//	– Orthogonal move: OrthogonalCost (10).
//	– Diagonal move:   DiagonalCost (14), a fixed-point 10·√2.
//	– Heuristic:       weight · HeuristicScale · (|Δx| + |Δy|), weighted Manhattan
//	                   distance scaled to the same units.
//
// Options:
//
//	– Algorithm:          UniformCost() or WeightedAStar(weight), weight ≥ 0.
//	– AllowDiagonal:      expand the four diagonal neighbours as well.
//	– AllowCornerCutting: permit a diagonal move whose two corner cells are both Blocked.
//	– Frontier:           FrontierList (linear scan) or FrontierHeap (binary heap).
//	– OnSettle, OnDiscover, OnRelax: observation hooks.
//
// Errors (sentinel):
//
//	– ErrNilGrid, ErrOptionViolation, ErrBadWeight    construction/configuration.
//	– ErrNoSource, ErrNoGoal                          seeding (configuration errors).
//	– ErrNotSeeded, ErrFrontierEmpty, ErrGoalNotSettled  precondition failures.
//	– ErrBrokenParentChain, ErrSettledInFrontier      invariant violations.
package search

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/pathviz/grid"
)

// Sentinel errors returned by the search engine.
var (
	// ErrNilGrid indicates that a nil *grid.Grid was passed to NewState.
	ErrNilGrid = errors.New("search: grid is nil")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrBadWeight indicates a negative, NaN or infinite heuristic weight.
	ErrBadWeight = errors.New("search: heuristic weight must be finite and non-negative")

	// ErrNoSource indicates the grid has no Source cell at seed time.
	ErrNoSource = errors.New("search: grid has no source cell")

	// ErrNoGoal indicates the grid has no Goal cell at seed time.
	ErrNoGoal = errors.New("search: grid has no goal cell")

	// ErrNotSeeded indicates Step or Reconstruct was called before a successful Seed.
	ErrNotSeeded = errors.New("search: state has not been seeded")

	// ErrFrontierEmpty indicates Step was called with an empty open set.
	ErrFrontierEmpty = errors.New("search: open set is empty")

	// ErrGoalNotSettled indicates Reconstruct was called before the Goal was settled.
	ErrGoalNotSettled = errors.New("search: goal has not been settled")

	// ErrBrokenParentChain indicates the parent links from the Goal do not reach the Source.
	ErrBrokenParentChain = errors.New("search: parent chain broken before reaching the source")

	// ErrSettledInFrontier indicates an already settled cell was selected from the open set.
	ErrSettledInFrontier = errors.New("search: settled cell selected from the open set")
)

// Step costs and heuristic scale, in tenths of a cell.
const (
	OrthogonalCost int64 = 10
	DiagonalCost   int64 = 14
	HeuristicScale       = 10.0
)

// Unreached is the gCost of a cell no path has reached yet (+∞).
const Unreached int64 = math.MaxInt64

// AlgorithmKind tags the variant held by an Algorithm.
type AlgorithmKind int

const (
	// KindUniformCost orders the frontier by gCost (Dijkstra).
	KindUniformCost AlgorithmKind = iota
	// KindWeightedAStar orders the frontier by fCost = gCost + weight·h.
	KindWeightedAStar
)

// Algorithm is a tagged variant: UniformCost, or WeightedAStar carrying its weight.
// The zero value is UniformCost.
type Algorithm struct {
	kind   AlgorithmKind
	weight float64
}

// UniformCost returns the uniform-cost (Dijkstra) variant.
func UniformCost() Algorithm { return Algorithm{kind: KindUniformCost} }

// WeightedAStar returns the weighted A* variant. Weight 0 degenerates to
// uniform-cost ordering; weight > 1 is inadmissible and may return longer paths.
func WeightedAStar(weight float64) Algorithm {
	return Algorithm{kind: KindWeightedAStar, weight: weight}
}

// Kind returns the variant tag.
func (a Algorithm) Kind() AlgorithmKind { return a.kind }

// Weight returns the heuristic weight; 0 for UniformCost.
func (a Algorithm) Weight() float64 {
	if a.kind != KindWeightedAStar {
		return 0
	}
	return a.weight
}

// Validate reports ErrBadWeight for an unusable A* weight.
func (a Algorithm) Validate() error {
	if a.kind != KindWeightedAStar {
		return nil
	}
	if math.IsNaN(a.weight) || math.IsInf(a.weight, 0) || a.weight < 0 {
		return fmt.Errorf("%w: %v", ErrBadWeight, a.weight)
	}
	return nil
}

// String returns "dijkstra" or "astar(w=…)".
func (a Algorithm) String() string {
	if a.kind == KindWeightedAStar {
		return fmt.Sprintf("astar(w=%g)", a.weight)
	}
	return "dijkstra"
}

// Name returns the short name used in configuration files and metrics labels.
func (a Algorithm) Name() string {
	if a.kind == KindWeightedAStar {
		return "astar"
	}
	return "dijkstra"
}

// ParseAlgorithm maps a configuration name to an Algorithm.
// Accepted: "dijkstra", "uniform", "ucs" and "astar", "a*".
func ParseAlgorithm(name string, weight float64) (Algorithm, error) {
	var a Algorithm
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dijkstra", "uniform", "ucs", "":
		a = UniformCost()
	case "astar", "a*":
		a = WeightedAStar(weight)
	default:
		return Algorithm{}, fmt.Errorf("%w: unknown algorithm %q", ErrOptionViolation, name)
	}
	return a, a.Validate()
}

// estimate returns the weighted Manhattan estimate from c to goal. Zero for UniformCost.
func (a Algorithm) estimate(c, goal grid.Coord) float64 {
	if a.kind != KindWeightedAStar {
		return 0
	}
	dx, dy := c.X-goal.X, c.Y-goal.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return a.weight * HeuristicScale * float64(dx+dy)
}

// priority returns the frontier ordering key for a cell with the given costs.
func (a Algorithm) priority(g int64, f float64) float64 {
	if a.kind == KindWeightedAStar {
		return f
	}
	return float64(g)
}

// FrontierKind selects the open-set implementation. Both produce the same
// settle order: minimum key first, earliest insertion on exact ties.
type FrontierKind int

const (
	// FrontierList is an insertion-ordered list searched linearly, O(n) per selection.
	FrontierList FrontierKind = iota
	// FrontierHeap is a binary heap keyed by (priority, insertion sequence), O(log n).
	FrontierHeap
)

// String returns "list" or "heap".
func (k FrontierKind) String() string {
	if k == FrontierHeap {
		return "heap"
	}
	return "list"
}

// ParseFrontier maps "list" or "heap" to a FrontierKind.
func ParseFrontier(name string) (FrontierKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "list", "":
		return FrontierList, nil
	case "heap":
		return FrontierHeap, nil
	}
	return FrontierList, fmt.Errorf("%w: unknown frontier %q", ErrOptionViolation, name)
}

// Options configures a search State.
type Options struct {
	Algorithm          Algorithm    // UniformCost or WeightedAStar(weight)
	AllowDiagonal      bool         // expand diagonal neighbours
	AllowCornerCutting bool         // allow diagonals between two Blocked corner cells
	Frontier           FrontierKind // open-set implementation

	// OnSettle is called after a cell is settled.
	OnSettle func(c grid.Coord)
	// OnDiscover is called when a cell first enters the open set.
	OnDiscover func(c grid.Coord)
	// OnRelax is called when a cell's gCost is lowered from old to new.
	OnRelax func(c grid.Coord, old, new int64)

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring a State.
type Option func(*Options)

// DefaultOptions returns uniform-cost search, orthogonal moves only, no corner
// cutting, list frontier and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Algorithm:  UniformCost(),
		Frontier:   FrontierList,
		OnSettle:   func(grid.Coord) {},
		OnDiscover: func(grid.Coord) {},
		OnRelax:    func(grid.Coord, int64, int64) {},
	}
}

// Connectivity returns Conn8 when diagonal moves are allowed, Conn4 otherwise.
func (o Options) Connectivity() grid.Connectivity {
	if o.AllowDiagonal {
		return grid.Conn8
	}
	return grid.Conn4
}

// WithAlgorithm selects the algorithm variant. An invalid weight is recorded
// and surfaced as ErrBadWeight.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) {
		if err := a.Validate(); err != nil {
			o.err = err
			return
		}
		o.Algorithm = a
	}
}

// WithUniformCost selects uniform-cost search.
func WithUniformCost() Option { return WithAlgorithm(UniformCost()) }

// WithWeightedAStar selects weighted A* with the given heuristic weight.
func WithWeightedAStar(weight float64) Option { return WithAlgorithm(WeightedAStar(weight)) }

// WithDiagonal enables or disables diagonal moves.
func WithDiagonal(allow bool) Option {
	return func(o *Options) { o.AllowDiagonal = allow }
}

// WithCornerCutting enables or disables diagonal moves between two Blocked corners.
func WithCornerCutting(allow bool) Option {
	return func(o *Options) { o.AllowCornerCutting = allow }
}

// WithFrontier selects the open-set implementation.
func WithFrontier(kind FrontierKind) Option {
	return func(o *Options) {
		if kind != FrontierList && kind != FrontierHeap {
			o.err = fmt.Errorf("%w: frontier kind %d", ErrOptionViolation, int(kind))
			return
		}
		o.Frontier = kind
	}
}

// WithOnSettle registers a callback run after each settle.
func WithOnSettle(fn func(c grid.Coord)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSettle = fn
		}
	}
}

// WithOnDiscover registers a callback run when a cell enters the open set.
func WithOnDiscover(fn func(c grid.Coord)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDiscover = fn
		}
	}
}

// WithOnRelax registers a callback run whenever a gCost is lowered.
func WithOnRelax(fn func(c grid.Coord, old, new int64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRelax = fn
		}
	}
}

// Status is the search progress after a Step.
type Status int

const (
	// StatusSearching means the Goal is unsettled and the open set is non-empty.
	StatusSearching Status = iota
	// StatusGoalSettled means the Goal is settled; Reconstruct may be called.
	StatusGoalSettled
	// StatusExhausted means the open set emptied before the Goal was settled: no path exists.
	StatusExhausted
)

// String returns "searching", "goal-settled" or "exhausted".
func (s Status) String() string {
	switch s {
	case StatusGoalSettled:
		return "goal-settled"
	case StatusExhausted:
		return "exhausted"
	default:
		return "searching"
	}
}

// Terminal reports whether no further Step is useful.
func (s Status) Terminal() bool { return s != StatusSearching }

// StepResult describes what a single Step did.
type StepResult struct {
	Settled    grid.Coord   // cell selected and settled by this step
	Discovered []grid.Coord // cells newly added to the open set, in expansion order
	Relaxed    []grid.Coord // cells whose gCost was lowered, in expansion order
	OpenLen    int          // open-set size after the step
	Status     Status       // progress after the step
}

// Cell is a read-only view of one grid position and its per-run search data.
type Cell struct {
	Coord     grid.Coord
	Kind      grid.Kind
	GCost     int64   // Unreached when no path has reached the cell
	FCost     float64 // +Inf when unreached
	Parent    grid.Coord
	HasParent bool
	Settled   bool
	Open      bool
	OnPath    bool
}

// Reached reports whether the cell has a finite gCost.
func (c Cell) Reached() bool { return c.GCost != Unreached }

// Path is a reconstructed route from Source to Goal.
type Path struct {
	Cells []grid.Coord // Source first, Goal last
	Cost  int64        // Goal gCost
}

// Len returns the number of cells on the path, endpoints included.
func (p Path) Len() int { return len(p.Cells) }
