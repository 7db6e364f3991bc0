package controller

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// Controller drives one search.State through the run lifecycle
// Idle → Running ⇄ Paused → Finished, and guards grid edits against active runs.
//
// Thread Safety: NOT safe for concurrent use. The driver must serialise input
// events and ticks on one goroutine.
type Controller struct {
	grid     *grid.Grid
	search   *search.State
	settings Settings
	logger   *slog.Logger
	obs      []Observer

	state   State
	outcome Outcome
	path    search.Path
	runID   string
	steps   int
}

// NewController wraps g. The grid is shared and edited in place.
// Returns search.ErrNilGrid for a nil grid and ErrBadSettings or
// search.ErrBadWeight for invalid settings.
func NewController(g *grid.Grid, opts ...Option) (*Controller, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	st, err := search.NewState(g, cfg.Settings.SearchOptions()...)
	if err != nil {
		return nil, err
	}

	return &Controller{
		grid:     g,
		search:   st,
		settings: cfg.Settings,
		logger:   cfg.Logger,
		obs:      cfg.Observers,
		state:    StateIdle,
	}, nil
}

// Start resets and seeds a new run and enters Running. Allowed from Idle or
// Finished; ErrRunActive otherwise. A seeding error (no Source, no Goal)
// leaves the controller Idle.
func (c *Controller) Start() error {
	if c.state.IsActive() {
		c.reject("start")
		return ErrRunActive
	}
	c.clearRun()

	if err := c.search.Seed(); err != nil {
		c.setState(StateIdle)
		c.logger.Warn("Run not started",
			slog.String("error", err.Error()),
		)
		return err
	}

	c.runID = uuid.New().String()[:8]
	c.logger.Info("Run started",
		slog.String("run_id", c.runID),
		slog.String("algorithm", c.settings.Algorithm.String()),
		slog.Bool("diagonal", c.settings.AllowDiagonal),
		slog.Bool("corner_cutting", c.settings.AllowCornerCutting),
		slog.String("frontier", c.settings.Frontier.String()),
	)
	c.setState(StateRunning)
	for _, o := range c.obs {
		o.RunStarted(c.info())
	}

	return nil
}

// PauseToggle switches Running ⇄ Paused. ErrNotRunning in any other state.
func (c *Controller) PauseToggle() error {
	switch c.state {
	case StateRunning:
		c.setState(StatePaused)
	case StatePaused:
		c.setState(StateRunning)
	default:
		c.reject("pause")
		return ErrNotRunning
	}
	return nil
}

// Cancel resets the search and returns to Idle. From Finished it clears the
// displayed result. A no-op when already Idle.
func (c *Controller) Cancel() {
	if c.state == StateIdle {
		return
	}
	if c.state.IsActive() {
		c.logger.Info("Run cancelled",
			slog.String("run_id", c.runID),
			slog.Int("steps", c.steps),
		)
		info := c.info()
		for _, o := range c.obs {
			o.RunCancelled(info)
		}
	}
	c.clearRun()
	c.setState(StateIdle)
}

// Tick advances a Running search by one action:
//
//  1. Goal unsettled, open set non-empty: Step.
//  2. Goal settled: Reconstruct, then Finished(PathFound).
//  3. Open set empty: Finished(NoPath).
//
// Ticks outside Running return ActionNone. An invariant violation resets the
// run to Idle and is returned wrapped in ErrRunAborted.
func (c *Controller) Tick() (TickResult, error) {
	if c.state != StateRunning {
		return TickResult{State: c.state, Outcome: c.outcome}, nil
	}

	switch c.search.Status() {
	case search.StatusSearching:
		step, err := c.search.Step()
		if err != nil {
			return c.abort(err)
		}
		c.steps++
		info := c.info()
		for _, o := range c.obs {
			o.Stepped(info, step)
		}
		return TickResult{Action: ActionStep, Step: step, State: c.state}, nil

	case search.StatusGoalSettled:
		path, err := c.search.Reconstruct()
		if err != nil {
			return c.abort(err)
		}
		c.path = path
		c.finish(OutcomePathFound)
		return TickResult{Action: ActionReconstruct, State: c.state, Outcome: c.outcome}, nil

	default:
		c.finish(OutcomeNoPath)
		return TickResult{Action: ActionExhausted, State: c.state, Outcome: c.outcome}, nil
	}
}

// Configure replaces the settings. Allowed in Idle or Finished (a finished
// run is cleared); ErrRunActive otherwise.
func (c *Controller) Configure(s Settings) error {
	if c.state.IsActive() {
		c.reject("configure")
		return ErrRunActive
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := c.search.Configure(s.SearchOptions()...); err != nil {
		return err
	}
	c.settings = s
	c.clearRun()
	c.setState(StateIdle)
	c.logger.Debug("Settings changed",
		slog.String("algorithm", s.Algorithm.String()),
		slog.Bool("diagonal", s.AllowDiagonal),
		slog.Bool("corner_cutting", s.AllowCornerCutting),
		slog.Int("steps_per_second", s.StepsPerSecond),
	)

	return nil
}

// SetStepsPerSecond changes the simulation speed. Allowed in any state.
func (c *Controller) SetStepsPerSecond(sps int) error {
	next := c.settings
	next.StepsPerSecond = sps
	if err := next.Validate(); err != nil {
		return err
	}
	c.settings = next
	return nil
}

// SetCellKind edits one cell. Source and Goal are moved rather than
// duplicated. Allowed in Idle or Finished (a finished run is cleared first);
// ErrRunActive otherwise.
func (c *Controller) SetCellKind(at grid.Coord, k grid.Kind) error {
	if k.Endpoint() {
		return c.placeEndpoint(k, at)
	}
	if err := c.beginEdit("set cell"); err != nil {
		return err
	}
	return c.grid.SetKind(at, k)
}

// PlaceSource moves the Source to at. The target must not be Blocked or the Goal.
func (c *Controller) PlaceSource(at grid.Coord) error { return c.placeEndpoint(grid.Source, at) }

// PlaceGoal moves the Goal to at. The target must not be Blocked or the Source.
func (c *Controller) PlaceGoal(at grid.Coord) error { return c.placeEndpoint(grid.Goal, at) }

func (c *Controller) placeEndpoint(k grid.Kind, at grid.Coord) error {
	if err := c.beginEdit("place " + k.String()); err != nil {
		return err
	}
	cur, err := c.grid.Kind(at)
	if err != nil {
		return err
	}
	if cur.Endpoint() && cur != k {
		return fmt.Errorf("%w: %s", ErrOccupied, at)
	}
	return c.grid.PlaceEndpoint(k, at)
}

// ClearWalls turns every Blocked cell into Clear and returns how many changed.
func (c *Controller) ClearWalls() (int, error) {
	if err := c.beginEdit("clear walls"); err != nil {
		return 0, err
	}
	n := c.grid.ClearBlocked()
	c.logger.Debug("Walls cleared", slog.Int("cells", n))

	return n, nil
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Outcome returns the result of the last finished run, OutcomeNone otherwise.
func (c *Controller) Outcome() Outcome { return c.outcome }

// Path returns the reconstructed path after Finished(PathFound).
func (c *Controller) Path() (search.Path, bool) {
	return c.path, c.outcome == OutcomePathFound
}

// Settings returns the active settings.
func (c *Controller) Settings() Settings { return c.settings }

// RunID returns the identifier of the current or last run, "" before the first.
func (c *Controller) RunID() string { return c.runID }

// Steps returns how many Step actions the current run has taken.
func (c *Controller) Steps() int { return c.steps }

// Width returns the grid width.
func (c *Controller) Width() int { return c.grid.Width() }

// Height returns the grid height.
func (c *Controller) Height() int { return c.grid.Height() }

// Cell returns the view at at.
func (c *Controller) Cell(at grid.Coord) (CellView, error) {
	cell, err := c.search.Inspect(at)
	if err != nil {
		return CellView{}, err
	}
	return view(cell), nil
}

// Snapshot copies the whole grid and run status.
// Complexity: O(W×H).
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:    c.runID,
		State:    c.state,
		Outcome:  c.outcome,
		Settings: c.settings,
		Width:    c.grid.Width(),
		Height:   c.grid.Height(),
		Cells:    make([]CellView, 0, c.grid.Len()),
		OpenLen:  c.search.OpenLen(),
		Settled:  c.search.SettledCount(),
		Steps:    c.steps,
		Path:     c.path,
	}
	c.search.Cells(func(cell search.Cell) bool {
		snap.Cells = append(snap.Cells, view(cell))
		return true
	})

	return snap
}

func view(cell search.Cell) CellView {
	return CellView{
		Coord:   cell.Coord,
		Kind:    cell.Kind,
		GCost:   cell.GCost,
		Reached: cell.Reached(),
		Settled: cell.Settled,
		Open:    cell.Open,
		OnPath:  cell.OnPath,
	}
}

// beginEdit refuses edits during a run and clears a finished one.
func (c *Controller) beginEdit(what string) error {
	if c.state.IsActive() {
		c.reject(what)
		return ErrRunActive
	}
	if c.state == StateFinished {
		c.clearRun()
		c.setState(StateIdle)
	}
	return nil
}

// clearRun drops all per-run data, keeping the last run ID for display.
func (c *Controller) clearRun() {
	c.search.Reset()
	c.outcome = OutcomeNone
	c.path = search.Path{}
	c.steps = 0
}

func (c *Controller) finish(outcome Outcome) {
	c.outcome = outcome
	c.setState(StateFinished)
	c.logger.Info("Run finished",
		slog.String("run_id", c.runID),
		slog.String("outcome", outcome.String()),
		slog.Int("steps", c.steps),
		slog.Int("settled", c.search.SettledCount()),
		slog.Int64("cost", c.path.Cost),
		slog.Int("path_len", c.path.Len()),
	)
	info := c.info()
	for _, o := range c.obs {
		o.RunFinished(info, outcome, c.path)
	}
}

// abort handles an invariant violation: the run is dropped and the error surfaced.
func (c *Controller) abort(err error) (TickResult, error) {
	c.logger.Error("Run aborted",
		slog.String("run_id", c.runID),
		slog.String("error", err.Error()),
	)
	info := c.info()
	for _, o := range c.obs {
		o.RunCancelled(info)
	}
	c.clearRun()
	c.setState(StateIdle)

	return TickResult{State: c.state}, fmt.Errorf("%w: %w", ErrRunAborted, err)
}

func (c *Controller) setState(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	c.logger.Debug("Run state transition",
		slog.String("run_id", c.runID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
}

func (c *Controller) reject(what string) {
	c.logger.Debug("Command rejected",
		slog.String("command", what),
		slog.String("state", string(c.state)),
	)
}

func (c *Controller) info() RunInfo {
	return RunInfo{
		ID:        c.runID,
		Algorithm: c.settings.Algorithm,
		Steps:     c.steps,
		Settled:   c.search.SettledCount(),
	}
}

// IsConfigError reports whether err is a user-correctable configuration
// problem rather than an engine failure.
func IsConfigError(err error) bool {
	return errors.Is(err, search.ErrNoSource) ||
		errors.Is(err, search.ErrNoGoal) ||
		errors.Is(err, ErrRunActive) ||
		errors.Is(err, ErrNotRunning) ||
		errors.Is(err, ErrBadSettings) ||
		errors.Is(err, ErrOccupied) ||
		errors.Is(err, search.ErrBadWeight) ||
		errors.Is(err, grid.ErrBlockedTarget)
}
