package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// Sentinel errors returned by the Controller.
var (
	// ErrRunActive indicates an edit or reconfiguration was attempted while Running or Paused.
	ErrRunActive = errors.New("controller: a run is in progress")

	// ErrNotRunning indicates PauseToggle was called outside Running or Paused.
	ErrNotRunning = errors.New("controller: no run in progress")

	// ErrBadSettings indicates Settings outside their allowed ranges.
	ErrBadSettings = errors.New("controller: invalid settings")

	// ErrOccupied indicates an endpoint was dropped onto the other endpoint.
	ErrOccupied = errors.New("controller: cell holds the other endpoint")

	// ErrRunAborted wraps an invariant violation that forced the run back to Idle.
	ErrRunAborted = errors.New("controller: run aborted")
)

// Settings limits.
const (
	MaxWeight         = 10.0
	MinStepsPerSecond = 1
	MaxStepsPerSecond = 60
)

// State is a run lifecycle state.
type State string

const (
	// StateIdle means no run exists; the grid may be edited.
	StateIdle State = "idle"
	// StateRunning means ticks advance the search.
	StateRunning State = "running"
	// StatePaused means ticks are ignored until PauseToggle.
	StatePaused State = "paused"
	// StateFinished means the run ended; see Outcome.
	StateFinished State = "finished"
)

// String returns the state name.
func (s State) String() string { return string(s) }

// IsActive reports whether a run is in progress (Running or Paused).
func (s State) IsActive() bool { return s == StateRunning || s == StatePaused }

// IsTerminal reports whether the run has finished.
func (s State) IsTerminal() bool { return s == StateFinished }

// Outcome is the result of a finished run.
type Outcome string

const (
	// OutcomeNone is reported while no run has finished.
	OutcomeNone Outcome = ""
	// OutcomePathFound means the Goal was reached and the path reconstructed.
	OutcomePathFound Outcome = "path_found"
	// OutcomeNoPath means the open set emptied before the Goal was settled.
	OutcomeNoPath Outcome = "no_path"
)

// String returns the outcome name, "none" for OutcomeNone.
func (o Outcome) String() string {
	if o == OutcomeNone {
		return "none"
	}
	return string(o)
}

// Action is what a single Tick did.
type Action int

const (
	// ActionNone means the tick was ignored (not Running).
	ActionNone Action = iota
	// ActionStep means one cell was settled.
	ActionStep
	// ActionReconstruct means the path was rebuilt and the run finished with a path.
	ActionReconstruct
	// ActionExhausted means the run finished without a path.
	ActionExhausted
)

// String returns a short name for the action.
func (a Action) String() string {
	switch a {
	case ActionStep:
		return "step"
	case ActionReconstruct:
		return "reconstruct"
	case ActionExhausted:
		return "exhausted"
	default:
		return "none"
	}
}

// TickResult describes one Tick.
type TickResult struct {
	Action  Action
	Step    search.StepResult // valid when Action == ActionStep
	State   State             // state after the tick
	Outcome Outcome
}

// Settings is the user-adjustable search configuration plus simulation speed.
type Settings struct {
	Algorithm          search.Algorithm
	AllowDiagonal      bool
	AllowCornerCutting bool // only meaningful with AllowDiagonal
	Frontier           search.FrontierKind
	StepsPerSecond     int
}

// DefaultSettings returns Dijkstra, orthogonal moves, no corner cutting, list
// frontier, 60 steps per second.
func DefaultSettings() Settings {
	return Settings{
		Algorithm:      search.UniformCost(),
		Frontier:       search.FrontierList,
		StepsPerSecond: MaxStepsPerSecond,
	}
}

// Validate checks the weight range 0..MaxWeight and the speed range.
func (s Settings) Validate() error {
	if err := s.Algorithm.Validate(); err != nil {
		return err
	}
	if w := s.Algorithm.Weight(); w > MaxWeight {
		return fmt.Errorf("%w: weight %g above %g", ErrBadSettings, w, MaxWeight)
	}
	if s.StepsPerSecond < MinStepsPerSecond || s.StepsPerSecond > MaxStepsPerSecond {
		return fmt.Errorf("%w: steps per second %d not in [%d, %d]",
			ErrBadSettings, s.StepsPerSecond, MinStepsPerSecond, MaxStepsPerSecond)
	}
	return nil
}

// SearchOptions converts the settings to search options.
func (s Settings) SearchOptions() []search.Option {
	return []search.Option{
		search.WithAlgorithm(s.Algorithm),
		search.WithDiagonal(s.AllowDiagonal),
		search.WithCornerCutting(s.AllowCornerCutting),
		search.WithFrontier(s.Frontier),
	}
}

// TickInterval is the pause between ticks at StepsPerSecond.
func (s Settings) TickInterval() time.Duration {
	sps := s.StepsPerSecond
	if sps < MinStepsPerSecond {
		sps = MinStepsPerSecond
	}
	return time.Second / time.Duration(sps)
}

// CellView is a read-only view of one cell for rendering.
type CellView struct {
	Coord   grid.Coord
	Kind    grid.Kind
	GCost   int64 // search.Unreached when unreached
	Reached bool
	Settled bool
	Open    bool // in the open set ("checking")
	OnPath  bool
}

// Snapshot is a consistent copy of everything a renderer needs.
type Snapshot struct {
	RunID    string
	State    State
	Outcome  Outcome
	Settings Settings
	Width    int
	Height   int
	Cells    []CellView // row-major
	OpenLen  int
	Settled  int
	Steps    int
	Path     search.Path
}

// At returns the view at c. c must be in bounds.
func (s Snapshot) At(c grid.Coord) CellView { return s.Cells[c.Y*s.Width+c.X] }

// RunInfo identifies a run for observers.
type RunInfo struct {
	ID        string
	Algorithm search.Algorithm
	Steps     int
	Settled   int
}

// Observer receives run lifecycle events. Calls happen synchronously on the
// goroutine driving the Controller.
type Observer interface {
	RunStarted(run RunInfo)
	Stepped(run RunInfo, step search.StepResult)
	RunFinished(run RunInfo, outcome Outcome, path search.Path)
	RunCancelled(run RunInfo)
}

// NopObserver implements Observer with no-ops; embed it to handle a subset of events.
type NopObserver struct{}

func (NopObserver) RunStarted(RunInfo)                        {}
func (NopObserver) Stepped(RunInfo, search.StepResult)        {}
func (NopObserver) RunFinished(RunInfo, Outcome, search.Path) {}
func (NopObserver) RunCancelled(RunInfo)                      {}

// Options configures a Controller.
type Options struct {
	Settings  Settings
	Logger    *slog.Logger
	Observers []Observer

	err error
}

// Option represents a functional option for configuring a Controller.
type Option func(*Options)

// DefaultOptions returns DefaultSettings, a discarding logger and no observers.
func DefaultOptions() Options {
	return Options{
		Settings: DefaultSettings(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSettings sets the initial settings. Invalid settings are surfaced by NewController.
func WithSettings(s Settings) Option {
	return func(o *Options) {
		if err := s.Validate(); err != nil {
			o.err = err
			return
		}
		o.Settings = s
	}
}

// WithLogger sets the structured logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers an observer. Nil is ignored.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observers = append(o.Observers, obs)
		}
	}
}
