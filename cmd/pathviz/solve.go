package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/controller"
)

// errNoPath is returned by solve --strict when the Goal is unreachable.
var errNoPath = errors.New("no path between source and goal")

type solveOptions struct {
	algorithm     string
	weight        float64
	diagonal      bool
	cornerCutting bool
	frontier      string
	mapFile       string
	costs         bool
	strict        bool
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	o := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run a search to completion and print the result",
		Long: `solve builds the configured grid, runs the search headless until it
finishes, and prints the overlay (S/G endpoints, # walls, * path, : settled,
+ open) followed by a summary. Flags override the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, root, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.algorithm, "algorithm", "", "dijkstra or astar")
	f.Float64Var(&o.weight, "weight", 1, "A* heuristic weight (0..10)")
	f.BoolVar(&o.diagonal, "diagonal", false, "allow diagonal moves")
	f.BoolVar(&o.cornerCutting, "corner-cutting", false, "allow diagonals past one blocked corner")
	f.StringVar(&o.frontier, "frontier", "", "list or heap")
	f.StringVar(&o.mapFile, "map", "", "ASCII map file ('.', '#', 'S', 'G')")
	f.BoolVar(&o.costs, "costs", false, "also print the gCost of every cell")
	f.BoolVar(&o.strict, "strict", false, "exit non-zero when no path exists")
	return cmd
}

func runSolve(cmd *cobra.Command, root *rootOptions, o *solveOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	// 1) Only flags the user actually set override the file.
	f := cmd.Flags()
	if f.Changed("algorithm") {
		cfg.Search.Algorithm = o.algorithm
	}
	if f.Changed("weight") {
		cfg.Search.Weight = o.weight
	}
	if f.Changed("diagonal") {
		cfg.Search.Diagonal = o.diagonal
	}
	if f.Changed("corner-cutting") {
		cfg.Search.CornerCutting = o.cornerCutting
	}
	if f.Changed("frontier") {
		cfg.Search.Frontier = o.frontier
	}
	if f.Changed("map") {
		cfg.Layout.MapFile = o.mapFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 2) Build the pieces.
	logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	g, err := cfg.BuildGrid()
	if err != nil {
		return err
	}
	ctl, err := controller.NewController(g,
		controller.WithSettings(settings),
		controller.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	// 3) Tick unpaced until the run leaves Running.
	if err := ctl.Start(); err != nil {
		return err
	}
	ctx := cmd.Context()
	for ctl.State() == controller.StateRunning {
		if err := ctx.Err(); err != nil {
			ctl.Cancel()
			return err
		}
		if _, err := ctl.Tick(); err != nil {
			return err
		}
	}

	// 4) Report.
	snap := ctl.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderOverlay(snap))
	if o.costs {
		fmt.Fprintln(out)
		fmt.Fprint(out, renderCosts(snap))
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, summary(snap))

	if o.strict && snap.Outcome == controller.OutcomeNoPath {
		return errNoPath
	}
	return nil
}
