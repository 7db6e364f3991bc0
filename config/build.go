package config

import (
	"fmt"
	"os"

	"github.com/katalvlaran/pathviz/controller"
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// Settings converts the search and sim sections to controller settings.
func (c *Config) Settings() (controller.Settings, error) {
	algo, err := search.ParseAlgorithm(c.Search.Algorithm, c.Search.Weight)
	if err != nil {
		return controller.Settings{}, err
	}
	frontier, err := search.ParseFrontier(c.Search.Frontier)
	if err != nil {
		return controller.Settings{}, err
	}
	s := controller.Settings{
		Algorithm:          algo,
		AllowDiagonal:      c.Search.Diagonal,
		AllowCornerCutting: c.Search.CornerCutting,
		Frontier:           frontier,
		StepsPerSecond:     c.Sim.StepsPerSecond,
	}
	return s, s.Validate()
}

// BuildGrid returns the map file's grid when one is configured, otherwise a
// blank Width×Height grid with the layout endpoints placed.
func (c *Config) BuildGrid() (*grid.Grid, error) {
	if c.Layout.MapFile != "" {
		data, err := os.ReadFile(c.Layout.MapFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read the map file: %w", err)
		}
		g, err := grid.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Layout.MapFile, err)
		}
		return g, nil
	}

	g, err := grid.New(c.Grid.Width, c.Grid.Height)
	if err != nil {
		return nil, err
	}
	if err := g.PlaceEndpoint(grid.Source, grid.Coord{X: c.Layout.Source.X, Y: c.Layout.Source.Y}); err != nil {
		return nil, err
	}
	if err := g.PlaceEndpoint(grid.Goal, grid.Coord{X: c.Layout.Goal.X, Y: c.Layout.Goal.Y}); err != nil {
		return nil, err
	}
	return g, nil
}
