// Package config loads, validates and writes the pathviz YAML configuration.
//
// What:
//
//	grid:    {width, height}                  blank grid size
//	search:  {algorithm, weight, diagonal, corner_cutting, frontier}
//	sim:     {steps_per_second}               viewer pacing, 1..60
//	layout:  {source: {x, y}, goal: {x, y}, map_file}
//	log:     {level, format, file}
//	metrics: {listen}                         host:port for /metrics, empty disables
//
// Missing keys keep their Default values; unknown keys are rejected.
// Field rules are struct tags checked by go-playground/validator; rules that
// span fields (endpoints inside the grid and distinct) are checked after.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid indicates a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Default grid geometry, matching the classic 50×50 board with the endpoints
// ten cells apart on the middle row.
const (
	DefaultSize       = 50
	DefaultEndpointDX = 5
)

// Config is the root of the YAML document.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Search  SearchConfig  `yaml:"search"`
	Sim     SimConfig     `yaml:"sim"`
	Layout  LayoutConfig  `yaml:"layout"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// GridConfig sizes the blank grid used when no map file is given.
type GridConfig struct {
	Width  int `yaml:"width" validate:"gte=2,lte=1000"`
	Height int `yaml:"height" validate:"gte=1,lte=1000"`
}

// SearchConfig selects the algorithm and adjacency.
type SearchConfig struct {
	Algorithm     string  `yaml:"algorithm" validate:"oneof=dijkstra astar"`
	Weight        float64 `yaml:"weight" validate:"gte=0,lte=10"`
	Diagonal      bool    `yaml:"diagonal"`
	CornerCutting bool    `yaml:"corner_cutting"`
	Frontier      string  `yaml:"frontier" validate:"oneof=list heap"`
}

// SimConfig paces the interactive viewer.
type SimConfig struct {
	StepsPerSecond int `yaml:"steps_per_second" validate:"gte=1,lte=60"`
}

// Point is a cell position in the YAML file.
type Point struct {
	X int `yaml:"x" validate:"gte=0"`
	Y int `yaml:"y" validate:"gte=0"`
}

// LayoutConfig places the endpoints on a blank grid, or names an ASCII map
// file ('.', '#', 'S', 'G') that replaces grid and endpoints entirely.
type LayoutConfig struct {
	Source  Point  `yaml:"source"`
	Goal    Point  `yaml:"goal"`
	MapFile string `yaml:"map_file"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	File   string `yaml:"file"`
}

// MetricsConfig enables the Prometheus endpoint.
type MetricsConfig struct {
	Listen string `yaml:"listen" validate:"omitempty,hostname_port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{Width: DefaultSize, Height: DefaultSize},
		Search: SearchConfig{
			Algorithm: "dijkstra",
			Weight:    1,
			Frontier:  "list",
		},
		Sim: SimConfig{StepsPerSecond: 60},
		Layout: LayoutConfig{
			Source: Point{X: DefaultSize/2 - DefaultEndpointDX, Y: DefaultSize / 2},
			Goal:   Point{X: DefaultSize/2 + DefaultEndpointDX, Y: DefaultSize / 2},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// validate is the shared validator; field names in errors use the yaml keys.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks field ranges, then cross-field rules. All problems are
// reported together, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	var problems []string
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	if c.Layout.MapFile == "" {
		if !c.inGrid(c.Layout.Source) {
			problems = append(problems, fmt.Sprintf("layout.source (%d,%d) outside %dx%d grid",
				c.Layout.Source.X, c.Layout.Source.Y, c.Grid.Width, c.Grid.Height))
		}
		if !c.inGrid(c.Layout.Goal) {
			problems = append(problems, fmt.Sprintf("layout.goal (%d,%d) outside %dx%d grid",
				c.Layout.Goal.X, c.Layout.Goal.Y, c.Grid.Width, c.Grid.Height))
		}
		if c.Layout.Source == c.Layout.Goal {
			problems = append(problems, "layout.source and layout.goal must differ")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) inGrid(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.Grid.Width && p.Y < c.Grid.Height
}

// describe renders one validator failure as "search.weight must be lte 10 (got 12)".
func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	rule := fe.Tag()
	if p := fe.Param(); p != "" {
		rule += " " + p
	}
	return fmt.Sprintf("%s must be %s (got %v)", field, rule, fe.Value())
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
