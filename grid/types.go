// Package grid defines the cell kinds, coordinates, adjacency tables and
// sentinel errors used by the pathviz grid.
package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns was requested.
	ErrEmptyGrid = errors.New("grid: grid must have at least one row and one column")
	// ErrNonRectangular indicates text rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrUnknownKind indicates a Kind value outside the defined set.
	ErrUnknownKind = errors.New("grid: unknown cell kind")
	// ErrUnknownGlyph indicates a layout character that maps to no Kind.
	ErrUnknownGlyph = errors.New("grid: unknown layout glyph")
	// ErrBlockedTarget indicates an endpoint was dropped onto a Blocked cell.
	ErrBlockedTarget = errors.New("grid: endpoint cannot be placed on a blocked cell")
	// ErrNotEndpoint indicates PlaceEndpoint was called with a Kind other than Source or Goal.
	ErrNotEndpoint = errors.New("grid: kind is not an endpoint")
)

// Kind is the static role of a cell.
type Kind uint8

const (
	// Clear cells are traversable.
	Clear Kind = iota
	// Blocked cells are never traversable.
	Blocked
	// Source is where the search starts.
	Source
	// Goal is where the search ends.
	Goal

	kindCount
)

var kindNames = [kindCount]string{"clear", "blocked", "source", "goal"}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k < kindCount }

// Endpoint reports whether k is Source or Goal.
func (k Kind) Endpoint() bool { return k == Source || k == Goal }

// Coord is an integer grid position. X grows to the right, Y grows with the
// row index of the text layout.
type Coord struct {
	X, Y int
}

// String formats the coordinate as "(x,y)".
func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Add returns c shifted by d.
func (c Coord) Add(d Direction) Coord { return Coord{X: c.X + d.DX, Y: c.Y + d.DY} }

// Connectivity selects orthogonal-only (Conn4) or orthogonal plus diagonal (Conn8) adjacency.
type Connectivity int

const (
	// Conn4 uses the four orthogonal neighbours.
	Conn4 Connectivity = iota
	// Conn8 adds the four diagonal neighbours after the orthogonal ones.
	Conn8
)

// String returns "conn4" or "conn8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "conn8"
	}
	return "conn4"
}

// Direction is a unit offset to a neighbouring cell.
type Direction struct {
	DX, DY int
}

// Diagonal reports whether the offset moves along both axes.
func (d Direction) Diagonal() bool { return d.DX != 0 && d.DY != 0 }

// Expansion order is part of the search tie-break contract: neighbours are
// discovered, and therefore queued, in exactly this order.
var (
	orthogonal = []Direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	conn8      = []Direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
)

// Directions returns the neighbour offsets for conn in expansion order.
// The returned slice must not be modified.
func Directions(conn Connectivity) []Direction {
	if conn == Conn8 {
		return conn8
	}
	return orthogonal
}
