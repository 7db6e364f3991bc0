package grid

import "fmt"

// Grid is a fixed-size rectangle of cells. Only the static Kind of each cell
// is stored here; per-run search data lives in search.State, indexed by the
// same row-major index.
//
// A Grid is not safe for concurrent mutation.
type Grid struct {
	width, height int
	kinds         []Kind
}

// New constructs a width×height grid with every cell Clear.
// Returns ErrEmptyGrid if either dimension is not positive.
// Complexity: O(W×H) time and memory.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}

	return &Grid{
		width:  width,
		height: height,
		kinds:  make([]Kind, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells (Width×Height).
func (g *Grid) Len() int { return len(g.kinds) }

// InBounds reports whether c lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Index maps c to its row-major index y*Width + x. The caller must ensure c is in bounds.
// Complexity: O(1).
func (g *Grid) Index(c Coord) int {
	return c.Y*g.width + c.X
}

// Coordinate converts a row-major index back to a coordinate.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Coord {
	return Coord{X: idx % g.width, Y: idx / g.width}
}

// Kind returns the kind of the cell at c.
func (g *Grid) Kind(c Coord) (Kind, error) {
	if !g.InBounds(c) {
		return Clear, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return g.kinds[g.Index(c)], nil
}

// KindAt returns the kind at a row-major index. The caller must ensure idx is valid.
func (g *Grid) KindAt(idx int) Kind { return g.kinds[idx] }

// SetKind overwrites the kind of the cell at c. It does not enforce the
// single-Source/single-Goal rule; use PlaceEndpoint for that.
func (g *Grid) SetKind(c Coord, k Kind) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if !k.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	g.kinds[g.Index(c)] = k

	return nil
}

// PlaceEndpoint moves the Source or Goal to c: every existing cell of kind k
// becomes Clear, then c becomes k. Dropping an endpoint onto a Blocked cell is
// refused with ErrBlockedTarget. Dropping it onto the other endpoint replaces it.
// Complexity: O(W×H).
func (g *Grid) PlaceEndpoint(k Kind, c Coord) error {
	if !k.Endpoint() {
		return fmt.Errorf("%w: %s", ErrNotEndpoint, k)
	}
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	target := g.Index(c)
	if g.kinds[target] == Blocked {
		return fmt.Errorf("%w: %s", ErrBlockedTarget, c)
	}
	for i, existing := range g.kinds {
		if existing == k {
			g.kinds[i] = Clear
		}
	}
	g.kinds[target] = k

	return nil
}

// ClearBlocked turns every Blocked cell into Clear and returns how many changed.
// Complexity: O(W×H).
func (g *Grid) ClearBlocked() int {
	n := 0
	for i, k := range g.kinds {
		if k == Blocked {
			g.kinds[i] = Clear
			n++
		}
	}
	return n
}

// FindFirst scans in row-major order (y outer, x inner) and returns the first
// cell of kind k. Duplicates after the first match are ignored.
// Complexity: O(W×H) worst case.
func (g *Grid) FindFirst(k Kind) (Coord, bool) {
	for i, existing := range g.kinds {
		if existing == k {
			return g.Coordinate(i), true
		}
	}
	return Coord{}, false
}

// Count returns the number of cells of kind k.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, existing := range g.kinds {
		if existing == k {
			n++
		}
	}
	return n
}

// Cells calls fn for every cell in row-major order until fn returns false.
func (g *Grid) Cells(fn func(c Coord, k Kind) bool) {
	for i, k := range g.kinds {
		if !fn(g.Coordinate(i), k) {
			return
		}
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	kinds := make([]Kind, len(g.kinds))
	copy(kinds, g.kinds)

	return &Grid{width: g.width, height: g.height, kinds: kinds}
}
