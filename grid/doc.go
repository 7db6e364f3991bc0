// Package grid models the fixed-size 2D board the pathfinding engine searches.
//
// What:
//
//   - Grid holds Width×Height cells, each with a static Kind:
//     Clear, Blocked, Source or Goal.
//   - Cells are addressed by Coord{X, Y} or by row-major index (y*Width + x).
//   - Directions(Conn4|Conn8) yields neighbour offsets in a fixed expansion order.
//   - Parse/Format convert to and from a text layout ('.', '#', 'S', 'G').
//
// Why:
//
//   - The grid is created once and reused across search runs; only kinds
//     change between runs (walls painted, endpoints dragged).
//   - Search bookkeeping (costs, parents, settled flags) is kept outside the
//     grid so that rendering and input code cannot mutate it.
//
// Complexity:
//
//   - New, Parse, Format, FindFirst, ClearBlocked, PlaceEndpoint: O(W×H).
//   - Kind, SetKind, InBounds, Index, Coordinate: O(1).
//
// Errors:
//
//   - ErrEmptyGrid:      non-positive dimension or empty layout.
//   - ErrNonRectangular: layout rows of differing lengths.
//   - ErrOutOfBounds:    coordinate outside the grid.
//   - ErrUnknownKind:    invalid Kind value.
//   - ErrUnknownGlyph:   layout character other than '.', '#', 'S', 'G'.
//   - ErrBlockedTarget:  endpoint dropped onto a Blocked cell.
//   - ErrNotEndpoint:    PlaceEndpoint called with Clear or Blocked.
package grid
