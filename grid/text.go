package grid

import (
	"fmt"
	"strings"
)

// Layout glyphs used by Parse and Format.
const (
	GlyphClear   = '.'
	GlyphBlocked = '#'
	GlyphSource  = 'S'
	GlyphGoal    = 'G'
)

var glyphKinds = map[rune]Kind{
	GlyphClear:   Clear,
	GlyphBlocked: Blocked,
	GlyphSource:  Source,
	GlyphGoal:    Goal,
}

// Glyph returns the layout character for k.
func (k Kind) Glyph() rune {
	switch k {
	case Blocked:
		return GlyphBlocked
	case Source:
		return GlyphSource
	case Goal:
		return GlyphGoal
	default:
		return GlyphClear
	}
}

// Parse builds a grid from a text layout: one line per row, top row first
// (Y = line number), one glyph per column. Blank lines and surrounding
// whitespace on each line are ignored, so layouts can be written as indented
// raw strings.
//
// Duplicate Source or Goal glyphs are accepted; the search uses the first in
// row-major order.
func Parse(text string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	return From2D(rows)
}

// From2D builds a grid from pre-split rows of glyphs.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrUnknownGlyph.
// Complexity: O(W×H).
func From2D(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len([]rune(rows[0]))
	g, err := New(w, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(runes), w)
		}
		for x, r := range runes {
			k, ok := glyphKinds[r]
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownGlyph, r, x, y)
			}
			g.kinds[y*w+x] = k
		}
	}

	return g, nil
}

// Format renders the grid as a text layout accepted by Parse, with a trailing newline.
func (g *Grid) Format() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.kinds[y*g.width+x].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
