package main

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/pathviz/controller"
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// Overlay glyphs for search progress. Kinds use the grid layout glyphs.
const (
	glyphPath    = '*'
	glyphSettled = ':'
	glyphOpen    = '+'
)

// cellGlyph picks the character for one cell: endpoints and walls first,
// then path, settled, open, clear.
func cellGlyph(v controller.CellView) rune {
	switch {
	case v.Kind != grid.Clear:
		return v.Kind.Glyph()
	case v.OnPath:
		return glyphPath
	case v.Settled:
		return glyphSettled
	case v.Open:
		return glyphOpen
	default:
		return v.Kind.Glyph()
	}
}

// costLabel formats a gCost for a cell of the given width: "-" when
// unreached, "#" fill when the number does not fit.
func costLabel(v controller.CellView, width int) string {
	if !v.Reached {
		return fmt.Sprintf("%*s", width, "-")
	}
	s := fmt.Sprintf("%d", v.GCost)
	if len(s) > width {
		return strings.Repeat("#", width)
	}
	return fmt.Sprintf("%*s", width, s)
}

// renderOverlay draws the snapshot as text, one row per line.
func renderOverlay(snap controller.Snapshot) string {
	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			b.WriteRune(cellGlyph(snap.At(grid.Coord{X: x, Y: y})))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderCosts draws the gCost of every cell in columns of width 5.
func renderCosts(snap controller.Snapshot) string {
	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			b.WriteString(costLabel(snap.At(grid.Coord{X: x, Y: y}), 5))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// summary is the one-paragraph result printed after a headless run.
func summary(snap controller.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "algorithm: %s  diagonal: %v  corner-cutting: %v  frontier: %s\n",
		snap.Settings.Algorithm, snap.Settings.AllowDiagonal,
		snap.Settings.AllowCornerCutting, snap.Settings.Frontier)
	fmt.Fprintf(&b, "steps: %d  settled: %d  open: %d\n", snap.Steps, snap.Settled, snap.OpenLen)
	switch snap.Outcome {
	case controller.OutcomePathFound:
		fmt.Fprintf(&b, "path: %d cells, cost %d (%s moves)\n", snap.Path.Len(), snap.Path.Cost, formatCost(snap.Path.Cost))
	case controller.OutcomeNoPath:
		b.WriteString("no path\n")
	}
	return b.String()
}

// formatCost prints a cost in cells with one decimal, e.g. 68 → "6.8".
func formatCost(c int64) string {
	return fmt.Sprintf("%d.%d", c/search.OrthogonalCost, c%search.OrthogonalCost)
}
