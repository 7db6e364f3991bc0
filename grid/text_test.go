// File: grid/text_test.go
package grid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/grid"
)

// TestParse_Errors verifies Parse rejects empty, ragged and unknown layouts.
func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		text string
		err  error
	}{
		{"Empty", "", grid.ErrEmptyGrid},
		{"OnlyBlankLines", "\n \n\t\n", grid.ErrEmptyGrid},
		{"Ragged", "S..\n.G", grid.ErrNonRectangular},
		{"UnknownGlyph", "S.x\n..G", grid.ErrUnknownGlyph},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.Parse(tc.text)
			assert.True(t, errors.Is(err, tc.err), "Parse error = %v; want %v", err, tc.err)
		})
	}
}

// TestParse_Format_RoundTrip checks that Format reproduces the parsed layout.
func TestParse_Format_RoundTrip(t *testing.T) {
	layout := "S.#.\n.##.\n...G\n"
	g, err := grid.Parse(layout)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 3, g.Count(grid.Blocked))
	assert.Equal(t, layout, g.Format())

	k, err := g.Kind(grid.Coord{X: 3, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, grid.Goal, k)
}

// TestParse_IndentedRawString confirms leading indentation is ignored.
func TestParse_IndentedRawString(t *testing.T) {
	g, err := grid.Parse(`
		S..
		.#.
		..G
	`)
	require.NoError(t, err)
	assert.Equal(t, 9, g.Len())
	assert.Equal(t, "S..\n.#.\n..G\n", g.Format())
}
