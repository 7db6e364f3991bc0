package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/grid"
)

func TestFrontier_TieOrder(t *testing.T) {
	keys := []float64{5, 3, 3, 7, 3, 1, 1}
	key := func(idx int) float64 { return keys[idx] }
	want := []int{5, 6, 1, 2, 4, 0, 3}

	for _, kind := range []FrontierKind{FrontierList, FrontierHeap} {
		f := newFrontier(kind, len(keys), key)
		for i := range keys {
			f.Push(i)
		}
		require.Equal(t, len(keys), f.Len())
		assert.True(t, f.Contains(3))

		var got []int
		for f.Len() > 0 {
			got = append(got, f.PopMin())
		}
		assert.Equal(t, want, got, kind.String())
		assert.False(t, f.Contains(3))
	}
}

func TestFrontier_UpdateAfterDecrease(t *testing.T) {
	keys := []float64{4, 5, 6}
	key := func(idx int) float64 { return keys[idx] }

	for _, kind := range []FrontierKind{FrontierList, FrontierHeap} {
		f := newFrontier(kind, len(keys), key)
		f.Push(0)
		f.Push(1)
		f.Push(2)
		keys[2] = 4
		f.Update(2)
		assert.Equal(t, 0, f.PopMin(), "equal keys go to the earlier insertion")
		assert.Equal(t, 2, f.PopMin(), kind.String())
		keys[2] = 6
	}
}

func TestFrontier_Clear(t *testing.T) {
	for _, kind := range []FrontierKind{FrontierList, FrontierHeap} {
		f := newFrontier(kind, 4, func(int) float64 { return 0 })
		f.Push(1)
		f.Push(3)
		f.Clear()
		assert.Zero(t, f.Len())
		assert.False(t, f.Contains(1))
		assert.False(t, f.Contains(3))
		f.Push(3)
		assert.Equal(t, 3, f.PopMin())
	}
}

func TestReconstruct_BrokenChain(t *testing.T) {
	g, err := grid.Parse("S..G")
	require.NoError(t, err)
	st, err := NewState(g)
	require.NoError(t, err)
	_, err = Run(context.Background(), st)
	require.NoError(t, err)

	// Orphan the middle of the chain.
	st.parent[2] = -1
	_, err = st.Reconstruct()
	assert.ErrorIs(t, err, ErrBrokenParentChain)

	// Loop two cells onto each other.
	st.parent[2] = 1
	st.parent[1] = 2
	_, err = st.Reconstruct()
	assert.ErrorIs(t, err, ErrBrokenParentChain)
}

func TestStep_SettledInFrontier(t *testing.T) {
	g, err := grid.Parse("S..G")
	require.NoError(t, err)
	st, err := NewState(g)
	require.NoError(t, err)
	require.NoError(t, st.Seed())
	_, err = st.Step()
	require.NoError(t, err)

	// Force the already settled source back into the open set ahead of everything.
	st.open.Clear()
	st.open.Push(0)
	_, err = st.Step()
	assert.ErrorIs(t, err, ErrSettledInFrontier)
}
