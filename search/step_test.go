package search_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// ------------------------------------------------------------------------
// 1. Scenario Tests: fixed layouts with hand-checked costs.
// ------------------------------------------------------------------------

func TestRun_Scenarios(t *testing.T) {
	cases := []struct {
		name    string
		layout  string
		opts    []search.Option
		found   bool
		cost    int64
		pathLen int
	}{
		{
			name: "OpenOrthogonal",
			layout: `
				S....
				.....
				.....
				.....
				....G`,
			found: true, cost: 80, pathLen: 9,
		},
		{
			name: "OpenDiagonal",
			layout: `
				S....
				.....
				.....
				.....
				....G`,
			opts:  []search.Option{search.WithDiagonal(true)},
			found: true, cost: 56, pathLen: 5,
		},
		{
			name: "WallDetour",
			layout: `
				S.#.G
				..#..
				..#..
				..#..
				.....`,
			opts:  []search.Option{search.WithDiagonal(true)},
			found: true, cost: 96,
		},
		{
			name:   "SqueezeRefused",
			layout: "S#\n#G",
			opts:   []search.Option{search.WithDiagonal(true)},
			found:  false,
		},
		{
			name:   "SqueezeAllowed",
			layout: "S#\n#G",
			opts:   []search.Option{search.WithDiagonal(true), search.WithCornerCutting(true)},
			found:  true, cost: 14, pathLen: 2,
		},
		{
			name:   "OneCornerOpen",
			layout: "S#\n.G",
			opts:   []search.Option{search.WithDiagonal(true)},
			found:  true, cost: 14, pathLen: 2,
		},
		{
			name: "DiagonalLeakSealed",
			layout: `
				S#..
				#G#.
				.#..
				....`,
			opts:  []search.Option{search.WithDiagonal(true)},
			found: false,
		},
		{
			name: "EnclosedGoal",
			layout: `
				S......
				..###..
				..#G#..
				..###..`,
			opts:  []search.Option{search.WithDiagonal(true), search.WithCornerCutting(true)},
			found: false,
		},
		{
			name:   "NoDiagonalNoWay",
			layout: "S#\n#G",
			found:  false,
		},
	}

	for _, tc := range cases {
		for _, fk := range []search.FrontierKind{search.FrontierList, search.FrontierHeap} {
			t.Run(tc.name+"/"+fk.String(), func(t *testing.T) {
				opts := append([]search.Option{search.WithFrontier(fk)}, tc.opts...)
				_, res := settleOrder(t, mustParse(t, tc.layout), opts...)
				require.Equal(t, tc.found, res.Found)
				if !tc.found {
					assert.Zero(t, res.Path.Len())
					return
				}
				assert.Equal(t, tc.cost, res.Path.Cost)
				if tc.pathLen > 0 {
					assert.Equal(t, tc.pathLen, res.Path.Len())
				}
			})
		}
	}
}

// ------------------------------------------------------------------------
// 2. Step Tests: ordering, results and preconditions.
// ------------------------------------------------------------------------

func TestStep_WavefrontOrder(t *testing.T) {
	layout := `
		G..
		.S.
		...`
	want := []grid.Coord{
		{X: 1, Y: 1},
		{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1},
		{X: 2, Y: 2}, {X: 0, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 0},
	}
	for _, fk := range []search.FrontierKind{search.FrontierList, search.FrontierHeap} {
		order, res := settleOrder(t, mustParse(t, layout), search.WithFrontier(fk))
		assert.Equal(t, want, order, fk.String())
		assert.Equal(t, len(want), res.Steps)
		assert.Equal(t, int64(20), res.Path.Cost)
	}
}

func TestStep_FirstResult(t *testing.T) {
	st := mustState(t, mustParse(t, "G..\n.S.\n..."))
	require.NoError(t, st.Seed())

	res, err := st.Step()
	require.NoError(t, err)
	ring := []grid.Coord{{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	assert.Equal(t, grid.Coord{X: 1, Y: 1}, res.Settled)
	assert.Equal(t, ring, res.Discovered)
	assert.Equal(t, ring, res.Relaxed)
	assert.Equal(t, 4, res.OpenLen)
	assert.Equal(t, search.StatusSearching, res.Status)
	for _, c := range ring {
		assert.Equal(t, int64(10), st.GCost(c))
		p, ok := st.Parent(c)
		require.True(t, ok)
		assert.Equal(t, grid.Coord{X: 1, Y: 1}, p)
	}
}

func TestStep_ExhaustionThenFrontierEmpty(t *testing.T) {
	st := mustState(t, mustParse(t, "S#G"))
	require.NoError(t, st.Seed())

	res, err := st.Step()
	require.NoError(t, err)
	assert.Equal(t, search.StatusExhausted, res.Status)
	assert.Empty(t, res.Discovered)
	assert.True(t, st.Exhausted())

	_, err = st.Step()
	assert.ErrorIs(t, err, search.ErrFrontierEmpty)
}

func TestStep_NotSeeded(t *testing.T) {
	st := mustState(t, mustParse(t, "S.G"))
	_, err := st.Step()
	assert.ErrorIs(t, err, search.ErrNotSeeded)
}

func TestStep_ReseedRestartsFromScratch(t *testing.T) {
	g := mustParse(t, "S...G")
	st := mustState(t, g)
	require.NoError(t, st.Seed())
	for !st.Status().Terminal() {
		_, err := st.Step()
		require.NoError(t, err)
	}
	first := st.SettledCount()

	require.NoError(t, st.Seed())
	assert.Zero(t, st.SettledCount())
	assert.Equal(t, 1, st.OpenLen())
	for !st.Status().Terminal() {
		_, err := st.Step()
		require.NoError(t, err)
	}
	assert.Equal(t, first, st.SettledCount())
}

// ------------------------------------------------------------------------
// 3. Invariant Tests observed through hooks.
// ------------------------------------------------------------------------

func TestInvariants_HooksOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		g := randomGrid(rng, 14, 10, 0.3)
		for _, algo := range []search.Option{search.WithUniformCost(), search.WithWeightedAStar(1.5)} {
			var st *search.State
			seen := map[grid.Coord]bool{}
			var settledG []int64

			st = mustState(t, g, algo, search.WithDiagonal(true),
				search.WithOnSettle(func(c grid.Coord) {
					assert.False(t, seen[c], "%s settled twice", c)
					assert.False(t, st.InOpen(c), "%s still open after settle", c)
					seen[c] = true
					settledG = append(settledG, st.GCost(c))
				}),
				search.WithOnDiscover(func(c grid.Coord) {
					assert.False(t, st.Settled(c), "settled %s rediscovered", c)
				}),
				search.WithOnRelax(func(c grid.Coord, old, new int64) {
					assert.Less(t, new, old, "relaxation of %s must lower the cost", c)
					assert.False(t, st.Settled(c), "settled %s relaxed", c)
				}),
			)
			require.NoError(t, st.Seed())
			for !st.Status().Terminal() {
				_, err := st.Step()
				require.NoError(t, err)
			}

			if st.Options().Algorithm.Kind() == search.KindUniformCost {
				for j := 1; j < len(settledG); j++ {
					assert.LessOrEqual(t, settledG[j-1], settledG[j], "uniform cost settles in gCost order")
				}
			}
			assertParentTree(t, st)
		}
	}
}

// assertParentTree checks that every settled cell's parent chain reaches the
// Source without a cycle and that each link costs exactly one move.
func assertParentTree(t *testing.T, st *search.State) {
	t.Helper()
	src, ok := st.Source()
	require.True(t, ok)
	n := st.Grid().Len()

	st.Cells(func(c search.Cell) bool {
		if !c.Settled || c.Coord == src {
			return true
		}
		require.True(t, c.HasParent, "settled %s has no parent", c.Coord)
		p := c.Parent
		step := search.OrthogonalCost
		if p.X != c.Coord.X && p.Y != c.Coord.Y {
			step = search.DiagonalCost
		}
		assert.Equal(t, st.GCost(p)+step, c.GCost, "edge %s→%s", p, c.Coord)

		cur, hops := c.Coord, 0
		for cur != src {
			next, ok := st.Parent(cur)
			require.True(t, ok)
			cur = next
			hops++
			require.Less(t, hops, n, "cycle above %s", c.Coord)
		}
		return true
	})
}

// ------------------------------------------------------------------------
// 4. Optimality and equivalence properties.
// ------------------------------------------------------------------------

func TestUniformCost_MatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	modes := []struct{ diagonal, cutting bool }{{false, false}, {true, false}, {true, true}}
	for i := 0; i < 40; i++ {
		g := randomGrid(rng, 12, 9, 0.28)
		for _, m := range modes {
			want := oracleCost(g, m.diagonal, m.cutting)
			_, res := settleOrder(t, g, search.WithDiagonal(m.diagonal), search.WithCornerCutting(m.cutting))
			if want < 0 {
				assert.False(t, res.Found, "grid %d mode %+v", i, m)
				continue
			}
			require.True(t, res.Found, "grid %d mode %+v\n%s", i, m, g.Format())
			assert.Equal(t, want, res.Path.Cost, "grid %d mode %+v", i, m)
		}
	}
}

func TestAStar_UnitWeightOrthogonalIsOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 40; i++ {
		g := randomGrid(rng, 15, 11, 0.25)
		_, uc := settleOrder(t, g)
		_, as := settleOrder(t, g, search.WithWeightedAStar(1))
		require.Equal(t, uc.Found, as.Found)
		assert.Equal(t, uc.Path.Cost, as.Path.Cost, "grid %d", i)
		assert.LessOrEqual(t, as.Settled, uc.Settled, "grid %d", i)
	}
}

func TestAStar_NeverBeatsUniformCost(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 30; i++ {
		g := randomGrid(rng, 15, 11, 0.25)
		_, uc := settleOrder(t, g, search.WithDiagonal(true))
		for _, w := range []float64{1, 2, 5} {
			_, as := settleOrder(t, g, search.WithDiagonal(true), search.WithWeightedAStar(w))
			require.Equal(t, uc.Found, as.Found)
			assert.GreaterOrEqual(t, as.Path.Cost, uc.Path.Cost, "grid %d weight %v", i, w)
		}
	}
}

func TestAStar_ZeroWeightSettlesLikeUniformCost(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 15; i++ {
		g := randomGrid(rng, 10, 10, 0.2)
		ucOrder, _ := settleOrder(t, g, search.WithDiagonal(true))
		asOrder, _ := settleOrder(t, g, search.WithDiagonal(true), search.WithWeightedAStar(0))
		assert.Equal(t, ucOrder, asOrder, "grid %d", i)
	}
}

func TestAStar_FocusesTheSearch(t *testing.T) {
	layout := `
		.........
		.........
		.........
		.........
		S.......G
		.........
		.........
		.........
		.........`
	_, uc := settleOrder(t, mustParse(t, layout))
	_, as := settleOrder(t, mustParse(t, layout), search.WithWeightedAStar(1))
	require.True(t, as.Found)
	assert.Equal(t, int64(80), as.Path.Cost)
	assert.Less(t, as.Settled, uc.Settled)
}

func TestFrontiers_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 20; i++ {
		g := randomGrid(rng, 13, 13, 0.3)
		for _, w := range []float64{-1, 1, 3} {
			opts := []search.Option{search.WithDiagonal(true)}
			if w >= 0 {
				opts = append(opts, search.WithWeightedAStar(w))
			}
			listOrder, listRes := settleOrder(t, g, append(opts, search.WithFrontier(search.FrontierList))...)
			heapOrder, heapRes := settleOrder(t, g, append(opts, search.WithFrontier(search.FrontierHeap))...)
			assert.Equal(t, listOrder, heapOrder, "grid %d weight %v", i, w)
			assert.Equal(t, listRes, heapRes)

			again, _ := settleOrder(t, g, append(opts, search.WithFrontier(search.FrontierList))...)
			assert.Equal(t, listOrder, again, "repeat run must settle identically")
		}
	}
}
