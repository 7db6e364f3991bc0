package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

// benchRun measures complete searches over a randomly walled n×n grid.
func benchRun(b *testing.B, n int, opts ...search.Option) {
	rng := rand.New(rand.NewSource(42))
	g := randomGrid(rng, n, n, 0.2)
	st, err := search.NewState(g, opts...)
	if err != nil {
		b.Fatalf("setup NewState failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := search.Run(context.Background(), st); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

// BenchmarkRun_UniformCost_List_50 is the default 50×50 grid with the linear-scan frontier.
// Complexity: O(V²)
func BenchmarkRun_UniformCost_List_50(b *testing.B) {
	benchRun(b, 50, search.WithDiagonal(true))
}

// BenchmarkRun_UniformCost_Heap_50 is the same search with the heap frontier.
// Complexity: O(V log V)
func BenchmarkRun_UniformCost_Heap_50(b *testing.B) {
	benchRun(b, 50, search.WithDiagonal(true), search.WithFrontier(search.FrontierHeap))
}

// BenchmarkRun_AStar_Heap_200 measures weighted A* on a larger grid.
func BenchmarkRun_AStar_Heap_200(b *testing.B) {
	benchRun(b, 200, search.WithDiagonal(true), search.WithWeightedAStar(1), search.WithFrontier(search.FrontierHeap))
}

// BenchmarkStep measures single steps, re-seeding whenever a run ends.
func BenchmarkStep(b *testing.B) {
	g, _ := grid.New(100, 100)
	_ = g.SetKind(grid.Coord{X: 0, Y: 0}, grid.Source)
	_ = g.SetKind(grid.Coord{X: 99, Y: 99}, grid.Goal)
	st, _ := search.NewState(g, search.WithDiagonal(true), search.WithFrontier(search.FrontierHeap))
	_ = st.Seed()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if st.Status().Terminal() {
			b.StopTimer()
			_ = st.Seed()
			b.StartTimer()
		}
		if _, err := st.Step(); err != nil {
			b.Fatalf("Step failed: %v", err)
		}
	}
}
