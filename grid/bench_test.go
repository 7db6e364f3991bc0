package grid_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/pathviz/grid"
)

// BenchmarkFindFirst measures a worst-case row-major scan on a 1000×1000 grid
// whose only Goal sits in the last cell.
// Complexity: O(W×H)
func BenchmarkFindFirst(b *testing.B) {
	const n = 1000
	g, err := grid.New(n, n)
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	_ = g.SetKind(grid.Coord{X: n - 1, Y: n - 1}, grid.Goal)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.FindFirst(grid.Goal)
	}
}

// BenchmarkClearBlocked measures wall clearing on a randomly walled 500×500 grid.
func BenchmarkClearBlocked(b *testing.B) {
	const n = 500
	rng := rand.New(rand.NewSource(42))
	base, _ := grid.New(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if rng.Intn(3) == 0 {
				_ = base.SetKind(grid.Coord{X: x, Y: y}, grid.Blocked)
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		g := base.Clone()
		b.StartTimer()
		_ = g.ClearBlocked()
	}
}
