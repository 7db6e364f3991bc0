// Package search implements an incremental, step-wise shortest-path engine
// over a grid.Grid: uniform-cost search (Dijkstra) and weighted A*, with
// 4- or 8-directional moves and an optional corner-cutting policy.
//
// Unlike a batch shortest-path routine, the engine advances by exactly one
// settled cell per Step call so that a driver (a UI ticker, a test, a
// benchmark) can observe every intermediate frontier.
//
// Lifecycle:
//
//	st, _ := search.NewState(g, search.WithWeightedAStar(1), search.WithDiagonal(true))
//	_ = st.Seed()                      // Reset + place Source in the open set
//	for !st.Status().Terminal() {
//	    _, _ = st.Step()               // settle one cell, relax its neighbours
//	}
//	if st.GoalSettled() {
//	    path, _ := st.Reconstruct()    // walk parents Goal → Source
//	}
//
// Run wraps the same loop with context cancellation.
//
// Invariants:
//
//   - A cell in the open set is never settled; a settled cell never re-enters it.
//   - gCost only decreases, and only for unsettled cells.
//   - Settled cells' gCost, fCost and parent are frozen; the parent links of
//     settled cells form a tree rooted at the Source.
//   - Ties in the selection key go to the earliest-inserted open cell, so a
//     given grid and configuration always produce the same settle order,
//     whichever frontier implementation is used.
//
// Complexity:
//
//   - Time:  O(V²) with FrontierList (linear scan per selection),
//     O(V log V) with FrontierHeap, V = W×H.
//   - Space: O(V) for costs, parents, flags and the open set.
//
// Errors are sentinel values (see types.go) and are wrapped with context via
// fmt.Errorf("%w: …"); compare with errors.Is.
package search
