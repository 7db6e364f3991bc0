// Package pathviz is a step-wise grid pathfinding engine with a terminal
// front end: watch Dijkstra (uniform-cost search) and weighted A* settle a
// grid one cell per step.
//
// What is in the box?
//
//	• Grids of Clear, Blocked, Source and Goal cells, text layouts ('.', '#', 'S', 'G')
//	• 4-way or 8-way moves (orthogonal 10, diagonal 14) with a corner-cutting policy
//	• A search you can step, inspect and reconstruct at any point
//	• A run controller: Idle → Running ⇄ Paused → Finished, with guarded edits
//	• YAML configuration, slog logging and Prometheus metrics
//	• A tcell viewer: paint walls and drag endpoints with the mouse
//
// Packages:
//
//	grid/        cell kinds, coordinates, connectivity, text layouts
//	search/      per-run search state, single-step engine, path reconstruction
//	controller/  run lifecycle, settings, snapshots and observers
//	config/      YAML loading, validation, grid construction
//	metrics/     Prometheus collector fed by controller events
//	cmd/pathviz  `run` (viewer), `solve` (headless), `config init|show`
//
// Quick ASCII example (Dijkstra, 4-way):
//
//	S:#:G        S = Source, G = Goal, # = wall
//	*:#:*        * = path, : = settled
//	*****        cost 8.0 (80)
//
// Headless:
//
//	pathviz solve --map maze.txt --algorithm astar --weight 1.5 --diagonal
package pathviz
