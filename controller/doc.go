// Package controller runs the search engine through an interactive lifecycle.
//
// What:
//
//	A Controller owns a grid.Grid and a search.State and moves between
//
//	  Idle ──Start──▶ Running ◀─PauseToggle─▶ Paused
//	                     │
//	                   Tick…
//	                     ▼
//	               Finished(PathFound | NoPath)
//
//	Cancel returns any state to Idle. Start from Finished begins a new run.
//
// Why:
//
//   - A UI ticker advances the search one action per Tick, so every
//     intermediate frontier can be drawn.
//   - Edits and reconfiguration are refused while a run is active, which keeps
//     the grid and the search state consistent without locks.
//
// Each run gets a short random ID used in log lines and observer events.
// Observers (see metrics.Collector) are called synchronously.
//
// Errors:
//
//   - ErrRunActive, ErrNotRunning   command not valid in the current state.
//   - ErrBadSettings, ErrOccupied   rejected configuration or edit.
//   - search.ErrNoSource/ErrNoGoal  returned by Start; the controller stays Idle.
//   - ErrRunAborted                 wraps an engine invariant violation; the run is dropped.
package controller
