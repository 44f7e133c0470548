// Package layout implements a pure-Go flexbox and grid layout solver for terminal UIs.
//
// It supports row/column flex containers, explicit and auto-placed grid items,
// padding, border, margin, gap, min/max constraints, percentage and fixed
// dimensions, overflow (scroll/hidden) containers and leaf measurement.
//
// The main entry point is [Solve], which takes a flat [Tree] of nodes linked by
// parent index and returns one [Result] per node. The solver keeps no state
// between calls; callers rebuild the tree every frame.
package layout
