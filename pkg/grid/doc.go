// Package grid implements the dashboard grid layout engine.
//
// Widgets are rectangles on a column grid. Positions and sizes are expressed
// in whole cells; the pixel projection lives in [GridToPixel] and never leaks
// into the layout algorithms.
//
// # Invariants
//
// Every [Layout] owned by an [Engine] satisfies, after every operation that
// reports success:
//
//   - No two items overlap (half-open rectangle intersection)
//   - Every item satisfies 0 <= x, x+w <= cols, 0 <= y
//
// Vertical space is unbounded: the grid behaves like an infinite canvas that
// grows downward.
//
// Operations are transactional. Conflict resolution runs on a clone of the
// layout; the clone is validated and swapped in only if the invariants hold.
// A rejected operation leaves the layout bit-for-bit unchanged.
//
// # Conflict Resolution
//
// Two [Policy] implementations decide what happens when a moved or resized
// widget lands on top of others:
//
//   - [PushPolicy] ("push"): breadth-first propagation of minimal axis-aligned
//     pushes. The move is rejected with MOVE_REJECTED if any push would leave
//     the grid.
//   - [ArrangePolicy] ("arrange"): the drop point always wins. Overlapping
//     widgets are settled downward and the layout is compacted upward.
//
// # Gestures
//
// The engine models pointer interactions as a small state machine
// (idle → dragging|resizing → idle). While a gesture is active only updates for
// that gesture are accepted; everything else fails with GESTURE_IN_PROGRESS.
//
//	e := grid.NewEngine(grid.DefaultConfig(), grid.DefaultRegistry(), 4)
//	e.Add("a", "cash-flow", nil)
//	e.BeginDrag("a")
//	e.UpdateDragTarget(2, 0)
//	outcome, err := e.EndDrag()
package grid
