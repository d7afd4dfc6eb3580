// Package pkg provides the core libraries for Gridboard dashboard layouts.
//
// # Overview
//
// Gridboard keeps a dashboard of widgets on a column grid where no two
// widgets ever overlap. Moves and resizes that would collide are resolved by
// pushing or swapping neighbours, and the layout is compacted upward after
// every change. The pkg directory is organized into these areas:
//
//  1. [grid] - Layout engine (collision, push and arrange, compaction, reflow, gestures)
//  2. [snapshot] - Versioned JSON documents for saved layouts
//  3. [store] - Key-value backends (file, memory, Redis, MongoDB)
//  4. [board] - A named, persisted engine that is safe for concurrent use
//  5. [config] - TOML configuration for geometry, kinds and storage
//
// # Architecture
//
// The typical data flow for a mutation:
//
//	CLI / HTTP / TUI
//	       ↓
//	 [board] package (serialize callers, validate board name)
//	       ↓
//	 [grid] package (resolve collisions, compact, validate)
//	       ↓
//	 [snapshot] package (encode the committed layout)
//	       ↓
//	 [store] package (file, Redis or MongoDB)
//
// # Quick Start
//
//	cfg := grid.DefaultConfig()
//	engine := grid.NewEngine(cfg, nil, grid.ComputeColumns(1280, cfg))
//
//	s, _ := store.Open(ctx, store.Options{Backend: store.BackendMemory})
//	b, _ := board.New(board.Options{Name: "main", Engine: engine, Store: s})
//	_ = b.Open(ctx)
//
//	b.Add(ctx, "focus", "todays-focus", nil)
//	b.Add(ctx, "cash", "cash-flow", nil)
//	out, err := b.Move(ctx, "cash", 0, 0) // pushes "focus" out of the way
//
// # Main Packages
//
// [grid] - The engine owns a layout and is the only way to mutate it. Every
// operation either leaves the layout valid or leaves it unchanged. Conflicts
// are resolved by a [grid.Policy]: push (displace along the smallest overlap)
// or arrange (accept any drop and settle colliding widgets below it).
//
// [snapshot] - Documents carry a format version. Legacy bare item arrays are
// migrated on read; unknown future versions are rejected.
//
// [store] - All backends implement the same Get/Set/Delete interface.
// FileStore is the CLI default, Redis and MongoDB serve shared deployments.
//
// [board] - Saves after every committed change. Save failures are logged
// and reported through [observability] hooks, never returned.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/grid/...               # Specific package
//	go test -run Example ./pkg/grid      # Examples only
//
// The Redis and MongoDB store tests run only when GRIDBOARD_TEST_REDIS or
// GRIDBOARD_TEST_MONGO point at a live server.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/grid
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/snapshot
// [store]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/store
// [board]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/board
// [config]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/observability
package pkg
