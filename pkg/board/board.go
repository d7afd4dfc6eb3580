// Package board binds a layout engine to persistent storage.
//
// A [Board] is a named dashboard. It owns a [grid.Engine], serializes every
// caller through a mutex and, after each mutation that changed the layout,
// saves a snapshot to its [store.Store]. Saving is best-effort: failures are
// logged and reported through the observability hooks, but the mutation
// itself has already committed and is never rolled back or reported as
// failed.
package board

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/observability"
	"github.com/matzehuels/gridboard/pkg/snapshot"
	"github.com/matzehuels/gridboard/pkg/store"
)

// Board is a persisted dashboard. It is safe for concurrent use.
type Board struct {
	mu     sync.Mutex
	name   string
	engine *grid.Engine
	store  store.Store
	key    string
	logger *log.Logger
}

// Options configures a [Board]. Nil fields get defaults: a push-policy
// engine with the built-in kinds, a [store.NullStore], the default keyer and
// log.Default().
type Options struct {
	Name   string
	Engine *grid.Engine
	Store  store.Store
	Keyer  store.Keyer
	Logger *log.Logger
}

// New creates a board. Call [Board.Open] to load its saved layout.
func New(o Options) (*Board, error) {
	if err := errors.ValidateBoardName(o.Name); err != nil {
		return nil, err
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Engine == nil {
		cfg := grid.DefaultConfig()
		o.Engine = grid.NewEngine(cfg, nil, cfg.MinCols, grid.WithLogger(o.Logger))
	}
	if o.Store == nil {
		o.Store = store.NewNullStore()
	}
	if o.Keyer == nil {
		o.Keyer = store.NewDefaultKeyer()
	}
	return &Board{
		name:   o.Name,
		engine: o.Engine,
		store:  o.Store,
		key:    o.Keyer.LayoutKey(o.Name),
		logger: o.Logger.With("board", o.Name),
	}, nil
}

// Name returns the board name.
func (b *Board) Name() string { return b.name }

// Key returns the storage key of the board's layout.
func (b *Board) Key() string { return b.key }

// =============================================================================
// Loading
// =============================================================================

// Open loads the saved layout. A missing layout leaves the board empty. An
// unreadable or invalid layout is logged and ignored so a corrupt blob never
// prevents the dashboard from starting; only a storage failure is returned.
func (b *Board) Open(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok, err := b.store.Get(ctx, b.key)
	observability.Store().OnLoad(ctx, b.key, ok, len(data), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "load board %s", b.name)
	}
	if !ok {
		b.logger.Debug("no saved layout")
		return nil
	}

	doc, err := snapshot.Unmarshal(data)
	if err != nil {
		b.logger.Warn("ignoring unreadable saved layout", "err", err)
		return nil
	}
	if err := b.restore(doc); err != nil {
		b.logger.Warn("ignoring invalid saved layout", "err", err)
		return nil
	}
	b.logger.Info("loaded layout", "widgets", b.engine.Len(), "cols", b.engine.Cols())
	return nil
}

// restore installs doc at its recorded column count. Documents that do not
// record one (version 0) are restored on a grid wide enough for every item
// and then reflowed to the current count. On failure the previous layout is
// reinstated.
func (b *Board) restore(doc snapshot.Document) error {
	e := b.engine
	want := e.Cols()
	items := doc.GridItems()

	cols := doc.Cols
	if cols == 0 {
		cols = want
		for _, it := range items {
			cols = max(cols, it.X+it.W)
		}
	}
	prev := e.Snapshot()
	if _, err := e.Reflow(cols); err != nil {
		return err
	}
	if err := e.Restore(items); err != nil {
		b.rollback(want, prev)
		return err
	}
	if doc.Cols == 0 && e.Cols() != want {
		if _, err := e.Reflow(want); err != nil {
			b.rollback(want, prev)
			return err
		}
	}
	return nil
}

// =============================================================================
// Reading
// =============================================================================

// Snapshot returns the current items.
func (b *Board) Snapshot() []grid.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.engine.Snapshot()
}

// Document returns the current layout as a snapshot document.
func (b *Board) Document() snapshot.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.document()
}

func (b *Board) document() snapshot.Document {
	return snapshot.FromItems(b.engine.Cols(), b.engine.Policy().Name(), b.engine.Snapshot())
}

// Cols returns the current column count.
func (b *Board) Cols() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.engine.Cols()
}

// Kinds returns the widget kinds the board accepts.
func (b *Board) Kinds() []grid.Kind {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.engine.Kinds().Kinds()
}

// Config returns the grid geometry.
func (b *Board) Config() grid.Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.engine.Config()
}

// SetPolicy replaces the conflict resolution policy used by Move, Resize
// and gestures.
func (b *Board) SetPolicy(p grid.Policy) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine.SetPolicy(p)
}

// View runs fn with the engine under the board lock. fn must not mutate
// the engine.
func (b *Board) View(fn func(e *grid.Engine)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b.engine)
}

// =============================================================================
// Mutations
// =============================================================================

// Edit runs fn with the engine under the board lock and saves the layout
// if fn changed it. Use it to drive gestures, which span several engine
// calls.
func (b *Board) Edit(ctx context.Context, op string, fn func(e *grid.Engine) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mutate(ctx, op, func() error { return fn(b.engine) })
}

// Add places a widget. An empty id is replaced by a generated one.
func (b *Board) Add(ctx context.Context, id, kind string, pos *grid.Point) (grid.Item, error) {
	if id == "" {
		id = NewWidgetID(kind)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var it grid.Item
	err := b.mutate(ctx, "add", func() error {
		var err error
		it, err = b.engine.Add(id, kind, pos)
		return err
	})
	return it, err
}

// Remove deletes a widget.
func (b *Board) Remove(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mutate(ctx, "remove", func() error { return b.engine.Remove(id) })
}

// Move moves a widget, resolving conflicts with the engine's policy.
func (b *Board) Move(ctx context.Context, id string, x, y int) (grid.Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out grid.Outcome
	err := b.mutate(ctx, "move", func() error {
		var err error
		out, err = b.engine.Move(id, x, y)
		return err
	})
	return out, err
}

// Resize resizes a widget by dragging its d edge.
func (b *Board) Resize(ctx context.Context, id string, d grid.Direction, w, h int) (grid.Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out grid.Outcome
	err := b.mutate(ctx, "resize", func() error {
		var err error
		out, err = b.engine.Resize(id, d, w, h)
		return err
	})
	return out, err
}

// SetPosition moves a widget to a free position without displacing others.
func (b *Board) SetPosition(ctx context.Context, id string, x, y int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mutate(ctx, "set position", func() error { return b.engine.SetPosition(id, x, y) })
}

// SetSize resizes a widget in place without displacing others.
func (b *Board) SetSize(ctx context.Context, id string, w, h int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mutate(ctx, "set size", func() error { return b.engine.SetSize(id, w, h) })
}

// Reflow changes the column count and reports the count in effect.
func (b *Board) Reflow(ctx context.Context, cols int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var got int
	err := b.mutate(ctx, "reflow", func() error {
		var err error
		got, err = b.engine.Reflow(cols)
		return err
	})
	return got, err
}

// ReflowWidth reflows to the column count for a container width in pixels.
func (b *Board) ReflowWidth(ctx context.Context, width int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var got int
	err := b.mutate(ctx, "reflow", func() error {
		var err error
		got, err = b.engine.ReflowWidth(width)
		return err
	})
	return got, err
}

// Import replaces the layout with doc. The batch is validated as a whole;
// version 0 documents are migrated the same way [Board.Open] does.
func (b *Board) Import(ctx context.Context, doc snapshot.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mutate(ctx, "import", func() error { return b.restore(doc) })
}

// rollback reinstates a layout that was valid at cols.
func (b *Board) rollback(cols int, items []grid.Item) {
	if err := b.engine.Restore(nil); err != nil {
		b.logger.Error("rollback failed", "err", err)
		return
	}
	if _, err := b.engine.Reflow(cols); err != nil {
		b.logger.Error("rollback failed", "err", err)
		return
	}
	if err := b.engine.Restore(items); err != nil {
		b.logger.Error("rollback failed", "err", err)
	}
}

// Reset removes every widget and deletes the saved layout.
func (b *Board) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	if err := b.engine.Reset(); err != nil {
		b.rejected(ctx, "reset", err)
		return err
	}
	observability.Layout().OnCommit(ctx, b.name, "reset", 0, time.Since(start))
	if err := b.store.Delete(ctx, b.key); err != nil {
		b.logger.Warn("failed to delete saved layout", "err", err)
		observability.Store().OnSaveError(ctx, b.key, err)
	}
	b.logger.Info("layout reset")
	return nil
}

// Seed adds one widget of each kind, in order, to an empty board. Use
// [grid.DefaultSeed] for the default dashboard.
func (b *Board) Seed(ctx context.Context, kinds []string) ([]grid.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := b.engine.Len(); n > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "board %s already has %d widgets", b.name, n)
	}
	var added []grid.Item
	err := b.mutate(ctx, "seed", func() error {
		for _, k := range kinds {
			it, err := b.engine.Add(NewWidgetID(k), k, nil)
			if err != nil {
				return err
			}
			added = append(added, it)
		}
		return nil
	})
	if err != nil {
		// Keep the board all-or-nothing.
		if rerr := b.engine.Reset(); rerr != nil {
			b.logger.Error("rollback failed", "op", "seed", "err", rerr)
		}
		return nil, err
	}
	return added, nil
}

// Save writes the current layout regardless of whether it changed.
func (b *Board) Save(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save(ctx)
}

// Close closes the board's store.
func (b *Board) Close() error {
	return b.store.Close()
}

// mutate runs fn, reports the outcome to the hooks and saves if the layout
// changed. The caller holds b.mu.
func (b *Board) mutate(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	before, cols := b.engine.Snapshot(), b.engine.Cols()

	if err := fn(); err != nil {
		b.rejected(ctx, op, err)
		return err
	}
	observability.Layout().OnCommit(ctx, b.name, op, b.engine.Len(), time.Since(start))

	if cols == b.engine.Cols() && slices.Equal(before, b.engine.Snapshot()) {
		return nil
	}
	if err := b.save(ctx); err != nil {
		b.logger.Warn("failed to save layout", "op", op, "err", err)
	}
	return nil
}

func (b *Board) rejected(ctx context.Context, op string, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	observability.Layout().OnReject(ctx, b.name, op, code)
}

func (b *Board) save(ctx context.Context) error {
	start := time.Now()
	doc := b.document()
	doc.UpdatedAt = start.UTC()

	data, err := snapshot.Marshal(doc)
	if err != nil {
		observability.Store().OnSaveError(ctx, b.key, err)
		return err
	}
	if err := b.store.Set(ctx, b.key, data, 0); err != nil {
		observability.Store().OnSaveError(ctx, b.key, err)
		return errors.Wrap(errors.ErrCodeStorage, err, "save board %s", b.name)
	}
	observability.Store().OnSave(ctx, b.key, len(data), time.Since(start))
	b.logger.Debug("saved layout", "bytes", len(data))
	return nil
}

// NewWidgetID returns a unique widget id prefixed by the kind name.
func NewWidgetID(kind string) string {
	if kind == "" {
		kind = "widget"
	}
	return fmt.Sprintf("%s-%s", kind, uuid.NewString())
}
