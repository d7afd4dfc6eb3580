package grid

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridboard/pkg/errors"
)

// Outcome describes a committed move or resize.
type Outcome struct {
	// Item is the moved or resized item after the commit.
	Item Item `json:"item"`

	// Displaced lists the other items whose rectangle changed.
	Displaced []string `json:"displaced,omitempty"`
}

// Engine owns a [Layout] and is the only way to mutate it. Every operation
// either leaves the layout valid or leaves it unchanged.
//
// An Engine is not safe for concurrent use; callers that share one across
// goroutines must serialize access.
type Engine struct {
	cfg     Config
	kinds   *Registry
	layout  *Layout
	policy  Policy
	logger  *log.Logger
	gesture gesture
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPolicy sets the conflict resolution policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

// NewEngine creates an engine with an empty layout of cols columns.
// If kinds is nil the default registry is used; a cols outside
// [MinCols, MaxCols] is clamped.
func NewEngine(cfg Config, kinds *Registry, cols int, opts ...Option) *Engine {
	if kinds == nil {
		kinds = DefaultRegistry()
	}
	e := &Engine{
		cfg:    cfg,
		kinds:  kinds,
		layout: NewLayout(clamp(cols, cfg.MinCols, cfg.MaxCols)),
		policy: PushPolicy{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the grid geometry.
func (e *Engine) Config() Config { return e.cfg }

// Kinds returns the widget kind registry.
func (e *Engine) Kinds() *Registry { return e.kinds }

// Cols returns the current column count.
func (e *Engine) Cols() int { return e.layout.cols }

// Len returns the number of placed widgets.
func (e *Engine) Len() int { return e.layout.Len() }

// Policy returns the active conflict resolution policy.
func (e *Engine) Policy() Policy { return e.policy }

// SetPolicy replaces the active conflict resolution policy.
func (e *Engine) SetPolicy(p Policy) {
	if p != nil {
		e.policy = p
	}
}

// Snapshot returns a copy of every item in insertion order.
func (e *Engine) Snapshot() []Item { return e.layout.Items() }

// Item returns the item with the given id.
func (e *Engine) Item(id string) (Item, bool) { return e.layout.Get(id) }

// Add places a new widget of the given kind at its default size.
//
// Adding an id that is already present returns the existing item and changes
// nothing. With pos nil the widget goes to the first free slot in row-major
// order; otherwise pos must be in bounds and free.
func (e *Engine) Add(id, kind string, pos *Point) (Item, error) {
	if err := e.idle("add"); err != nil {
		return Item{}, err
	}
	if existing, ok := e.layout.Get(id); ok {
		e.logger.Debug("widget already placed", "id", id)
		return existing, nil
	}
	if err := errors.ValidateWidgetID(id); err != nil {
		return Item{}, err
	}
	k, ok := e.kinds.Lookup(kind)
	if !ok {
		return Item{}, errors.New(errors.ErrCodeUnknownKind, "unknown widget kind %q", kind)
	}

	r := Rect{W: k.DefaultW, H: k.DefaultH}
	if pos != nil {
		r.X, r.Y = pos.X, pos.Y
		if !e.layout.IsFree(r, "") {
			return Item{}, errors.New(errors.ErrCodeInvalidPosition,
				"cannot place %s at %v: out of bounds or occupied", id, r)
		}
	} else {
		p, ok := e.layout.FindFirstFit(r.W, r.H)
		if !ok {
			return Item{}, errors.New(errors.ErrCodeNoSpace,
				"no room for a %dx%d %s widget on a %d-column grid", r.W, r.H, kind, e.layout.cols)
		}
		r.X, r.Y = p.X, p.Y
	}

	it := Item{ID: id, Kind: kind}.WithRect(r)
	next := e.layout.Clone()
	next.insert(it)
	if err := e.commit("add", next); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Remove deletes a widget and compacts the remaining ones upward.
// Removing an id that is not present is a no-op.
func (e *Engine) Remove(id string) error {
	if err := e.idle("remove"); err != nil {
		return err
	}
	next := e.layout.Clone()
	if !next.delete(id) {
		return nil
	}
	if err := next.Compact(); err != nil {
		return err
	}
	return e.commit("remove", next)
}

// Move places a widget at (x, y), resolving collisions with the active policy.
func (e *Engine) Move(id string, x, y int) (Outcome, error) {
	return e.MoveWith(e.policy, id, x, y)
}

// MoveWith is like [Engine.Move] with an explicit policy.
func (e *Engine) MoveWith(p Policy, id string, x, y int) (Outcome, error) {
	if err := e.idle("move"); err != nil {
		return Outcome{}, err
	}
	it, ok := e.layout.Get(id)
	if !ok {
		return Outcome{}, errNotFound(id)
	}
	return e.resolve("move", p, it.WithRect(Rect{X: x, Y: y, W: it.W, H: it.H}))
}

// Resize resizes a widget by dragging the d edge towards w×h and resolves
// collisions with the active policy.
func (e *Engine) Resize(id string, d Direction, w, h int) (Outcome, error) {
	if err := e.idle("resize"); err != nil {
		return Outcome{}, err
	}
	d, err := ParseDirection(string(d))
	if err != nil {
		return Outcome{}, err
	}
	it, k, err := e.resizable(id)
	if err != nil {
		return Outcome{}, err
	}
	r, err := resizeRect(it.Rect(), d, w, h, k, e.layout.cols)
	if err != nil {
		e.reject("resize", id, err)
		return Outcome{}, err
	}
	return e.resolve("resize", e.policy, it.WithRect(r))
}

// SetPosition moves a widget to (x, y) without displacing anything.
// The target must be free.
func (e *Engine) SetPosition(id string, x, y int) error {
	if err := e.idle("set position"); err != nil {
		return err
	}
	it, ok := e.layout.Get(id)
	if !ok {
		return errNotFound(id)
	}
	return e.place("set position", it.WithRect(Rect{X: x, Y: y, W: it.W, H: it.H}))
}

// SetSize sets a widget's size, clamped to its kind, without displacing
// anything. The resulting rectangle must be free.
func (e *Engine) SetSize(id string, w, h int) error {
	if err := e.idle("set size"); err != nil {
		return err
	}
	it, ok := e.layout.Get(id)
	if !ok {
		return errNotFound(id)
	}
	k, ok := e.kinds.Lookup(it.Kind)
	if !ok {
		return errors.New(errors.ErrCodeUnknownKind, "unknown widget kind %q", it.Kind)
	}
	return e.place("set size", it.WithRect(Rect{X: it.X, Y: it.Y, W: k.ClampW(w), H: k.ClampH(h)}))
}

// Reflow adjusts the layout to a new column count (clamped to the
// configured range). It reports the column count in effect afterwards.
func (e *Engine) Reflow(cols int) (int, error) {
	if err := e.idle("reflow"); err != nil {
		return e.layout.cols, err
	}
	cols = clamp(cols, e.cfg.MinCols, e.cfg.MaxCols)
	if cols == e.layout.cols {
		return cols, nil
	}
	next, err := e.layout.reflowed(cols)
	if err != nil {
		return e.layout.cols, err
	}
	if err := e.commit("reflow", next); err != nil {
		return e.layout.cols, err
	}
	return cols, nil
}

// ReflowWidth recomputes the column count for a container width in pixels
// and reflows if it changed.
func (e *Engine) ReflowWidth(containerWidth int) (int, error) {
	return e.Reflow(ComputeColumns(containerWidth, e.cfg))
}

// Restore replaces the layout with items. The batch is rejected as a whole if
// any item has an unknown kind, an invalid id or size, lies outside the grid,
// or overlaps another.
func (e *Engine) Restore(items []Item) error {
	if err := e.idle("restore"); err != nil {
		return err
	}
	next := NewLayout(e.layout.cols)
	for _, it := range items {
		if err := errors.ValidateWidgetID(it.ID); err != nil {
			return err
		}
		if _, dup := next.Get(it.ID); dup {
			return errors.New(errors.ErrCodeInvalidSnapshot, "duplicate widget id %q", it.ID)
		}
		k, ok := e.kinds.Lookup(it.Kind)
		if !ok {
			return errors.New(errors.ErrCodeUnknownKind, "widget %s: unknown widget kind %q", it.ID, it.Kind)
		}
		if it.W < min(k.MinW, next.cols) || it.W > k.MaxW || it.H < k.MinH || it.H > k.MaxH {
			return errors.New(errors.ErrCodeInvalidSnapshot,
				"widget %s: size %dx%d outside %s limits", it.ID, it.W, it.H, k.Name)
		}
		next.insert(it)
	}
	if err := next.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "restore rejected")
	}
	return e.commit("restore", next)
}

// Reset removes every widget.
func (e *Engine) Reset() error {
	if err := e.idle("reset"); err != nil {
		return err
	}
	return e.commit("reset", NewLayout(e.layout.cols))
}

// resolve runs p for moved and commits the result.
func (e *Engine) resolve(op string, p Policy, moved Item) (Outcome, error) {
	current, _ := e.layout.Get(moved.ID)
	if moved.Rect() == current.Rect() {
		return Outcome{Item: current}, nil
	}
	next, err := p.Resolve(e.layout, moved)
	if err != nil {
		e.reject(op, moved.ID, err)
		return Outcome{}, err
	}
	displaced := without(e.layout.changed(next), moved.ID)
	if err := e.commit(op, next); err != nil {
		return Outcome{}, err
	}
	final, _ := e.layout.Get(moved.ID)
	e.logger.Debug("resolved", "op", op, "id", moved.ID, "policy", p.Name(), "rect", final.Rect(), "displaced", len(displaced))
	return Outcome{Item: final, Displaced: displaced}, nil
}

// place commits it at its rectangle only if that rectangle is free.
func (e *Engine) place(op string, it Item) error {
	if !e.layout.IsFree(it.Rect(), it.ID) {
		err := errors.New(errors.ErrCodeInvalidPosition, "cannot place %s at %v: out of bounds or occupied", it.ID, it.Rect())
		e.reject(op, it.ID, err)
		return err
	}
	next := e.layout.Clone()
	next.place(it.ID, it.Rect())
	return e.commit(op, next)
}

// commit validates next and swaps it in.
func (e *Engine) commit(op string, next *Layout) error {
	if err := next.Validate(); err != nil {
		e.logger.Error("refusing to commit invalid layout", "op", op, "err", err)
		return errors.Wrap(errors.ErrCodeInvariant, err, "%s", op)
	}
	e.layout = next
	e.logger.Debug("committed", "op", op, "widgets", next.Len(), "cols", next.cols)
	return nil
}

func (e *Engine) reject(op, id string, err error) {
	e.logger.Info("rejected", "op", op, "id", id, "reason", errors.UserMessage(err))
}

func (e *Engine) resizable(id string) (Item, Kind, error) {
	it, ok := e.layout.Get(id)
	if !ok {
		return Item{}, Kind{}, errNotFound(id)
	}
	k, ok := e.kinds.Lookup(it.Kind)
	if !ok {
		return Item{}, Kind{}, errors.New(errors.ErrCodeUnknownKind, "unknown widget kind %q", it.Kind)
	}
	if !k.Resizable {
		return Item{}, Kind{}, errors.New(errors.ErrCodeNotResizable, "%s widgets cannot be resized", k.Name)
	}
	return it, k, nil
}

func errNotFound(id string) error {
	return errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", id)
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
