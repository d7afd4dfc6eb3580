package grid

import (
	"github.com/matzehuels/gridboard/pkg/errors"
)

// MaxScanRows caps the first-fit scan. The scan normally stops one row below
// the lowest item, where any widget no wider than the grid fits.
const MaxScanRows = 10000

// Layout is an ordered set of items on a grid of Cols columns.
//
// A Layout does not enforce its invariants on every mutation; the [Engine]
// mutates clones and calls [Layout.Validate] before committing them.
type Layout struct {
	cols  int
	items []Item
	index map[string]int
}

// NewLayout creates an empty layout with the given column count.
func NewLayout(cols int) *Layout {
	return &Layout{cols: cols, index: make(map[string]int)}
}

// Cols returns the column count.
func (l *Layout) Cols() int { return l.cols }

// Len returns the number of items.
func (l *Layout) Len() int { return len(l.items) }

// Items returns a copy of the items in insertion order.
func (l *Layout) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Get returns the item with the given id.
func (l *Layout) Get(id string) (Item, bool) {
	i, ok := l.index[id]
	if !ok {
		return Item{}, false
	}
	return l.items[i], true
}

// Clone returns a deep copy.
func (l *Layout) Clone() *Layout {
	c := &Layout{
		cols:  l.cols,
		items: make([]Item, len(l.items)),
		index: make(map[string]int, len(l.index)),
	}
	copy(c.items, l.items)
	for id, i := range l.index {
		c.index[id] = i
	}
	return c
}

// Equal reports whether both layouts have the same columns and items in the
// same order.
func (l *Layout) Equal(o *Layout) bool {
	if l.cols != o.cols || len(l.items) != len(o.items) {
		return false
	}
	for i := range l.items {
		if l.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// Bottom returns the first row below every item (0 for an empty layout).
func (l *Layout) Bottom() int {
	bottom := 0
	for _, it := range l.items {
		if b := it.Y + it.H; b > bottom {
			bottom = b
		}
	}
	return bottom
}

// IsFree reports whether r fits the grid and overlaps no item other than
// excludeID. Pass "" to check against every item.
func (l *Layout) IsFree(r Rect, excludeID string) bool {
	if !r.Within(l.cols) {
		return false
	}
	for _, it := range l.items {
		if it.ID == excludeID {
			continue
		}
		if r.Overlaps(it.Rect()) {
			return false
		}
	}
	return true
}

// FindFirstFit returns the top-most, then left-most position where a w×h
// rectangle is free. It reports false when w does not fit the grid at all or
// the scan reaches [MaxScanRows].
func (l *Layout) FindFirstFit(w, h int) (Point, bool) {
	if w <= 0 || h <= 0 || w > l.cols {
		return Point{}, false
	}
	limit := l.Bottom() + 1
	if limit > MaxScanRows {
		limit = MaxScanRows
	}
	for y := 0; y < limit; y++ {
		for x := 0; x <= l.cols-w; x++ {
			if l.IsFree(Rect{X: x, Y: y, W: w, H: h}, "") {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

// Validate checks the bounds and no-overlap invariants.
func (l *Layout) Validate() error {
	for i, a := range l.items {
		if !a.Rect().Within(l.cols) {
			return errors.New(errors.ErrCodeInvariant, "widget %s at %v is outside a %d-column grid", a.ID, a.Rect(), l.cols)
		}
		for _, b := range l.items[i+1:] {
			if a.Rect().Overlaps(b.Rect()) {
				return errors.New(errors.ErrCodeInvariant, "widgets %s %v and %s %v overlap", a.ID, a.Rect(), b.ID, b.Rect())
			}
		}
	}
	return nil
}

// firstOverlap returns the first pair of overlapping items.
func (l *Layout) firstOverlap() (a, b Item, ok bool) {
	for i := range l.items {
		for j := i + 1; j < len(l.items); j++ {
			if l.items[i].Rect().Overlaps(l.items[j].Rect()) {
				return l.items[i], l.items[j], true
			}
		}
	}
	return Item{}, Item{}, false
}

func (l *Layout) insert(it Item) {
	l.index[it.ID] = len(l.items)
	l.items = append(l.items, it)
}

func (l *Layout) delete(id string) bool {
	i, ok := l.index[id]
	if !ok {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.items); j++ {
		l.index[l.items[j].ID] = j
	}
	return true
}

// place moves an existing item to r.
func (l *Layout) place(id string, r Rect) {
	if i, ok := l.index[id]; ok {
		l.items[i] = l.items[i].WithRect(r)
	}
}

// changed returns the ids whose rectangle differs between l and next,
// in l's order.
func (l *Layout) changed(next *Layout) []string {
	var ids []string
	for _, it := range l.items {
		if n, ok := next.Get(it.ID); ok && n.Rect() != it.Rect() {
			ids = append(ids, it.ID)
		}
	}
	return ids
}
