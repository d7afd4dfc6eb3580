package grid

import (
	"sort"

	"github.com/matzehuels/gridboard/pkg/errors"
)

// compactPassLimit is a safety valve. Processing items top to bottom, one
// pass moves everything that can move and the next pass confirms the
// fixpoint, so the limit is never reached by a correct layout.
const compactPassLimit = 64

// Compact moves every item up as far as it goes until a full pass moves
// nothing. Afterwards each item rests on another item or on row 0.
func (l *Layout) Compact() error {
	for pass := 0; pass < compactPassLimit; pass++ {
		if !l.compactPass() {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvariant, "compaction did not settle after %d passes", compactPassLimit)
}

func (l *Layout) compactPass() bool {
	moved := false
	for _, i := range l.byPosition() {
		it := &l.items[i]
		y := it.Y
		for y > 0 && l.IsFree(Rect{X: it.X, Y: y - 1, W: it.W, H: it.H}, it.ID) {
			y--
		}
		if y != it.Y {
			it.Y = y
			moved = true
		}
	}
	return moved
}

// byPosition returns item indexes sorted by (y, x), ties by insertion order.
func (l *Layout) byPosition() []int {
	order := make([]int, len(l.items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := l.items[order[a]], l.items[order[b]]
		if ia.Y != ib.Y {
			return ia.Y < ib.Y
		}
		return ia.X < ib.X
	})
	return order
}
