package grid

import (
	"github.com/matzehuels/gridboard/pkg/errors"
)

// settlePassBase is the fixed part of the settle pass limit; the limit grows
// by one pass per item since a chain of n stacked items can take n passes.
const settlePassBase = 20

// ArrangePolicy accepts every drop point. A drop outside the grid is clamped
// onto it, overlapping items are moved below the item they collide with, and
// the layout is then compacted upward.
type ArrangePolicy struct{}

// Name implements [Policy].
func (ArrangePolicy) Name() string { return PolicyArrange }

// Resolve implements [Policy].
func (ArrangePolicy) Resolve(l *Layout, moved Item) (*Layout, error) {
	r := moved.Rect()
	r.X = clamp(r.X, 0, max(0, l.cols-r.W))
	r.Y = max(0, r.Y)

	out := l.Clone()
	out.place(moved.ID, r)
	if err := out.settle(moved.ID); err != nil {
		return nil, err
	}
	if err := out.Compact(); err != nil {
		return nil, err
	}
	return out, nil
}

// settle resolves overlaps by moving the lower of each overlapping pair
// directly below the other. On equal rows the pinned item keeps its place;
// otherwise the later item in (y, x) order moves.
func (l *Layout) settle(pinned string) error {
	limit := settlePassBase + len(l.items)
	for pass := 0; pass < limit; pass++ {
		if !l.settlePass(pinned) {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvariant, "overlap resolution did not settle after %d passes", limit)
}

func (l *Layout) settlePass(pinned string) bool {
	changed := false
	order := l.byPosition()
	for a := 0; a < len(order); a++ {
		for b := a + 1; b < len(order); b++ {
			first, second := &l.items[order[a]], &l.items[order[b]]
			if !first.Rect().Overlaps(second.Rect()) {
				continue
			}
			upper, lower := first, second
			if first.Y > second.Y || (first.Y == second.Y && second.ID == pinned) {
				upper, lower = second, first
			}
			lower.Y = upper.Y + upper.H
			changed = true
		}
	}
	return changed
}
