package grid

import (
	"github.com/matzehuels/gridboard/pkg/errors"
)

// PushPolicy displaces colliding items by the smallest axis-aligned amount
// that clears them, propagating breadth-first. If any displaced item would
// leave the grid the whole move is rejected and nothing changes.
type PushPolicy struct{}

// Name implements [Policy].
func (PushPolicy) Name() string { return PolicyPush }

// Resolve implements [Policy].
func (PushPolicy) Resolve(l *Layout, moved Item) (*Layout, error) {
	target := moved.Rect()
	if !target.Within(l.cols) {
		return nil, errors.New(errors.ErrCodeMoveRejected, "widget %s at %v does not fit a %d-column grid", moved.ID, target, l.cols)
	}

	// Every queued item is resolved exactly once, so the walk visits at most
	// Len() items.
	pending := map[string]Rect{moved.ID: target}
	queue := []string{moved.ID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		cur := pending[id]

		for _, other := range l.items {
			if _, queued := pending[other.ID]; queued {
				continue
			}
			r := other.Rect()
			if !cur.Overlaps(r) {
				continue
			}
			dx, dy := pushVector(cur, r)
			next := r.Translate(dx, dy)
			if !next.Within(l.cols) {
				return nil, errors.New(errors.ErrCodeMoveRejected,
					"cannot push %s from %v to %v: outside a %d-column grid", other.ID, r, next, l.cols)
			}
			pending[other.ID] = next
			queue = append(queue, other.ID)
		}
	}

	out := l.Clone()
	for id, r := range pending {
		out.place(id, r)
	}
	if a, b, ok := out.firstOverlap(); ok {
		return nil, errors.New(errors.ErrCodeMoveRejected,
			"pushing leaves %s %v and %s %v overlapping", a.ID, a.Rect(), b.ID, b.Rect())
	}
	return out, nil
}

// pushVector returns the displacement that separates other from mover with
// the least movement. Candidates are tried left, right, up, down and the
// first strictly smallest wins.
func pushVector(mover, other Rect) (dx, dy int) {
	type push struct{ dx, dy, amount int }

	left := other.Right() - mover.X
	right := mover.Right() - other.X
	up := other.Bottom() - mover.Y
	down := mover.Bottom() - other.Y

	candidates := [...]push{
		{dx: -left, amount: left},
		{dx: right, amount: right},
		{dy: -up, amount: up},
		{dy: down, amount: down},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.amount < best.amount {
			best = c
		}
	}
	return best.dx, best.dy
}
