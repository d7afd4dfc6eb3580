package grid

import (
	"github.com/matzehuels/gridboard/pkg/errors"
)

// reflowed returns a copy of l adjusted to cols columns. Items that no longer
// fit are narrowed to at most cols and shifted left, collisions caused by the
// shift are settled downward, and the result is compacted.
func (l *Layout) reflowed(cols int) (*Layout, error) {
	if cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "column count must be positive, got %d", cols)
	}
	out := l.Clone()
	out.cols = cols
	for i := range out.items {
		it := &out.items[i]
		if it.W > cols {
			it.W = cols
		}
		if it.X+it.W > cols {
			it.X = max(0, cols-it.W)
		}
	}
	if err := out.settle(""); err != nil {
		return nil, err
	}
	if err := out.Compact(); err != nil {
		return nil, err
	}
	return out, nil
}
