package grid

import (
	"testing"
)

func TestReflow(t *testing.T) {
	tests := []struct {
		name     string
		cols     int
		items    []Item
		newCols  int
		wantCols int
		want     []Item
	}{
		{
			name:     "overflowing item shifts left",
			cols:     6,
			items:    []Item{tile("a", 0, 0), tile("b", 4, 0)},
			newCols:  4,
			wantCols: 4,
			want:     []Item{tile("a", 0, 0), tile("b", 2, 0)},
		},
		{
			name:     "shift collision settles below",
			cols:     6,
			items:    []Item{tile("a", 0, 0), tile("b", 2, 0), tile("c", 4, 0)},
			newCols:  4,
			wantCols: 4,
			want:     []Item{tile("a", 0, 0), tile("b", 2, 0), tile("c", 2, 2)},
		},
		{
			name:     "wide item narrowed to the grid",
			cols:     6,
			items:    []Item{sized("a", "wide", 0, 0, 6, 1), tile("b", 0, 1)},
			newCols:  4,
			wantCols: 4,
			want:     []Item{sized("a", "wide", 0, 0, 4, 1), tile("b", 0, 1)},
		},
		{
			name:     "growing keeps positions",
			cols:     4,
			items:    []Item{tile("a", 0, 0), tile("b", 2, 0)},
			newCols:  8,
			wantCols: 8,
			want:     []Item{tile("a", 0, 0), tile("b", 2, 0)},
		},
		{
			name:     "clamped to min columns",
			cols:     6,
			items:    []Item{tile("a", 4, 0)},
			newCols:  1,
			wantCols: 4,
			want:     []Item{tile("a", 2, 0)},
		},
		{
			name:     "clamped to max columns",
			cols:     6,
			items:    []Item{tile("a", 4, 0)},
			newCols:  40,
			wantCols: 12,
			want:     []Item{tile("a", 4, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.cols, tt.items)
			got, err := e.Reflow(tt.newCols)
			if err != nil {
				t.Fatalf("Reflow() error: %v", err)
			}
			if got != tt.wantCols || e.Cols() != tt.wantCols {
				t.Errorf("Reflow() cols = %d (engine %d), want %d", got, e.Cols(), tt.wantCols)
			}
			assertLayout(t, e, tt.want)
		})
	}
}

func TestReflowWidth(t *testing.T) {
	e := newTestEngine(t, 12, []Item{tile("a", 10, 0)})

	cols, err := e.ReflowWidth(0)
	if err != nil {
		t.Fatalf("ReflowWidth(0) error: %v", err)
	}
	if cols != DefaultMinCols {
		t.Errorf("ReflowWidth(0) = %d, want %d", cols, DefaultMinCols)
	}
	assertLayout(t, e, []Item{tile("a", 2, 0)})
}

func TestReflowedRejectsZeroColumns(t *testing.T) {
	if _, err := layoutOf(4).reflowed(0); err == nil {
		t.Error("reflowed(0) succeeded")
	}
}

func TestReflowRoundTripKeepsValidity(t *testing.T) {
	e := newTestEngine(t, 12, []Item{
		tile("a", 0, 0), tile("b", 2, 0), tile("c", 4, 0),
		tile("d", 6, 0), tile("e", 8, 0), tile("f", 10, 0),
	})
	for _, cols := range []int{8, 4, 6, 12, 5, 4} {
		if _, err := e.Reflow(cols); err != nil {
			t.Fatalf("Reflow(%d) error: %v", cols, err)
		}
		if err := e.layout.Validate(); err != nil {
			t.Fatalf("after Reflow(%d): %v", cols, err)
		}
		if e.Len() != 6 {
			t.Fatalf("after Reflow(%d): %d widgets, want 6", cols, e.Len())
		}
	}
}
