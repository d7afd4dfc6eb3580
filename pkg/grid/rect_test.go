package grid

import "testing"

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"identical", Rect{0, 0, 2, 2}, Rect{0, 0, 2, 2}, true},
		{"partial", Rect{0, 0, 2, 2}, Rect{1, 1, 2, 2}, true},
		{"contained", Rect{0, 0, 4, 4}, Rect{1, 1, 1, 1}, true},
		{"touching right edge", Rect{0, 0, 2, 2}, Rect{2, 0, 2, 2}, false},
		{"touching bottom edge", Rect{0, 0, 2, 2}, Rect{0, 2, 2, 2}, false},
		{"touching corner", Rect{0, 0, 2, 2}, Rect{2, 2, 2, 2}, false},
		{"disjoint", Rect{0, 0, 1, 1}, Rect{5, 5, 1, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestRectWithin(t *testing.T) {
	tests := []struct {
		r    Rect
		cols int
		want bool
	}{
		{Rect{0, 0, 4, 1}, 4, true},
		{Rect{3, 100, 1, 1}, 4, true},
		{Rect{3, 0, 2, 1}, 4, false},
		{Rect{-1, 0, 1, 1}, 4, false},
		{Rect{0, -1, 1, 1}, 4, false},
		{Rect{0, 0, 0, 1}, 4, false},
		{Rect{0, 0, 1, 0}, 4, false},
	}

	for _, tt := range tests {
		if got := tt.r.Within(tt.cols); got != tt.want {
			t.Errorf("%v.Within(%d) = %v, want %v", tt.r, tt.cols, got, tt.want)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 1, Y: 2, W: 3, H: 4}
	if r.Right() != 4 {
		t.Errorf("Right() = %d, want 4", r.Right())
	}
	if r.Bottom() != 6 {
		t.Errorf("Bottom() = %d, want 6", r.Bottom())
	}
	if got := r.Translate(-1, 2); got != (Rect{X: 0, Y: 4, W: 3, H: 4}) {
		t.Errorf("Translate(-1, 2) = %v", got)
	}
	if r.String() != "(1,2 3x4)" {
		t.Errorf("String() = %q", r.String())
	}
}
