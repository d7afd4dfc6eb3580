package grid

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridboard/pkg/errors"
)

// testKinds is a small registry that makes sizes in tests easy to reason
// about.
func testKinds(t testing.TB) *Registry {
	t.Helper()
	r, err := NewRegistry(
		Kind{Name: "tile", MinW: 1, MinH: 1, MaxW: 4, MaxH: 4, DefaultW: 2, DefaultH: 2, Resizable: true},
		Kind{Name: "wide", MinW: 2, MinH: 1, MaxW: 6, MaxH: 2, DefaultW: 3, DefaultH: 1, Resizable: true},
		Kind{Name: "banner", MinW: 6, MinH: 1, MaxW: 6, MaxH: 1, DefaultW: 6, DefaultH: 1, Resizable: true},
		Kind{Name: "pin", MinW: 1, MinH: 1, MaxW: 1, MaxH: 1, DefaultW: 1, DefaultH: 1},
	)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	return r
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestEngine returns an engine over the test kinds holding items.
func newTestEngine(t testing.TB, cols int, items []Item, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e := NewEngine(DefaultConfig(), testKinds(t), cols, opts...)
	if err := e.Restore(items); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	return e
}

func tile(id string, x, y int) Item {
	return Item{ID: id, Kind: "tile", X: x, Y: y, W: 2, H: 2}
}

func sized(id, kind string, x, y, w, h int) Item {
	return Item{ID: id, Kind: kind, X: x, Y: y, W: w, H: h}
}

func wantCode(t testing.TB, err error, code errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !errors.Is(err, code) {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

func assertLayout(t testing.TB, e *Engine, want []Item) {
	t.Helper()
	if diff := cmp.Diff(want, e.Snapshot()); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
	if err := e.layout.Validate(); err != nil {
		t.Errorf("layout invalid: %v", err)
	}
}
