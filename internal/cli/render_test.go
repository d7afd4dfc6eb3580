package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/gridboard/pkg/grid"
)

func TestRenderGridSingleCell(t *testing.T) {
	got := renderGrid(gridView{
		Cols:  1,
		Items: []grid.Item{{ID: "a", Kind: "tile", X: 0, Y: 0, W: 1, H: 1}},
	})
	want := strings.Join([]string{
		"+-------+",
		"|a      |",
		"|1x1    |",
		"+-------+",
	}, "\n")
	if got != want {
		t.Errorf("renderGrid() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderGridEmpty(t *testing.T) {
	got := renderGrid(gridView{Cols: 2})
	want := "·       ·       ·\n\n\n·       ·       ·"
	if got != want {
		t.Errorf("renderGrid() = %q, want %q", got, want)
	}
}

func TestRenderGridSelectionAndPreview(t *testing.T) {
	preview := grid.Rect{X: 2, Y: 0, W: 2, H: 1}
	got := renderGrid(gridView{
		Cols: 4,
		Items: []grid.Item{
			{ID: "a", Kind: "tile", X: 0, Y: 0, W: 2, H: 1},
			{ID: "b", Kind: "tile", X: 0, Y: 1, W: 1, H: 1},
		},
		Selected: "a",
		Preview:  &preview,
	})
	lines := strings.Split(got, "\n")
	if len(lines) != 2*cellHeight+1 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 2*cellHeight+1, got)
	}
	if !strings.HasPrefix(lines[0], "#===============*~~~~~~~~~~~~~~~*") {
		t.Errorf("top line = %q", lines[0])
	}
	if !strings.Contains(got, "|b      |") {
		t.Errorf("unselected widget not drawn:\n%s", got)
	}
	if !strings.Contains(got, "2x1") {
		t.Errorf("size label missing:\n%s", got)
	}
}

func TestRenderGridTruncatesLabels(t *testing.T) {
	got := renderGrid(gridView{
		Cols:  1,
		Items: []grid.Item{{ID: "executive-summary", Kind: "tile", W: 1, H: 1}},
	})
	if !strings.Contains(got, "|executi|") {
		t.Errorf("label not truncated to the cell:\n%s", got)
	}
}

func TestTables(t *testing.T) {
	kinds := kindTable(grid.DefaultKinds())
	for _, want := range []string{"Kind", "cash-flow", "2x2", "yes"} {
		if !strings.Contains(kinds, want) {
			t.Errorf("kind table missing %q", want)
		}
	}
	widgets := widgetTable([]grid.Item{{ID: "w1", Kind: "cash-flow", X: 2, Y: 0, W: 2, H: 2}})
	if !strings.Contains(widgets, "w1") || !strings.Contains(widgets, "cash-flow") {
		t.Errorf("widget table =\n%s", widgets)
	}
}
