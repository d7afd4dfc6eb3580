package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridboard/pkg/grid"
)

// Character cell size of one grid cell in the ASCII rendering.
const (
	cellWidth  = 8
	cellHeight = 3
)

// canvas is a fixed-size rune buffer.
type canvas struct {
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", w))
	}
	return &canvas{cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if y >= 0 && y < len(c.cells) && x >= 0 && x < len(c.cells[y]) {
		c.cells[y][x] = r
	}
}

func (c *canvas) text(x, y, width int, s string) {
	for i, r := range []rune(s) {
		if i >= width {
			return
		}
		c.set(x+i, y, r)
	}
}

// box draws the outline of r using the given edge runes.
func (c *canvas) box(r grid.Rect, horiz, vert, corner rune) {
	x0, y0 := r.X*cellWidth, r.Y*cellHeight
	x1, y1 := r.Right()*cellWidth, r.Bottom()*cellHeight
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, horiz)
		c.set(x, y1, horiz)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, vert)
		c.set(x1, y, vert)
	}
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		c.set(p[0], p[1], corner)
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// gridView describes what to draw.
type gridView struct {
	Cols     int
	Items    []grid.Item
	Selected string     // drawn with a heavier outline
	Preview  *grid.Rect // gesture preview, drawn last
}

// renderGrid draws the layout as ASCII boxes. Grid points not covered by a
// widget are marked with a dot.
func renderGrid(v gridView) string {
	rows := 1
	for _, it := range v.Items {
		rows = max(rows, it.Y+it.H)
	}
	if v.Preview != nil {
		rows = max(rows, v.Preview.Bottom())
	}

	c := newCanvas(v.Cols*cellWidth+1, rows*cellHeight+1)
	for y := 0; y <= rows; y++ {
		for x := 0; x <= v.Cols; x++ {
			c.set(x*cellWidth, y*cellHeight, '·')
		}
	}
	for _, it := range v.Items {
		if it.ID == v.Selected {
			continue
		}
		drawItem(c, it, '-', '|', '+')
	}
	for _, it := range v.Items {
		if it.ID == v.Selected {
			drawItem(c, it, '=', '#', '#')
		}
	}
	if v.Preview != nil {
		c.box(*v.Preview, '~', ':', '*')
	}
	return c.String()
}

func drawItem(c *canvas, it grid.Item, horiz, vert, corner rune) {
	r := it.Rect()
	c.box(r, horiz, vert, corner)
	inner := r.W*cellWidth - 1
	x, y := r.X*cellWidth+1, r.Y*cellHeight+1
	c.text(x, y, inner, it.ID)
	c.text(x, y+1, inner, fmt.Sprintf("%dx%d", it.W, it.H))
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// widgetTable lists items with their positions.
func widgetTable(items []grid.Item) string {
	t := newTable("ID", "Type", "X", "Y", "W", "H")
	for _, it := range items {
		t.Row(it.ID, it.Kind,
			fmt.Sprint(it.X), fmt.Sprint(it.Y), fmt.Sprint(it.W), fmt.Sprint(it.H))
	}
	return t.String()
}

// kindTable lists widget kinds with their size limits.
func kindTable(kinds []grid.Kind) string {
	t := newTable("Kind", "Default", "Min", "Max", "Resizable")
	for _, k := range kinds {
		resizable := "no"
		if k.Resizable {
			resizable = "yes"
		}
		t.Row(k.Name,
			fmt.Sprintf("%dx%d", k.DefaultW, k.DefaultH),
			fmt.Sprintf("%dx%d", k.MinW, k.MinH),
			fmt.Sprintf("%dx%d", k.MaxW, k.MaxH),
			resizable)
	}
	return t.String()
}
