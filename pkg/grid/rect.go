package grid

import "fmt"

// Point is a cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is a half-open rectangle in grid cells: it covers columns
// [X, X+W) and rows [Y, Y+H).
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Overlaps reports whether r and o share at least one cell.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.X+r.W <= o.X ||
		o.X+o.W <= r.X ||
		r.Y+r.H <= o.Y ||
		o.Y+o.H <= r.Y)
}

// Within reports whether r is non-empty and fits a grid of cols columns.
func (r Rect) Within(cols int) bool {
	return r.W > 0 && r.H > 0 && r.X >= 0 && r.Y >= 0 && r.X+r.W <= cols
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Item is a placed widget.
type Item struct {
	ID   string `json:"id"`
	Kind string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}

// Rect returns the item's rectangle.
func (it Item) Rect() Rect { return Rect{X: it.X, Y: it.Y, W: it.W, H: it.H} }

// WithRect returns a copy of the item occupying r.
func (it Item) WithRect(r Rect) Item {
	it.X, it.Y, it.W, it.H = r.X, r.Y, r.W, r.H
	return it
}
