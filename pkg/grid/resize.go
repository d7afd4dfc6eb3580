package grid

import (
	"strings"

	"github.com/matzehuels/gridboard/pkg/errors"
)

// Direction names the edge or corner being dragged during a resize.
type Direction string

// Resize directions.
const (
	North     Direction = "n"
	NorthEast Direction = "ne"
	East      Direction = "e"
	SouthEast Direction = "se"
	South     Direction = "s"
	SouthWest Direction = "sw"
	West      Direction = "w"
	NorthWest Direction = "nw"
)

// Directions lists every resize direction, clockwise from north.
var Directions = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// ParseDirection parses a compass direction such as "se".
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Directions {
		if d == known {
			return d, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown resize direction %q", s)
}

func (d Direction) north() bool { return strings.Contains(string(d), "n") }
func (d Direction) south() bool { return strings.Contains(string(d), "s") }
func (d Direction) east() bool  { return strings.Contains(string(d), "e") }
func (d Direction) west() bool  { return strings.Contains(string(d), "w") }

// Horizontal reports whether the direction changes the width.
func (d Direction) Horizontal() bool { return d.east() || d.west() }

// Vertical reports whether the direction changes the height.
func (d Direction) Vertical() bool { return d.north() || d.south() }

// resizeRect computes the rectangle for resizing start towards w×h by dragging
// the d edge. Sizes are clamped to the kind; dragging a west or north edge
// keeps the opposite edge fixed and moves the origin. The result is clamped
// to the grid horizontally and to row 0 vertically.
func resizeRect(start Rect, d Direction, w, h int, k Kind, cols int) (Rect, error) {
	r := start
	if d.Horizontal() {
		r.W = k.ClampW(w)
		if d.west() {
			r.X = start.Right() - r.W
		}
	}
	if d.Vertical() {
		r.H = k.ClampH(h)
		if d.north() {
			r.Y = start.Bottom() - r.H
		}
	}

	if r.X < 0 {
		r.W += r.X
		r.X = 0
	}
	if r.Right() > cols {
		r.W = cols - r.X
	}
	if r.Y < 0 {
		r.H += r.Y
		r.Y = 0
	}

	if r.W < min(k.MinW, cols) || r.H < k.MinH || r.W <= 0 {
		return start, errors.New(errors.ErrCodeMoveRejected,
			"resize to %v breaks the %s size limits (min %dx%d)", r, k.Name, k.MinW, k.MinH)
	}
	return r, nil
}
