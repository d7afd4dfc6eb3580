package grid

import (
	"github.com/matzehuels/gridboard/pkg/errors"
)

// State is the engine's interaction state.
type State int

// Interaction states. Idle is both the initial and the terminal state of
// every gesture.
const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "unknown"
}

type gesture struct {
	state  State
	origin Item
	dir    Direction
	target Rect
}

// State returns the current interaction state.
func (e *Engine) State() State { return e.gesture.state }

// Gesture returns the widget being dragged or resized and its current
// preview rectangle. ok is false when idle.
func (e *Engine) Gesture() (id string, preview Rect, ok bool) {
	if e.gesture.state == Idle {
		return "", Rect{}, false
	}
	return e.gesture.origin.ID, e.gesture.target, true
}

// BeginDrag starts dragging a widget.
func (e *Engine) BeginDrag(id string) error {
	if err := e.idle("begin drag"); err != nil {
		return err
	}
	it, ok := e.layout.Get(id)
	if !ok {
		return errNotFound(id)
	}
	e.gesture = gesture{state: Dragging, origin: it, target: it.Rect()}
	return nil
}

// UpdateDragTarget moves the drag preview to (x, y), clamped so the widget
// stays on the grid. It returns the clamped preview rectangle.
func (e *Engine) UpdateDragTarget(x, y int) (Rect, error) {
	if e.gesture.state != Dragging {
		return Rect{}, errNoGesture("drag", e.gesture.state)
	}
	r := e.gesture.target
	r.X = clamp(x, 0, max(0, e.layout.cols-r.W))
	r.Y = max(0, y)
	e.gesture.target = r
	return r, nil
}

// EndDrag commits the drag at the last preview position. On rejection the
// widget stays where it was before the gesture. Either way the engine
// returns to idle.
func (e *Engine) EndDrag() (Outcome, error) {
	if e.gesture.state != Dragging {
		return Outcome{}, errNoGesture("drag", e.gesture.state)
	}
	g := e.gesture
	e.gesture = gesture{}
	return e.resolve("drag", e.policy, g.origin.WithRect(g.target))
}

// BeginResize starts resizing a widget by its d edge.
func (e *Engine) BeginResize(id string, d Direction) error {
	if err := e.idle("begin resize"); err != nil {
		return err
	}
	d, err := ParseDirection(string(d))
	if err != nil {
		return err
	}
	it, _, err := e.resizable(id)
	if err != nil {
		return err
	}
	e.gesture = gesture{state: Resizing, origin: it, dir: d, target: it.Rect()}
	return nil
}

// UpdateResizeTarget sets the requested size of the resize preview. The
// size is clamped to the widget's kind and the grid; the returned rectangle
// is the preview that [Engine.EndResize] will try to commit. A request that
// cannot be satisfied leaves the previous preview in place.
func (e *Engine) UpdateResizeTarget(w, h int) (Rect, error) {
	if e.gesture.state != Resizing {
		return Rect{}, errNoGesture("resize", e.gesture.state)
	}
	k, ok := e.kinds.Lookup(e.gesture.origin.Kind)
	if !ok {
		return e.gesture.target, errors.New(errors.ErrCodeUnknownKind, "unknown widget kind %q", e.gesture.origin.Kind)
	}
	r, err := resizeRect(e.gesture.origin.Rect(), e.gesture.dir, w, h, k, e.layout.cols)
	if err != nil {
		return e.gesture.target, err
	}
	e.gesture.target = r
	return r, nil
}

// EndResize commits the resize preview. On rejection the widget keeps its
// pre-gesture rectangle. Either way the engine returns to idle.
func (e *Engine) EndResize() (Outcome, error) {
	if e.gesture.state != Resizing {
		return Outcome{}, errNoGesture("resize", e.gesture.state)
	}
	g := e.gesture
	e.gesture = gesture{}
	return e.resolve("resize", e.policy, g.origin.WithRect(g.target))
}

// Cancel abandons the active gesture, if any, without changing the layout.
func (e *Engine) Cancel() {
	e.gesture = gesture{}
}

// idle fails if a gesture is in progress.
func (e *Engine) idle(op string) error {
	if e.gesture.state != Idle {
		return errors.New(errors.ErrCodeGestureInProgress,
			"cannot %s while %s %s", op, e.gesture.state, e.gesture.origin.ID)
	}
	return nil
}

func errNoGesture(kind string, s State) error {
	return errors.New(errors.ErrCodeNoGesture, "no %s in progress (engine is %s)", kind, s)
}
