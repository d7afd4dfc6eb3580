package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Rearrange the board interactively",
		Long: `Open a terminal editor for the board. Select a widget, then drag it with
the arrow keys or resize it by its selected edge; the layout is saved when a
gesture is committed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			p := tea.NewProgram(newEditModel(cmd.Context(), b), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Board %s has %d widgets on %d columns", StyleHighlight.Render(b.Name()), len(b.Snapshot()), b.Cols())
			return nil
		},
	}
}

// =============================================================================
// EditModel - Interactive layout editor
// =============================================================================

type editMode int

const (
	modeSelect editMode = iota
	modeDrag
	modeResize
)

// editModel is the bubbletea model of the layout editor. Gestures map onto
// the engine's drag and resize state machine: a key begins the gesture,
// arrows update its target and enter commits it.
type editModel struct {
	ctx      context.Context
	board    *board.Board
	selected string
	mode     editMode
	dir      grid.Direction
	target   grid.Point // drag origin or resize size, depending on mode
	status   string
	failed   bool
}

func newEditModel(ctx context.Context, b *board.Board) editModel {
	m := editModel{ctx: ctx, board: b, dir: grid.SouthEast}
	if items := m.ordered(); len(items) > 0 {
		m.selected = items[0].ID
	}
	return m
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	switch m.mode {
	case modeSelect:
		return m.updateSelect(key.String())
	case modeDrag, modeResize:
		return m.updateGesture(key.String())
	}
	return m, nil
}

func (m editModel) updateSelect(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "down", "j":
		m.step(1)
	case "shift+tab", "up", "k":
		m.step(-1)
	case "enter", "m":
		m.begin(modeDrag)
	case "r":
		m.begin(modeResize)
	case "d":
		i := slices.Index(grid.Directions, m.dir)
		m.dir = grid.Directions[(i+1)%len(grid.Directions)]
		m.report(fmt.Sprintf("resize edge: %s", m.dir), nil)
	case "p":
		m.togglePolicy()
	case "x", "delete":
		m.remove()
	case "+", "=":
		m.reflow(1)
	case "-":
		m.reflow(-1)
	}
	return m, nil
}

func (m editModel) updateGesture(key string) (tea.Model, tea.Cmd) {
	dx, dy := 0, 0
	switch key {
	case "left", "h":
		dx = -1
	case "right", "l":
		dx = 1
	case "up", "k":
		dy = -1
	case "down", "j":
		dy = 1
	case "enter", " ":
		m.commit()
		return m, nil
	case "esc", "q":
		m.cancel()
		m.report("cancelled", nil)
		return m, nil
	default:
		return m, nil
	}
	m.update(m.target.X+dx, m.target.Y+dy)
	return m, nil
}

// =============================================================================
// Gestures
// =============================================================================

func (m *editModel) begin(mode editMode) {
	if m.selected == "" {
		return
	}
	err := m.board.Edit(m.ctx, "begin", func(e *grid.Engine) error {
		it, ok := e.Item(m.selected)
		if !ok {
			return errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", m.selected)
		}
		if mode == modeDrag {
			m.target = grid.Point{X: it.X, Y: it.Y}
			return e.BeginDrag(it.ID)
		}
		m.target = grid.Point{X: it.W, Y: it.H}
		return e.BeginResize(it.ID, m.dir)
	})
	if err != nil {
		m.report("", err)
		return
	}
	m.mode = mode
	m.report("", nil)
}

func (m *editModel) update(x, y int) {
	err := m.board.Edit(m.ctx, "preview", func(e *grid.Engine) error {
		var (
			r   grid.Rect
			err error
		)
		if m.mode == modeDrag {
			r, err = e.UpdateDragTarget(x, y)
			m.target = grid.Point{X: r.X, Y: r.Y}
		} else {
			r, err = e.UpdateResizeTarget(x, y)
			m.target = grid.Point{X: r.W, Y: r.H}
		}
		return err
	})
	m.report(fmt.Sprintf("target %v", m.target), err)
}

func (m *editModel) commit() {
	var out grid.Outcome
	op := "drag"
	if m.mode == modeResize {
		op = "resize"
	}
	err := m.board.Edit(m.ctx, op, func(e *grid.Engine) error {
		var err error
		if m.mode == modeDrag {
			out, err = e.EndDrag()
		} else {
			out, err = e.EndResize()
		}
		return err
	})
	m.mode = modeSelect
	if err != nil {
		m.report("", err)
		return
	}
	msg := fmt.Sprintf("%s %s to %v", op, out.Item.ID, out.Item.Rect())
	if n := len(out.Displaced); n > 0 {
		msg += fmt.Sprintf(", displaced %d", n)
	}
	m.report(msg, nil)
}

func (m *editModel) cancel() {
	_ = m.board.Edit(m.ctx, "cancel", func(e *grid.Engine) error {
		e.Cancel()
		return nil
	})
	m.mode = modeSelect
}

// =============================================================================
// Board Commands
// =============================================================================

func (m *editModel) togglePolicy() {
	var next grid.Policy = grid.ArrangePolicy{}
	m.board.View(func(e *grid.Engine) {
		if e.Policy().Name() == grid.PolicyArrange {
			next = grid.PushPolicy{}
		}
	})
	m.board.SetPolicy(next)
	m.report("policy: "+next.Name(), nil)
}

func (m *editModel) remove() {
	if m.selected == "" {
		return
	}
	id := m.selected
	m.step(1)
	if m.selected == id {
		m.selected = ""
	}
	err := m.board.Remove(m.ctx, id)
	m.report("removed "+id, err)
}

func (m *editModel) reflow(delta int) {
	cols, err := m.board.Reflow(m.ctx, m.board.Cols()+delta)
	m.report(fmt.Sprintf("%d columns", cols), err)
}

// =============================================================================
// Helpers
// =============================================================================

// ordered returns the items in reading order.
func (m editModel) ordered() []grid.Item {
	items := m.board.Snapshot()
	slices.SortFunc(items, func(a, b grid.Item) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return items
}

// step moves the selection by delta in reading order.
func (m *editModel) step(delta int) {
	items := m.ordered()
	if len(items) == 0 {
		m.selected = ""
		return
	}
	i := slices.IndexFunc(items, func(it grid.Item) bool { return it.ID == m.selected })
	if i < 0 {
		m.selected = items[0].ID
		return
	}
	m.selected = items[(i+delta+len(items))%len(items)].ID
}

func (m *editModel) report(msg string, err error) {
	m.failed = err != nil
	if err != nil {
		msg = errors.UserMessage(err)
	}
	m.status = msg
}

func (m editModel) View() string {
	var (
		items   []grid.Item
		cols    int
		policy  string
		preview *grid.Rect
	)
	m.board.View(func(e *grid.Engine) {
		items, cols, policy = e.Snapshot(), e.Cols(), e.Policy().Name()
		if _, r, ok := e.Gesture(); ok {
			preview = &r
		}
	})

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Board " + m.board.Name()))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d columns · %s · edge %s", cols, policy, m.dir)))
	b.WriteString("\n\n")
	b.WriteString(renderGrid(gridView{Cols: cols, Items: items, Selected: m.selected, Preview: preview}))
	b.WriteString("\n\n")

	switch {
	case m.failed:
		b.WriteString(styleIconError.Render(iconError) + " " + m.status)
	case m.status != "":
		b.WriteString(stylePreview.Render(m.status))
	}
	b.WriteString("\n")

	help := "tab select  m drag  r resize  d edge  p policy  x remove  +/- columns  q quit"
	if m.mode != modeSelect {
		help = "←↑↓→ adjust  ⏎ commit  esc cancel"
	}
	if m.selected != "" {
		help = styleSelected.Render(m.selected) + "  " + StyleDim.Render(help)
	} else {
		help = StyleDim.Render(help)
	}
	b.WriteString(help)
	b.WriteString("\n")
	return b.String()
}
