package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/grid"
)

// addCommand creates the add command.
func (c *CLI) addCommand() *cobra.Command {
	var (
		id  string
		pos string
	)

	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add a widget at the first free slot or a given position",
		Example: `  gridboard add cash-flow
  gridboard add live-prices --id prices --at 2,0`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			var at *grid.Point
			if pos != "" {
				p, err := parsePoint(pos)
				if err != nil {
					return err
				}
				at = &p
			}

			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			it, err := b.Add(cmd.Context(), id, args[0], at)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Added %s at %s", StyleHighlight.Render(it.ID), it.Rect())
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "widget id (default: generated)")
	cmd.Flags().StringVar(&pos, "at", "", "position as x,y (must be free)")
	return cmd
}

// removeCommand creates the remove command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <id>...",
		Aliases:           []string{"rm"},
		Short:             "Remove widgets and compact the layout",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeWidgets,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			for _, id := range args {
				if err := b.Remove(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Removed %s", StyleHighlight.Render(id))
			}
			return nil
		},
	}
}

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	var (
		policy string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "move <id> <x> <y>",
		Short: "Move a widget, resolving collisions",
		Long: `Move a widget to a new top-left cell.

With the push policy overlapped widgets are pushed out of the way along the
shortest axis; the move is rejected if that fails. With the arrange policy
the moved widget is pinned and everything else settles downward.

--force places the widget only if the target is already free.`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeWidgets,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseCoords(args[1], args[2])
			if err != nil {
				return err
			}

			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			w := cmd.OutOrStdout()
			if force {
				if err := b.SetPosition(cmd.Context(), args[0], p.X, p.Y); err != nil {
					return err
				}
				printSuccess(w, "Placed %s at (%d,%d)", StyleHighlight.Render(args[0]), p.X, p.Y)
				return nil
			}

			if policy != "" {
				pol, err := grid.ParsePolicy(policy)
				if err != nil {
					return err
				}
				b.SetPolicy(pol)
			}
			out, err := b.Move(cmd.Context(), args[0], p.X, p.Y)
			if err != nil {
				return err
			}
			printOutcome(w, "Moved", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "conflict policy for this move (push or arrange)")
	cmd.Flags().BoolVar(&force, "force", false, "place without resolving collisions")
	return cmd
}

// resizeCommand creates the resize command.
func (c *CLI) resizeCommand() *cobra.Command {
	var (
		direction string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "resize <id> <w> <h>",
		Short: "Resize a widget by dragging one of its edges",
		Long: `Resize a widget to w×h cells, clamped to its kind's limits.

--direction names the dragged edge or corner (n, ne, e, se, s, sw, w, nw);
dragging a west or north edge keeps the opposite edge fixed.`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeWidgets,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := parseCoords(args[1], args[2])
			if err != nil {
				return err
			}
			d, err := grid.ParseDirection(direction)
			if err != nil {
				return err
			}

			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			w := cmd.OutOrStdout()
			if force {
				if err := b.SetSize(cmd.Context(), args[0], size.X, size.Y); err != nil {
					return err
				}
				printSuccess(w, "Resized %s", StyleHighlight.Render(args[0]))
				return nil
			}
			out, err := b.Resize(cmd.Context(), args[0], d, size.X, size.Y)
			if err != nil {
				return err
			}
			printOutcome(w, "Resized", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", string(grid.SouthEast), "edge or corner to drag")
	cmd.Flags().BoolVar(&force, "force", false, "resize in place without resolving collisions")
	return cmd
}

// reflowCommand creates the reflow command.
func (c *CLI) reflowCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "reflow [cols]",
		Short: "Change the column count and repack the layout",
		Example: `  gridboard reflow 6
  gridboard reflow --width 1920`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (width > 0) {
				return fmt.Errorf("give either a column count or --width")
			}

			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			var cols int
			if width > 0 {
				cols, err = b.ReflowWidth(cmd.Context(), width)
			} else {
				n, perr := strconv.Atoi(args[0])
				if perr != nil {
					return fmt.Errorf("invalid column count %q", args[0])
				}
				cols, err = b.Reflow(cmd.Context(), n)
			}
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Layout now has %s columns", StyleNumber.Render(strconv.Itoa(cols)))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "container width in pixels")
	return cmd
}

// resetCommand creates the reset command.
func (c *CLI) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every widget and delete the saved layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Reset(cmd.Context()); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Board %s reset", StyleHighlight.Render(b.Name()))
			printNextStep(w, "Start again with the default widgets", appName+" seed")
			return nil
		},
	}
}

// seedCommand creates the seed command.
func (c *CLI) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [kind...]",
		Short: "Fill an empty board with default widgets",
		Long: `Fill an empty board with one widget per kind, placed in order at the first
free slot. Without arguments the default manager dashboard is used.`,
		ValidArgsFunction: c.completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := args
			if len(kinds) == 0 {
				kinds = grid.DefaultSeed
			}

			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			added, err := b.Seed(cmd.Context(), kinds)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Seeded %s widgets", StyleNumber.Render(strconv.Itoa(len(added))))
			printNextStep(w, "View the layout", appName+" show")
			return nil
		},
	}
}

// printOutcome reports a committed move or resize.
func printOutcome(w io.Writer, verb string, out grid.Outcome) {
	printSuccess(w, "%s %s to %s", verb, StyleHighlight.Render(out.Item.ID), out.Item.Rect())
	for _, id := range out.Displaced {
		printDetail(w, "displaced %s", id)
	}
}

// =============================================================================
// Argument Parsing
// =============================================================================

// parsePoint parses "x,y".
func parsePoint(s string) (grid.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Point{}, fmt.Errorf("invalid position %q (want x,y)", s)
	}
	return parseCoords(strings.TrimSpace(xs), strings.TrimSpace(ys))
}

// parseCoords parses a pair of non-negative integers.
func parseCoords(xs, ys string) (grid.Point, error) {
	x, err := strconv.Atoi(xs)
	if err != nil || x < 0 {
		return grid.Point{}, fmt.Errorf("invalid number %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil || y < 0 {
		return grid.Point{}, fmt.Errorf("invalid number %q", ys)
	}
	return grid.Point{X: x, Y: y}, nil
}
