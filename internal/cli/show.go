package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/grid"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			w := cmd.OutOrStdout()
			doc := b.Document()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			items := doc.GridItems()
			printKeyValue(w, "Board", b.Name())
			printKeyValue(w, "Columns", strconv.Itoa(doc.Cols))
			printKeyValue(w, "Policy", doc.Policy)
			printKeyValue(w, "Widgets", strconv.Itoa(len(items)))
			fmt.Fprintln(w)
			if len(items) == 0 {
				printInfo(w, "Board is empty")
				printNextStep(w, "Add the default widgets", appName+" seed")
				return nil
			}
			fmt.Fprintln(w, renderGrid(gridView{Cols: doc.Cols, Items: items}))
			fmt.Fprintln(w)
			fmt.Fprintln(w, widgetTable(items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout document as JSON")
	return cmd
}

// kindsCommand creates the kinds command.
func (c *CLI) kindsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the widget kinds and their size limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := c.kinds()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(kinds)
			}
			fmt.Fprintln(w, kindTable(kinds))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the kinds as JSON")
	return cmd
}

// kinds returns the configured widget kinds without opening the store.
func (c *CLI) kinds() ([]grid.Kind, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return reg.Kinds(), nil
}

// =============================================================================
// Completion Helpers
// =============================================================================

func (c *CLI) completeKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	kinds, err := c.kinds()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (c *CLI) completeWidgets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd.Name() != "remove" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, _, err := c.openBoard(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer b.Close()

	var ids []string
	for _, it := range b.Snapshot() {
		ids = append(ids, it.ID)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
