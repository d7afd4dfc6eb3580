package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/snapshot"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the layout as a JSON document",
		Long:  `Write the layout as a versioned JSON document to file, or to stdout if no file (or "-") is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			doc := b.Document()
			if len(args) == 0 || args[0] == "-" {
				data, err := snapshot.Marshal(doc)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}

			if err := snapshot.WriteFile(doc, args[0]); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Exported %s widgets", StyleNumber.Render(strconv.Itoa(len(doc.Items))))
			printFile(w, args[0])
			return nil
		},
	}
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the layout with a JSON document",
		Long: `Replace the layout with a JSON document read from file, or from stdin if
file is "-". Bare arrays of widgets, as written by older dashboards, are
accepted and migrated. The document is rejected as a whole if any widget is
invalid or overlaps another.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			b, _, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			prog := newProgress(c.Logger)
			if err := b.Import(cmd.Context(), doc); err != nil {
				return err
			}
			prog.done("Imported layout")
			printSuccess(cmd.OutOrStdout(), "Imported %s widgets into %s",
				StyleNumber.Render(strconv.Itoa(len(doc.Items))), StyleHighlight.Render(b.Name()))
			return nil
		},
	}
}

func readDocument(stdin io.Reader, path string) (snapshot.Document, error) {
	if path != "-" {
		return snapshot.ReadFile(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return snapshot.Document{}, err
	}
	return snapshot.Unmarshal(data)
}
