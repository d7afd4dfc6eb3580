package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and manage the layout store",
	}

	cmd.AddCommand(c.storePathCommand())
	cmd.AddCommand(c.storeClearCommand())
	return cmd
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where layouts are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.StoreOptions()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch strings.ToLower(opts.Backend) {
			case store.BackendFile, "":
				fmt.Fprintln(w, opts.Dir)
			case store.BackendRedis:
				fmt.Fprintf(w, "redis://%s/%d\n", opts.Redis.Addr, opts.Redis.DB)
			case store.BackendMongo:
				fmt.Fprintln(w, opts.Mongo.URI)
			default:
				fmt.Fprintf(w, "%s (not persisted)\n", opts.Backend)
			}
			return nil
		},
	}
}

// storeClearCommand creates the "store clear" subcommand.
func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved layout in the file store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.StoreOptions()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			backend := strings.ToLower(opts.Backend)
			if backend != store.BackendFile && backend != "" {
				printWarning(w, "store clear only supports the file backend (configured: %s)", opts.Backend)
				printNextStep(w, "Reset a single board instead", appName+" reset --board <name>")
				return nil
			}

			fs, err := store.NewFileStore(opts.Dir)
			if err != nil {
				return err
			}
			defer fs.Close()

			n, err := fs.Clear()
			if err != nil {
				return err
			}
			printSuccess(w, "Cleared %d saved layouts", n)
			printDetail(w, "Directory: %s", fs.Dir())
			return nil
		},
	}
}
