// Package cli implements the gridboard command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/buildinfo"
	"github.com/matzehuels/gridboard/pkg/config"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "gridboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	boardName  string

	// openStore opens the configured backend; tests replace it.
	openStore func(ctx context.Context, cfg config.Config) (store.Store, error)
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	c.openStore = c.defaultOpenStore
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Gridboard arranges dashboard widgets on a collision-free grid",
		Long: `Gridboard manages dashboard layouts: widgets of fixed kinds placed on a
column grid, moved and resized with push or rearrange conflict resolution,
and persisted to a file, Redis or MongoDB store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gridboard/config.toml)")
	root.PersistentFlags().StringVarP(&c.boardName, "board", "b", "", "board name (default \""+config.DefaultBoard+"\")")

	root.AddCommand(c.kindsCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.reflowCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.seedCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Board Factory
// =============================================================================

// loadConfig reads --config, or the default location if the flag is unset.
// An explicit path must exist.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		return config.LoadFile(c.configPath)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

// board returns the name selected by --board.
func (c *CLI) board() string {
	if c.boardName == "" {
		return config.DefaultBoard
	}
	return c.boardName
}

// openBoard loads the config, opens the store and loads the selected board.
// The caller must Close the board.
func (c *CLI) openBoard(ctx context.Context) (*board.Board, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	engine, err := newEngine(cfg, c.Logger)
	if err != nil {
		return nil, cfg, err
	}
	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return nil, cfg, err
	}
	b, err := board.New(board.Options{
		Name:   c.board(),
		Engine: engine,
		Store:  st,
		Keyer:  cfg.Keyer(),
		Logger: c.Logger,
	})
	if err != nil {
		_ = st.Close()
		return nil, cfg, err
	}
	if err := b.Open(ctx); err != nil {
		_ = b.Close()
		return nil, cfg, err
	}
	return b, cfg, nil
}

func newEngine(cfg config.Config, logger *log.Logger) (*grid.Engine, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	return grid.NewEngine(cfg.GridGeometry(), reg, cfg.InitialCols(),
		grid.WithPolicy(policy), grid.WithLogger(logger)), nil
}

// defaultOpenStore opens the configured backend, showing a spinner while a
// remote backend connects.
func (c *CLI) defaultOpenStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	backend := strings.ToLower(opts.Backend)
	if backend != store.BackendRedis && backend != store.BackendMongo {
		return store.Open(ctx, opts)
	}

	spinner := newSpinnerWithContext(ctx, os.Stderr, "Connecting to "+backend+"...")
	spinner.Start()
	st, err := store.Open(ctx, opts)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("connected", "backend", backend)
	return st, nil
}
