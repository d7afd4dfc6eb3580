package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/internal/server"
	"github.com/matzehuels/gridboard/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over a JSON HTTP API",
		Long: `Serve the selected board over HTTP until interrupted.

Routes:
  GET    /api/layout                 current layout document
  PUT    /api/layout                 replace the layout
  GET    /api/kinds                  widget kinds
  POST   /api/widgets                add a widget {id?, type, x?, y?}
  GET    /api/widgets/{id}           one widget
  DELETE /api/widgets/{id}           remove a widget
  POST   /api/widgets/{id}/move      {x, y}
  POST   /api/widgets/{id}/resize    {direction, w, h}
  PUT    /api/widgets/{id}/position  {x, y} without displacing others
  PUT    /api/widgets/{id}/size      {w, h} without displacing others
  POST   /api/reflow                 {cols} or {width}
  POST   /api/reset                  clear the board
  POST   /api/seed                   add the default widgets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, cfg, err := c.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			observability.NewLogHooks(c.Logger).Install()
			defer observability.Reset()

			return server.New(b, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}
