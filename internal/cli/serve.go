package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/sganbold/tentlabel/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	addr := c.Config.Server.Addr

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the solver over HTTP:

  POST /api/solve   accepts the same parameters as the solve command
  GET  /healthz     liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := c.newRunner(cmd.Context(), false)
			defer runner.Close()

			srv := server.New(runner, c.Logger)
			err := srv.ListenAndServe(addr)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")

	return cmd
}
