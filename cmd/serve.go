package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/bnema/halo-bridge/internal/adapters/toolserver"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Halo tools over HTTP",
		Long:  "serve exposes GET /healthz, GET /tools, POST /tools/:name and GET /metrics. It tries to set up a session from the current tokens on start.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := toolserver.NewServer(toolserver.Config{
				Addr:     addr,
				Registry: app.registry,
				Metrics:  app.metrics.Handler(),
				Startup: func(ctx context.Context) error {
					_, err := app.sessions.SetupSession(ctx)
					return err
				},
				Logger: app.logger.Named("toolserver"),
			})
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.cfg.ServeAddr, "Listen address")
	return cmd
}
