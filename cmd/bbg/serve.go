// ABOUTME: CLI command for starting the JSON API server.
// ABOUTME: Serves until SIGINT or SIGTERM, then shuts Fiber down.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/bbg/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Long: `Start the HTTP JSON API.

ROUTES:

  GET|POST|DELETE /session
  GET             /dashboard
  GET|POST        /captains   /members   /equipment   /workouts   /payments
  DELETE          /captains/:id  /members/:id  /equipment/:id  /workouts/:id
  GET             /metrics    Prometheus metrics

Errors are application/problem+json documents.

EXAMPLES:

  bbg serve
  bbg serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.GetListenAddr()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.New(c.app, c.log).Listen(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
