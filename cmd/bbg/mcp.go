// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the process-wide App.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/bbg/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and keeps one dashboard session for
its lifetime. Call the login tool first.

CONFIGURATION:

  {
    "mcpServers": {
      "bbg": { "command": "bbg", "args": ["mcp"] }
    }
  }

AVAILABLE TOOLS:

  login, logout, whoami, dashboard
  list_captains, add_captain, delete_captain
  list_members, add_member, delete_member
  list_equipment, add_equipment, delete_equipment
  list_workouts, add_workout, delete_workout
  list_payments, add_payment

AVAILABLE RESOURCES:

  bbg://session      Current identity
  bbg://dashboard    Dashboard statistics
  bbg://payments     Visible payments with derived status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := mcp.NewServer(c.app, version)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx)
		},
	}
}
