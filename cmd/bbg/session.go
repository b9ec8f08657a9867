// ABOUTME: CLI commands for choosing who is logged in.
// ABOUTME: login, logout and whoami over the process-wide session.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/session"
	"github.com/spf13/cobra"
)

func newLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login <admin|captain|member> [id]",
		Short: "Log in as the administrator, a captain or a member",
		Long: `Select the identity the dashboard acts as. There are no passwords:
logging in is choosing a role and, for captains and members, a record id.

EXAMPLES:

  login admin
  login captain c1
  login member m2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := models.ParseRole(args[0])
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 2 {
				id = args[1]
			}
			if role != models.RoleAdministrator && id == "" {
				return fmt.Errorf("login %s requires an id", role)
			}

			ident, err := c.app.Login(role, id)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Logged in as %s (%s)", ident.Name, ident.Role))
			return nil
		},
	}
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("Logged out."))
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ident, err := c.app.Whoami()
			if errors.Is(err, session.ErrNoSession) {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n", ident.Name, faint("("+ident.Role.String()+", "+ident.ID+")"), ident.Email)
			return nil
		},
	}
}
