// ABOUTME: CLI commands for managing captains.
// ABOUTME: Supports list, add and delete; delete is blocked while members are assigned.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/models"
	"github.com/spf13/cobra"
)

func newCaptainCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "captain",
		Aliases: []string{"captains", "c"},
		Short:   "Manage captains",
		Long: `Captains are the gym staff who supervise members.

Only the administrator may add or delete captains. A captain cannot be
deleted while any member is assigned to it.`,
	}
	cmd.AddCommand(newCaptainListCmd(c), newCaptainAddCmd(c), newCaptainDeleteCmd(c))
	return cmd
}

func newCaptainListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List captains",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			captains, err := c.app.Captains()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(captains) == 0 {
				fmt.Fprintln(out, "No captains found.")
				return nil
			}
			for _, cp := range captains {
				fmt.Fprintf(out, "%s %s %s %s\n",
					faint(padRight(shortID(cp.ID), shortIDLen)),
					padRight(cp.Name, 20),
					padRight(truncate(cp.Specialization, 24), 24),
					faint(cp.Experience))
			}
			return nil
		},
	}
}

func newCaptainAddCmd(c *cli) *cobra.Command {
	var in models.CaptainInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a captain",
		Long: `Add a captain.

Examples:
  captain add --name "Dana Cruz" --specialization Yoga --experience "4 years"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := c.app.AddCaptain(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Added captain %s", created.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", faint(shortID(created.ID)), created.Specialization)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Specialization, "specialization", "", "training specialization")
	cmd.Flags().StringVar(&in.Experience, "experience", "", "experience, e.g. \"5 years\"")
	return cmd
}

func newCaptainDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"del", "rm"},
		Short:   "Delete a captain by id or id prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := c.app.DeleteCaptain(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("✗ Deleted captain %s", deleted.Name))
			return nil
		},
	}
}
