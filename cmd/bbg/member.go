// ABOUTME: CLI commands for managing members.
// ABOUTME: Deleting a member also deletes all of that member's workouts.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/models"
	"github.com/spf13/cobra"
)

func newMemberCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"members", "m"},
		Short:   "Manage members",
		Long: `Members are gym clients. Each member is assigned to one captain.

The administrator manages all members. A captain sees and manages only its
own members; new members default to the logged-in captain.

Deleting a member removes every workout the member logged.`,
	}
	cmd.AddCommand(newMemberListCmd(c), newMemberAddCmd(c), newMemberDeleteCmd(c))
	return cmd
}

func newMemberListCmd(c *cli) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List visible members",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.app.Members(search)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No members found.")
				return nil
			}
			for _, m := range rows {
				fmt.Fprintf(out, "%s %s %s %s %s\n",
					faint(padRight(shortID(m.ID), shortIDLen)),
					padRight(m.Name, 20),
					padRight(truncate(m.Email, 28), 28),
					faint(m.JoinDate.String()),
					m.CaptainName)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name or email")
	return cmd
}

func newMemberAddCmd(c *cli) *cobra.Command {
	var in models.MemberInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member",
		Long: `Add a member. The join date defaults to today.

Examples:
  member add --name "Eve Adams" --email eve@example.com --captain c1
  member add --name "Eve Adams" --email eve@example.com --join-date 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.JoinDate == "" {
				in.JoinDate = models.DateOf(c.app.Now()).String()
			}
			created, err := c.app.AddMember(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Added member %s", created.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s captain %s\n", faint(shortID(created.ID)), created.Email, created.CaptainID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.JoinDate, "join-date", "", "join date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&in.CaptainID, "captain", "", "captain id (default: yourself when logged in as a captain)")
	return cmd
}

func newMemberDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"del", "rm"},
		Short:   "Delete a member and its workouts",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, removed, err := c.app.DeleteMember(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, color.YellowString("✗ Deleted member %s", deleted.Name))
			if len(removed) > 0 {
				fmt.Fprintf(out, "  %s\n", faint(fmt.Sprintf("removed %d workout(s)", len(removed))))
			}
			return nil
		},
	}
}
