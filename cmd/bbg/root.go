// ABOUTME: Root Cobra command for bbg CLI.
// ABOUTME: Builds the App once per process via PersistentPreRunE so shell lines share it.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/bbg/internal/app"
	"github.com/harperreed/bbg/internal/config"
	"github.com/harperreed/bbg/internal/logging"
	"github.com/harperreed/bbg/internal/metrics"
	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// cli holds process-wide state. The command tree is rebuilt for every shell
// line, but the App and its store live as long as the process.
type cli struct {
	in  io.Reader
	out io.Writer

	as       string
	noSeed   bool
	seedFile string
	logLevel string

	cfg     *config.Config
	log     *logrus.Entry
	store   *storage.Store
	app     *app.App
	inShell bool
}

func newCLI(in io.Reader, out io.Writer) *cli {
	return &cli{in: in, out: out}
}

// setup loads config and seeds the store on first use.
func (c *cli) setup() error {
	if c.app != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.noSeed {
		off := false
		cfg.Seed = &off
	}
	if c.seedFile != "" {
		cfg.SeedFile = c.seedFile
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	log, err := logging.New(cfg.GetLogLevel(), nil)
	if err != nil {
		return err
	}

	store, err := cfg.OpenStore(log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	c.cfg = cfg
	c.log = log
	c.store = store
	c.app = app.New(store, app.WithLogger(log), app.WithMetrics(metrics.New()))
	return nil
}

// loginAs handles --as role[:id], e.g. "admin" or "captain:c1".
func (c *cli) loginAs(as string) error {
	roleName, id, _ := strings.Cut(as, ":")
	role, err := models.ParseRole(roleName)
	if err != nil {
		return err
	}
	_, err = c.app.Login(role, id)
	return err
}

func (c *cli) close() {
	if c.store != nil {
		_ = c.store.Close()
		c.store = nil
		c.app = nil
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "bbg",
		Short: "Role-based gym dashboard",
		Long: `bbg is a gym dashboard for an administrator, captains and members.

WHAT IT MANAGES:

  Captains    staff who supervise members
  Members     gym clients, each assigned to one captain
  Equipment   stock items with a condition (Good, Fair, Poor)
  Workouts    a member's session on one piece of equipment
  Payments    Monthly, Quarterly or Yearly subscriptions

ROLES:

  admin       sees and edits everything
  captain     sees own members and their workouts; no payments
  member      sees only itself, its workouts and its payments

All data lives in memory and starts from a demo gym. Use the shell to keep
one session across commands:

  $ bbg shell
  bbg> login captain c1
  bbg(captain)> member list
  bbg(captain)> workout add --member m1 --equipment e2 --sets 3 --reps 10 --duration 30
  bbg(captain)> exit

ONE-SHOT:

  $ bbg --as admin dashboard
  $ bbg --as member:m1 payment list
  $ bbg --as admin export yaml -o seed.yaml

SERVERS:

  $ bbg serve     # JSON API on 127.0.0.1:8080
  $ bbg mcp       # Model Context Protocol over stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipApp"] == "true" {
				return nil
			}
			if err := c.setup(); err != nil {
				return err
			}
			if c.as != "" {
				if err := c.loginAs(c.as); err != nil {
					return fmt.Errorf("--as %s: %w", c.as, err)
				}
				c.as = ""
			}
			return nil
		},
	}

	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.as, "as", "", "log in before running, as role[:id] (admin, captain:c1, member:m1)")
	if !c.inShell {
		flags.BoolVar(&c.noSeed, "no-seed", false, "start with an empty store instead of the demo gym")
		flags.StringVar(&c.seedFile, "seed-file", "", "load this YAML or JSON dataset instead of the demo gym")
		flags.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	}

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newDashboardCmd(c),
		newCaptainCmd(c),
		newMemberCmd(c),
		newEquipmentCmd(c),
		newWorkoutCmd(c),
		newPaymentCmd(c),
		newExportCmd(c),
		newConfigCmd(c),
	)
	if !c.inShell {
		root.AddCommand(
			newShellCmd(c),
			newMCPCmd(c),
			newServeCmd(c),
		)
	}
	return root
}
