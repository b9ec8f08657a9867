// ABOUTME: CLI commands for inspecting and writing the config file.
// ABOUTME: config show prints the effective settings; config init writes defaults.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise configuration",
		Long: `Configuration lives at $XDG_CONFIG_HOME/bbg/config.json
(~/.config/bbg/config.json). A missing file means defaults.

FIELDS:

  seed          load the demo gym at startup (default true)
  seed_file     YAML or JSON dataset to load instead
  log_level     debug, info, warn or error (default warn)
  listen_addr   address for 'bbg serve' (default 127.0.0.1:8080)

Environment variables BBG_SEED, BBG_SEED_FILE, BBG_LOG_LEVEL and
BBG_LISTEN_ADDR override the file; a .env file is read if present.`,
		Annotations: map[string]string{"skipApp": "true"},
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipApp": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			effective := map[string]any{
				"path":        config.GetConfigPath(),
				"seed":        cfg.SeedDemo(),
				"seed_file":   cfg.GetSeedFile(),
				"log_level":   cfg.GetLogLevel(),
				"listen_addr": cfg.GetListenAddr(),
			}
			data, err := json.MarshalIndent(effective, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipApp": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			seed := true
			cfg := &config.Config{
				Seed:       &seed,
				LogLevel:   "warn",
				ListenAddr: config.DefaultListenAddr,
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Wrote %s", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
