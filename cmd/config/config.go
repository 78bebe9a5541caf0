// Package config implements the firewall CLI's "config" subcommand:
// init/show/validate over the config file discovery rules.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ossguard/nodefw/config"
)

// NewCommand builds the "config" subcommand with its init/show/validate
// children.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the firewall configuration",
	}

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func newInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file to the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = ".firewall-config.json"
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config: %s already exists", path)
			}

			data, err := json.MarshalIndent(config.DefaultConfig(), "", "  ")
			if err != nil {
				return err
			}

			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("config: failed to write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote default configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "output", "", "destination path (default .firewall-config.json)")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration and which file it came from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("config: failed to load configuration: %w", err)
			}

			source := config.DiscoverConfigFile()
			if source == "" {
				source = "(none found, strict defaults applied)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source: %s\n", source)
			fmt.Fprintf(cmd.OutOrStdout(), "digest: %s\n", cfg.Digest())

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the discovered configuration file without running the firewall",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(cmd.Flags()); err != nil {
				return fmt.Errorf("config: invalid configuration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		},
	}
}
