// Package cmd wires the firewall's cobra command tree: run, report,
// config, and version.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cmdconfig "github.com/ossguard/nodefw/cmd/config"
	cmdreport "github.com/ossguard/nodefw/cmd/report"
	"github.com/ossguard/nodefw/cmd/run"
	cmdversion "github.com/ossguard/nodefw/cmd/version"
)

// NewRootCommand builds the "firewall" root command and all subcommands.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:              "firewall",
		Short:            "Runtime access-control firewall for third-party modules",
		TraverseChildren: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("firewall: %s is not a valid command", args[0])
		},
	}

	registerPersistentFlags(root.PersistentFlags())

	root.AddCommand(run.NewCommand())
	root.AddCommand(cmdreport.NewCommand())
	root.AddCommand(cmdconfig.NewCommand())
	root.AddCommand(cmdversion.NewCommand())

	return root
}

// registerPersistentFlags declares the CLI flags config.Load binds onto
// the Configuration Snapshot, taking precedence over file/env values.
func registerPersistentFlags(fs *pflag.FlagSet) {
	fs.Bool("enabled", true, "enable the firewall")
	fs.Bool("strict-mode", false, "deny filesystem access unless explicitly allowed")
	fs.Bool("alert-only", false, "downgrade every deny to a warning")
	fs.Bool("interactive", false, "treat the run as interactive for command severity escalation")
}
