// Package run implements the firewall CLI's "run" subcommand: it builds
// one FirewallContext, installs the interception adapters, execs the
// wrapped command under supervision, and drives the shutdown reporter on
// exit.
package run

import (
	"os"
	"os/exec"

	"github.com/safedep/dry/log"
	"github.com/spf13/cobra"

	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/intercept"
	"github.com/ossguard/nodefw/internal/analytics"
	"github.com/ossguard/nodefw/internal/eventlog"
	"github.com/ossguard/nodefw/internal/usefulerror"
	"github.com/ossguard/nodefw/report"
)

// NewCommand builds the "run" subcommand.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "run -- <command> [args...]",
		Short:              "Run a command under firewall supervision",
		DisableFlagParsing: false,
		Args:               cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnderFirewall(cmd, args)
		},
	}

	return cmd
}

func runUnderFirewall(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return usefulerror.ConfigLoadFailed(err)
	}

	if os.Getenv("NODE_FIREWALL") != "1" {
		log.Warnf("run: NODE_FIREWALL is not set to 1, the firewall core is disabled for this run")
		cfg.Mode.Enabled = false
	}

	if os.Getenv("NODE_FIREWALL_INTERACTIVE") != "" {
		cfg.Mode.Interactive = true
	}

	if cfg.Analytics.Enabled {
		if err := analytics.Init(cfg.Analytics.APIKey); err != nil {
			log.Warnf("run: failed to initialize telemetry: %v", err)
		}
		defer analytics.Close()
		analytics.TrackStart()
	}

	auditLogger, err := eventlog.Open(cfg.Reporting.LogFile)
	if err != nil {
		log.Warnf("run: failed to open audit log %s: %v", cfg.Reporting.LogFile, err)
		auditLogger, _ = eventlog.Open("")
	}
	defer auditLogger.Close()

	ctx := intercept.New(cfg,
		intercept.WithReadyMode(intercept.ReadyModePermissive),
		intercept.WithAuditLogger(auditLogger),
	)

	if ctx.Disabled() {
		log.Debugf("run: build-process sentinel matched, interception disabled for this run")
	}

	report.WatchSignals(ctx.OriginalStderr(), ctx.Monitor(), ctx.Config(), ctx.SessionID())

	installAdapters(ctx)

	childExitCode := execChild(cmd, args)
	snapshot := ctx.Monitor().Snapshot()
	exitCode := report.Shutdown(ctx.OriginalStderr(), ctx.Monitor(), ctx.Config(), ctx.SessionID(), childExitCode)

	if cfg.Analytics.Enabled {
		analytics.TrackExit(snapshot.Risk.String())
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// installAdapters wires every primitive adapter to ctx. The adapters
// don't take effect on the process's own filesystem/network/command
// calls here (the concrete hook-wrapping mechanics are host-runtime
// specific) but establish the per-run capability set a future
// in-process hook layer would close over.
func installAdapters(ctx *intercept.FirewallContext) {
	adapters := []intercept.Adapter{
		intercept.NewFSAdapter(),
		intercept.NewNetAdapter(),
		intercept.NewCmdAdapter(),
		intercept.NewEnvAdapter(),
		intercept.NewModuleAdapter(),
	}

	for _, a := range adapters {
		if err := a.Install(ctx); err != nil {
			log.Warnf("run: failed to install %s adapter: %v", a.Name(), err)
		}
	}
}

// execChild runs the wrapped command to completion and returns its exit
// code, propagating the executed command's own exit code.
func execChild(cmd *cobra.Command, args []string) int {
	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		log.Errorf("run: failed to execute %s: %v", args[0], err)
		return 1
	}
	return 0
}
