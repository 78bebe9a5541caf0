package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Load reads the configuration file discovered per DiscoverConfigFile,
// overlays it on DefaultConfig, binds CLI flags so they take precedence,
// and returns the resulting immutable snapshot. When no config file is
// found, strict-defaults mode is signalled via Config.StrictDefaults()
// rather than failing: a missing config file is a valid, stricter
// starting point, not an error.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	defaults := DefaultConfig()
	for key, value := range asViperMap(defaults) {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("NODE_FIREWALL")
	v.AutomaticEnv()

	bindFlags(v, fs)

	path := DiscoverConfigFile()
	strict := path == ""

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strict {
		cfg.Mode.StrictMode = true
		cfg.Filesystem.BlockedReadPaths = unionStrings(cfg.Filesystem.BlockedReadPaths, StrictDefaultsSensitivePaths())
	}

	cfg.digest = computeDigest(cfg)

	return cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	if fs == nil {
		return
	}

	bind := func(key, flag string) {
		if f := fs.Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}

	bind("mode.enabled", "enabled")
	bind("mode.strict_mode", "strict-mode")
	bind("mode.alert_only", "alert-only")
	bind("mode.interactive", "interactive")
}

func asViperMap(cfg Config) map[string]any {
	return map[string]any{
		"mode.enabled":      cfg.Mode.Enabled,
		"mode.interactive":  cfg.Mode.Interactive,
		"mode.strict_mode":  cfg.Mode.StrictMode,
		"mode.alert_only":   cfg.Mode.AlertOnly,

		"filesystem.blocked_read_paths":  cfg.Filesystem.BlockedReadPaths,
		"filesystem.blocked_write_paths": cfg.Filesystem.BlockedWritePaths,
		"filesystem.blocked_extensions":  cfg.Filesystem.BlockedExtensions,
		"filesystem.allowed_paths":       cfg.Filesystem.AllowedPaths,

		"network.enabled":                cfg.Network.Enabled,
		"network.mode":                   string(cfg.Network.Mode),
		"network.blocked_domains":        cfg.Network.BlockedDomains,
		"network.allowed_domains":        cfg.Network.AllowedDomains,
		"network.suspicious_ports":       cfg.Network.SuspiciousPorts,
		"network.credential_patterns":    cfg.Network.CredentialPatterns,
		"network.allow_localhost":        cfg.Network.AllowLocalhost,
		"network.allow_private_networks": cfg.Network.AllowPrivateNetworks,

		"commands.blocked_patterns": cfg.Commands.BlockedPatterns,
		"commands.allowed_commands": cfg.Commands.AllowedCommands,

		"environment.protected_variables":         cfg.Environment.ProtectedVariables,
		"environment.allow_trusted_modules_access": cfg.Environment.AllowTrustedModulesAccess,

		"behavioral.monitor_lifecycle_scripts": cfg.Behavioral.MonitorLifecycleScripts,
		"behavioral.max_network_requests":      cfg.Behavioral.MaxNetworkRequests,
		"behavioral.max_file_writes":           cfg.Behavioral.MaxFileWrites,
		"behavioral.max_process_spawns":        cfg.Behavioral.MaxProcessSpawns,
		"behavioral.alert_thresholds":          cfg.Behavioral.AlertThresholds,

		"trusted_modules": cfg.TrustedModules,
		"exceptions":      cfg.Exceptions,
		"reporting":       cfg.Reporting,
		"analytics":       cfg.Analytics,
	}
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	return out
}
