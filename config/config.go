// Package config holds the immutable configuration snapshot for the
// firewall: the policy tables and thresholds it enforces, loaded once
// via spf13/viper and shared read-only thereafter.
package config

// Mode controls the firewall's overall enforcement posture.
type Mode struct {
	Enabled     bool `mapstructure:"enabled"`
	Interactive bool `mapstructure:"interactive"`
	StrictMode  bool `mapstructure:"strict_mode"`
	AlertOnly   bool `mapstructure:"alert_only"`
}

// Filesystem holds the filesystem policy tables.
type Filesystem struct {
	BlockedReadPaths  []string `mapstructure:"blocked_read_paths"`
	BlockedWritePaths []string `mapstructure:"blocked_write_paths"`
	BlockedExtensions []string `mapstructure:"blocked_extensions"`
	AllowedPaths      []string `mapstructure:"allowed_paths"`
}

// NetworkMode is the enforcement posture for the network policy.
type NetworkMode string

const (
	NetworkModeBlock   NetworkMode = "block"
	NetworkModeMonitor NetworkMode = "monitor"
)

// Network holds the network policy tables.
type Network struct {
	Enabled               bool        `mapstructure:"enabled"`
	Mode                  NetworkMode `mapstructure:"mode"`
	BlockedDomains        []string    `mapstructure:"blocked_domains"`
	AllowedDomains        []string    `mapstructure:"allowed_domains"`
	SuspiciousPorts       []uint16    `mapstructure:"suspicious_ports"`
	CredentialPatterns    []string    `mapstructure:"credential_patterns"`
	AllowLocalhost        bool        `mapstructure:"allow_localhost"`
	AllowPrivateNetworks  bool        `mapstructure:"allow_private_networks"`
}

// BlockedCommandPattern is a single regex-based command rule.
type BlockedCommandPattern struct {
	Regex       string `mapstructure:"regex"`
	Severity    string `mapstructure:"severity"`
	Description string `mapstructure:"description"`
}

// Commands holds the command policy tables.
type Commands struct {
	BlockedPatterns  []BlockedCommandPattern `mapstructure:"blocked_patterns"`
	AllowedCommands  []string                `mapstructure:"allowed_commands"`
}

// Environment holds the environment-read policy tables.
type Environment struct {
	ProtectedVariables       []string `mapstructure:"protected_variables"`
	AllowTrustedModulesAccess bool    `mapstructure:"allow_trusted_modules_access"`
}

// AlertThresholds are per-counter thresholds that elevate risk to medium
// without necessarily denying anything.
type AlertThresholds struct {
	FileReads        int `mapstructure:"file_reads"`
	NetworkRequests  int `mapstructure:"network_requests"`
	ProcessSpawns    int `mapstructure:"process_spawns"`
}

// Behavioral holds the Behavioral Monitor's configured limits.
type Behavioral struct {
	MonitorLifecycleScripts bool            `mapstructure:"monitor_lifecycle_scripts"`
	MaxNetworkRequests      int             `mapstructure:"max_network_requests"`
	MaxFileWrites           int             `mapstructure:"max_file_writes"`
	MaxProcessSpawns        int             `mapstructure:"max_process_spawns"`
	AlertThresholds         AlertThresholds `mapstructure:"alert_thresholds"`
}

// TrustedModuleEntry identifies a trusted module, with an optional
// semver constraint narrowing a plain exact-id trust entry. An empty
// Version means "trust unconditionally".
type TrustedModuleEntry struct {
	ID      string `mapstructure:"id"`
	Version string `mapstructure:"version"`
}

// ModuleException is a per-module policy allowance overriding default
// blocks for matching targets.
type ModuleException struct {
	AllowFilesystem []string `mapstructure:"allow_filesystem"`
	AllowNetwork    []string `mapstructure:"allow_network"`
	AllowCommands   []string `mapstructure:"allow_commands"`
}

// Exceptions holds the per-module policy allowances keyed by module id.
type Exceptions struct {
	Modules map[string]ModuleException `mapstructure:"modules"`
}

// SourcePattern is a single regex-based malicious-source rule consulted
// by the module source scanner.
type SourcePattern struct {
	Regex       string `mapstructure:"regex"`
	Severity    string `mapstructure:"severity"`
	Description string `mapstructure:"description"`
}

// Modules holds the Module Source Scanner's policy tables.
type Modules struct {
	MaliciousPatterns []SourcePattern `mapstructure:"malicious_patterns"`
}

// Reporting holds the audit log and structured report file paths.
type Reporting struct {
	LogFile    string `mapstructure:"log_file"`
	ReportFile string `mapstructure:"report_file"`
}

// Analytics controls the ambient, opt-in telemetry described in
// SPEC_FULL.md's ambient stack. Disabled by default.
type Analytics struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// Config is the full, immutable Configuration Snapshot. Once constructed
// via Load it must never be mutated; a reload produces a brand new
// Config that replaces the live reference via Snapshot.Store.
type Config struct {
	Mode        Mode                       `mapstructure:"mode"`
	Filesystem  Filesystem                 `mapstructure:"filesystem"`
	Network     Network                    `mapstructure:"network"`
	Commands    Commands                   `mapstructure:"commands"`
	Environment Environment                `mapstructure:"environment"`
	Behavioral  Behavioral                 `mapstructure:"behavioral"`
	TrustedModules []TrustedModuleEntry    `mapstructure:"trusted_modules"`
	Modules     Modules                    `mapstructure:"modules"`
	Exceptions  Exceptions                 `mapstructure:"exceptions"`
	Reporting   Reporting                  `mapstructure:"reporting"`
	Analytics   Analytics                  `mapstructure:"analytics"`

	// digest is computed once by Load/DefaultConfig and surfaced via
	// Digest() for the Shutdown Reporter's configuration digest field.
	digest string
}

// Digest returns the SHA-256 digest of this snapshot's canonical encoding,
// computed at load time (see loadDigest in viper.go).
func (c Config) Digest() string {
	return c.digest
}
