package config

// defaultCredentialPatterns ships a sane default set for
// network.credential_patterns, used when the loaded config doesn't
// override it. The credential scanner itself has no hard-coded patterns —
// these live entirely in configuration.
var defaultCredentialPatterns = []string{
	`-----BEGIN (RSA |EC |OPENSSH |DSA )?PRIVATE KEY-----`,
	`AKIA[0-9A-Z]{16}`,
	`ghp_[A-Za-z0-9]{36}`,
	`gho_[A-Za-z0-9]{36}`,
	`xox[abp]-[0-9A-Za-z-]{10,}`,
	`(?i)(secret|token|api[_-]?key)[_-]?[a-z0-9]*\s*[:=]\s*['"][A-Za-z0-9/+=_-]{16,}['"]`,
}

// defaultBlockedCommandPatterns ships the pipe-to-shell and common
// exfiltration-shaped command rules used when commands.blocked_patterns
// is unset.
var defaultBlockedCommandPatterns = []BlockedCommandPattern{
	{Regex: `curl[^|]*\|\s*(sh|bash|zsh)`, Severity: "critical", Description: "Pipe curl output to a shell"},
	{Regex: `wget[^|]*\|\s*(sh|bash|zsh)`, Severity: "critical", Description: "Pipe wget output to a shell"},
	{Regex: `\brm\s+-rf\s+/(\s|$)`, Severity: "critical", Description: "Recursive delete of filesystem root"},
	{Regex: `\bnc\s+-e\b`, Severity: "critical", Description: "Netcat reverse shell"},
	{Regex: `/dev/tcp/`, Severity: "high", Description: "Bash TCP device redirection"},
}

// defaultMaliciousSourcePatterns ships the default rule set for
// modules.malicious_patterns, representative of common malicious
// fragment shapes: base64-driven eval, hex-escape obfuscation,
// reverse-shell constructs, native binding access, credential
// exfiltration shapes.
var defaultMaliciousSourcePatterns = []SourcePattern{
	{Regex: `eval\s*\(\s*(Buffer\.from|atob)\s*\(`, Severity: "critical", Description: "Base64-decoded eval"},
	{Regex: `(\\x[0-9a-fA-F]{2}){8,}`, Severity: "high", Description: "Long hex-escape obfuscation run"},
	{Regex: `require\(['"]child_process['"]\).*exec`, Severity: "high", Description: "Dynamic child_process exec"},
	{Regex: `process\.binding\(`, Severity: "critical", Description: "Raw native binding access"},
	{Regex: `/dev/tcp/|nc\s+-e\b`, Severity: "critical", Description: "Reverse-shell construct"},
	{Regex: `(?i)fetch\(['"]https?://[^'"]+['"]\).*env`, Severity: "medium", Description: "Environment exfiltration over HTTP"},
}

// strictArgumentTable lists argv0+flag combinations treated as a threat
// regardless of the configured regex rules.
var strictArgumentTable = []struct {
	Argv0 string
	Flag  string
}{
	{"bash", "-c"},
	{"sh", "-c"},
	{"zsh", "-c"},
	{"curl", "-o"},
	{"curl", "--output"},
	{"wget", ""},
	{"nc", ""},
	{"eval", ""},
}

// buildToolAllowlist lists argv0 values that always allow a command,
// regardless of blocked patterns.
var buildToolAllowlist = []string{
	"make", "cmake", "gcc", "g++", "clang", "python", "python3", "node", "npm",
}

// packageManagerToolchainMarkers are call-stack module-id substrings
// recognized as a first-party package-manager toolchain.
var packageManagerToolchainMarkers = []string{
	"npm-lifecycle", "npm-registry-fetch", "pacote", "pip", "yarnpkg",
}

// executableScriptExtensions is the fixed list consulted by the
// executable-by-content check for FS_WRITE/FS_CREATE.
var executableScriptExtensions = []string{
	".sh", ".bash", ".zsh", ".fish", ".command", ".exe", ".bat", ".cmd", ".ps1", ".py", ".rb", ".pl",
}

// strictDefaultsSensitivePaths is the fixed minimal block list activated
// for the Module Source Scanner's resolve stage when no config file is
// found (strict-defaults mode).
var strictDefaultsSensitivePaths = []string{
	"/.ssh/", "/.aws/", "/.gnupg/", "/.kube/", "id_rsa", "id_ed25519",
}

// DefaultConfig returns the canonical default configuration. It mirrors
// generalized defaults for this firewall's policy surface.
func DefaultConfig() Config {
	cfg := Config{
		Mode: Mode{
			Enabled:     true,
			Interactive: false,
			StrictMode:  false,
			AlertOnly:   false,
		},
		Filesystem: Filesystem{
			BlockedReadPaths:  []string{"/.ssh/", "/.aws/credentials", "/.gnupg/"},
			BlockedWritePaths: []string{"/etc/", "/usr/bin/", "/usr/local/bin/"},
			BlockedExtensions: []string{},
			AllowedPaths:      []string{},
		},
		Network: Network{
			Enabled:              true,
			Mode:                 NetworkModeBlock,
			BlockedDomains:       []string{},
			AllowedDomains:       []string{},
			SuspiciousPorts:      []uint16{4444, 1337, 31337},
			CredentialPatterns:   defaultCredentialPatterns,
			AllowLocalhost:       true,
			AllowPrivateNetworks: false,
		},
		Commands: Commands{
			BlockedPatterns: defaultBlockedCommandPatterns,
			AllowedCommands: []string{},
		},
		Environment: Environment{
			ProtectedVariables:        []string{"GITHUB_TOKEN", "NPM_TOKEN", "AWS_SECRET_ACCESS_KEY", "AWS_ACCESS_KEY_ID"},
			AllowTrustedModulesAccess: false,
		},
		Behavioral: Behavioral{
			MonitorLifecycleScripts: true,
			MaxNetworkRequests:      200,
			MaxFileWrites:           500,
			MaxProcessSpawns:        50,
			AlertThresholds: AlertThresholds{
				FileReads:       1000,
				NetworkRequests: 100,
				ProcessSpawns:   20,
			},
		},
		TrustedModules: []TrustedModuleEntry{},
		Modules:        Modules{MaliciousPatterns: defaultMaliciousSourcePatterns},
		Exceptions:     Exceptions{Modules: map[string]ModuleException{}},
		Reporting: Reporting{
			LogFile:    "",
			ReportFile: "",
		},
		Analytics: Analytics{Enabled: false},
	}

	cfg.digest = computeDigest(cfg)
	return cfg
}

// StrictDefaultsSensitivePaths exposes the fixed minimal block list used
// when no config file is found.
func StrictDefaultsSensitivePaths() []string {
	out := make([]string, len(strictDefaultsSensitivePaths))
	copy(out, strictDefaultsSensitivePaths)
	return out
}

// ExecutableScriptExtensions exposes the fixed script-extension list used
// by the filesystem write policy.
func ExecutableScriptExtensions() []string {
	out := make([]string, len(executableScriptExtensions))
	copy(out, executableScriptExtensions)
	return out
}

// BuildToolAllowlist exposes the fixed build-tool argv0 list.
func BuildToolAllowlist() []string {
	out := make([]string, len(buildToolAllowlist))
	copy(out, buildToolAllowlist)
	return out
}

// PackageManagerToolchainMarkers exposes the fixed first-party toolchain
// marker list.
func PackageManagerToolchainMarkers() []string {
	out := make([]string, len(packageManagerToolchainMarkers))
	copy(out, packageManagerToolchainMarkers)
	return out
}

// StrictArgumentHit reports whether argv0 combined with any of args
// matches the strict argument table.
func StrictArgumentHit(argv0 string, args []string) bool {
	for _, entry := range strictArgumentTable {
		if entry.Argv0 != argv0 {
			continue
		}

		if entry.Flag == "" {
			return true
		}

		for _, a := range args {
			if a == entry.Flag {
				return true
			}
		}
	}

	return false
}
