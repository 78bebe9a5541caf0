package config

import (
	"os"
	"path/filepath"
)

const (
	cwdConfigNameDotted = ".firewall-config.json"
	cwdConfigNamePlain  = "firewall-config.json"
)

// DiscoverConfigFile checks, in order: current working directory
// ".firewall-config.json", current working
// directory "firewall-config.json", user home ".firewall-config.json".
// The first existing file wins; "" is returned when none exist.
func DiscoverConfigFile() string {
	cwd, err := os.Getwd()
	if err == nil {
		for _, name := range []string{cwdConfigNameDotted, cwdConfigNamePlain} {
			candidate := filepath.Join(cwd, name)
			if fileExists(candidate) {
				return candidate
			}
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, cwdConfigNameDotted)
		if fileExists(candidate) {
			return candidate
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
