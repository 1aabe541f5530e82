// Package paths locates per-user files for mobileserver.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigFileName is the file looked up in ConfigDir when no --config is given.
const ConfigFileName = "config.yaml"

// ConfigDir returns the config directory for mobileserver.
// Order: XDG_CONFIG_HOME/mobileserver, platform-specific fallback.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mobileserver")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("AppData"); appData != "" {
			return filepath.Join(appData, "mobileserver")
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mobileserver")
}

// DefaultConfigFile returns the per-user config file path. The file is
// optional; a missing file contributes nothing to the configuration.
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}
