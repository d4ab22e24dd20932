// Package paths resolves configuration and storage file locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// StorageFileName is the catalog file inside the data directory.
const StorageFileName = "storage.json"

// ConfigFileName is the settings file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "BOOKMON_CONFIG_DIR"
	EnvDataDir   = "BOOKMON_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/bookmon (fallback ~/.config/bookmon)
// macOS:   ~/Library/Application Support/bookmon
// Windows: %APPDATA%/bookmon
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "bookmon"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "bookmon"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "bookmon"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/bookmon (fallback ~/.local/share/bookmon)
// macOS:   ~/Library/Application Support/bookmon
// Windows: %APPDATA%/bookmon
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "bookmon"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "bookmon"), nil
	default:
		// macOS and Windows: same as config dir.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "bookmon"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > BOOKMON_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveStoragePath returns the storage file location following the
// precedence chain: flag > config file value > BOOKMON_DATA_DIR env >
// DefaultDataDir()/storage.json.
func ResolveStoragePath(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		abs, err := filepath.Abs(env)
		if err != nil {
			return "", err
		}
		return filepath.Join(abs, StorageFileName), nil
	}
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StorageFileName), nil
}
