// Package paths resolves where objcat keeps its configuration and catalog
// data, and names the files inside those directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under platform config and data roots.
const AppName = "objcat"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".objcat"
	DefaultDataDirName   = ".objcat-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "OBJCAT_CONFIG_DIR"
	EnvDataDir   = "OBJCAT_DATA_DIR"
)

// File names inside the config directory.
const (
	ConfigFileName = "config.yaml"
	LogFileName    = "objcat.log"
)

// platform holds platform lookups that tests override.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// appDir returns the objcat directory under the platform root. On Linux the
// root is $<xdgVar>, falling back to ~/<linuxFallback>; elsewhere it is
// os.UserConfigDir (~/Library/Application Support, %APPDATA%).
func appDir(xdgVar string, linuxFallback ...string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, linuxFallback...)
	return filepath.Join(append(parts, AppName)...), nil
}

// DefaultConfigDir returns the platform default configuration directory:
// $XDG_CONFIG_HOME/objcat or ~/.config/objcat on Linux.
func DefaultConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default data directory:
// $XDG_DATA_HOME/objcat or ~/.local/share/objcat on Linux.
func DefaultDataDir() (string, error) {
	return appDir("XDG_DATA_HOME", ".local", "share")
}

// firstAbs returns the absolute form of the first non-empty candidate.
func firstAbs(candidates ...string) (string, bool, error) {
	for _, c := range candidates {
		if c != "" {
			p, err := filepath.Abs(c)
			return p, true, err
		}
	}
	return "", false, nil
}

// ResolveConfigDir returns the configuration directory:
// flag > OBJCAT_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if p, ok, err := firstAbs(flag, os.Getenv(EnvConfigDir)); ok {
		return p, err
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory:
// flag > data_dir from config.yaml > OBJCAT_DATA_DIR > $(CWD)/.objcat-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	if p, ok, err := firstAbs(flag, configValue, os.Getenv(EnvDataDir)); ok {
		return p, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// LogFile returns the path of the TUI log inside configDir.
func LogFile(configDir string) string {
	return filepath.Join(configDir, LogFileName)
}
