// Package paths decides where realty keeps its configuration and its
// database. Each directory resolves through a precedence chain: command-line
// flag, then config.yaml (data dir only), then environment, then the
// platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform base directories.
const AppName = "realty"

// File names inside the configuration directory.
const (
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "REALTY_CONFIG_DIR"
	EnvDataDir   = "REALTY_DATA_DIR"
)

// platform holds the host lookups; tests replace it to exercise other
// operating systems.
var platform = struct {
	goos          string
	getenv        func(string) string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	getenv:        os.Getenv,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/realty (fallback ~/.config/realty)
// macOS:   ~/Library/Application Support/realty
// Windows: %APPDATA%/realty
func DefaultConfigDir() (string, error) {
	if platform.goos == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userConfigSubdir()
}

// DefaultDataDir returns the platform data directory. Outside Linux the
// database lives next to the configuration.
//
// Linux:   $XDG_DATA_HOME/realty (fallback ~/.local/share/realty)
// macOS:   ~/Library/Application Support/realty
// Windows: %APPDATA%/realty
func DefaultDataDir() (string, error) {
	if platform.goos == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return userConfigSubdir()
}

// ResolveConfigDir returns the configuration directory:
// flag > REALTY_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := platform.getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory:
// flag > configValue > REALTY_DATA_DIR > DefaultDataDir().
//
// A relative configValue is taken relative to configDir, so a config.yaml
// saying "data_dir: db" keeps the database beside it.
func ResolveDataDir(flag, configValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		if !filepath.IsAbs(configValue) && configDir != "" {
			configValue = filepath.Join(configDir, configValue)
		}
		return filepath.Abs(configValue)
	}
	if env := platform.getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// EnvFile returns the optional .env path inside configDir.
func EnvFile(configDir string) string {
	return filepath.Join(configDir, EnvFileName)
}

func xdgDir(envVar, fallback string) (string, error) {
	if dir := platform.getenv(envVar); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

// userConfigSubdir covers macOS (~/Library/Application Support) and
// Windows (%APPDATA%).
func userConfigSubdir() (string, error) {
	dir, err := platform.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}
