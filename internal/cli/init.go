package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/realty/internal/paths"
	"github.com/mesh-intelligence/realty/internal/sqlite"
	"github.com/mesh-intelligence/realty/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long: "Create the configuration directory with a default config.yaml (kept if it\n" +
			"already exists), then create the data directory and the database schema.",
		Args: noArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// A --data-dir given at init is recorded as an absolute path so that
	// later runs from any directory find the same database.
	dataDir := a.flags.dataDir
	if dataDir != "" {
		abs, err := filepath.Abs(dataDir)
		if err != nil {
			return fmt.Errorf("resolving data dir: %w", err)
		}
		dataDir = abs
	}

	configPath := paths.ConfigFile(a.configDir)
	written, err := writeConfigIfMissing(configPath, dataDir)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if written {
		a.log.Info("wrote default config", "path", configPath)
	}

	cfg, err := a.storageConfig()
	if err != nil {
		return err
	}
	b := sqlite.NewBackend(a.log)
	if err := b.Attach(cfg); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	dbPath := b.Path()
	if err := b.Close(); err != nil {
		return fmt.Errorf("finalizing storage: %w", err)
	}

	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"config": configPath,
			"db":     dbPath,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Realty initialized\nconfig: %s\ndatabase: %s\n", configPath, dbPath)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values unless the
// file exists. It reports whether it wrote the file.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	cfg := configFile{
		Backend:   types.BackendSQLite,
		DataDir:   dataDir,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
