package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/realty/internal/paths"
	"github.com/mesh-intelligence/realty/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "REALTY"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"

	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// loadConfig reads config.yaml from configDir. Before that it loads an
// optional .env file from the same directory into the process environment;
// variables already set are not overridden.
//
// Precedence per key: REALTY_<KEY> environment variable, then config.yaml,
// then the default. data_dir is read from config.yaml only; its environment
// override is resolved by package paths, after the file value.
// A missing config directory or config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := godotenv.Load(paths.EnvFile(configDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", paths.EnvFileName, err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyLogLevel, cfgKeyLogFormat} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return v, nil
}
