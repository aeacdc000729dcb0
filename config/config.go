package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

const FileName = "osuchart.json"

// StoreConfig holds the difficulty index settings
type StoreConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// OutputConfig holds where summaries and failure reports are written.
// An empty Dir disables file output.
type OutputConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

type Config struct {
	LogLevel string       `json:"logLevel" mapstructure:"logLevel"`
	Workers  int          `json:"workers" mapstructure:"workers"`
	Store    StoreConfig  `json:"store" mapstructure:"store"`
	Output   OutputConfig `json:"output" mapstructure:"output"`
}

// Load sets default values and reads osuchart.json from configDir.
// When the file does not exist the defaults stay in place and the returned
// error satisfies IsNotFound.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("workers", runtime.NumCPU())

	viper.SetDefault("store.enabled", true)
	viper.SetDefault("store.path", "./osuchart.db")

	viper.SetDefault("output.dir", "")

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// IsNotFound reports whether err is Load's missing-file error.
func IsNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf)
}

// Get decodes the current settings into a Config.
func Get() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// Set overrides a single key, for command line flags.
func Set(key string, value any) {
	viper.Set(key, value)
}
