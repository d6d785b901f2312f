// Package config loads the mergetree configuration from a TOML file, the
// environment and built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, also the environment prefix
	AppName = "mergetree"
	// DefaultPath is where the config file is looked for when none is given
	DefaultPath = "/data/adb/mergetree.toml"
)

// Config holds the settings of a mergetree run
type Config struct {
	// ModulesDir holds one directory per module
	ModulesDir string `toml:"modules_dir" mapstructure:"modules_dir"`
	// Partition is the directory of each module that gets merged
	Partition string `toml:"partition" mapstructure:"partition"`
	// Exclude lists virtual paths marked skip after merging
	Exclude []string `toml:"exclude" mapstructure:"exclude"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		ModulesDir: "/data/adb/modules",
		Partition:  "system",
		Exclude:    []string{},
		LogLevel:   "info",
	}
}

// Load reads the configuration. An empty path means DefaultPath, which may
// be missing; an explicitly given path must exist. MERGETREE_* environment
// variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("modules_dir", defaults.ModulesDir)
	v.SetDefault("partition", defaults.Partition)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if cfg.Partition == "" {
		return nil, fmt.Errorf("config %s: partition must not be empty", path)
	}
	return cfg, nil
}

// Encode writes cfg to w as TOML
func Encode(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Write saves cfg as TOML at path, creating parent directories
func Write(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return err
	}
	data := buf.Bytes()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
