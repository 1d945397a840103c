// Package config resolves statusboard settings from flags, environment and
// an optional YAML file.
//
// Precedence, highest first: explicitly set flags, STATUSBOARD_* environment
// variables, the config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seckatie/statusboard/internal/core"
	"github.com/seckatie/statusboard/internal/core/status"
)

const (
	// ConfigFileName is looked up in the working directory when --config is not given.
	ConfigFileName = ".statusboard.yaml"
	// EnvPrefix prefixes environment overrides, e.g. STATUSBOARD_PORT.
	EnvPrefix = "STATUSBOARD"
)

// Config is the resolved runtime configuration.
type Config struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Snapshot   string `mapstructure:"snapshot"`
	Images     string `mapstructure:"images"`
	Timezone   string `mapstructure:"timezone"`
	TimeFormat string `mapstructure:"time-format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:       "localhost",
		Port:       8080,
		Snapshot:   core.StatusFile,
		Images:     core.ImagesDir,
		Timezone:   "Local",
		TimeFormat: status.DefaultTimeLayout,
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("host", def.Host)
	v.SetDefault("port", def.Port)
	v.SetDefault("snapshot", def.Snapshot)
	v.SetDefault("images", def.Images)
	v.SetDefault("timezone", def.Timezone)
	v.SetDefault("time-format", def.TimeFormat)
}

// Load resolves the configuration for cmd. A --config flag, when present and
// set, names the file to read; otherwise ConfigFileName is used if it exists.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	path, err := findConfigFile(cmd)
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile(cmd *cobra.Command) (string, error) {
	if f := cmd.Flags().Lookup("config"); f != nil && f.Value.String() != "" {
		if _, err := os.Stat(f.Value.String()); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return f.Value.String(), nil
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName, nil
	}
	return "", nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if strings.TrimSpace(c.Snapshot) == "" {
		errs = append(errs, errors.New("snapshot source must not be empty"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Location resolves the configured timezone. Empty or "Local" is the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Formatter builds the timestamp formatter for this configuration.
func (c *Config) Formatter() status.Formatter {
	loc, err := c.Location()
	if err != nil {
		loc = time.Local
	}
	return status.Formatter{Location: loc, Layout: c.TimeFormat}
}
