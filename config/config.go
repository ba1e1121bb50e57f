/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the client options the response pipeline reads.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"dirpx.dev/dresp/labeler"
	"dirpx.dev/dresp/txn"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DRESP_RETRY_WRITES.
const EnvPrefix = "DRESP"

// Config is the complete client configuration.
type Config struct {
	// RetryWrites is the modern retryable-writes switch.
	RetryWrites bool `mapstructure:"retry_writes" yaml:"retry_writes"`
	// MaxWriteRetries is the legacy retry count, used only when RetryWrites
	// is false.
	MaxWriteRetries int `mapstructure:"max_write_retries" yaml:"max_write_retries"`
	// UnpinPolicy is "always" or "on_labels".
	UnpinPolicy string `mapstructure:"unpin_policy" yaml:"unpin_policy"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Defaults returns the configuration used when nothing is set.
// Retryable writes stay off until explicitly enabled.
func Defaults() *Config {
	return &Config{
		UnpinPolicy: string(txn.UnpinAlways),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path, the environment and the defaults, in
// decreasing precedence.
//
// With an empty path, ./dresp.yaml and $HOME/.config/dresp/dresp.yaml are
// searched and a missing file is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dresp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dresp")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading: %w", err)
		}
	}
	return decode(v)
}

// Parse reads YAML configuration from data, applying environment overrides
// and defaults.
func Parse(data []byte) (*Config, error) {
	v := newViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config: parsing: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("retry_writes", d.RetryWrites)
	v.SetDefault("max_write_retries", d.MaxWriteRetries)
	v.SetDefault("unpin_policy", d.UnpinPolicy)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxWriteRetries < 0 {
		return fmt.Errorf("%w: max_write_retries must not be negative, got %d", ErrInvalid, c.MaxWriteRetries)
	}
	if _, err := txn.ParseUnpinPolicy(c.UnpinPolicy); err != nil {
		return fmt.Errorf("%w: unpin_policy: %w", ErrInvalid, err)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging format %q (must be text or json)", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// ClientContext returns the retryable-writes options for the label engine.
func (c *Config) ClientContext() labeler.ClientContext {
	return labeler.ClientContext{
		RetryWrites:     c.RetryWrites,
		MaxWriteRetries: c.MaxWriteRetries,
	}
}

// Policy returns the configured session unpin policy. Invalid values,
// which Validate rejects, yield txn.UnpinAlways.
func (c *Config) Policy() txn.UnpinPolicy {
	p, err := txn.ParseUnpinPolicy(c.UnpinPolicy)
	if err != nil {
		return txn.UnpinAlways
	}
	return p
}

// SlogLevel returns the configured log level. Invalid values, which Validate
// rejects, yield slog.LevelInfo.
func (c *Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.Logging.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: logging level %q (must be debug, info, warn, or error)", ErrInvalid, s)
	}
}
