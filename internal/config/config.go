// Package config loads and validates the server's YAML configuration.
//
// The configuration file is optional: with no file, Load returns validated
// defaults and the server answers on UDP port 5353. The record source file
// is deliberately not part of the configuration; it is the one positional
// CLI argument.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPort is the fixed listening port for DNS queries.
const DefaultPort = 5353

// ServerConfig contains DNS server settings.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConcurrency int    `yaml:"max_concurrency"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	IncludePID bool   `yaml:"include_pid"`
}

// APIConfig contains management API settings.
//
// APIKey is a shared secret; when set, every endpoint except /health
// requires the X-API-Key header.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	APIKey  string `yaml:"api_key"`
}

// QueryLogConfig controls the optional sqlite-backed query log.
// An empty path disables it.
type QueryLogConfig struct {
	Path string `yaml:"path"`
}

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	API      APIConfig      `yaml:"api"`
	QueryLog QueryLogConfig `yaml:"query_log"`
}

// Load reads the YAML configuration at path. An empty path yields the
// validated defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes the configuration and applies defaults.
func (cfg *Config) Validate() error {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}
	if cfg.Server.MaxConcurrency <= 0 {
		cfg.Server.MaxConcurrency = 64
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)

	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	return nil
}
