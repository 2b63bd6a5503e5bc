// Package config loads runtime settings from an optional YAML file with
// environment-variable overrides. Parsing rules (date grammars, the
// category vocabulary, the year pivot) are fixed by design and not
// configurable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the CLI and HTTP surfaces.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	Currency   string `yaml:"currency"`
	LogLevel   string `yaml:"log_level"`
	CSVHeader  bool   `yaml:"csv_header"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		Currency:   "INR",
		LogLevel:   "info",
		CSVHeader:  true,
	}
}

// Load reads the YAML file at path when it exists, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %q: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SI_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("SI_CURRENCY"); v != "" {
		c.Currency = v
	}
	if v := os.Getenv("SI_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
