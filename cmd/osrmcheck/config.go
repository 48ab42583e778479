package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"osrm_api/pkg/validate"
)

// Config is read from the file given by --config. Versions lists the
// accepted values of a request's version key.
type Config struct {
	LogLevel string          `yaml:"log-level"`
	Limits   validate.Limits `yaml:"limits"`
	Versions []string        `yaml:"versions"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Limits:   validate.DefaultLimits(),
		Versions: validate.DefaultVersions(),
	}
}

// LoadConfig reads path on top of DefaultConfig. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
