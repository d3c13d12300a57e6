/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the woody client configuration file.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	Connection Connection `yaml:"connection"`
}

// Logger represents the logger configuration.
type Logger struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML configuration file.
func Load(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
