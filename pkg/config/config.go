// Package config loads the optional YAML configuration file of the CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hellenic-development/prismic-backup/pkg/prismic"
)

// Config mirrors the backup options that can be supplied through a file
// instead of flags. Empty fields are allowed; flags take precedence.
type Config struct {
	Repository     string          `yaml:"repository"`
	AccessToken    string          `yaml:"access_token"`
	PermanentToken string          `yaml:"permanent_token"`
	Output         string          `yaml:"output"`
	Routes         []prismic.Route `yaml:"routes"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	return &cfg, nil
}
