package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsontoggle
type Config struct {
	TogglesDir  string            `yaml:"toggles_dir"`
	Indent      string            `yaml:"indent"`
	Placeholder PlaceholderConfig `yaml:"placeholder"`
}

// PlaceholderConfig selects what a toggled-out node leaves behind in the
// working document. With Enabled the node is replaced by the Sentinel string,
// which keeps array indices stable; disabled, the node is deleted outright.
// Even then an array element with later siblings keeps a placeholder, since
// deleting it would shift the siblings and leave stored records pointing at
// the wrong indices.
type PlaceholderConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Sentinel string `yaml:"sentinel"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		TogglesDir: "toggles",
		Indent:     "  ",
		Placeholder: PlaceholderConfig{
			Enabled:  true,
			Sentinel: "<toggled>",
		},
	}
}

// LoadConfig loads configuration from a YAML file, starting from defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.TogglesDir == "" {
		return nil, fmt.Errorf("toggles_dir must not be empty")
	}
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	if cfg.Placeholder.Sentinel == "" {
		cfg.Placeholder.Sentinel = "<toggled>"
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsontoggle.yml", ".jsontoggle.yaml", "jsontoggle.yml", "jsontoggle.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
