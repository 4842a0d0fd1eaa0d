package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file location relative to the XDG config home.
const DefaultConfigPath = "litefinder/config.yaml"

// Configuration holds all configuration parameters for the application
type Configuration struct {
	// HTTP client configuration
	Timeout    int      `yaml:"timeout"`
	MaxRetries int      `yaml:"max_retries"`
	RetryDelay int      `yaml:"retry_delay"`
	Insecure   bool     `yaml:"insecure"`
	UserAgent  string   `yaml:"user_agent"`
	Headers    []string `yaml:"headers"`

	// Output configuration
	OutputDir string `yaml:"output_dir"`

	// Pattern selection
	IncludeCategories []string `yaml:"include_categories"`
	ExcludeCategories []string `yaml:"exclude_categories"`

	// Application behavior
	Verbose bool `yaml:"verbose"`
	Silent  bool `yaml:"silent"`
}

// Default returns the built-in configuration.
func Default() Configuration {
	return Configuration{
		Timeout:    10,
		MaxRetries: 3,
		RetryDelay: 2,
		OutputDir:  "output",
	}
}

// Validate rejects values the fetcher cannot work with.
func (c Configuration) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("retries must be positive, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative, got %d", c.RetryDelay)
	}
	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}
	if len(c.IncludeCategories) > 0 && len(c.ExcludeCategories) > 0 {
		return errors.New("include and exclude categories cannot be used together")
	}
	return nil
}

// FindConfigFile returns configPath when given, otherwise the config file
// found in the XDG config directories, or "" when there is none.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	path, err := xdg.SearchConfigFile(DefaultConfigPath)
	if err != nil {
		return ""
	}
	return path
}

// LoadConfig reads configFile over the defaults. A missing file is not an error.
func LoadConfig(configFile string) (Configuration, error) {
	cfg := Default()
	if configFile == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to configFile, creating its directory.
func SaveConfig(configFile string, cfg Configuration) error {
	dir := filepath.Dir(configFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configFile, data, 0o644)
}

// DefaultSavePath returns where `config init` writes when no path is given.
func DefaultSavePath() (string, error) {
	return xdg.ConfigFile(DefaultConfigPath)
}
