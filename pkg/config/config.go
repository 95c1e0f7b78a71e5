// Package config provides configuration loading and management for imagepca.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"imagepca/internal/models"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// Channel selects red, green, blue or all
		Channel string `yaml:"channel"`

		// NumCores specifies how many CPU cores the row-parallel stages may use
		NumCores int `yaml:"numCores"`

		// EigenOrder is "solver" (keep the eigensolver's order) or "descending"
		EigenOrder string `yaml:"eigenOrder"`

		// Fill is "original" (channel composite) or "zero" for single-channel runs
		Fill string `yaml:"fill"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Verbose prints a preview of every pipeline stage
		Verbose bool `yaml:"verbose"`

		// JPEGQuality is used when the output file is a JPEG
		JPEGQuality int `yaml:"jpegQuality"`

		// SaveComponents writes each principal component as a grayscale PNG
		SaveComponents bool `yaml:"saveComponents"`

		// ComponentsDir is where component planes are written
		ComponentsDir string `yaml:"componentsDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.Channel = models.All.String()
	cfg.Processing.NumCores = runtime.NumCPU()
	cfg.Processing.EigenOrder = models.EigenOrderSolver.String()
	cfg.Processing.Fill = models.FillOriginal.String()

	cfg.Output.Verbose = true
	cfg.Output.JPEGQuality = 90
	cfg.Output.SaveComponents = false
	cfg.Output.ComponentsDir = "components"

	return cfg
}

// Validate checks enum values and numeric ranges
func (c *Config) Validate() error {
	if _, err := c.ChannelSelector(); err != nil {
		return err
	}
	if _, err := c.EigenOrder(); err != nil {
		return err
	}
	if _, err := c.FillPolicy(); err != nil {
		return err
	}
	if c.Processing.NumCores < 1 {
		return fmt.Errorf("numCores must be at least 1, got %d", c.Processing.NumCores)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("jpegQuality must be in 1..100, got %d", c.Output.JPEGQuality)
	}
	return nil
}

// ChannelSelector parses Processing.Channel
func (c *Config) ChannelSelector() (models.ChannelSelector, error) {
	return models.ParseChannel(c.Processing.Channel)
}

// EigenOrder parses Processing.EigenOrder
func (c *Config) EigenOrder() (models.EigenOrder, error) {
	return models.ParseEigenOrder(c.Processing.EigenOrder)
}

// FillPolicy parses Processing.Fill
func (c *Config) FillPolicy() (models.FillPolicy, error) {
	return models.ParseFillPolicy(c.Processing.Fill)
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
