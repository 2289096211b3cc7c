// Package config persists the tool's settings: the saved AWS
// profile/region and the list of applications registered to own load
// balancers.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	AWSProfile string `yaml:"aws_profile,omitempty"`
	AWSRegion  string `yaml:"aws_region,omitempty"`

	// Applications registered to own load balancers. An application
	// must appear here before a load balancer can be created for it.
	Applications []string `yaml:"applications,omitempty"`
}

// GetConfigDir returns the config directory path (~/.asgard)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".asgard"
	}
	return filepath.Join(home, ".asgard")
}

// GetConfigPath returns the config file path (~/.asgard/config.yaml)
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration from ~/.asgard/config.yaml
func LoadConfig() (*Config, error) {
	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to ~/.asgard/config.yaml
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SetProfile updates the saved AWS profile
func SetProfile(profile string) error {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = &Config{}
	}
	cfg.AWSProfile = profile
	return SaveConfig(cfg)
}

// SetRegion updates the saved AWS region
func SetRegion(region string) error {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = &Config{}
	}
	cfg.AWSRegion = region
	return SaveConfig(cfg)
}

// GetSavedProfile returns the saved AWS profile
func GetSavedProfile() string {
	cfg, err := LoadConfig()
	if err != nil {
		return ""
	}
	return cfg.AWSProfile
}

// GetSavedRegion returns the saved AWS region
func GetSavedRegion() string {
	cfg, err := LoadConfig()
	if err != nil {
		return ""
	}
	return cfg.AWSRegion
}

// IsRegisteredApp reports whether the application is registered to own
// a load balancer. Matching ignores case; registered names are stored
// lowercase.
func (c *Config) IsRegisteredApp(appName string) bool {
	for _, app := range c.Applications {
		if strings.EqualFold(app, appName) {
			return true
		}
	}
	return false
}

// RegisterApp adds an application to the registry. Registering an
// already-registered application is a no-op.
func (c *Config) RegisterApp(appName string) {
	if c.IsRegisteredApp(appName) {
		return
	}
	c.Applications = append(c.Applications, strings.ToLower(appName))
	sort.Strings(c.Applications)
}
