// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wowsmith/addonsync/internal/model"
)

// Config represents the application configuration.
type Config struct {
	WowPath           string `yaml:"wow_path,omitempty"`
	LaunchOnStartup   bool   `yaml:"launch_on_startup"`
	MinimizeOnStartup bool   `yaml:"minimize_on_startup"`
	Language          string `yaml:"language,omitempty"`

	// BranchCompare selects how branch-tracked addons are versioned:
	// "commit" (head SHA) or "toc" (version declared in the remote TOC).
	BranchCompare string `yaml:"branch_compare,omitempty"`

	// NotifyURLs are Shoutrrr service URLs; notifications are disabled
	// when empty.
	NotifyURLs []string `yaml:"notify_urls,omitempty"`

	// NotifyCooldownSeconds overrides the minimum interval between update
	// notifications. Zero uses the built-in default.
	NotifyCooldownSeconds int `yaml:"notify_cooldown_seconds,omitempty"`

	AddonOverrides map[string]model.AddonOverride `yaml:"addon_overrides,omitempty"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		LaunchOnStartup:   true,
		MinimizeOnStartup: true,
		BranchCompare:     "commit",
		AddonOverrides:    make(map[string]model.AddonOverride),
	}
}

// DefaultConfigDir returns the configuration directory.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".addonsync"
	}
	return filepath.Join(configDir, "addonsync")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// CatalogPath returns the path of the optional user catalog file.
func CatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.yaml")
}

// Load reads the configuration from disk. A missing file yields defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.AddonOverrides == nil {
		cfg.AddonOverrides = make(map[string]model.AddonOverride)
	}
	if cfg.BranchCompare == "" {
		cfg.BranchCompare = "commit"
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to a specific path, creating directories
// as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// NotifyCooldown returns the configured cooldown, or zero to signal the
// gate's default.
func (c *Config) NotifyCooldown() time.Duration {
	return time.Duration(c.NotifyCooldownSeconds) * time.Second
}

// SetOverride records an addon override and persists the config.
func (c *Config) SetOverride(name string, ov model.AddonOverride) error {
	if c.AddonOverrides == nil {
		c.AddonOverrides = make(map[string]model.AddonOverride)
	}
	c.AddonOverrides[name] = ov
	return c.Save()
}

// ClearOverride removes an addon override and persists the config.
// Clearing an absent override is a no-op.
func (c *Config) ClearOverride(name string) error {
	if _, ok := c.AddonOverrides[name]; !ok {
		return nil
	}
	delete(c.AddonOverrides, name)
	return c.Save()
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment
// variable. Tokens are only read from the environment, never persisted.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// ToYAML returns the config as a YAML string.
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// MinimalConfig returns a starter config file with comments.
func MinimalConfig() string {
	return `# addonsync configuration file

# Path to the World of Warcraft installation root.
# wow_path: "C:\\Program Files (x86)\\World of Warcraft"

launch_on_startup: true
minimize_on_startup: true

# How branch-tracked addons are versioned: commit or toc
branch_compare: commit

# Shoutrrr URLs for update notifications (optional)
# notify_urls:
#   - gotify://gotify.example.com/AbCdEf123

# Per-addon policy overrides (optional)
# addon_overrides:
#   Nihui_uf:
#     update_mode: branch
#     branch: dev
`
}
