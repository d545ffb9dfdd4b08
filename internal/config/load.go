package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags, then
// validates the result.
func Load() (*Config, error) {
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}
	return LoadFile(configPath)
}

// LoadFile is Load with an explicit file. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.Path = path
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "charctl")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "charctl")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "charctl")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "charctl")
	}
}

// loadFromFile merges a YAML file into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return decode(cfg, data)
}

// decode merges YAML into cfg. Bindings are merged key by key so a file
// that rebinds one action keeps the defaults for the rest.
func decode(cfg *Config, data []byte) error {
	defaults := cfg.Bindings
	cfg.Bindings = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Bindings = defaults
		return err
	}
	merged := make(BindingsConfig, len(defaults)+len(cfg.Bindings))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range cfg.Bindings {
		merged[k] = v
	}
	cfg.Bindings = merged
	return nil
}
