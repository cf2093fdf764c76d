package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// External classifier settings
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

// ClassifierConfig holds settings for the external field classifier
type ClassifierConfig struct {
	Mode    string `mapstructure:"mode"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "",
		Quiet:   false,
		Verbose: false,
		Classifier: ClassifierConfig{
			Mode:    "auto",
			Model:   "gemini-2.5-flash",
			Timeout: "60s",
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.condlab.yaml or ./.condlab.yml
// 2. ~/.condlab.yaml or ~/.condlab.yml
// 3. $XDG_CONFIG_HOME/condlab/config.yaml (or ~/.config/condlab/config.yaml)
// 4. /etc/condlab/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	// Try to find and load config file in order of precedence
	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	// Config file names to search for (in order)
	names := []string{".condlab.yaml", ".condlab.yml", "condlab.yaml", "condlab.yml"}

	// Get home directory
	home, homeErr := os.UserHomeDir()

	// Get config directory (XDG_CONFIG_HOME or ~/.config)
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	// 1. Current directory
	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/condlab/)
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "condlab"))
	}

	// 4. System config
	searchPaths = append(searchPaths, "/etc/condlab")

	// Search for config file
	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONDLAB_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CONDLAB_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("CONDLAB_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("CONDLAB_CLASSIFIER"); v != "" {
		cfg.Classifier.Mode = v
	}
	if v := os.Getenv("CONDLAB_CLASSIFIER_MODEL"); v != "" {
		cfg.Classifier.Model = v
	}
	if v := os.Getenv("CONDLAB_CLASSIFIER_TIMEOUT"); v != "" {
		cfg.Classifier.Timeout = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Classifier.APIKey = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
