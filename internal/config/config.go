// Package config provides configuration loading and structs for ruiji.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug       bool              `yaml:"debug"`
	Server      ServerConfig      `yaml:"server"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Search      SearchConfig      `yaml:"search"`
	Collections map[string]string `yaml:"collections"`
	Convert     ConvertConfig     `yaml:"convert"`
	Registry    RegistryConfig    `yaml:"registry"`
	Watch       WatchConfig       `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	CacheSize  int    `yaml:"cache_size"`
}

// SearchConfig holds query mode settings.
type SearchConfig struct {
	TopK         int `yaml:"top_k"`
	AnomalyCount int `yaml:"anomaly_count"`
}

// ConvertConfig holds source paths for the embedding conversion pipeline.
type ConvertConfig struct {
	FAQDir       string `yaml:"faq_dir"`
	FilmsDir     string `yaml:"films_dir"`
	FeedbackPath string `yaml:"feedback_path"`
	OutputDir    string `yaml:"output_dir"`
}

// RegistryConfig holds the collection registry database path.
type RegistryConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// WatchConfig holds collection file watch settings.
type WatchConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// EnabledOrDefault returns whether watching is enabled; defaults to true when unset.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, applies defaults, and
// expands paths. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	for name, p := range cfg.Collections {
		cfg.Collections[name] = expandPath(p, configDir)
	}
	cfg.Convert.FAQDir = expandPath(cfg.Convert.FAQDir, configDir)
	cfg.Convert.FilmsDir = expandPath(cfg.Convert.FilmsDir, configDir)
	cfg.Convert.FeedbackPath = expandPath(cfg.Convert.FeedbackPath, configDir)
	cfg.Convert.OutputDir = expandPath(cfg.Convert.OutputDir, configDir)
	cfg.Registry.DatabasePath = expandPath(cfg.Registry.DatabasePath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
