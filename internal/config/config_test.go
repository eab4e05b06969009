package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
search:
  top_k: 5
  anomaly_count: 4
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Search.TopK != 5 || cfg.Search.AnomalyCount != 4 {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "debug: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Embedding.Provider != "openai" || cfg.Embedding.Dimensions != 384 {
		t.Errorf("unexpected embedding defaults: %+v", cfg.Embedding)
	}
	if cfg.Search.TopK != 3 || cfg.Search.AnomalyCount != 3 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if len(cfg.Collections) != 3 {
		t.Errorf("expected 3 default collections, got %v", cfg.Collections)
	}
	if cfg.Registry.DatabasePath == "" {
		t.Error("registry path should have a default")
	}
}

func TestLoad_ExpandsDotSlashRelativeToConfigDir(t *testing.T) {
	path := writeConfig(t, `
collections:
  faq: "./embeddings/faq.json"
registry:
  database_path: "./db/registry.db"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Dir(path)
	if got := cfg.Collections["faq"]; got != filepath.Join(dir, "embeddings/faq.json") {
		t.Errorf("collection path not expanded: %s", got)
	}
	if got := cfg.Registry.DatabasePath; got != filepath.Join(dir, "db/registry.db") {
		t.Errorf("registry path not expanded: %s", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("expected error for bad yaml")
	}
}

func TestWatchConfig_EnabledOrDefault(t *testing.T) {
	var w WatchConfig
	if !w.EnabledOrDefault() {
		t.Error("watch should default to enabled")
	}
	f := false
	w.Enabled = &f
	if w.EnabledOrDefault() {
		t.Error("explicit false should disable watch")
	}
}
