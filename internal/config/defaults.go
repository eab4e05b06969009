package config

import "os"

const defaultDataDir = "/usr/local/var/ruiji/data"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "openai"
	}
	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 3
	}
	if cfg.Search.AnomalyCount == 0 {
		cfg.Search.AnomalyCount = 3
	}
	if cfg.Collections == nil {
		cfg.Collections = map[string]string{
			"faq":        defaultDataDir + "/embeddings/faq_embeddings.json",
			"filmes":     defaultDataDir + "/embeddings/filmes_embeddings.json",
			"avaliacoes": defaultDataDir + "/embeddings/feedbacks_embeddings.json",
		}
	}
	if cfg.Convert.FAQDir == "" {
		cfg.Convert.FAQDir = defaultDataDir + "/sources/faq"
	}
	if cfg.Convert.FilmsDir == "" {
		cfg.Convert.FilmsDir = defaultDataDir + "/sources/filmes"
	}
	if cfg.Convert.FeedbackPath == "" {
		cfg.Convert.FeedbackPath = defaultDataDir + "/sources/avaliacoes/feedbacks.json"
	}
	if cfg.Convert.OutputDir == "" {
		cfg.Convert.OutputDir = defaultDataDir + "/embeddings"
	}
	if cfg.Registry.DatabasePath == "" {
		cfg.Registry.DatabasePath = defaultDataDir + "/db/registry.db"
	}
}
