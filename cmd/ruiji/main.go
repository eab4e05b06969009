// Package main is the ruiji CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/ruiji/internal/anomaly"
	"github.com/hyperjump/ruiji/internal/cli"
	"github.com/hyperjump/ruiji/internal/collection"
	"github.com/hyperjump/ruiji/internal/config"
	"github.com/hyperjump/ruiji/internal/convert"
	"github.com/hyperjump/ruiji/internal/embedding"
	"github.com/hyperjump/ruiji/internal/models"
	"github.com/hyperjump/ruiji/internal/registry"
	"github.com/hyperjump/ruiji/internal/search"
	"github.com/hyperjump/ruiji/internal/server"
	"github.com/hyperjump/ruiji/internal/watcher"
	"github.com/hyperjump/ruiji/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/ruiji/config.yaml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "rank":
		runRank()
	case "anomalies":
		runAnomalies()
	case "convert":
		runConvert()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("ruiji version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`ruiji - embedding similarity search

Usage: ruiji <command> [flags]

Commands:
  server     Start the HTTP API server
  search     Top-k search in a collection (default k=3)
  rank       Rank a whole collection against a query
  anomalies  Find the items least similar to the rest of a collection
  convert    Build embedding collections from raw sources
  status     Show registered and configured collections
  version    Print version
  help       Show this help

Run "ruiji <command> -h" for command flags.
`)
}

// loadConfig loads config from path. When path is the default, a config.yaml
// in the current directory takes precedence (for development). Returns the
// config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. The flag package
// stops at the first non-flag argument, so "ruiji search my query -k 5" would
// otherwise leave -k unparsed.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func newLogger(cfg *config.Config, debugFlag bool) *zap.Logger {
	logger, err := utils.NewLogger(cfg.Debug || debugFlag)
	if err != nil {
		fatalf("Failed to create logger: %v", err)
	}
	return logger
}

func newEmbedder(cfg *config.Config) embedding.Embedder {
	embedder, err := embedding.NewEmbedder(embedding.Options{
		Provider:   cfg.Embedding.Provider,
		BaseURL:    cfg.Embedding.BaseURL,
		APIKey:     cfg.Embedding.APIKey,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		CacheSize:  cfg.Embedding.CacheSize,
	})
	if err != nil {
		fatalf("Failed to create embedder: %v", err)
	}
	return embedder
}

// loadCollection loads a single configured collection for one-shot commands.
func loadCollection(cfg *config.Config, name string) *models.Collection {
	path, ok := cfg.Collections[name]
	if !ok {
		fatalf("Collection %q is not configured (configured: %s)", name, strings.Join(configuredNames(cfg), ", "))
	}
	col, err := collection.Load(path)
	if err != nil {
		fatalf("Failed to load collection %q: %v\nRun \"ruiji convert\" first if the embeddings were never generated.", name, err)
	}
	col.Name = name
	return col
}

func configuredNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Collections))
	for name := range cfg.Collections {
		names = append(names, name)
	}
	return names
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	logger := newLogger(cfg, *debug)
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", cfg.Debug || *debug),
	)

	store := collection.NewStore()
	for name, path := range cfg.Collections {
		if err := store.LoadFile(name, path); err != nil {
			logger.Warn("collection not loaded", zap.String("name", name), zap.String("path", path), zap.Error(err))
		}
	}
	logger.Info("collections loaded", zap.Strings("names", store.Names()))

	embedder := newEmbedder(cfg)
	defer embedder.Close()
	engine := search.NewEngine(embedder)
	ranker := anomaly.NewRanker(cfg.Search.AnomalyCount)

	reg, err := registry.Open(cfg.Registry.DatabasePath)
	if err != nil {
		logger.Warn("registry unavailable", zap.Error(err))
		reg = nil
	} else {
		defer reg.Close()
	}

	if cfg.Watch.EnabledOrDefault() {
		watchOpts := []watcher.Option{}
		if cfg.Debug || *debug {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.New(
			cfg.Collections,
			func(name, path string) {
				if err := store.LoadFile(name, path); err != nil {
					logger.Warn("collection reload failed", zap.String("name", name), zap.Error(err))
					return
				}
				logger.Info("collection reloaded", zap.String("name", name))
			},
			func(name string) {
				store.Remove(name)
				logger.Info("collection removed", zap.String("name", name))
			},
			watchOpts...,
		)
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Warn("watcher not started", zap.Error(err))
		} else {
			defer watchSvc.Stop()
		}
	}

	srv := server.NewServer(store, engine, ranker, reg, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSearch() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	colName := fs.String("collection", "faq", "collection to search")
	k := fs.Int("k", 0, "number of results (0 = configured default)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(args)

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: ruiji search [flags] <query>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fatalf("%v", err)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if *k <= 0 {
		*k = cfg.Search.TopK
	}

	col := loadCollection(cfg, *colName)
	embedder := newEmbedder(cfg)
	defer embedder.Close()
	engine := search.NewEngine(embedder)

	response, err := engine.TopK(context.Background(), col, query, *k)
	if err != nil {
		fatalf("Search failed: %v", err)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fatalf("Output failed: %v", err)
	}
}

func runRank() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	colName := fs.String("collection", "filmes", "collection to rank")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(args)

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: ruiji rank [flags] <query>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fatalf("%v", err)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}

	col := loadCollection(cfg, *colName)
	embedder := newEmbedder(cfg)
	defer embedder.Close()
	engine := search.NewEngine(embedder)

	response, err := engine.RankAll(context.Background(), col, query)
	if err != nil {
		fatalf("Ranking failed: %v", err)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fatalf("Output failed: %v", err)
	}
}

func runAnomalies() {
	fs := flag.NewFlagSet("anomalies", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	colName := fs.String("collection", "avaliacoes", "collection to analyze")
	count := fs.Int("count", 0, "number of anomalies (0 = configured default)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fatalf("%v", err)
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}

	col := loadCollection(cfg, *colName)
	ranker := anomaly.NewRanker(cfg.Search.AnomalyCount)

	response, err := ranker.Rank(col, *count)
	if err != nil {
		fatalf("Anomaly ranking failed: %v", err)
	}
	if err := cli.WriteAnomalyResults(os.Stdout, response, format); err != nil {
		fatalf("Output failed: %v", err)
	}
}

func runConvert() {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	logger := newLogger(cfg, *debug)
	defer logger.Sync()

	embedder := newEmbedder(cfg)
	defer embedder.Close()

	reg, err := registry.Open(cfg.Registry.DatabasePath)
	if err != nil {
		logger.Warn("registry unavailable, conversions will not be recorded", zap.Error(err))
		reg = nil
	} else {
		defer reg.Close()
	}

	converter := convert.NewConverter(embedder, reg, cfg.Embedding.Model, logger)
	if err := converter.Run(context.Background(), &cfg.Convert); err != nil {
		logger.Fatal("Conversion failed", zap.Error(err))
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Config: %s\n\n", resolvedConfigPath)

	reg, err := registry.Open(cfg.Registry.DatabasePath)
	if err != nil {
		fatalf("Failed to open registry: %v", err)
	}
	defer reg.Close()

	records, err := reg.List(context.Background())
	if err != nil {
		fatalf("Failed to list registry: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("No collections registered. Run \"ruiji convert\" to generate embeddings.")
		return
	}
	for _, rec := range records {
		fmt.Printf("%-12s %6d items  %4d dims  model %-24s %s\n",
			rec.Name, rec.ItemCount, rec.Dimensions, rec.Model, rec.Path)
	}
}
