// Package convert builds embedding collections from raw sources: FAQ PDFs,
// film description text files, and feedback records (JSON or XLSX).
package convert

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hyperjump/ruiji/internal/collection"
	"github.com/hyperjump/ruiji/internal/config"
	"github.com/hyperjump/ruiji/internal/embedding"
	"github.com/hyperjump/ruiji/internal/extract"
	"github.com/hyperjump/ruiji/internal/models"
	"github.com/hyperjump/ruiji/internal/registry"
)

// Converter turns raw sources into transport-format collection files.
type Converter struct {
	embedder  embedding.Embedder
	extractor *extract.Extractor
	registry  *registry.Registry
	model     string
	logger    *zap.Logger
}

// NewConverter creates a converter. registry may be nil, in which case
// conversions are not recorded. model names the embedding model for registry
// records.
func NewConverter(embedder embedding.Embedder, reg *registry.Registry, model string, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		embedder:  embedder,
		extractor: extract.NewExtractor(),
		registry:  reg,
		model:     model,
		logger:    logger,
	}
}

// Run converts all three source kinds into cfg.OutputDir. A source that is
// missing or empty is skipped with a warning; a conversion that fails aborts.
func (c *Converter) Run(ctx context.Context, cfg *config.ConvertConfig) error {
	steps := []struct {
		name string
		run  func(context.Context) (*models.Collection, string, error)
	}{
		{"faq", func(ctx context.Context) (*models.Collection, string, error) {
			out := filepath.Join(cfg.OutputDir, "faq_embeddings.json")
			col, err := c.ConvertFAQ(ctx, cfg.FAQDir)
			return col, out, err
		}},
		{"filmes", func(ctx context.Context) (*models.Collection, string, error) {
			out := filepath.Join(cfg.OutputDir, "filmes_embeddings.json")
			col, err := c.ConvertFilms(ctx, cfg.FilmsDir)
			return col, out, err
		}},
		{"avaliacoes", func(ctx context.Context) (*models.Collection, string, error) {
			out := filepath.Join(cfg.OutputDir, "feedbacks_embeddings.json")
			col, err := c.ConvertFeedback(ctx, cfg.FeedbackPath)
			return col, out, err
		}},
	}

	for _, step := range steps {
		col, outPath, err := step.run(ctx)
		if err != nil {
			return fmt.Errorf("convert %s: %w", step.name, err)
		}
		if col == nil {
			c.logger.Warn("no source items, skipping", zap.String("collection", step.name))
			continue
		}
		if err := c.save(ctx, col, outPath); err != nil {
			return fmt.Errorf("convert %s: %w", step.name, err)
		}
		c.logger.Info("collection converted",
			zap.String("collection", step.name),
			zap.String("path", outPath),
			zap.Int("items", col.Count),
			zap.Int("dimensions", col.Dimensions),
		)
	}
	return nil
}

// save writes col to outPath and records the conversion in the registry.
func (c *Converter) save(ctx context.Context, col *models.Collection, outPath string) error {
	if err := collection.Save(outPath, col); err != nil {
		return err
	}
	if c.registry == nil {
		return nil
	}
	return c.registry.Upsert(ctx, &registry.Record{
		Name:       col.Name,
		Type:       col.Type,
		Path:       outPath,
		ItemCount:  col.Count,
		Dimensions: col.Dimensions,
		Model:      c.model,
	})
}

// embedInto embeds texts and finishes the collection: vectors, count, and
// dimension. Returns an error if the embedder yields inconsistent rows.
func (c *Converter) embedInto(ctx context.Context, col *models.Collection, texts []string) (*models.Collection, error) {
	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %d texts: %w", len(texts), err)
	}
	col.Vectors = vectors
	col.Count = len(vectors)
	if col.Count > 0 {
		col.Dimensions = len(vectors[0])
	}
	return col, nil
}
