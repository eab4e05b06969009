package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hyperjump/ruiji/internal/models"
)

// ConvertFilms reads every .txt in inputDir as a film: the first line is the
// title, the rest is the description. Descriptions are embedded.
// Returns (nil, nil) when the directory holds no usable films.
func (c *Converter) ConvertFilms(ctx context.Context, inputDir string) (*models.Collection, error) {
	paths, err := filepath.Glob(filepath.Join(inputDir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var titles, descriptions []string
	for _, path := range paths {
		text, err := c.extractor.Extract(path)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		title, description := splitFilm(text)
		titles = append(titles, title)
		descriptions = append(descriptions, description)
	}
	if len(titles) == 0 {
		return nil, nil
	}

	col := &models.Collection{
		Name:       "filmes",
		Type:       "filmes",
		FieldNames: []string{"titulos", "descricoes"},
		Fields: map[string][]string{
			"titulos":    titles,
			"descricoes": descriptions,
		},
	}
	return c.embedInto(ctx, col, descriptions)
}

// splitFilm splits file text into title (first line) and description (rest).
// A single-line file uses the whole text as both.
func splitFilm(text string) (title, description string) {
	parts := strings.SplitN(text, "\n", 2)
	title = strings.TrimSpace(parts[0])
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		description = strings.TrimSpace(parts[1])
	} else {
		description = text
	}
	return title, description
}
