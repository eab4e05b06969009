package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/ruiji/internal/models"
)

// questionStart matches the "1." / "2." numbering that opens each FAQ question.
var questionStart = regexp.MustCompile(`^\d+\.`)

// ConvertFAQ extracts question/answer pairs from every PDF in inputDir and
// embeds the answers. The source ("fonte") of each pair is the PDF file stem.
// Returns (nil, nil) when the directory holds no usable questions.
func (c *Converter) ConvertFAQ(ctx context.Context, inputDir string) (*models.Collection, error) {
	paths, err := filepath.Glob(filepath.Join(inputDir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var questions, answers, sources []string
	for _, path := range paths {
		text, err := c.extractor.Extract(path)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
		}
		qs, as := parseFAQ(text)
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		c.logger.Debug("faq source parsed", zap.String("file", filepath.Base(path)), zap.Int("questions", len(qs)))
		questions = append(questions, qs...)
		answers = append(answers, as...)
		for range qs {
			sources = append(sources, stem)
		}
	}
	if len(questions) == 0 {
		return nil, nil
	}

	col := &models.Collection{
		Name:       "faq",
		Type:       "faq",
		FieldNames: []string{"perguntas", "respostas", "fontes"},
		Fields: map[string][]string{
			"perguntas": questions,
			"respostas": answers,
			"fontes":    sources,
		},
	}
	// Answers carry the searchable content, so they are what gets embedded.
	return c.embedInto(ctx, col, answers)
}

// parseFAQ extracts question/answer pairs from FAQ text. The first non-empty
// line is the document title and is skipped. A question starts at a line
// matching "N." and runs until a line ending in "?"; its answer runs until
// the next numbered line or the end of the text. Pairs with an empty side are
// dropped.
func parseFAQ(text string) (questions, answers []string) {
	var lines []string
	skippedTitle := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !skippedTitle {
			skippedTitle = true
			continue
		}
		lines = append(lines, trimmed)
	}

	i := 0
	for i < len(lines) {
		if !questionStart.MatchString(lines[i]) {
			i++
			continue
		}
		questionParts := []string{lines[i]}
		i++
		for i < len(lines) && !strings.HasSuffix(lines[i-1], "?") {
			questionParts = append(questionParts, lines[i])
			i++
		}
		var answerParts []string
		for i < len(lines) && !questionStart.MatchString(lines[i]) {
			answerParts = append(answerParts, lines[i])
			i++
		}
		question := strings.TrimSpace(strings.Join(questionParts, " "))
		answer := strings.TrimSpace(strings.Join(answerParts, " "))
		if question != "" && answer != "" {
			questions = append(questions, question)
			answers = append(answers, answer)
		}
	}
	return questions, answers
}
