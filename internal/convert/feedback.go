package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/ruiji/internal/models"
)

// feedbackRecord is one user feedback entry from a JSON or XLSX source.
type feedbackRecord struct {
	ID   string `json:"id"`
	User string `json:"usuario"`
	Date string `json:"data"`
	Text string `json:"texto"`
}

// ConvertFeedback loads feedback records from inputPath (.json or .xlsx) and
// embeds their texts. Returns (nil, nil) when the source holds no records.
func (c *Converter) ConvertFeedback(ctx context.Context, inputPath string) (*models.Collection, error) {
	var (
		records []feedbackRecord
		err     error
	)
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".xlsx":
		records, err = loadFeedbackXLSX(inputPath)
	default:
		records, err = loadFeedbackJSON(inputPath)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	ids := make([]string, len(records))
	users := make([]string, len(records))
	dates := make([]string, len(records))
	texts := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
		users[i] = rec.User
		dates[i] = rec.Date
		texts[i] = rec.Text
	}

	col := &models.Collection{
		Name:       "avaliacoes",
		Type:       "avaliacoes",
		FieldNames: []string{"ids", "usuarios", "datas", "textos"},
		Fields: map[string][]string{
			"ids":      ids,
			"usuarios": users,
			"datas":    dates,
			"textos":   texts,
		},
	}
	return c.embedInto(ctx, col, texts)
}

// loadFeedbackJSON reads {"feedbacks": [{id, usuario, data, texto}, ...]}.
func loadFeedbackJSON(path string) ([]feedbackRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feedback file: %w", err)
	}
	var doc struct {
		Feedbacks []feedbackRecord `json:"feedbacks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse feedback file: %w", err)
	}
	return doc.Feedbacks, nil
}

// loadFeedbackXLSX reads records from the first sheet of an Excel workbook.
// The header row names the columns; id, usuario, data, and texto are mapped
// case-insensitively. Rows with an empty texto are skipped.
func loadFeedbackXLSX(path string) ([]feedbackRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open feedback workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("feedback workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	colIdx := make(map[string]int)
	for i, header := range rows[0] {
		colIdx[strings.ToLower(strings.TrimSpace(header))] = i
	}
	cell := func(row []string, name string) string {
		i, ok := colIdx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []feedbackRecord
	for _, row := range rows[1:] {
		rec := feedbackRecord{
			ID:   cell(row, "id"),
			User: cell(row, "usuario"),
			Date: cell(row, "data"),
			Text: cell(row, "texto"),
		}
		if rec.Text == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
