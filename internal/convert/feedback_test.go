package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

const feedbackJSON = `{
  "feedbacks": [
    {"id": "1", "usuario": "ana", "data": "2024-03-01", "texto": "Entrega rapida, produto excelente."},
    {"id": "2", "usuario": "bruno", "data": "2024-03-02", "texto": "Chegou atrasado e amassado."}
  ]
}`

func TestConvertFeedback_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedbacks.json")
	if err := os.WriteFile(path, []byte(feedbackJSON), 0600); err != nil {
		t.Fatal(err)
	}

	c := newTestConverter(t)
	col, err := c.ConvertFeedback(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if col == nil {
		t.Fatal("expected a collection")
	}
	if col.Count != 2 {
		t.Fatalf("Count = %d", col.Count)
	}
	want := []string{"ids", "usuarios", "datas", "textos"}
	for i, name := range want {
		if col.FieldNames[i] != name {
			t.Fatalf("FieldNames = %v, want %v", col.FieldNames, want)
		}
	}
	if col.Fields["usuarios"][1] != "bruno" {
		t.Errorf("usuarios = %v", col.Fields["usuarios"])
	}
	if col.Fields["textos"][0] != "Entrega rapida, produto excelente." {
		t.Errorf("textos = %v", col.Fields["textos"])
	}
}

func TestConvertFeedback_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"ID", "Usuario", "Data", "Texto"},
		{"1", "ana", "2024-03-01", "Muito bom."},
		{"2", "bruno", "2024-03-02", ""},
		{"3", "carla", "2024-03-03", "Nao recomendo."},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "feedbacks.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	c := newTestConverter(t)
	col, err := c.ConvertFeedback(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if col == nil {
		t.Fatal("expected a collection")
	}
	if col.Count != 2 {
		t.Fatalf("Count = %d, want 2 (row with empty texto skipped)", col.Count)
	}
	if col.Fields["usuarios"][1] != "carla" {
		t.Errorf("usuarios = %v", col.Fields["usuarios"])
	}
}

func TestConvertFeedback_MissingFile(t *testing.T) {
	c := newTestConverter(t)
	if _, err := c.ConvertFeedback(context.Background(), filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConvertFeedback_EmptySource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedbacks.json")
	if err := os.WriteFile(path, []byte(`{"feedbacks": []}`), 0600); err != nil {
		t.Fatal(err)
	}
	c := newTestConverter(t)
	col, err := c.ConvertFeedback(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if col != nil {
		t.Error("empty source should yield a nil collection")
	}
}
