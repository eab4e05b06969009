package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtract_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "film.txt")
	content := "Matrix\nUm hacker descobre a natureza da realidade."
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	e := NewExtractor()
	text, err := e.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != content {
		t.Errorf("text = %q", text)
	}
}

func TestExtract_InvalidUTF8Replaced(t *testing.T) {
	e := NewExtractor()
	text, err := e.ExtractBytes([]byte{'o', 'k', 0xff, 0xfe, '!'}, ".txt")
	if err != nil {
		t.Fatal(err)
	}
	if text == "" {
		t.Fatal("expected text")
	}
	for _, r := range text {
		if r == 0xfffd {
			return
		}
	}
	t.Errorf("invalid bytes should be replaced: %q", text)
}

func TestExtract_MissingFile(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractBytes_BadPDF(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("not a pdf at all"), ".pdf"); err == nil {
		t.Error("expected error for malformed PDF")
	}
}
