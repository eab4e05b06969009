package collection

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperjump/ruiji/internal/models"
)

func TestStore_PutGetRemove(t *testing.T) {
	s := NewStore()
	s.Put(&models.Collection{Name: "faq"})
	s.Put(&models.Collection{Name: "filmes"})

	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}
	if _, ok := s.Get("faq"); !ok {
		t.Error("faq should be present")
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"faq", "filmes"}) {
		t.Errorf("Names = %v", got)
	}

	s.Remove("faq")
	if _, ok := s.Get("faq"); ok {
		t.Error("faq should be gone")
	}
}

func TestStore_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	if err := os.WriteFile(path, []byte(faqDoc), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore()
	if err := s.LoadFile("faq", path); err != nil {
		t.Fatal(err)
	}
	col, ok := s.Get("faq")
	if !ok {
		t.Fatal("collection not stored")
	}
	if col.Name != "faq" {
		t.Errorf("Name = %q, want store name", col.Name)
	}
}

func TestStore_LoadFile_Invalid(t *testing.T) {
	s := NewStore()
	if err := s.LoadFile("faq", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
