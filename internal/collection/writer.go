package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/ruiji/internal/models"
)

// Save writes col to path in the transport format. Parent directories are
// created if needed. Keys are emitted in a stable order: tipo, total, the
// parallel arrays in FieldNames order, then embeddings.
func Save(path string, col *models.Collection) error {
	data, err := Marshal(col)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create collection dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

// Marshal encodes col as a transport document. The standard library marshals
// maps with sorted keys, so the object is assembled by hand to keep the
// parallel arrays in FieldNames order.
func Marshal(col *models.Collection) ([]byte, error) {
	if len(col.Vectors) != col.Count {
		return nil, fmt.Errorf("%w: total is %d but embeddings has %d rows", ErrInvalidCollection, col.Count, len(col.Vectors))
	}
	for _, name := range col.FieldNames {
		if len(col.Fields[name]) != col.Count {
			return nil, fmt.Errorf("%w: field %q has %d entries, expected %d", ErrInvalidCollection, name, len(col.Fields[name]), col.Count)
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	writeKey := func(key string, value interface{}) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	if err := writeKey(keyType, col.Type); err != nil {
		return nil, err
	}
	if err := writeKey(keyTotal, col.Count); err != nil {
		return nil, err
	}
	for _, name := range col.FieldNames {
		if err := writeKey(name, col.Fields[name]); err != nil {
			return nil, err
		}
	}
	if err := writeKey(keyEmbeddings, col.Vectors); err != nil {
		return nil, err
	}
	buf.WriteByte('}')

	// Re-indent for readable files on disk.
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
