// Package collection loads, writes, and holds embedding collections in the
// transport JSON format: {"tipo", "total", "embeddings", <parallel arrays>}.
package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hyperjump/ruiji/internal/models"
)

// ErrInvalidCollection is returned when a transport document is missing,
// malformed, or fails the length/shape invariant. It is surfaced before any
// query runs against the collection.
var ErrInvalidCollection = errors.New("invalid collection document")

// Reserved top-level keys of the transport format. Every other key must be a
// parallel string array of length total.
const (
	keyType       = "tipo"
	keyTotal      = "total"
	keyEmbeddings = "embeddings"
)

// Load reads and parses the transport document at path.
func Load(path string) (*models.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidCollection, path, err)
	}
	return Parse(data)
}

// Parse parses a transport document and validates its shape: total must match
// the embedding row count and the length of every parallel array, and all
// embedding rows must share the same non-zero dimension.
//
// The document is decoded twice: once token-by-token to preserve the order of
// the parallel arrays (for stable output), once into a key map for values.
func Parse(data []byte) (*models.Collection, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCollection, err)
	}

	col := &models.Collection{Fields: make(map[string][]string)}

	if err := unmarshalKey(raw, keyType, &col.Type); err != nil {
		return nil, err
	}
	if err := unmarshalKey(raw, keyTotal, &col.Count); err != nil {
		return nil, err
	}
	if err := unmarshalKey(raw, keyEmbeddings, &col.Vectors); err != nil {
		return nil, err
	}

	if len(col.Vectors) != col.Count {
		return nil, fmt.Errorf("%w: total is %d but embeddings has %d rows", ErrInvalidCollection, col.Count, len(col.Vectors))
	}
	if col.Count > 0 {
		col.Dimensions = len(col.Vectors[0])
		if col.Dimensions == 0 {
			return nil, fmt.Errorf("%w: embedding rows must have non-zero dimension", ErrInvalidCollection)
		}
		for i, row := range col.Vectors {
			if len(row) != col.Dimensions {
				return nil, fmt.Errorf("%w: embedding row %d has dimension %d, expected %d", ErrInvalidCollection, i, len(row), col.Dimensions)
			}
		}
	}

	names, err := fieldOrder(data)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		var values []string
		if err := json.Unmarshal(raw[name], &values); err != nil {
			return nil, fmt.Errorf("%w: field %q is not a string array: %v", ErrInvalidCollection, name, err)
		}
		if len(values) != col.Count {
			return nil, fmt.Errorf("%w: field %q has %d entries, expected %d", ErrInvalidCollection, name, len(values), col.Count)
		}
		col.FieldNames = append(col.FieldNames, name)
		col.Fields[name] = values
	}
	return col, nil
}

func unmarshalKey(raw map[string]json.RawMessage, key string, dst interface{}) error {
	msg, ok := raw[key]
	if !ok {
		return fmt.Errorf("%w: missing %q", ErrInvalidCollection, key)
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		return fmt.Errorf("%w: bad %q: %v", ErrInvalidCollection, key, err)
	}
	return nil
}

// fieldOrder returns the non-reserved top-level keys in document order.
// encoding/json maps lose key order, so the top level is walked with a token
// decoder.
func fieldOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCollection, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidCollection)
	}
	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCollection, err)
		}
		key := tok.(string)
		if key != keyType && key != keyTotal && key != keyEmbeddings {
			names = append(names, key)
		}
		// Skip the value.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCollection, err)
		}
	}
	return names, nil
}
