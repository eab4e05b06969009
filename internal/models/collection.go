// Package models defines core data structures for collections, queries, and results.
package models

// Collection is an in-memory embedding collection: an NxD matrix of vectors
// plus parallel metadata arrays of length N. Position i refers to the same
// logical item across Vectors and every entry of Fields.
type Collection struct {
	// Name is the configured collection name (e.g. "faq"); may differ from Type.
	Name string `json:"name"`
	// Type is the transport document "tipo" (faq, filmes, avaliacoes, ...).
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Dimensions int    `json:"dimensions"`

	Vectors [][]float32 `json:"-"`

	// FieldNames preserves the order the parallel arrays appeared in the
	// transport document, for stable output.
	FieldNames []string            `json:"field_names"`
	Fields     map[string][]string `json:"-"`
}

// FieldsAt returns the metadata values for item i as a field name -> value map.
func (c *Collection) FieldsAt(i int) map[string]string {
	out := make(map[string]string, len(c.FieldNames))
	for _, name := range c.FieldNames {
		values := c.Fields[name]
		if i >= 0 && i < len(values) {
			out[name] = values[i]
		}
	}
	return out
}
