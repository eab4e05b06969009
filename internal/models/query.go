package models

import (
	"errors"
	"strings"
)

// ErrEmptyQuery is returned when a query mode is invoked with blank input.
// It is checked before any embedding call is made.
var ErrEmptyQuery = errors.New("query cannot be empty")

// DefaultTopK is the number of results returned when no k is given.
const DefaultTopK = 3

// SearchQuery is a top-k or full-ranking search request.
type SearchQuery struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

// Validate rejects blank/whitespace-only queries and applies the default k.
func (q *SearchQuery) Validate() error {
	if strings.TrimSpace(q.Query) == "" {
		return ErrEmptyQuery
	}
	if q.K <= 0 {
		q.K = DefaultTopK
	}
	return nil
}

// AnomalyQuery is an anomaly ranking request. No query text is involved.
type AnomalyQuery struct {
	Count int `json:"count,omitempty"`
}
