package models

// SearchResult is a single ranked hit. Index is the item's position in the
// source collection; Fields carries its parallel metadata values.
type SearchResult struct {
	Rank   int               `json:"rank"`
	Index  int               `json:"index"`
	Score  float64           `json:"score"`
	Fields map[string]string `json:"fields,omitempty"`
}

// SearchResponse is the response for a top-k or full-ranking request.
// Results are ordered descending by score.
type SearchResponse struct {
	Collection string          `json:"collection"`
	Query      string          `json:"query"`
	Results    []*SearchResult `json:"results"`
	Total      int             `json:"total"`
	QueryTime  int64           `json:"query_time_ms"`
}

// AnomalyResult is one item scored by mean similarity to the rest of its
// collection. Low MeanSimilarity means the item stands apart from the group.
type AnomalyResult struct {
	Rank           int               `json:"rank"`
	Index          int               `json:"index"`
	MeanSimilarity float64           `json:"mean_similarity"`
	Fields         map[string]string `json:"fields,omitempty"`
}

// AnomalyResponse is the response for an anomaly ranking request.
// Results are ordered ascending by mean similarity (most anomalous first).
type AnomalyResponse struct {
	Collection string           `json:"collection"`
	Total      int              `json:"total"`
	Results    []*AnomalyResult `json:"results"`
	QueryTime  int64            `json:"query_time_ms"`
}
