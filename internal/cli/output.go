// Package cli provides output formatting for ruiji commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/hyperjump/ruiji/internal/models"
	"github.com/hyperjump/ruiji/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a -output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteSearchResults writes a search or ranking response to w.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "\n%d results for %q in collection %q (%dms)\n\n",
		response.Total, response.Query, response.Collection, response.QueryTime)
	for _, result := range response.Results {
		fmt.Fprintf(w, "#%d  score %.4f  (item %d)\n", result.Rank, result.Score, result.Index)
		writeFields(w, result.Fields)
		fmt.Fprintln(w)
	}
	return nil
}

// WriteAnomalyResults writes an anomaly ranking response to w.
func WriteAnomalyResults(w io.Writer, response *models.AnomalyResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "\n%d most anomalous items in collection %q (%dms)\n\n",
		response.Total, response.Collection, response.QueryTime)
	for _, result := range response.Results {
		fmt.Fprintf(w, "#%d  mean similarity %.4f  (item %d)\n",
			result.Rank, result.MeanSimilarity, result.Index)
		writeFields(w, result.Fields)
		fmt.Fprintln(w)
	}
	return nil
}

func writeJSON(w io.Writer, payload interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writeFields(w io.Writer, fields map[string]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "    %s: %s\n", name, utils.Truncate(fields[name], 200))
	}
}
