// Package store provides result-store adapters: a JSON file loader and
// a Postgres-backed loader.
package store

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"cleanml/domain/result"
	"cleanml/internal/errors"
	"cleanml/ports"
)

// JSONSource loads a result store from a JSON file mapping
// slash-delimited composite keys to metric objects. Non-numeric fields
// (best hyperparameters, seed lists) are excluded from the metrics.
type JSONSource struct {
	path string
}

// NewJSONSource creates a JSON file result source.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

var _ ports.ResultSource = (*JSONSource)(nil)

// Load reads and validates the result file.
func (s *JSONSource) Load(ctx context.Context) (result.Store, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.IOFailure("failed to read result file "+s.path, err)
	}

	var entries map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrapf(err, "failed to parse result file %s", s.path)
	}

	store := make(result.Store, len(entries))
	for key, fields := range entries {
		if parts := strings.Split(key, "/"); len(parts) != result.KeyArity {
			return nil, errors.SchemaMismatch("result key %q has %d components, want %d",
				key, len(parts), result.KeyArity)
		}
		metrics := make(result.Metrics)
		for name, value := range fields {
			var score float64
			if err := json.Unmarshal(value, &score); err != nil {
				// aux field (best_params, seeds), not a score
				continue
			}
			metrics[name] = score
		}
		store[key] = metrics
	}
	log.Printf("[JSONSource] Loaded %d result entries from %s", len(store), s.path)
	return store, nil
}
