// Package testkit builds synthetic result stores and registries shared
// by package tests.
package testkit

import (
	"context"
	"strings"

	"cleanml/domain/result"
	"cleanml/domain/schema"
	"cleanml/ports"
)

// Registry builds a dataset registry where the named datasets are
// class-balanced unless listed in imbalanced.
func Registry(names []string, imbalanced ...string) *schema.DatasetRegistry {
	f1 := map[string]bool{}
	for _, n := range imbalanced {
		f1[n] = true
	}
	datasets := make([]schema.Dataset, len(names))
	for i, n := range names {
		datasets[i] = schema.Dataset{Name: n, ClassImbalance: f1[n]}
	}
	return schema.NewDatasetRegistry(datasets)
}

// Key joins result key components.
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// QuadrantStore builds a store holding the four train/test quadrant
// cells for one (dataset, model) pair: entries trained on f0 and f1,
// each carrying accuracy metrics for both test files. Cells map the
// quadrants as a=f0/f0, b=f0/f1, c=f1/f0, d=f1/f1.
func QuadrantStore(dataset, splitSeed, errorType, model, seed, f0, f1 string, a, b, c, d float64) result.Store {
	return result.Store{
		Key(dataset, splitSeed, errorType, f0, model, seed): result.Metrics{
			f0 + "_test_acc": a,
			f1 + "_test_acc": b,
		},
		Key(dataset, splitSeed, errorType, f1, model, seed): result.Metrics{
			f0 + "_test_acc": c,
			f1 + "_test_acc": d,
		},
	}
}

// Merge combines stores into one; later entries win on key collisions.
func Merge(stores ...result.Store) result.Store {
	out := make(result.Store)
	for _, s := range stores {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// MemorySource is an in-memory result source.
type MemorySource struct {
	Store result.Store
}

var _ ports.ResultSource = (*MemorySource)(nil)

func (s *MemorySource) Load(ctx context.Context) (result.Store, error) {
	return s.Store, nil
}
