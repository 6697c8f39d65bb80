package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanml/domain/core"
	"cleanml/domain/result"
	"cleanml/domain/schema"
	"cleanml/internal/testkit"
)

// plotStore builds a raw store covering every plotted error type, every
// model column and every cleaning method, one split seed and one trial
// seed. Baseline-trained entries carry a score per cleaned test set so
// the summarized baseline rows are complete.
func plotStore(t *testing.T) result.Store {
	t.Helper()
	registry := schema.DefaultErrorTypes()
	store := make(result.Store)
	for _, name := range []string{schema.Outliers, schema.MissingValues, schema.Duplicates, schema.Inconsistency} {
		et, err := registry.Get(name)
		require.NoError(t, err)
		for i, model := range modelOrder {
			base := 0.5 + 0.01*float64(i)
			for _, file := range et.FileTypes {
				metrics := make(result.Metrics)
				if file == et.Baseline {
					metrics[et.Baseline+"_test_acc"] = base
					for j, clean := range et.CleanMethods() {
						metrics[clean+"_test_acc"] = base + 0.02 + 0.001*float64(j)
					}
				} else {
					metrics[et.Baseline+"_test_acc"] = base + 0.05
					metrics[file+"_test_acc"] = base + 0.1
				}
				store[testkit.Key("wine", "s0", name, file, model, "0")] = metrics
			}
		}
	}
	return store
}

func TestReporterRunPlots(t *testing.T) {
	out := t.TempDir()
	r := NewReporter(testkit.Registry([]string{"wine"}), schema.DefaultErrorTypes(), out)
	source := &testkit.MemorySource{Store: plotStore(t)}

	require.NoError(t, r.Run(context.Background(), source, true, false))

	// four axes per error type, one dataset
	for _, errorType := range []string{schema.Outliers, schema.MissingValues, schema.Duplicates, schema.Inconsistency} {
		for _, axis := range []string{"dirty_test", "clean_test", "dirty_model", "clean_model"} {
			assert.FileExists(t, filepath.Join(out, errorType, axis, "wine_"+axis+".png"))
			assert.FileExists(t, filepath.Join(out, errorType, axis+".xlsx"))
		}
	}

	assert.FileExists(t, filepath.Join(out, "manifest.json"))
	assert.FileExists(t, filepath.Join(out, "summary.md"))
	assert.FileExists(t, filepath.Join(out, "summary.html"))

	counts := map[core.ArtifactKind]int{}
	for _, a := range r.Manifest().Artifacts {
		counts[a.Kind]++
	}
	assert.Equal(t, 16, counts[core.ArtifactChart])
	assert.Equal(t, 16, counts[core.ArtifactWorkbook])
}

func TestReporterRunLoadFailure(t *testing.T) {
	r := NewReporter(testkit.Registry([]string{"wine"}), schema.DefaultErrorTypes(), t.TempDir())
	source := &failingSource{}

	err := r.Run(context.Background(), source, true, true)
	assert.Error(t, err)
}

type failingSource struct{}

func (failingSource) Load(ctx context.Context) (result.Store, error) {
	return nil, assert.AnError
}
