// Package result models experiment outcomes: the flat per-trial result
// store, grouping and mean-reduction across trials, and the summarized
// per-method view the plotting layer reads.
package result

import (
	"strings"

	"cleanml/internal/errors"
)

// KeyArity is the number of components in a full result key.
const KeyArity = 6

// Key positions within the slash-delimited result key.
const (
	AxisDataset = iota
	AxisSplitSeed
	AxisErrorType
	AxisTrainFile
	AxisModel
	AxisSeed
)

// Key identifies one experiment run.
type Key struct {
	Dataset   string
	SplitSeed string
	ErrorType string
	TrainFile string
	Model     string
	Seed      string
}

// ParseKey parses the slash-delimited six-part result key.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, "/")
	if len(parts) != KeyArity {
		return Key{}, errors.SchemaMismatch("result key %q has %d components, want %d", s, len(parts), KeyArity)
	}
	return Key{
		Dataset:   parts[0],
		SplitSeed: parts[1],
		ErrorType: parts[2],
		TrainFile: parts[3],
		Model:     parts[4],
		Seed:      parts[5],
	}, nil
}

func (k Key) String() string {
	return strings.Join([]string{k.Dataset, k.SplitSeed, k.ErrorType, k.TrainFile, k.Model, k.Seed}, "/")
}

// ReducedKey identifies one entry of a seed-reduced result: the full
// key with the trial seed removed.
type ReducedKey struct {
	Dataset   string
	SplitSeed string
	ErrorType string
	TrainFile string
	Model     string
}

// ParseReducedKey parses the slash-delimited five-part reduced key.
func ParseReducedKey(s string) (ReducedKey, error) {
	parts := strings.Split(s, "/")
	if len(parts) != KeyArity-1 {
		return ReducedKey{}, errors.SchemaMismatch("reduced key %q has %d components, want %d", s, len(parts), KeyArity-1)
	}
	return ReducedKey{
		Dataset:   parts[0],
		SplitSeed: parts[1],
		ErrorType: parts[2],
		TrainFile: parts[3],
		Model:     parts[4],
	}, nil
}

func (k ReducedKey) String() string {
	return strings.Join([]string{k.Dataset, k.SplitSeed, k.ErrorType, k.TrainFile, k.Model}, "/")
}

// Metrics maps a metric name to its score.
type Metrics map[string]float64

// MetricLists maps a metric name to the ordered scores collected
// across the grouped-away axis.
type MetricLists map[string][]float64

// Store is the flat result mapping, keyed by the slash-delimited
// composite key. Aux fields (best hyperparameters, seed lists) are kept
// out of the metric maps by the loaders.
type Store map[string]Metrics

// Grouped is a result with one key component removed, each metric
// holding the ordered values collected across the removed component.
type Grouped map[string]MetricLists

// Reduced is a Grouped result with every list replaced by its mean.
type Reduced map[string]Metrics
