package schema

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"cleanml/internal/errors"
)

// Dataset holds the per-dataset properties the reporter consults.
// ClassImbalance decides whether F1 or accuracy is the scoring metric.
type Dataset struct {
	Name           string `yaml:"name"`
	ClassImbalance bool   `yaml:"class_imbalance"`
	Description    string `yaml:"description,omitempty"`
}

// DatasetRegistry is an immutable lookup of dataset metadata,
// constructed once at process start.
type DatasetRegistry struct {
	byName map[string]Dataset
}

// NewDatasetRegistry builds a registry from a fixed dataset list.
func NewDatasetRegistry(datasets []Dataset) *DatasetRegistry {
	byName := make(map[string]Dataset, len(datasets))
	for _, d := range datasets {
		byName[d.Name] = d
	}
	return &DatasetRegistry{byName: byName}
}

// LoadDatasetRegistry reads dataset metadata from a YAML file.
func LoadDatasetRegistry(path string) (*DatasetRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOFailure("failed to read dataset metadata", err)
	}
	var doc struct {
		Datasets []Dataset `yaml:"datasets"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse dataset metadata %s", path)
	}
	return NewDatasetRegistry(doc.Datasets), nil
}

// Get returns the metadata for a dataset name.
func (r *DatasetRegistry) Get(name string) (Dataset, error) {
	d, ok := r.byName[name]
	if !ok {
		return Dataset{}, errors.LookupFailure("unknown dataset %q", name)
	}
	return d, nil
}

// Names returns all registered dataset names, sorted.
func (r *DatasetRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsMetricF1 reports whether F1 is the scoring metric for the dataset.
func (r *DatasetRegistry) IsMetricF1(name string) (bool, error) {
	d, err := r.Get(name)
	if err != nil {
		return false, err
	}
	return d.ClassImbalance, nil
}

// MetricName returns the metric recorded for evaluating on the given
// test file: "<file>_test_f1" for class-imbalanced datasets,
// "<file>_test_acc" otherwise.
func (r *DatasetRegistry) MetricName(dataset, testFile string) (string, error) {
	f1, err := r.IsMetricF1(dataset)
	if err != nil {
		return "", err
	}
	if f1 {
		return testFile + "_test_f1", nil
	}
	return testFile + "_test_acc", nil
}
