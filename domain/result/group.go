package result

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"cleanml/internal/errors"
)

// Metric names excluded from aggregation. They record bookkeeping
// (chosen hyperparameters, trial seed lists), not scores.
var reservedMetrics = map[string]bool{
	"best_params": true,
	"seeds":       true,
}

// Group merges entries that differ only in the key component at axis
// into one entry per remaining key, each metric collecting its values
// in order. Iteration is over sorted axis values, then sorted keys, so
// list order is deterministic. All keys must share the same arity.
func Group(store Store, axis int) (Grouped, error) {
	keys := make([]string, 0, len(store))
	arity := -1
	for k := range store {
		parts := strings.Split(k, "/")
		if arity == -1 {
			arity = len(parts)
		} else if len(parts) != arity {
			return nil, errors.SchemaMismatch("result key %q has %d components, others have %d", k, len(parts), arity)
		}
		keys = append(keys, k)
	}
	if axis < 0 || axis >= arity {
		return nil, errors.SchemaMismatch("group axis %d out of range for key arity %d", axis, arity)
	}
	sort.Strings(keys)

	axisValues := make([]string, 0)
	seen := map[string]bool{}
	for _, k := range keys {
		v := strings.Split(k, "/")[axis]
		if !seen[v] {
			seen[v] = true
			axisValues = append(axisValues, v)
		}
	}
	sort.Strings(axisValues)

	grouped := make(Grouped)
	for _, av := range axisValues {
		for _, k := range keys {
			parts := strings.Split(k, "/")
			if parts[axis] != av {
				continue
			}
			rest := make([]string, 0, arity-1)
			for i, p := range parts {
				if i != axis {
					rest = append(rest, p)
				}
			}
			groupKey := strings.Join(rest, "/")
			lists, ok := grouped[groupKey]
			if !ok {
				lists = make(MetricLists)
				grouped[groupKey] = lists
			}
			for name, value := range store[k] {
				if reservedMetrics[name] {
					continue
				}
				lists[name] = append(lists[name], value)
			}
		}
	}
	return grouped, nil
}

// ReduceByMean replaces each metric's value list with its arithmetic
// mean. An empty list is an explicit error, never a silent NaN.
func ReduceByMean(grouped Grouped) (Reduced, error) {
	reduced := make(Reduced, len(grouped))
	for key, lists := range grouped {
		metrics := make(Metrics, len(lists))
		for name, values := range lists {
			mean, err := stats.Mean(values)
			if err != nil {
				return nil, errors.Wrapf(err, "empty value list for metric %q at %q", name, key)
			}
			metrics[name] = mean
		}
		reduced[key] = metrics
	}
	return reduced, nil
}
