package compare

import (
	"cleanml/internal/errors"
)

// EvalKey identifies one evaluation score by dataset, cleaning method
// and model.
type EvalKey struct {
	Dataset string
	Method  string
	Model   string
}

// Evaluation maps evaluation keys to a single metric score.
type Evaluation map[EvalKey]float64

// ComputeDifference computes, for every non-dirty method, the relative
// change versus the dirty baseline of the same dataset and model:
// (value - dirty) / dirty. A missing baseline is a lookup failure and
// a zero baseline a degenerate comparison; neither is ever masked.
func ComputeDifference(evaluation Evaluation) (Evaluation, error) {
	difference := make(Evaluation)
	for key, value := range evaluation {
		if key.Method == "dirty" {
			continue
		}
		baseKey := EvalKey{Dataset: key.Dataset, Method: "dirty", Model: key.Model}
		baseline, ok := evaluation[baseKey]
		if !ok {
			return nil, errors.LookupFailure("no dirty baseline for dataset %q model %q", key.Dataset, key.Model)
		}
		if baseline == 0 {
			return nil, errors.DegenerateComparison("dirty baseline is zero for dataset %q model %q", key.Dataset, key.Model)
		}
		difference[key] = (value - baseline) / baseline
	}
	return difference, nil
}
