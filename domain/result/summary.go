package result

import (
	"sort"
	"strconv"
	"strings"

	"cleanml/domain/schema"
	"cleanml/internal/errors"
)

// SummaryKey identifies one entry of the summarized result view:
// dataset, error type, cleaning method, model, metric name.
type SummaryKey struct {
	Dataset   string
	ErrorType string
	Method    string
	Model     string
	Metric    string
}

// Summary is the per-method summarized view of a result store. Values
// are formatted floats; entries for the dirty-trained model evaluated
// on every cleaned test set hold a slash-joined list instead, clean
// methods sorted descending.
type Summary map[SummaryKey]string

// Get returns the raw value for a key. An absent key is a hard lookup
// failure, never a default.
func (s Summary) Get(k SummaryKey) (string, error) {
	v, ok := s[k]
	if !ok {
		return "", errors.LookupFailure("no summary entry for %s/%s/%s/%s/%s",
			k.Dataset, k.ErrorType, k.Method, k.Model, k.Metric)
	}
	return v, nil
}

// Float returns the value for a key parsed as a single float.
func (s Summary) Float(k SummaryKey) (float64, error) {
	raw, err := s.Get(k)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "summary entry %v is not a float", k)
	}
	return v, nil
}

// Floats returns the value for a key parsed as a slash-joined float list.
func (s Summary) Floats(k SummaryKey) ([]float64, error) {
	raw, err := s.Get(k)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(raw, "/")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "summary entry %v element %d is not a float", k, i)
		}
		out[i] = v
	}
	return out, nil
}

// Filter returns the entries for one error type.
func (s Summary) Filter(errorType string) Summary {
	out := make(Summary)
	for k, v := range s {
		if k.ErrorType == errorType {
			out[k] = v
		}
	}
	return out
}

// SeparateKeys returns the sorted unique values of each key component.
func (s Summary) SeparateKeys() (datasets, errorTypes, methods, models, metrics []string) {
	uniq := func(pick func(SummaryKey) string) []string {
		seen := map[string]bool{}
		var out []string
		for k := range s {
			v := pick(k)
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
		sort.Strings(out)
		return out
	}
	datasets = uniq(func(k SummaryKey) string { return k.Dataset })
	errorTypes = uniq(func(k SummaryKey) string { return k.ErrorType })
	methods = uniq(func(k SummaryKey) string { return k.Method })
	models = uniq(func(k SummaryKey) string { return k.Model })
	metrics = uniq(func(k SummaryKey) string { return k.Metric })
	return
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// MethodLabel maps a train file label to the summary method axis:
// the baseline file becomes "dirty", clean variants keep their name,
// gaining a "clean_" prefix when they lack one.
func MethodLabel(et schema.ErrorType, trainFile string) string {
	if trainFile == et.Baseline {
		return "dirty"
	}
	if strings.HasPrefix(trainFile, "clean") {
		return trainFile
	}
	return "clean_" + trainFile
}

// Summarize reduces a raw store over trial seeds, then over split
// seeds, and flattens the outcome into the five-part summary view the
// plotting layer reads. Per method row it emits "dirty_test_<m>" (the
// baseline test file) and "clean_test_<m>" (the method's own test
// file); the baseline row's "clean_test_<m>" joins the per-method test
// scores, clean methods sorted descending.
func Summarize(store Store, registry *schema.ErrorTypeRegistry) (Summary, error) {
	grouped, err := Group(store, AxisSeed)
	if err != nil {
		return nil, err
	}
	reduced, err := ReduceByMean(grouped)
	if err != nil {
		return nil, err
	}
	// split seed moves up one position once the trial seed is gone
	regrouped, err := Group(storeOf(reduced), AxisSplitSeed)
	if err != nil {
		return nil, err
	}
	final, err := ReduceByMean(regrouped)
	if err != nil {
		return nil, err
	}

	summary := make(Summary)
	for key, metrics := range final {
		parts := strings.Split(key, "/")
		if len(parts) != 4 {
			return nil, errors.SchemaMismatch("summarized key %q has %d components, want 4", key, len(parts))
		}
		dataset, errorType, trainFile, model := parts[0], parts[1], parts[2], parts[3]
		et, err := registry.Get(errorType)
		if err != nil {
			return nil, err
		}
		method := MethodLabel(et, trainFile)

		for _, suffix := range []string{"acc", "f1"} {
			if v, ok := metrics[et.Baseline+"_test_"+suffix]; ok {
				summary[SummaryKey{dataset, errorType, method, model, "dirty_test_" + suffix}] = formatFloat(v)
			}
			if trainFile != et.Baseline {
				if v, ok := metrics[trainFile+"_test_"+suffix]; ok {
					summary[SummaryKey{dataset, errorType, method, model, "clean_test_" + suffix}] = formatFloat(v)
				}
				continue
			}
			// baseline row: one value per clean test file, joined
			var joined []string
			complete := true
			for _, m := range et.CleanMethodsDesc() {
				v, ok := metrics[m+"_test_"+suffix]
				if !ok {
					complete = false
					break
				}
				joined = append(joined, formatFloat(v))
			}
			if complete && len(joined) > 0 {
				summary[SummaryKey{dataset, errorType, method, model, "clean_test_" + suffix}] = strings.Join(joined, "/")
			}
		}
	}
	return summary, nil
}

func storeOf(reduced Reduced) Store {
	store := make(Store, len(reduced))
	for k, v := range reduced {
		store[k] = v
	}
	return store
}
