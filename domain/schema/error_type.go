package schema

import (
	"sort"

	"cleanml/internal/errors"
)

// Error type names
const (
	MissingValues = "missing_values"
	Outliers      = "outliers"
	Mislabel      = "mislabel"
	Duplicates    = "duplicates"
	Inconsistency = "inconsistency"
)

// ErrorType describes one category of data quality issue and the clean
// file variants produced for it. FileTypes lists every train/test file
// label, the dirty baseline included.
type ErrorType struct {
	Name      string
	Baseline  string
	FileTypes []string
}

// CleanMethods returns the non-baseline file types, ascending.
func (e ErrorType) CleanMethods() []string {
	methods := make([]string, 0, len(e.FileTypes))
	for _, f := range e.FileTypes {
		if f != e.Baseline {
			methods = append(methods, f)
		}
	}
	sort.Strings(methods)
	return methods
}

// CleanMethodsDesc returns the non-baseline file types sorted
// descending, the order multi-value summary entries are joined in.
func (e ErrorType) CleanMethodsDesc() []string {
	methods := e.CleanMethods()
	for i, j := 0, len(methods)-1; i < j; i, j = i+1, j-1 {
		methods[i], methods[j] = methods[j], methods[i]
	}
	return methods
}

// ErrorTypeRegistry enumerates the error types and their cleaning
// methods. Built once at startup; never mutated afterwards.
type ErrorTypeRegistry struct {
	byName map[string]ErrorType
	order  []string
}

// NewErrorTypeRegistry builds the registry from an explicit list.
func NewErrorTypeRegistry(types []ErrorType) *ErrorTypeRegistry {
	byName := make(map[string]ErrorType, len(types))
	order := make([]string, 0, len(types))
	for _, t := range types {
		byName[t.Name] = t
		order = append(order, t.Name)
	}
	return &ErrorTypeRegistry{byName: byName, order: order}
}

// DefaultErrorTypes returns the standard five error types. Outlier
// cleaning methods follow the clean_<detector>_<repair> naming with the
// iso_forest detector spelled out.
func DefaultErrorTypes() *ErrorTypeRegistry {
	outlierMethods := []string{"dirty"}
	for _, detect := range []string{"SD", "IQR", "iso_forest"} {
		for _, repair := range []string{"delete", "impute_mean_dummy", "impute_median_dummy", "impute_mode_dummy"} {
			outlierMethods = append(outlierMethods, "clean_"+detect+"_"+repair)
		}
	}

	mvMethods := []string{"delete"}
	for _, num := range []string{"mean", "median", "mode"} {
		for _, cat := range []string{"mode", "dummy"} {
			mvMethods = append(mvMethods, "impute_"+num+"_"+cat)
		}
	}

	return NewErrorTypeRegistry([]ErrorType{
		{Name: MissingValues, Baseline: "delete", FileTypes: mvMethods},
		{Name: Outliers, Baseline: "dirty", FileTypes: outlierMethods},
		{Name: Mislabel, Baseline: "dirty", FileTypes: []string{"dirty", "dirty_uniform", "dirty_major", "dirty_minor", "clean"}},
		{Name: Duplicates, Baseline: "dirty", FileTypes: []string{"dirty", "clean"}},
		{Name: Inconsistency, Baseline: "dirty", FileTypes: []string{"dirty", "clean"}},
	})
}

// Get returns the error type by name.
func (r *ErrorTypeRegistry) Get(name string) (ErrorType, error) {
	t, ok := r.byName[name]
	if !ok {
		return ErrorType{}, errors.LookupFailure("unknown error type %q", name)
	}
	return t, nil
}

// Names returns the error type names in registration order.
func (r *ErrorTypeRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// FileNames returns every file type label for the error type.
func (r *ErrorTypeRegistry) FileNames(name string) ([]string, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.FileTypes))
	copy(out, t.FileTypes)
	return out, nil
}
