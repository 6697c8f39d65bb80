package compare

import (
	"cleanml/domain/result"
	"cleanml/domain/schema"
	"cleanml/internal/table"
)

// MethodReport pairs the quadrant table and its comparison outcomes
// for one cleaning method.
type MethodReport struct {
	Name       string
	Metrics    *table.Table
	Comparison *OutcomeTable
}

func compareOne(reduced result.Reduced, datasets *schema.DatasetRegistry, errorType string, fileTypes [2]string, method Method) (MethodReport, error) {
	fm, err := FourMetrics(reduced, datasets, errorType, fileTypes)
	if err != nil {
		return MethodReport{}, err
	}
	comparison, err := CompareFourMetrics(fm, fileTypes, method)
	if err != nil {
		return MethodReport{}, err
	}
	return MethodReport{Name: fileTypes[1], Metrics: fm, Comparison: comparison}, nil
}

// CompareDupIncon compares dirty against clean for duplicates or
// inconsistency, which have a single cleaning method.
func CompareDupIncon(reduced result.Reduced, datasets *schema.DatasetRegistry, errorType string, method Method) ([]MethodReport, error) {
	report, err := compareOne(reduced, datasets, errorType, [2]string{"dirty", "clean"}, method)
	if err != nil {
		return nil, err
	}
	report.Name = "clean"
	return []MethodReport{report}, nil
}

// CompareOutliers compares dirty against each outlier cleaning method.
func CompareOutliers(reduced result.Reduced, datasets *schema.DatasetRegistry, registry *schema.ErrorTypeRegistry, method Method) ([]MethodReport, error) {
	et, err := registry.Get(schema.Outliers)
	if err != nil {
		return nil, err
	}
	var reports []MethodReport
	for _, clean := range et.FileTypes {
		if clean == et.Baseline {
			continue
		}
		report, err := compareOne(reduced, datasets, schema.Outliers, [2]string{et.Baseline, clean}, method)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// CompareMissingValues compares deletion against each imputation method.
func CompareMissingValues(reduced result.Reduced, datasets *schema.DatasetRegistry, registry *schema.ErrorTypeRegistry, method Method) ([]MethodReport, error) {
	et, err := registry.Get(schema.MissingValues)
	if err != nil {
		return nil, err
	}
	var reports []MethodReport
	for _, impute := range et.FileTypes {
		if impute == et.Baseline {
			continue
		}
		report, err := compareOne(reduced, datasets, schema.MissingValues, [2]string{et.Baseline, impute}, method)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// CompareMislabel compares each injection scheme against its cleaned
// counterpart.
func CompareMislabel(reduced result.Reduced, datasets *schema.DatasetRegistry, method Method) ([]MethodReport, error) {
	var reports []MethodReport
	for _, inject := range []string{"dirty_uniform", "dirty_major", "dirty_minor"} {
		report, err := compareOne(reduced, datasets, schema.Mislabel, [2]string{inject, "clean"}, method)
		if err != nil {
			return nil, err
		}
		report.Name = inject
		reports = append(reports, report)
	}
	return reports, nil
}
