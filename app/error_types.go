package app

import (
	"cleanml/domain/result"
	"cleanml/domain/schema"
)

// Canonical model column order and the short chart labels matching it.
var (
	modelOrder = []string{
		"logistic_regression",
		"knn_classification",
		"decision_tree_classification",
		"random_forest_classification",
		"adaboost_classification",
		"guassian_naive_bayes",
	}
	modelTicks = []string{"LR", "KNN", "DT", "RF", "AB", "NB"}
)

func suffixed(names []string, suffix string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n + " " + suffix
	}
	return out
}

// PlotOutliers renders all outlier comparison axes.
func (r *Reporter) PlotOutliers(summary result.Summary) error {
	filtered := summary.Filter(schema.Outliers)
	methodOrder := []string{
		"clean_iso_forest_delete", "clean_iso_forest_impute_mean_dummy", "clean_iso_forest_impute_median_dummy",
		"clean_IQR_delete", "clean_IQR_impute_mean_dummy", "clean_IQR_impute_median_dummy",
		"clean_SD_delete", "clean_SD_impute_mean_dummy", "clean_SD_impute_median_dummy",
	}
	methodNames := []string{
		"IF Delete", "IF Mean", "IF Median",
		"IQR Delete", "IQR Mean", "IQR Median",
		"SD Delete", "SD Mean", "SD Median",
	}

	modelSpec := AxisSpec{
		IndexOrder:  methodOrder,
		ColumnOrder: modelOrder,
		XTickLabels: modelTicks,
		BarNames:    suffixed(methodNames, "Model"),
	}
	if err := r.PlotColumn(filtered, modelSpec, "dirty"); err != nil {
		return err
	}
	if err := r.PlotMulticolumnClean(filtered, modelSpec); err != nil {
		return err
	}

	testSpec := modelSpec
	testSpec.BarNames = suffixed(methodNames, "Test")
	if err := r.PlotMultirowDirty(filtered, testSpec); err != nil {
		return err
	}
	return r.PlotMultirowClean(filtered, testSpec)
}

// PlotMissingValues renders all missing-value comparison axes.
func (r *Reporter) PlotMissingValues(summary result.Summary) error {
	filtered := summary.Filter(schema.MissingValues)
	methodOrder := []string{
		"clean_impute_mean_mode", "clean_impute_mean_dummy",
		"clean_impute_median_mode", "clean_impute_median_dummy",
		"clean_impute_mode_mode", "clean_impute_mode_dummy",
	}
	methodNames := []string{
		"Mean Mode", "Mean Dummy",
		"Median Mode", "Median Dummy",
		"Mode Mode", "Mode Dummy",
	}

	modelSpec := AxisSpec{
		IndexOrder:  methodOrder,
		ColumnOrder: modelOrder,
		XTickLabels: modelTicks,
		BarNames:    suffixed(methodNames, "Model"),
	}
	if err := r.PlotColumn(filtered, modelSpec, "dirty"); err != nil {
		return err
	}
	if err := r.PlotMulticolumnClean(filtered, modelSpec); err != nil {
		return err
	}

	testSpec := modelSpec
	testSpec.BarNames = suffixed(methodNames, "Test")
	if err := r.PlotMultirowDirty(filtered, testSpec); err != nil {
		return err
	}
	return r.PlotMultirowClean(filtered, testSpec)
}

// PlotDupIncon renders the comparison axes for duplicates or
// inconsistency, which have a single cleaning method.
func (r *Reporter) PlotDupIncon(summary result.Summary, errorType string) error {
	filtered := summary.Filter(errorType)

	modelSpec := AxisSpec{
		IndexOrder:  []string{"clean"},
		ColumnOrder: modelOrder,
		XTickLabels: modelTicks,
		BarNames:    []string{"Clean Model"},
	}
	if err := r.PlotColumn(filtered, modelSpec, "dirty"); err != nil {
		return err
	}
	if err := r.PlotColumn(filtered, modelSpec, "clean"); err != nil {
		return err
	}

	testSpec := modelSpec
	testSpec.BarNames = []string{"Clean Test"}
	if err := r.PlotRow(filtered, testSpec, "clean"); err != nil {
		return err
	}
	return r.PlotRow(filtered, testSpec, "dirty")
}

// PlotAll renders every error type's comparison axes.
func (r *Reporter) PlotAll(summary result.Summary) error {
	if err := r.PlotOutliers(summary); err != nil {
		return err
	}
	if err := r.PlotMissingValues(summary); err != nil {
		return err
	}
	if err := r.PlotDupIncon(summary, schema.Duplicates); err != nil {
		return err
	}
	return r.PlotDupIncon(summary, schema.Inconsistency)
}
