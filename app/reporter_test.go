package app

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cleanml/domain/result"
	"cleanml/domain/schema"
	"cleanml/internal/testkit"
)

// duplicatesSummary covers every model column with two models carrying
// hand-checked scores: logistic regression 0.70 dirty / 0.75 clean and
// knn 0.80 dirty / 0.78 clean on the dirty test set.
func duplicatesSummary() result.Summary {
	summary := make(result.Summary)
	dirtyTest := map[string]string{
		"logistic_regression": "0.7",
		"knn_classification":  "0.8",
	}
	cleanTrainDirtyTest := map[string]string{
		"logistic_regression": "0.75",
		"knn_classification":  "0.78",
	}
	for _, model := range modelOrder {
		dt, ok := dirtyTest[model]
		if !ok {
			dt = "0.5"
		}
		cdt, ok := cleanTrainDirtyTest[model]
		if !ok {
			cdt = "0.55"
		}
		summary[result.SummaryKey{Dataset: "wine", ErrorType: schema.Duplicates, Method: "dirty", Model: model, Metric: "dirty_test_acc"}] = dt
		summary[result.SummaryKey{Dataset: "wine", ErrorType: schema.Duplicates, Method: "dirty", Model: model, Metric: "clean_test_acc"}] = "0.51"
		summary[result.SummaryKey{Dataset: "wine", ErrorType: schema.Duplicates, Method: "clean", Model: model, Metric: "dirty_test_acc"}] = cdt
		summary[result.SummaryKey{Dataset: "wine", ErrorType: schema.Duplicates, Method: "clean", Model: model, Metric: "clean_test_acc"}] = "0.56"
	}
	return summary
}

func cellFloat(t *testing.T, f *excelize.File, sheet, cell string) float64 {
	t.Helper()
	raw, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	v, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	return v
}

func TestPlotDupIncon(t *testing.T) {
	out := t.TempDir()
	r := NewReporter(testkit.Registry([]string{"wine"}), schema.DefaultErrorTypes(), out)

	require.NoError(t, r.PlotDupIncon(duplicatesSummary(), schema.Duplicates))

	for _, axis := range []string{"dirty_test", "clean_test", "clean_model", "dirty_model"} {
		assert.FileExists(t, filepath.Join(out, "duplicates", axis, "wine_"+axis+".png"))
		assert.FileExists(t, filepath.Join(out, "duplicates", axis+".xlsx"))
	}

	f, err := excelize.OpenFile(filepath.Join(out, "duplicates", "dirty_test.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	// columns are sorted model names; knn is 4th, logistic 5th, after
	// the two row-label columns
	assert.InDelta(t, -0.025, cellFloat(t, f, "dirty_test", "F2"), 1e-9)
	assert.InDelta(t, 0.0714285714, cellFloat(t, f, "dirty_test", "G2"), 1e-9)
}

func TestPlotColumnMissingModelFails(t *testing.T) {
	summary := result.Summary{
		{Dataset: "wine", ErrorType: schema.Duplicates, Method: "dirty", Model: "logistic_regression", Metric: "dirty_test_acc"}: "0.7",
		{Dataset: "wine", ErrorType: schema.Duplicates, Method: "clean", Model: "logistic_regression", Metric: "dirty_test_acc"}: "0.75",
	}
	r := NewReporter(testkit.Registry([]string{"wine"}), schema.DefaultErrorTypes(), t.TempDir())

	spec := AxisSpec{
		IndexOrder:  []string{"clean"},
		ColumnOrder: modelOrder,
		XTickLabels: modelTicks,
		BarNames:    []string{"Clean Model"},
	}
	err := r.PlotColumn(summary, spec, "dirty")
	assert.Error(t, err)
}

func TestPlotColumnRejectsMixedErrorTypes(t *testing.T) {
	summary := result.Summary{
		{Dataset: "wine", ErrorType: schema.Duplicates, Method: "dirty", Model: "logistic_regression", Metric: "dirty_test_acc"}:    "0.7",
		{Dataset: "wine", ErrorType: schema.Inconsistency, Method: "dirty", Model: "logistic_regression", Metric: "dirty_test_acc"}: "0.7",
	}
	r := NewReporter(testkit.Registry([]string{"wine"}), schema.DefaultErrorTypes(), t.TempDir())

	err := r.PlotColumn(summary, AxisSpec{}, "dirty")
	assert.Error(t, err)
}
