// Package app orchestrates report generation: it turns summarized
// experiment results into relative-difference bar charts and
// spreadsheet workbooks, one artifact tree per error type.
package app

import (
	"fmt"
	"log"
	"path/filepath"

	"cleanml/adapters/excel"
	"cleanml/domain/compare"
	"cleanml/domain/core"
	"cleanml/domain/result"
	"cleanml/domain/schema"
	"cleanml/internal/errors"
	"cleanml/internal/render"
	"cleanml/internal/table"
)

// Reporter renders the comparison charts and workbooks for one run.
type Reporter struct {
	datasets   *schema.DatasetRegistry
	errorTypes *schema.ErrorTypeRegistry
	outDir     string
	manifest   *Manifest
}

// NewReporter creates a reporter writing below outDir.
func NewReporter(datasets *schema.DatasetRegistry, errorTypes *schema.ErrorTypeRegistry, outDir string) *Reporter {
	return &Reporter{
		datasets:   datasets,
		errorTypes: errorTypes,
		outDir:     outDir,
		manifest:   NewManifest(),
	}
}

// Manifest exposes the run manifest for writing at the end of a run.
func (r *Reporter) Manifest() *Manifest {
	return r.manifest
}

// AxisSpec fixes the ordering and labeling of one comparison axis:
// the cleaning-method row order, the model column order, and the
// human-readable chart labels for both.
type AxisSpec struct {
	IndexOrder  []string
	ColumnOrder []string
	XTickLabels []string
	BarNames    []string
}

// comparison sides, deciding the ylabel phrasing
const (
	sideTrain = "Training"
	sideTest  = "Test"
)

// singleErrorType returns the error type a filtered summary covers.
func singleErrorType(summary result.Summary) (string, error) {
	_, errorTypes, _, _, _ := summary.SeparateKeys()
	if len(errorTypes) != 1 {
		return "", errors.SchemaMismatch("summary covers %d error types, want exactly 1", len(errorTypes))
	}
	return errorTypes[0], nil
}

// ylabel phrases the y-axis: imputing vs. cleaning per error type, F1
// vs. accuracy per dataset, training vs. test side per axis.
func (r *Reporter) ylabel(errorType, dataset, side string) (string, error) {
	f1, err := r.datasets.IsMetricF1(dataset)
	if err != nil {
		return "", err
	}
	metric := "Accuracy"
	if f1 {
		metric = "F1"
	}
	verb := "Cleaning"
	if errorType == schema.MissingValues {
		verb = "Imputing"
	}
	return fmt.Sprintf("Change of %s After %s %s Set", metric, verb, side), nil
}

// renderDifference draws one chart per dataset from a relative
// difference map and exports the full table as a workbook.
func (r *Reporter) renderDifference(errorType, axis string, difference compare.Evaluation, spec AxisSpec, side string) error {
	var cells []table.Cell
	for key, value := range difference {
		cells = append(cells, table.Cell{
			Key:   table.Tuple{key.Dataset, key.Method, key.Model},
			Value: value,
		})
	}
	df, err := table.FromCells(cells, []int{0, 1}, []int{2})
	if err != nil {
		return err
	}

	datasets := map[string]bool{}
	for key := range difference {
		datasets[key.Dataset] = true
	}
	for _, row := range df.Rows() {
		dataset := row[0]
		if !datasets[dataset] {
			continue
		}
		delete(datasets, dataset)

		slice, err := df.DatasetSlice(dataset)
		if err != nil {
			return err
		}
		ordered, err := slice.Reindex(table.Flat(spec.IndexOrder), table.Flat(spec.ColumnOrder))
		if err != nil {
			return errors.Wrapf(err, "reindexing %s/%s for dataset %q", errorType, axis, dataset)
		}
		ylabel, err := r.ylabel(errorType, dataset, side)
		if err != nil {
			return err
		}
		p, err := render.BarPlot(ordered.Values(), spec.XTickLabels, spec.BarNames, "ML models", ylabel)
		if err != nil {
			return err
		}
		figPath := filepath.Join(r.outDir, errorType, axis, dataset+"_"+axis+".png")
		if err := render.SaveFig(p, figPath); err != nil {
			return err
		}
		r.manifest.Record(core.ArtifactChart, figPath)
	}

	bookPath := filepath.Join(r.outDir, errorType, axis+".xlsx")
	if err := excel.WriteWorkbook(bookPath, []excel.Sheet{{Name: axis, Table: df}}); err != nil {
		return err
	}
	r.manifest.Record(core.ArtifactWorkbook, bookPath)
	log.Printf("[Reporter] Rendered %s/%s (%d charts)", errorType, axis, len(difference))
	return nil
}

// PlotColumn compares cleaning methods for a fixed evaluation column:
// every method-trained model scored on the columnName test file.
func (r *Reporter) PlotColumn(summary result.Summary, spec AxisSpec, columnName string) error {
	errorType, err := singleErrorType(summary)
	if err != nil {
		return err
	}
	datasets, _, methods, models, _ := summary.SeparateKeys()

	evaluation := make(compare.Evaluation)
	for _, dataset := range datasets {
		metric, err := r.datasets.MetricName(dataset, columnName)
		if err != nil {
			return err
		}
		for _, method := range methods {
			for _, model := range models {
				v, err := summary.Float(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: method, Model: model, Metric: metric})
				if err != nil {
					return err
				}
				evaluation[compare.EvalKey{Dataset: dataset, Method: method, Model: model}] = v
			}
		}
	}
	difference, err := compare.ComputeDifference(evaluation)
	if err != nil {
		return err
	}
	return r.renderDifference(errorType, columnName+"_test", difference, spec, sideTrain)
}

// PlotRow compares dirty against clean evaluation of one fixed
// cleaning method: the rowName-trained model scored on both test files.
func (r *Reporter) PlotRow(summary result.Summary, spec AxisSpec, rowName string) error {
	errorType, err := singleErrorType(summary)
	if err != nil {
		return err
	}
	datasets, _, _, models, _ := summary.SeparateKeys()

	evaluation := make(compare.Evaluation)
	for _, dataset := range datasets {
		dirtyMetric, err := r.datasets.MetricName(dataset, "dirty")
		if err != nil {
			return err
		}
		cleanMetric, err := r.datasets.MetricName(dataset, "clean")
		if err != nil {
			return err
		}
		for _, model := range models {
			dirty, err := summary.Float(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: rowName, Model: model, Metric: dirtyMetric})
			if err != nil {
				return err
			}
			clean, err := summary.Float(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: rowName, Model: model, Metric: cleanMetric})
			if err != nil {
				return err
			}
			evaluation[compare.EvalKey{Dataset: dataset, Method: "dirty", Model: model}] = dirty
			evaluation[compare.EvalKey{Dataset: dataset, Method: "clean", Model: model}] = clean
		}
	}
	difference, err := compare.ComputeDifference(evaluation)
	if err != nil {
		return err
	}
	return r.renderDifference(errorType, rowName+"_model", difference, spec, sideTest)
}

// PlotMultirowDirty compares, per cleaning method, the dirty-trained
// model evaluated on that method's cleaned test set against its dirty
// test baseline.
func (r *Reporter) PlotMultirowDirty(summary result.Summary, spec AxisSpec) error {
	errorType, err := singleErrorType(summary)
	if err != nil {
		return err
	}
	et, err := r.errorTypes.Get(errorType)
	if err != nil {
		return err
	}
	cleanFiles := et.CleanMethodsDesc()
	datasets, _, _, models, _ := summary.SeparateKeys()

	evaluation := make(compare.Evaluation)
	for _, dataset := range datasets {
		dirtyMetric, err := r.datasets.MetricName(dataset, "dirty")
		if err != nil {
			return err
		}
		cleanMetric, err := r.datasets.MetricName(dataset, "clean")
		if err != nil {
			return err
		}
		for _, model := range models {
			dirty, err := summary.Float(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: "dirty", Model: model, Metric: dirtyMetric})
			if err != nil {
				return err
			}
			evaluation[compare.EvalKey{Dataset: dataset, Method: "dirty", Model: model}] = dirty

			values, err := summary.Floats(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: "dirty", Model: model, Metric: cleanMetric})
			if err != nil {
				return err
			}
			if len(values) != len(cleanFiles) {
				return errors.SchemaMismatch("dataset %q model %q has %d clean-test values, want %d",
					dataset, model, len(values), len(cleanFiles))
			}
			for i, file := range cleanFiles {
				method := result.MethodLabel(et, file)
				evaluation[compare.EvalKey{Dataset: dataset, Method: method, Model: model}] = values[i]
			}
		}
	}
	difference, err := compare.ComputeDifference(evaluation)
	if err != nil {
		return err
	}
	return r.renderDifference(errorType, "dirty_model", difference, spec, sideTest)
}

// PlotMultirowClean compares, per cleaning method, the method-trained
// model on clean versus dirty test sets.
func (r *Reporter) PlotMultirowClean(summary result.Summary, spec AxisSpec) error {
	errorType, err := singleErrorType(summary)
	if err != nil {
		return err
	}
	et, err := r.errorTypes.Get(errorType)
	if err != nil {
		return err
	}
	datasets, _, _, models, _ := summary.SeparateKeys()

	difference := make(compare.Evaluation)
	for _, dataset := range datasets {
		dirtyMetric, err := r.datasets.MetricName(dataset, "dirty")
		if err != nil {
			return err
		}
		cleanMetric, err := r.datasets.MetricName(dataset, "clean")
		if err != nil {
			return err
		}
		for _, model := range models {
			for _, file := range et.CleanMethodsDesc() {
				method := result.MethodLabel(et, file)
				dirty, err := summary.Float(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: method, Model: model, Metric: dirtyMetric})
				if err != nil {
					return err
				}
				clean, err := summary.Float(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: method, Model: model, Metric: cleanMetric})
				if err != nil {
					return err
				}
				if dirty == 0 {
					return errors.DegenerateComparison("dirty-test baseline is zero for dataset %q method %q model %q",
						dataset, method, model)
				}
				difference[compare.EvalKey{Dataset: dataset, Method: method, Model: model}] = (clean - dirty) / dirty
			}
		}
	}
	return r.renderDifference(errorType, "clean_model", difference, spec, sideTest)
}

// PlotMulticolumnClean compares, per cleaning method, the
// method-trained model against the dirty-trained model, both evaluated
// on the method's cleaned test set.
func (r *Reporter) PlotMulticolumnClean(summary result.Summary, spec AxisSpec) error {
	errorType, err := singleErrorType(summary)
	if err != nil {
		return err
	}
	et, err := r.errorTypes.Get(errorType)
	if err != nil {
		return err
	}
	cleanFiles := et.CleanMethodsDesc()
	datasets, _, _, models, _ := summary.SeparateKeys()

	difference := make(compare.Evaluation)
	for _, dataset := range datasets {
		cleanMetric, err := r.datasets.MetricName(dataset, "clean")
		if err != nil {
			return err
		}
		for _, model := range models {
			values, err := summary.Floats(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: "dirty", Model: model, Metric: cleanMetric})
			if err != nil {
				return err
			}
			if len(values) != len(cleanFiles) {
				return errors.SchemaMismatch("dataset %q model %q has %d clean-test values, want %d",
					dataset, model, len(values), len(cleanFiles))
			}
			for i, file := range cleanFiles {
				method := result.MethodLabel(et, file)
				clean, err := summary.Float(result.SummaryKey{Dataset: dataset, ErrorType: errorType, Method: method, Model: model, Metric: cleanMetric})
				if err != nil {
					return err
				}
				if values[i] == 0 {
					return errors.DegenerateComparison("dirty-model baseline is zero for dataset %q method %q model %q",
						dataset, method, model)
				}
				difference[compare.EvalKey{Dataset: dataset, Method: method, Model: model}] = (clean - values[i]) / values[i]
			}
		}
	}
	return r.renderDifference(errorType, "clean_test", difference, spec, sideTrain)
}
