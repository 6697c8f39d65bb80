package app

import (
	"log"
	"path/filepath"

	"cleanml/adapters/excel"
	"cleanml/domain/compare"
	"cleanml/domain/core"
	"cleanml/domain/result"
	"cleanml/domain/schema"
)

// TTestReport runs the paired-test comparison for every error type and
// writes two workbooks per type: the test outcomes and the raw
// four-metrics quadrant tables.
func (r *Reporter) TTestReport(store result.Store) error {
	grouped, err := result.Group(store, result.AxisSeed)
	if err != nil {
		return err
	}
	reduced, err := result.ReduceByMean(grouped)
	if err != nil {
		return err
	}

	method := compare.PairedTTest{}
	type job struct {
		errorType string
		run       func() ([]compare.MethodReport, error)
	}
	jobs := []job{
		{schema.MissingValues, func() ([]compare.MethodReport, error) {
			return compare.CompareMissingValues(reduced, r.datasets, r.errorTypes, method)
		}},
		{schema.Outliers, func() ([]compare.MethodReport, error) {
			return compare.CompareOutliers(reduced, r.datasets, r.errorTypes, method)
		}},
		{schema.Mislabel, func() ([]compare.MethodReport, error) {
			return compare.CompareMislabel(reduced, r.datasets, method)
		}},
		{schema.Duplicates, func() ([]compare.MethodReport, error) {
			return compare.CompareDupIncon(reduced, r.datasets, schema.Duplicates, method)
		}},
		{schema.Inconsistency, func() ([]compare.MethodReport, error) {
			return compare.CompareDupIncon(reduced, r.datasets, schema.Inconsistency, method)
		}},
	}

	for _, j := range jobs {
		reports, err := j.run()
		if err != nil {
			return err
		}

		comparisonSheets := make([]excel.Sheet, len(reports))
		metricSheets := make([]excel.Sheet, len(reports))
		for i, report := range reports {
			comparisonSheets[i] = excel.Sheet{Name: report.Name, Outcomes: report.Comparison}
			metricSheets[i] = excel.Sheet{Name: report.Name, Table: report.Metrics}
		}

		testPath := filepath.Join(r.outDir, "table", "t_test", j.errorType+".xlsx")
		if err := excel.WriteWorkbook(testPath, comparisonSheets); err != nil {
			return err
		}
		r.manifest.Record(core.ArtifactWorkbook, testPath)

		metricsPath := filepath.Join(r.outDir, "table", "four_metrics", j.errorType+".xlsx")
		if err := excel.WriteWorkbook(metricsPath, metricSheets); err != nil {
			return err
		}
		r.manifest.Record(core.ArtifactWorkbook, metricsPath)
		log.Printf("[Reporter] Wrote t-test workbooks for %s (%d methods)", j.errorType, len(reports))
	}
	return nil
}
