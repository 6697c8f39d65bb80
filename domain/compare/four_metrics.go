package compare

import (
	"math"

	"cleanml/domain/result"
	"cleanml/domain/schema"
	"cleanml/internal/errors"
	"cleanml/internal/table"
)

// Quadrant comparison labels. With f0 and f1 the two file types, the
// quadrants are A=train f0/test f0, B=train f0/test f1, C=train
// f1/test f0, D=train f1/test f1; the four compared pairs isolate
// training-side versus testing-side effects of cleaning.
var ComparisonLabels = []string{"AB", "AC", "BD", "CD"}

// FourMetrics filters a seed-reduced result to one error type and two
// train file types, evaluates every entry on both file types as test
// sets, and reshapes the cross product into a table with rows
// (dataset, train_file, split_seed) and columns (model, test_file).
// Combinations absent from the source stay missing (NaN) in the table;
// a missing metric on a present entry is a hard lookup failure.
func FourMetrics(reduced result.Reduced, datasets *schema.DatasetRegistry, errorType string, fileTypes [2]string) (*table.Table, error) {
	var cells []table.Cell
	for rawKey, metrics := range reduced {
		key, err := result.ParseReducedKey(rawKey)
		if err != nil {
			return nil, err
		}
		if key.ErrorType != errorType {
			continue
		}
		if key.TrainFile != fileTypes[0] && key.TrainFile != fileTypes[1] {
			continue
		}
		for _, testFile := range fileTypes {
			metricName, err := datasets.MetricName(key.Dataset, testFile)
			if err != nil {
				return nil, err
			}
			metric, ok := metrics[metricName]
			if !ok {
				return nil, errors.LookupFailure("result %q has no metric %q", rawKey, metricName)
			}
			cells = append(cells, table.Cell{
				Key:   table.Tuple{key.Dataset, key.SplitSeed, key.TrainFile, key.Model, testFile},
				Value: metric,
			})
		}
	}
	if len(cells) == 0 {
		return nil, errors.SchemaMismatch("no results for error type %q with file types %v", errorType, fileTypes)
	}
	return table.FromCells(cells, []int{0, 2, 1}, []int{3, 4})
}

// OutcomeTable holds comparison outcomes indexed by (dataset, model)
// rows and comparison-label columns.
type OutcomeTable struct {
	Rows   []table.Tuple
	Labels []string
	Cells  [][]Outcome
}

// CompareFourMetrics extracts, per (dataset, model), the four quadrant
// vectors across split seeds and applies the method to the ordered
// pairs (A,B), (A,C), (C,D), (B,D). A quadrant with a missing cell
// fails with a schema mismatch rather than comparing partial data.
func CompareFourMetrics(fm *table.Table, fileTypes [2]string, method Method) (*OutcomeTable, error) {
	datasets := uniqueLevel(fm.Rows(), 0)
	models := uniqueLevel(fm.Cols(), 0)

	out := &OutcomeTable{Labels: ComparisonLabels}
	for _, dataset := range datasets {
		for _, model := range models {
			quadrant := func(trainFile, testFile string) ([]float64, error) {
				values, err := fm.ColumnWhere(table.Tuple{dataset, trainFile}, table.Tuple{model, testFile})
				if err != nil {
					return nil, err
				}
				for _, v := range values {
					if math.IsNaN(v) {
						return nil, errors.SchemaMismatch(
							"missing cell for dataset %q model %q train %q test %q",
							dataset, model, trainFile, testFile)
					}
				}
				return values, nil
			}
			a, err := quadrant(fileTypes[0], fileTypes[0])
			if err != nil {
				return nil, err
			}
			b, err := quadrant(fileTypes[0], fileTypes[1])
			if err != nil {
				return nil, err
			}
			c, err := quadrant(fileTypes[1], fileTypes[0])
			if err != nil {
				return nil, err
			}
			d, err := quadrant(fileTypes[1], fileTypes[1])
			if err != nil {
				return nil, err
			}

			row := make([]Outcome, len(ComparisonLabels))
			for i, label := range ComparisonLabels {
				var x, y []float64
				switch label {
				case "AB":
					x, y = a, b
				case "AC":
					x, y = a, c
				case "BD":
					x, y = b, d
				case "CD":
					x, y = c, d
				}
				outcome, err := method.Compare(x, y)
				if err != nil {
					return nil, errors.Wrapf(err, "%s comparison failed for dataset %q model %q", label, dataset, model)
				}
				row[i] = outcome
			}
			out.Rows = append(out.Rows, table.Tuple{dataset, model})
			out.Cells = append(out.Cells, row)
		}
	}
	return out, nil
}

func uniqueLevel(labels []table.Tuple, level int) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range labels {
		if !seen[l[level]] {
			seen[l[level]] = true
			out = append(out, l[level])
		}
	}
	return out
}
