package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanml/domain/result"
	"cleanml/internal/table"
	"cleanml/internal/testkit"
)

// meanDiff reports mean(b) - mean(a); it keeps quadrant expectations
// readable when every vector is constant.
type meanDiff struct{}

func (meanDiff) Name() string { return "mean_diff" }

func (meanDiff) Compare(a, b []float64) (Outcome, error) {
	sum := func(xs []float64) float64 {
		var s float64
		for _, x := range xs {
			s += x
		}
		return s
	}
	return Outcome{Stat: sum(b)/float64(len(b)) - sum(a)/float64(len(a))}, nil
}

func quadrantReduced() result.Reduced {
	reduced := make(result.Reduced)
	for _, split := range []string{"s0", "s1"} {
		reduced[testkit.Key("wine", split, "duplicates", "dirty", "knn")] = result.Metrics{
			"dirty_test_acc": 0.8,
			"clean_test_acc": 0.6,
		}
		reduced[testkit.Key("wine", split, "duplicates", "clean", "knn")] = result.Metrics{
			"dirty_test_acc": 0.7,
			"clean_test_acc": 0.9,
		}
	}
	return reduced
}

func TestFourMetricsShape(t *testing.T) {
	datasets := testkit.Registry([]string{"wine"})

	fm, err := FourMetrics(quadrantReduced(), datasets, "duplicates", [2]string{"dirty", "clean"})
	require.NoError(t, err)

	// rows (dataset, train_file, split_seed), columns (model, test_file)
	assert.Equal(t, []table.Tuple{
		{"wine", "clean", "s0"},
		{"wine", "clean", "s1"},
		{"wine", "dirty", "s0"},
		{"wine", "dirty", "s1"},
	}, fm.Rows())
	assert.Equal(t, []table.Tuple{
		{"knn", "clean"},
		{"knn", "dirty"},
	}, fm.Cols())

	v, err := fm.Value(table.Tuple{"wine", "dirty", "s0"}, table.Tuple{"knn", "clean"})
	require.NoError(t, err)
	assert.Equal(t, 0.6, v)
}

func TestFourMetricsMissingMetricFails(t *testing.T) {
	datasets := testkit.Registry([]string{"wine"})
	reduced := result.Reduced{
		testkit.Key("wine", "s0", "duplicates", "dirty", "knn"): result.Metrics{
			"dirty_test_acc": 0.8,
			// clean_test_acc absent
		},
	}
	_, err := FourMetrics(reduced, datasets, "duplicates", [2]string{"dirty", "clean"})
	assert.Error(t, err)
}

func TestFourMetricsImbalancedDatasetUsesF1(t *testing.T) {
	datasets := testkit.Registry([]string{"wine"}, "wine")
	reduced := result.Reduced{
		testkit.Key("wine", "s0", "duplicates", "dirty", "knn"): result.Metrics{
			"dirty_test_f1": 0.8,
			"clean_test_f1": 0.6,
		},
	}
	fm, err := FourMetrics(reduced, datasets, "duplicates", [2]string{"dirty", "clean"})
	require.NoError(t, err)
	v, err := fm.Value(table.Tuple{"wine", "dirty", "s0"}, table.Tuple{"knn", "dirty"})
	require.NoError(t, err)
	assert.Equal(t, 0.8, v)
}

func TestCompareFourMetricsQuadrantPairs(t *testing.T) {
	datasets := testkit.Registry([]string{"wine"})
	fm, err := FourMetrics(quadrantReduced(), datasets, "duplicates", [2]string{"dirty", "clean"})
	require.NoError(t, err)

	outcomes, err := CompareFourMetrics(fm, [2]string{"dirty", "clean"}, meanDiff{})
	require.NoError(t, err)

	require.Equal(t, []table.Tuple{{"wine", "knn"}}, outcomes.Rows)
	require.Equal(t, []string{"AB", "AC", "BD", "CD"}, outcomes.Labels)

	// A=0.8 B=0.6 C=0.7 D=0.9
	row := outcomes.Cells[0]
	assert.InDelta(t, -0.2, row[0].Stat, 1e-12) // AB
	assert.InDelta(t, -0.1, row[1].Stat, 1e-12) // AC
	assert.InDelta(t, 0.3, row[2].Stat, 1e-12)  // BD
	assert.InDelta(t, 0.2, row[3].Stat, 1e-12)  // CD
}

func TestCompareDupIncon(t *testing.T) {
	datasets := testkit.Registry([]string{"wine"})

	reports, err := CompareDupIncon(quadrantReduced(), datasets, "duplicates", meanDiff{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "clean", reports[0].Name)
	require.NotNil(t, reports[0].Metrics)
	require.NotNil(t, reports[0].Comparison)
}
