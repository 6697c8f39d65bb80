package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymmetricLimit(t *testing.T) {
	// floor of 0.1 when every value is small
	assert.Equal(t, 0.1, SymmetricLimit([][]float64{{0.01, -0.05}}))
	// largest absolute cell wins past the floor
	assert.Equal(t, 0.3, SymmetricLimit([][]float64{{0.02, -0.3}, {0.15, 0.1}}))
	assert.Equal(t, 0.1, SymmetricLimit(nil))
}

func TestBarPlotYAxisIsSymmetric(t *testing.T) {
	data := [][]float64{{0.05, -0.25}, {0.1, 0.2}}
	p, err := BarPlot(data, []string{"LR", "KNN"}, []string{"a", "b"}, "Model", "Change")
	require.NoError(t, err)
	assert.Equal(t, -0.25, p.Y.Min)
	assert.Equal(t, 0.25, p.Y.Max)
}

func TestBarPlotShapeValidation(t *testing.T) {
	_, err := BarPlot(nil, []string{"LR"}, nil, "", "")
	assert.Error(t, err)

	_, err = BarPlot([][]float64{{0.1}}, []string{"LR"}, []string{"a", "b"}, "", "")
	assert.Error(t, err)

	_, err = BarPlot([][]float64{{0.1, 0.2}}, []string{"LR"}, []string{"a"}, "", "")
	assert.Error(t, err)
}

func TestSaveFig(t *testing.T) {
	p, err := BarPlot([][]float64{{0.05, -0.02}}, []string{"LR", "KNN"}, []string{"clean"}, "Model", "Change")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "duplicates", "col", "wine_col.png")
	require.NoError(t, SaveFig(p, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
