package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cleanml/domain/compare"
	"cleanml/internal/table"
)

func metricTable(t *testing.T) *table.Table {
	t.Helper()
	cells := []table.Cell{
		{Key: table.Tuple{"clean", "lr"}, Value: 0.75},
		{Key: table.Tuple{"dirty", "lr"}, Value: 0.70},
	}
	tbl, err := table.FromCells(cells, []int{0}, []int{1})
	require.NoError(t, err)
	return tbl
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	outcomes := &compare.OutcomeTable{
		Rows:   []table.Tuple{{"wine", "knn"}},
		Labels: []string{"AB", "AC", "BD", "CD"},
		Cells: [][]compare.Outcome{{
			{Stat: 2, P: 0.05, HasP: true},
			{Stat: -1, P: 0.5, HasP: true},
			{Stat: 0.25, P: 0.1, HasP: true},
			{Stat: 3, P: 0.01, HasP: true},
		}},
	}

	path := filepath.Join(t.TempDir(), "table", "t_test", "duplicates.xlsx")
	err := WriteWorkbook(path, []Sheet{
		{Name: "clean_iso_forest_delete", Table: metricTable(t)},
		{Name: "scores", Outcomes: outcomes},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"clean_ISO_delete", "scores"}, f.GetSheetList())

	get := func(sheet, cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "lr", get("clean_ISO_delete", "B1"))
	assert.Equal(t, "clean", get("clean_ISO_delete", "A2"))
	assert.Equal(t, "0.75", get("clean_ISO_delete", "B2"))
	assert.Equal(t, "dirty", get("clean_ISO_delete", "A3"))
	assert.Equal(t, "0.7", get("clean_ISO_delete", "B3"))

	assert.Equal(t, "AB", get("scores", "C1"))
	assert.Equal(t, "wine", get("scores", "A2"))
	assert.Equal(t, "knn", get("scores", "B2"))
	assert.Equal(t, "(2, 0.05)", get("scores", "C2"))
	assert.Equal(t, "(3, 0.01)", get("scores", "F2"))
}

func TestWriteWorkbookRejectsBadSheets(t *testing.T) {
	dir := t.TempDir()

	err := WriteWorkbook(filepath.Join(dir, "empty.xlsx"), nil)
	assert.Error(t, err)

	err = WriteWorkbook(filepath.Join(dir, "blank.xlsx"), []Sheet{{Name: "blank"}})
	assert.Error(t, err)

	long := "a_very_long_sheet_name_over_the_limit"
	err = WriteWorkbook(filepath.Join(dir, "long.xlsx"), []Sheet{{Name: long, Table: metricTable(t)}})
	assert.Error(t, err)
}
