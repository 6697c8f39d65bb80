// Package excel writes comparison tables and quadrant metrics as
// multi-sheet spreadsheet workbooks.
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"cleanml/domain/compare"
	"cleanml/internal/errors"
	"cleanml/internal/table"
)

const maxSheetName = 31

// Sheet is one workbook sheet holding either a metric table or a
// comparison outcome table.
type Sheet struct {
	Name     string
	Table    *table.Table
	Outcomes *compare.OutcomeTable
}

// sheetName applies the cosmetic iso_forest substitution and enforces
// the spreadsheet sheet-name limit.
func sheetName(name string) (string, error) {
	name = strings.ReplaceAll(name, "iso_forest", "ISO")
	if name == "" || len(name) > maxSheetName {
		return "", errors.SchemaMismatch("sheet name %q is empty or longer than %d characters", name, maxSheetName)
	}
	return name, nil
}

// WriteWorkbook writes one sheet per entry, in order, creating the
// directory tree first. The workbook is written to a temp file and
// renamed into place.
func WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return errors.SchemaMismatch("workbook %s has no sheets", path)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IOFailure("failed to create workbook directory "+dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		name, err := sheetName(sheet.Name)
		if err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return errors.Wrapf(err, "failed to name sheet %q", name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return errors.Wrapf(err, "failed to create sheet %q", name)
		}
		switch {
		case sheet.Table != nil:
			err = writeTable(f, name, sheet.Table)
		case sheet.Outcomes != nil:
			err = writeOutcomes(f, name, sheet.Outcomes)
		default:
			err = errors.SchemaMismatch("sheet %q has no content", name)
		}
		if err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".workbook-*.xlsx")
	if err != nil {
		return errors.IOFailure("failed to create temp workbook file", err)
	}
	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to write workbook "+path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to close temp workbook file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to move workbook into place at "+path, err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.Wrapf(err, "bad cell coordinates (%d, %d)", col, row)
	}
	return f.SetCellValue(sheet, cell, value)
}

// writeTable lays out a labeled table: one header row per column
// level, then one row per row label with its label tuple in the
// leading columns.
func writeTable(f *excelize.File, sheet string, t *table.Table) error {
	rowLevels := t.RowLevels()
	colLevels := t.ColLevels()
	cols := t.Cols()
	rows := t.Rows()

	for level := 0; level < colLevels; level++ {
		for j, c := range cols {
			if err := setCell(f, sheet, rowLevels+1+j, level+1, c[level]); err != nil {
				return err
			}
		}
	}
	for i, r := range rows {
		excelRow := colLevels + 1 + i
		for level, label := range r {
			if err := setCell(f, sheet, level+1, excelRow, label); err != nil {
				return err
			}
		}
		for j := range cols {
			if err := setCell(f, sheet, rowLevels+1+j, excelRow, t.At(i, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeOutcomes(f *excelize.File, sheet string, ot *compare.OutcomeTable) error {
	rowLevels := 0
	if len(ot.Rows) > 0 {
		rowLevels = len(ot.Rows[0])
	}
	for j, label := range ot.Labels {
		if err := setCell(f, sheet, rowLevels+1+j, 1, label); err != nil {
			return err
		}
	}
	for i, r := range ot.Rows {
		for level, label := range r {
			if err := setCell(f, sheet, level+1, i+2, label); err != nil {
				return err
			}
		}
		for j, outcome := range ot.Cells[i] {
			var value interface{}
			if outcome.HasP {
				value = fmt.Sprintf("(%g, %g)", outcome.Stat, outcome.P)
			} else {
				value = outcome.Stat
			}
			if err := setCell(f, sheet, rowLevels+1+j, i+2, value); err != nil {
				return err
			}
		}
	}
	return nil
}
