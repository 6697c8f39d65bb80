package table

import (
	"math"
	"sort"
	"strings"

	"cleanml/internal/errors"
)

// Tuple is a composite row or column label, one element per index level.
type Tuple []string

// Key returns the canonical string form used for lookups.
func (t Tuple) Key() string {
	return strings.Join(t, "/")
}

// Equal reports element-wise equality.
func (t Tuple) Equal(u Tuple) bool {
	if len(t) != len(u) {
		return false
	}
	for i := range t {
		if t[i] != u[i] {
			return false
		}
	}
	return true
}

func (t Tuple) less(u Tuple) bool {
	for i := 0; i < len(t) && i < len(u); i++ {
		if t[i] != u[i] {
			return t[i] < u[i]
		}
	}
	return len(t) < len(u)
}

// Cell is one entry of a keyed mapping about to be reshaped.
type Cell struct {
	Key   Tuple
	Value float64
}

// Table is a two-dimensional labeled table with composite row and
// column labels. Cells never written hold NaN, the defined missing
// state; consumers decide whether missing is tolerable.
type Table struct {
	rows   []Tuple
	cols   []Tuple
	rowPos map[string]int
	colPos map[string]int
	data   [][]float64
}

// FromCells reshapes a flat keyed mapping into a table. rowPos and
// colPos name the key positions forming the row and column labels; the
// axes are ordered by the sorted set of unique label tuples, matching
// the deterministic ordering contract of the reshaper.
func FromCells(cells []Cell, rowPos, colPos []int) (*Table, error) {
	if len(cells) == 0 {
		return nil, errors.SchemaMismatch("cannot build a table from zero cells")
	}
	arity := len(cells[0].Key)
	for _, p := range append(append([]int{}, rowPos...), colPos...) {
		if p < 0 || p >= arity {
			return nil, errors.SchemaMismatch("index position %d out of range for key arity %d", p, arity)
		}
	}

	pick := func(key Tuple, pos []int) Tuple {
		out := make(Tuple, len(pos))
		for i, p := range pos {
			out[i] = key[p]
		}
		return out
	}

	var rows, cols []Tuple
	seenRow := map[string]bool{}
	seenCol := map[string]bool{}
	for _, c := range cells {
		if len(c.Key) != arity {
			return nil, errors.SchemaMismatch("mixed key arity: expected %d, got %d", arity, len(c.Key))
		}
		if r := pick(c.Key, rowPos); !seenRow[r.Key()] {
			seenRow[r.Key()] = true
			rows = append(rows, r)
		}
		if cl := pick(c.Key, colPos); !seenCol[cl.Key()] {
			seenCol[cl.Key()] = true
			cols = append(cols, cl)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].less(rows[j]) })
	sort.Slice(cols, func(i, j int) bool { return cols[i].less(cols[j]) })

	t := newTable(rows, cols)
	for _, c := range cells {
		i := t.rowPos[pick(c.Key, rowPos).Key()]
		j := t.colPos[pick(c.Key, colPos).Key()]
		if !math.IsNaN(t.data[i][j]) {
			return nil, errors.SchemaMismatch("duplicate cell for row %v column %v", t.rows[i], t.cols[j])
		}
		t.data[i][j] = c.Value
	}
	return t, nil
}

func newTable(rows, cols []Tuple) *Table {
	t := &Table{
		rows:   rows,
		cols:   cols,
		rowPos: make(map[string]int, len(rows)),
		colPos: make(map[string]int, len(cols)),
		data:   make([][]float64, len(rows)),
	}
	for i, r := range rows {
		t.rowPos[r.Key()] = i
	}
	for j, c := range cols {
		t.colPos[c.Key()] = j
	}
	for i := range t.data {
		t.data[i] = make([]float64, len(cols))
		for j := range t.data[i] {
			t.data[i][j] = math.NaN()
		}
	}
	return t
}

// Rows returns the row labels in order.
func (t *Table) Rows() []Tuple {
	out := make([]Tuple, len(t.rows))
	copy(out, t.rows)
	return out
}

// Cols returns the column labels in order.
func (t *Table) Cols() []Tuple {
	out := make([]Tuple, len(t.cols))
	copy(out, t.cols)
	return out
}

// RowLevels returns the number of row index levels.
func (t *Table) RowLevels() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

// ColLevels returns the number of column index levels.
func (t *Table) ColLevels() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// At returns the cell at positional indices; NaN means missing.
func (t *Table) At(i, j int) float64 {
	return t.data[i][j]
}

// Value returns the cell for the given labels. Unknown labels are a
// schema mismatch; a known but never-written cell comes back as NaN.
func (t *Table) Value(row, col Tuple) (float64, error) {
	i, ok := t.rowPos[row.Key()]
	if !ok {
		return math.NaN(), errors.SchemaMismatch("row %v not present in table", row)
	}
	j, ok := t.colPos[col.Key()]
	if !ok {
		return math.NaN(), errors.SchemaMismatch("column %v not present in table", col)
	}
	return t.data[i][j], nil
}

// Values returns a dense copy of the cell matrix.
func (t *Table) Values() [][]float64 {
	out := make([][]float64, len(t.data))
	for i := range t.data {
		out[i] = make([]float64, len(t.data[i]))
		copy(out[i], t.data[i])
	}
	return out
}

// ColumnWhere collects, in row order, the cells of the given column for
// every row whose labels start with rowPrefix.
func (t *Table) ColumnWhere(rowPrefix, col Tuple) ([]float64, error) {
	j, ok := t.colPos[col.Key()]
	if !ok {
		return nil, errors.SchemaMismatch("column %v not present in table", col)
	}
	var out []float64
	for i, r := range t.rows {
		if len(r) < len(rowPrefix) {
			continue
		}
		if Tuple(r[:len(rowPrefix)]).Equal(rowPrefix) {
			out = append(out, t.data[i][j])
		}
	}
	if len(out) == 0 {
		return nil, errors.SchemaMismatch("no rows match prefix %v", rowPrefix)
	}
	return out, nil
}

// DatasetSlice extracts the cross-section for one dataset: rows keep
// only those whose first label equals dataset (that level dropped), and
// columns collapse to their first level.
func (t *Table) DatasetSlice(dataset string) (*Table, error) {
	var rows []Tuple
	var keep []int
	for i, r := range t.rows {
		if len(r) >= 2 && r[0] == dataset {
			rows = append(rows, Tuple(r[1:]))
			keep = append(keep, i)
		}
	}
	if len(rows) == 0 {
		return nil, errors.SchemaMismatch("dataset %q not present in table", dataset)
	}

	cols := make([]Tuple, len(t.cols))
	for j, c := range t.cols {
		cols[j] = Tuple{c[0]}
	}
	out := newTable(rows, cols)
	if len(out.rows) != len(rows) || len(out.colPos) != len(cols) {
		return nil, errors.SchemaMismatch("dataset slice for %q has ambiguous labels", dataset)
	}
	for i, src := range keep {
		copy(out.data[i], t.data[src])
	}
	return out, nil
}

// Reindex reorders both axes to the requested label orders. Every
// requested label must exist in the table; a label the table does not
// have is a contract violation, not a silent drop.
func (t *Table) Reindex(rowOrder, colOrder []Tuple) (*Table, error) {
	rowIdx := make([]int, len(rowOrder))
	for i, r := range rowOrder {
		pos, ok := t.rowPos[r.Key()]
		if !ok {
			return nil, errors.SchemaMismatch("requested row %v not present in table", r)
		}
		rowIdx[i] = pos
	}
	colIdx := make([]int, len(colOrder))
	for j, c := range colOrder {
		pos, ok := t.colPos[c.Key()]
		if !ok {
			return nil, errors.SchemaMismatch("requested column %v not present in table", c)
		}
		colIdx[j] = pos
	}

	rows := make([]Tuple, len(rowOrder))
	for i, r := range rowOrder {
		rows[i] = append(Tuple{}, r...)
	}
	cols := make([]Tuple, len(colOrder))
	for j, c := range colOrder {
		cols[j] = append(Tuple{}, c...)
	}
	out := newTable(rows, cols)
	for i, ri := range rowIdx {
		for j, cj := range colIdx {
			out.data[i][j] = t.data[ri][cj]
		}
	}
	return out, nil
}

// Flat returns labels as single strings, for one-level axes.
func Flat(labels []string) []Tuple {
	out := make([]Tuple, len(labels))
	for i, l := range labels {
		out[i] = Tuple{l}
	}
	return out
}
