package spending

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Table is an ordered list of equal-length, uniquely named columns with an optional
// row index of unique string keys.
//
// Tables are values: every method that changes shape returns a new Table and leaves
// its receiver alone. Columns may be shared between Tables and must not be modified
// once they belong to one.
type Table struct {
	cols []*Col

	index *Col
	keys  map[string]int
}

func NewTable(cols ...*Col) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns in NewTable")
	}

	rowCount := cols[0].Len()
	var names []string
	for _, col := range cols {
		if col == nil {
			return nil, fmt.Errorf("nil column in NewTable")
		}

		if col.Name() == "" {
			return nil, fmt.Errorf("unnamed column in NewTable")
		}

		if slices.Contains(names, col.Name()) {
			return nil, fmt.Errorf("duplicate column name: %s", col.Name())
		}

		if col.Len() != rowCount {
			return nil, fmt.Errorf("length mismatch: %s has %d rows, expected %d", col.Name(), col.Len(), rowCount)
		}

		names = append(names, col.Name())
	}

	return &Table{cols: slices.Clone(cols)}, nil
}

// *********** Shape ***********

func (t *Table) RowCount() int {
	if len(t.cols) == 0 {
		if t.index != nil {
			return t.index.Len()
		}

		return 0
	}

	return t.cols[0].Len()
}

func (t *Table) ColumnCount() int {
	return len(t.cols)
}

func (t *Table) ColumnNames() []string {
	var names []string
	for _, col := range t.cols {
		names = append(names, col.Name())
	}

	return names
}

// Column returns the column colName, or nil if there is no such column
func (t *Table) Column(colName string) *Col {
	for _, col := range t.cols {
		if col.Name() == colName {
			return col
		}
	}

	return nil
}

func (t *Table) Columns() []*Col {
	return slices.Clone(t.cols)
}

// ColumnsContaining returns, in table order, the names of the columns that contain substr.
// Matching is case-sensitive.
func (t *Table) ColumnsContaining(substr string) []string {
	var names []string
	for _, col := range t.cols {
		if strings.Contains(col.Name(), substr) {
			names = append(names, col.Name())
		}
	}

	return names
}

// *********** Index ***********

func (t *Table) Index() *Col {
	return t.index
}

// SetIndex returns a copy of t whose row index is the column colName. The column is
// removed from the data columns and its values must be unique.
func (t *Table) SetIndex(colName string) (*Table, error) {
	col := t.Column(colName)
	if col == nil {
		return nil, fmt.Errorf("column %s not found", colName)
	}

	keys := make(map[string]int, col.Len())
	for ind := range col.Len() {
		if col.IsNA(ind) {
			return nil, fmt.Errorf("missing value in index column %s at row %d", colName, ind)
		}

		k := col.ElementString(ind)
		if _, dup := keys[k]; dup {
			return nil, fmt.Errorf("duplicate index value %s in column %s", k, colName)
		}

		keys[k] = ind
	}

	var cols []*Col
	for _, c := range t.cols {
		if c != col {
			cols = append(cols, c)
		}
	}

	return &Table{cols: cols, index: col, keys: keys}, nil
}

// IndexOf returns the row with index key, or -1
func (t *Table) IndexOf(key string) int {
	if ind, ok := t.keys[key]; ok {
		return ind
	}

	return -1
}

// *********** Column subsets ***********

// KeepColumns returns a table with just colNames, in that order. The index is kept.
func (t *Table) KeepColumns(colNames ...string) (*Table, error) {
	var cols []*Col
	for _, nm := range colNames {
		col := t.Column(nm)
		if col == nil {
			return nil, fmt.Errorf("column %s not found", nm)
		}

		if slices.Contains(cols, col) {
			return nil, fmt.Errorf("column %s requested twice", nm)
		}

		cols = append(cols, col)
	}

	return &Table{cols: cols, index: t.index, keys: t.keys}, nil
}

func (t *Table) DropColumns(colNames ...string) (*Table, error) {
	for _, nm := range colNames {
		if t.Column(nm) == nil {
			return nil, fmt.Errorf("column %s not found", nm)
		}
	}

	var cols []*Col
	for _, col := range t.cols {
		if !slices.Contains(colNames, col.Name()) {
			cols = append(cols, col)
		}
	}

	return &Table{cols: cols, index: t.index, keys: t.keys}, nil
}

func (t *Table) AppendColumn(col *Col) (*Table, error) {
	if t.Column(col.Name()) != nil {
		return nil, fmt.Errorf("duplicate column name: %s", col.Name())
	}

	if e := validName(col.Name()); e != nil {
		return nil, e
	}

	if col.Len() != t.RowCount() {
		return nil, fmt.Errorf("length mismatch: table - %d, append col - %d", t.RowCount(), col.Len())
	}

	cols := append(slices.Clone(t.cols), col)

	return &Table{cols: cols, index: t.index, keys: t.keys}, nil
}

// ReplaceColumn returns a table with the same-named column swapped for col
func (t *Table) ReplaceColumn(col *Col) (*Table, error) {
	pos := slices.IndexFunc(t.cols, func(c *Col) bool { return c.Name() == col.Name() })
	if pos < 0 {
		return nil, fmt.Errorf("column %s not found", col.Name())
	}

	if col.Len() != t.RowCount() {
		return nil, fmt.Errorf("length mismatch: table - %d, replacement col - %d", t.RowCount(), col.Len())
	}

	cols := slices.Clone(t.cols)
	cols[pos] = col

	return &Table{cols: cols, index: t.index, keys: t.keys}, nil
}

// *********** Row subsets ***********

// Take returns a table with rows in the order given by rows
func (t *Table) Take(rows []int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.RowCount() {
			return nil, fmt.Errorf("row %d out of range", r)
		}
	}

	out := &Table{}
	for _, col := range t.cols {
		out.cols = append(out.cols, &Col{Vector: col.Take(rows), name: col.Name()})
	}

	if t.index != nil {
		out.index = &Col{Vector: t.index.Take(rows), name: t.index.Name()}
		out.keys = make(map[string]int, len(rows))
		for ind := range out.index.Len() {
			k := out.index.ElementString(ind)
			if _, dup := out.keys[k]; dup {
				return nil, fmt.Errorf("duplicate index value %s in Take", k)
			}

			out.keys[k] = ind
		}
	}

	return out, nil
}

// Where keeps the rows for which keep is true
func (t *Table) Where(keep []bool) (*Table, error) {
	if len(keep) != t.RowCount() {
		return nil, fmt.Errorf("length mismatch in Where: table - %d, indicator - %d", t.RowCount(), len(keep))
	}

	var rows []int
	for ind, k := range keep {
		if k {
			rows = append(rows, ind)
		}
	}

	return t.Take(rows)
}

// Sort returns the table stably sorted on keys
func (t *Table) Sort(ascending bool, keys ...string) (*Table, error) {
	var by []*Col
	for _, k := range keys {
		col := t.Column(k)
		if col == nil {
			return nil, fmt.Errorf("sort column %s not found", k)
		}

		by = append(by, col)
	}

	perm := make([]int, t.RowCount())
	for ind := range perm {
		perm[ind] = ind
	}

	sort.SliceStable(perm, func(i, j int) bool {
		a, b := perm[i], perm[j]
		if !ascending {
			a, b = b, a
		}

		for _, col := range by {
			if col.Less(a, b) {
				return true
			}

			if col.Less(b, a) {
				return false
			}
		}

		return false
	})

	return t.Take(perm)
}

// *********** Output ***********

// String pretty-prints the table, including the index as the first column
func (t *Table) String() string {
	cols := t.cols
	if t.index != nil {
		cols = append([]*Col{t.index}, cols...)
	}

	var (
		header []string
		data   []any
	)
	for _, col := range cols {
		header = append(header, col.Name())
		switch col.DataType() {
		case DTfloat:
			x, _ := col.AsFloat()
			data = append(data, x)
		case DTint:
			x, _ := col.AsInt()
			data = append(data, x)
		default:
			x, _ := col.AsString()
			data = append(data, x)
		}
	}

	if len(cols) == 0 {
		return ""
	}

	return prettyPrint(header, data...)
}
