package melt

import (
	"fmt"
	"slices"

	sp "github.com/invertedv/spending"
)

// Merge melts each metric's columns of wide and joins the fragments on (code, year).
// With no metrics, DefaultMetrics are used. The rows follow the first metric's fragment.
// All fragments must hold exactly the same (code, year) keys, each once.
func Merge(wide *sp.Table, metrics ...Metric) (*sp.Table, error) {
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}

	var names []string
	for _, m := range metrics {
		if slices.Contains(names, m.Name) {
			return nil, &sp.UsageError{Msg: fmt.Sprintf("metric %s given twice", m.Name)}
		}

		names = append(names, m.Name)
	}

	var (
		frags []*sp.Table
		keys  []map[string]int
	)
	for _, m := range metrics {
		var (
			sub, frag *sp.Table
			e         error
		)
		if sub, e = Subset(wide, m.Match); e != nil {
			return nil, e
		}

		if sub.ColumnCount() == 0 {
			return nil, &sp.AlignmentError{Metric: m.Name, Msg: fmt.Sprintf("no columns contain %q", m.Match)}
		}

		if frag, e = Transform(sub, m.Name); e != nil {
			return nil, e
		}

		var k map[string]int
		if k, e = keyRows(frag, m.Name); e != nil {
			return nil, e
		}

		frags, keys = append(frags, frag), append(keys, k)
	}

	first := frags[0]
	out, e := first.KeepColumns(CodeCol, YearCol, metrics[0].Name)
	if e != nil {
		return nil, e
	}

	for ind := 1; ind < len(frags); ind++ {
		var perm []int
		if perm, e = align(first, keys[0], keys[ind], metrics[0].Name, metrics[ind].Name); e != nil {
			return nil, e
		}

		var moved *sp.Table
		if moved, e = frags[ind].Take(perm); e != nil {
			return nil, e
		}

		if out, e = out.AppendColumn(moved.Column(metrics[ind].Name)); e != nil {
			return nil, e
		}
	}

	return out, nil
}

// Melted is Merge with the default metrics
func Melted(wide *sp.Table) (*sp.Table, error) {
	return Merge(wide, DefaultMetrics...)
}

// *********** Helpers ***********

func key(code string, year int) string {
	return fmt.Sprintf("(%s, %d)", code, year)
}

func keyAt(frag *sp.Table, row int) string {
	year, _ := frag.Column(YearCol).ElementInt(row)

	return key(frag.Column(CodeCol).ElementString(row), year)
}

// keyRows maps each (code, year) key of frag to its row
func keyRows(frag *sp.Table, metric string) (map[string]int, error) {
	rows := make(map[string]int, frag.RowCount())
	for row := range frag.RowCount() {
		k := keyAt(frag, row)
		if _, dup := rows[k]; dup {
			return nil, &sp.AlignmentError{Metric: metric, Key: k, Msg: "key appears more than once"}
		}

		rows[k] = row
	}

	return rows, nil
}

// align returns, for each row of first, the row of the other fragment with the same key
func align(first *sp.Table, firstKeys, otherKeys map[string]int, firstMetric, metric string) ([]int, error) {
	for k := range otherKeys {
		if _, ok := firstKeys[k]; !ok {
			return nil, &sp.AlignmentError{Metric: metric, Key: k, Msg: "key not present in metric " + firstMetric}
		}
	}

	perm := make([]int, first.RowCount())
	for row := range first.RowCount() {
		k := keyAt(first, row)
		other, ok := otherKeys[k]
		if !ok {
			return nil, &sp.AlignmentError{Metric: metric, Key: k, Msg: "key missing"}
		}

		perm[row] = other
	}

	return perm, nil
}
