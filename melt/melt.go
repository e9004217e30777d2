// Package melt reshapes the wide spending table into the long form: one row per (code, year)
// and one float column per metric.
package melt

import (
	"fmt"
	"strconv"

	sp "github.com/invertedv/spending"
)

const (
	CodeCol = "code"
	YearCol = "year"
)

// Metric names an output column and the substring that picks its columns out of the wide table
type Metric struct {
	Name  string
	Match string
}

// DefaultMetrics are the three metrics of the spending file, in output column order
var DefaultMetrics = []Metric{
	{Name: "million", Match: "million"},
	{Name: "gdp_percent", Match: "gdp"},
	{Name: "per_capita", Match: "per_cap"},
}

// Transform unpivots wide into {code, year, metric}. Every column of wide must be named
// "<4-digit year><suffix>". Rows come year by year, categories in wide's row order within a year.
// wide is not modified.
func Transform(wide *sp.Table, metric string) (*sp.Table, error) {
	if wide.Index() == nil {
		return nil, &sp.UsageError{Msg: "wide table has no category index"}
	}

	if metric == "" || metric == CodeCol || metric == YearCol {
		return nil, &sp.UsageError{Msg: fmt.Sprintf("invalid metric name %q", metric)}
	}

	if wide.ColumnCount() == 0 {
		return nil, &sp.UsageError{Msg: fmt.Sprintf("no columns to transform for metric %s", metric)}
	}

	nRows := wide.RowCount()
	codes := make([]string, 0, nRows*wide.ColumnCount())
	years := make([]int, 0, cap(codes))
	vals := make([]float64, 0, cap(codes))

	for _, col := range wide.Columns() {
		var (
			year int
			e    error
		)
		if year, e = YearOf(col.Name()); e != nil {
			return nil, e
		}

		for row := range nRows {
			var x float64
			if x, e = col.ElementFloat(row); e != nil {
				return nil, &sp.ParseError{Column: col.Name(),
					Msg: fmt.Sprintf("category %s: %v", wide.Index().ElementString(row), e)}
			}

			codes = append(codes, wide.Index().ElementString(row))
			years = append(years, year)
			vals = append(vals, x)
		}
	}

	var (
		codeCol, yearCol, valCol *sp.Col
		e                        error
	)
	if codeCol, e = sp.NewCol(codes, sp.DTstring, sp.ColName(CodeCol)); e != nil {
		return nil, e
	}

	if yearCol, e = sp.NewCol(years, sp.DTint, sp.ColName(YearCol)); e != nil {
		return nil, e
	}

	// NaN is the missing marker for floats
	if valCol, e = sp.NewCol(vals, sp.DTfloat, sp.ColName(metric)); e != nil {
		return nil, e
	}

	return sp.NewTable(codeCol, yearCol, valCol)
}

// YearOf returns the year a column name starts with
func YearOf(colName string) (int, error) {
	if len(colName) < 4 {
		return 0, &sp.ParseError{Column: colName, Msg: "column name does not start with a 4-digit year"}
	}

	for _, r := range colName[:4] {
		if r < '0' || r > '9' {
			return 0, &sp.ParseError{Column: colName, Msg: "column name does not start with a 4-digit year"}
		}
	}

	return strconv.Atoi(colName[:4])
}

// Subset returns wide restricted to the columns whose name contains match
func Subset(wide *sp.Table, match string) (*sp.Table, error) {
	if match == "" {
		return nil, &sp.UsageError{Msg: "empty column match"}
	}

	return wide.KeepColumns(wide.ColumnsContaining(match)...)
}
