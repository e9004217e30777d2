// Package load builds the wide spending table, indexed by category code, from a CSV file or a database query.
package load

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	sp "github.com/invertedv/spending"
)

const (
	// FunctionCol holds "<code> <description>" in the source and the description after loading
	FunctionCol = "Function"
	// IndexName names the category-code row index
	IndexName = "code"
)

// CSV loads fileName into a wide table. The defaults are a ',' separator, '#' comment lines,
// a header row and the missing tokens "..." and " ...".
func CSV(fileName string, opts ...sp.FileOpt) (*sp.Table, error) {
	var (
		f *sp.Files
		e error
	)
	if f, e = sp.NewFiles(opts...); e != nil {
		return nil, e
	}

	if e = f.Open(fileName); e != nil {
		return nil, e
	}
	defer func() { _ = f.Close() }()

	var raw *sp.Table
	if raw, e = f.Load(); e != nil {
		return nil, fmt.Errorf("%s: %w", fileName, e)
	}

	return categorize(raw, f.SourceLine)
}

// Read is CSV for data already open
func Read(r io.Reader, opts ...sp.FileOpt) (*sp.Table, error) {
	var (
		f *sp.Files
		e error
	)
	if f, e = sp.NewFiles(opts...); e != nil {
		return nil, e
	}

	var raw *sp.Table
	if raw, e = f.Read(r); e != nil {
		return nil, e
	}

	return categorize(raw, f.SourceLine)
}

// Describe returns the description of each category in codes
func Describe(wide *sp.Table, codes ...string) ([]string, error) {
	fn := wide.Column(FunctionCol)
	if fn == nil {
		return nil, fmt.Errorf("table has no %s column", FunctionCol)
	}

	if wide.Index() == nil {
		return nil, fmt.Errorf("table has no category index")
	}

	var desc []string
	for _, code := range codes {
		row := wide.IndexOf(code)
		if row < 0 {
			return nil, fmt.Errorf("unknown category code %s", code)
		}

		desc = append(desc, fn.ElementString(row))
	}

	return desc, nil
}

// SplitFunction splits a Function field on its first run of whitespace into code and description
func SplitFunction(field string) (code, desc string, ok bool) {
	field = strings.TrimLeftFunc(field, unicode.IsSpace)

	ind := strings.IndexFunc(field, unicode.IsSpace)
	if ind < 0 {
		return "", "", false
	}

	code, desc = field[:ind], strings.TrimLeftFunc(field[ind:], unicode.IsSpace)
	if desc == "" {
		return "", "", false
	}

	return code, desc, true
}

// categorize pulls the category code out of the Function column and makes it the row index.
// lineOf maps a data row to its source line for error messages.
func categorize(raw *sp.Table, lineOf func(row int) int) (*sp.Table, error) {
	fn := raw.Column(FunctionCol)
	if fn == nil {
		return nil, &sp.ParseError{Column: FunctionCol, Msg: "column not found"}
	}

	if raw.Column(IndexName) != nil {
		return nil, &sp.ParseError{Column: IndexName, Msg: "column name is reserved for the category index"}
	}

	n := raw.RowCount()
	codes, descs := make([]string, n), make([]string, n)
	seen := make(map[string]int, n)
	for row := range n {
		if fn.IsNA(row) {
			return nil, &sp.ParseError{Line: lineOf(row), Column: FunctionCol, Msg: "missing value"}
		}

		code, desc, ok := SplitFunction(fn.ElementString(row))
		if !ok {
			return nil, &sp.ParseError{Line: lineOf(row), Column: FunctionCol,
				Msg: fmt.Sprintf("expected <code> <description>, got %q", fn.ElementString(row))}
		}

		if first, dup := seen[code]; dup {
			return nil, &sp.ParseError{Line: lineOf(row), Column: FunctionCol,
				Msg: fmt.Sprintf("duplicate category code %s (first seen in row %d)", code, first+1)}
		}

		seen[code] = row
		codes[row], descs[row] = code, desc
	}

	var (
		codeCol, descCol *sp.Col
		e                error
	)
	if codeCol, e = sp.NewCol(codes, sp.DTstring, sp.ColName(IndexName)); e != nil {
		return nil, e
	}

	if descCol, e = sp.NewCol(descs, sp.DTstring, sp.ColName(FunctionCol)); e != nil {
		return nil, e
	}

	var wide *sp.Table
	if wide, e = raw.ReplaceColumn(descCol); e != nil {
		return nil, e
	}

	if wide, e = wide.AppendColumn(codeCol); e != nil {
		return nil, e
	}

	return wide.SetIndex(IndexName)
}
