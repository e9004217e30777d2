package spending

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
)

// All code interacting with delimited files is here

const (
	Sep         = ','
	Comment     = '#'
	FloatFormat = ""
	Header      = true
)

// NAtokens are the cell values read as "no data" unless FileNA says otherwise
var NAtokens = []string{"...", " ..."}

type Files struct {
	FieldNames  []string
	Sep         rune
	Comment     rune
	NA          []string
	NAString    string
	FloatFormat string
	Header      bool

	lines    []int
	file     *os.File
	fileName string
}

// FileOpt sets a property of Files in NewFiles
type FileOpt func(f *Files) error

func FileSep(sep rune) FileOpt {
	return func(f *Files) error {
		if sep == 0 || sep == '\n' || sep == '\r' || sep == '"' {
			return fmt.Errorf("invalid separator %q", sep)
		}

		f.Sep = sep
		return nil
	}
}

// FileComment sets the marker of lines to skip. 0 turns comments off.
func FileComment(marker rune) FileOpt {
	return func(f *Files) error {
		if marker == '\n' || marker == '\r' || marker == '"' {
			return fmt.Errorf("invalid comment marker %q", marker)
		}

		f.Comment = marker
		return nil
	}
}

// FileNA replaces the set of cell values treated as missing
func FileNA(tokens ...string) FileOpt {
	return func(f *Files) error {
		f.NA = slices.Clone(tokens)
		return nil
	}
}

// FileNAString sets what is written for missing values
func FileNAString(s string) FileOpt {
	return func(f *Files) error {
		f.NAString = s
		return nil
	}
}

// FileFloatFormat sets the fmt verb for floats on output; "" writes the shortest exact form
func FileFloatFormat(format string) FileOpt {
	return func(f *Files) error {
		f.FloatFormat = format
		return nil
	}
}

func FileHeader(header bool) FileOpt {
	return func(f *Files) error {
		f.Header = header
		return nil
	}
}

func FileFieldNames(names ...string) FileOpt {
	return func(f *Files) error {
		for _, nm := range names {
			if e := validName(nm); e != nil {
				return e
			}
		}

		f.FieldNames = slices.Clone(names)
		return nil
	}
}

func NewFiles(opts ...FileOpt) (*Files, error) {
	f := &Files{
		Sep:         Sep,
		Comment:     Comment,
		NA:          slices.Clone(NAtokens),
		FloatFormat: FloatFormat,
		Header:      Header,
	}

	for _, opt := range opts {
		if e := opt(f); e != nil {
			return nil, e
		}
	}

	if f.Sep == f.Comment {
		return nil, fmt.Errorf("separator and comment marker are both %q", f.Sep)
	}

	return f, nil
}

// *********** Open/Close ***********

func (f *Files) Open(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Open(fileName)

	return e
}

func (f *Files) Create(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Create(fileName)

	return e
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Close() error {
	if f.file != nil {
		e := f.file.Close()
		f.file = nil
		return e
	}

	return fmt.Errorf("no open files")
}

// *********** Read ***********

// Load reads the whole of the opened file into a Table
func (f *Files) Load() (*Table, error) {
	if f.file == nil {
		return nil, fmt.Errorf("no open file in Files.Load")
	}

	return f.Read(f.file)
}

// Read parses delimited text into a Table. Cells equal to one of f.NA are missing.
// Each column gets the narrowest of DTint, DTfloat, DTstring that holds all its values.
func (f *Files) Read(r io.Reader) (*Table, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = f.Sep
	rdr.Comment = f.Comment
	rdr.FieldsPerRecord = len(f.FieldNames)
	if f.Header {
		rdr.FieldsPerRecord = 0
	}

	f.lines = nil

	var (
		fieldNames []string
		raw        [][]string
		missing    [][]bool
	)

	if !f.Header {
		if len(f.FieldNames) == 0 {
			return nil, fmt.Errorf("field names not set in *Files and no header")
		}

		fieldNames = f.FieldNames
	}

	for {
		rec, e := rdr.Read()
		if e == io.EOF {
			break
		}

		if e != nil {
			return nil, csvError(e)
		}

		line, _ := rdr.FieldPos(0)
		if fieldNames == nil {
			if fieldNames, e = headerNames(rec, line); e != nil {
				return nil, e
			}

			continue
		}

		if raw == nil {
			raw = make([][]string, len(fieldNames))
			missing = make([][]bool, len(fieldNames))
		}

		for ind, cell := range rec {
			raw[ind] = append(raw[ind], cell)
			missing[ind] = append(missing[ind], slices.Contains(f.NA, cell))
		}

		f.lines = append(f.lines, line)
	}

	if fieldNames == nil {
		return nil, &ParseError{Msg: "no header row"}
	}

	if raw == nil {
		return nil, &ParseError{Msg: "no data rows"}
	}

	return TableFromStrings(fieldNames, raw, missing)
}

// SourceLine returns the line in the source of data row row of the last Read, or 0
func (f *Files) SourceLine(row int) int {
	if row < 0 || row >= len(f.lines) {
		return 0
	}

	return f.lines[row]
}

// *********** Write ***********

// Save writes t to fileName, creating or truncating it
func (f *Files) Save(fileName string, t *Table) error {
	if e := f.Create(fileName); e != nil {
		return e
	}

	if e := f.Write(f.file, t); e != nil {
		_ = f.Close()
		return e
	}

	return f.Close()
}

// Write writes t as delimited text. A row index, if present, is the first field.
func (f *Files) Write(w io.Writer, t *Table) error {
	cols := t.Columns()
	if t.Index() != nil {
		cols = append([]*Col{t.Index()}, cols...)
	}

	wrt := csv.NewWriter(w)
	wrt.Comma = f.Sep

	if f.Header {
		var names []string
		for _, col := range cols {
			names = append(names, col.Name())
		}

		if e := wrt.Write(names); e != nil {
			return e
		}
	}

	line := make([]string, len(cols))
	for row := range t.RowCount() {
		for ind, col := range cols {
			line[ind] = f.format(col, row)
		}

		if e := wrt.Write(line); e != nil {
			return e
		}
	}

	wrt.Flush()

	return wrt.Error()
}

// *********** Helpers ***********

func (f *Files) format(col *Col, row int) string {
	if col.IsNA(row) {
		return f.NAString
	}

	switch x := col.Element(row).(type) {
	case float64:
		if f.FloatFormat == "" {
			return strconv.FormatFloat(x, 'f', -1, 64)
		}

		return fmt.Sprintf(f.FloatFormat, x)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	}

	return ""
}

func headerNames(rec []string, line int) ([]string, error) {
	var names []string
	for ind, nm := range rec {
		if nm == "" {
			nm = fmt.Sprintf("Unnamed: %d", ind)
		}

		if e := validName(nm); e != nil {
			return nil, &ParseError{Line: line, Column: nm, Msg: e.Error()}
		}

		if slices.Contains(names, nm) {
			return nil, &ParseError{Line: line, Column: nm, Msg: "duplicate column name"}
		}

		names = append(names, nm)
	}

	return names, nil
}

// TableFromStrings builds a Table from raw text cells, one slice per column, typing each
// column with Impute. missing marks the "no data" cells.
func TableFromStrings(names []string, raw [][]string, missing [][]bool) (*Table, error) {
	if len(names) != len(raw) || len(names) != len(missing) {
		return nil, fmt.Errorf("have %d names, %d columns and %d missing masks", len(names), len(raw), len(missing))
	}

	var cols []*Col
	for ind, nm := range names {
		if len(raw[ind]) != len(missing[ind]) {
			return nil, fmt.Errorf("column %s: %d values, %d missing flags", nm, len(raw[ind]), len(missing[ind]))
		}

		var (
			col *Col
			e   error
		)
		if col, e = stringsToCol(nm, raw[ind], missing[ind]); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return NewTable(cols...)
}

func stringsToCol(name string, raw []string, missing []bool) (*Col, error) {
	v := MakeVector(Impute(raw, missing), 0)
	for ind, x := range raw {
		var e error
		if missing[ind] {
			e = v.Append(nil)
		} else {
			e = v.Append(x)
		}

		if e != nil {
			return nil, &ParseError{Column: name, Msg: e.Error()}
		}
	}

	return NewCol(v, v.VectorType(), ColName(name))
}

func csvError(e error) error {
	var pe *csv.ParseError
	if errors.As(e, &pe) {
		return &ParseError{Line: pe.Line, Msg: pe.Err.Error()}
	}

	return e
}
