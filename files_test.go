package spending

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `# comment line
Function,1995 million,1995 gdp_percent,note
G01 General public services,100,1.5,a
# another comment
G02 Defence,...,2.0,b
G03 Public order, ...,...,c
`

func TestFiles_Read(t *testing.T) {
	f, e := NewFiles()
	require.Nil(t, e)

	tab, e := f.Read(strings.NewReader(testCSV))
	require.Nil(t, e)

	assert.Equal(t, 3, tab.RowCount())
	assert.Equal(t, []string{"Function", "1995 million", "1995 gdp_percent", "note"}, tab.ColumnNames())

	mil := tab.Column("1995 million")
	assert.Equal(t, DTfloat, mil.DataType())
	assert.Equal(t, 100.0, mil.Element(0))
	assert.True(t, mil.IsNA(1))
	assert.True(t, mil.IsNA(2))

	gdp := tab.Column("1995 gdp_percent")
	assert.Equal(t, DTfloat, gdp.DataType())
	assert.True(t, gdp.IsNA(2))

	note := tab.Column("note")
	assert.Equal(t, DTstring, note.DataType())
	assert.Equal(t, "c", note.Element(2))

	assert.Equal(t, 3, f.SourceLine(0))
	assert.Equal(t, 5, f.SourceLine(1))
	assert.Equal(t, 0, f.SourceLine(7))
}

func TestFiles_ReadTokensExact(t *testing.T) {
	const data = "a,b\n....,x\n..., ...\n"
	f, _ := NewFiles()
	tab, e := f.Read(strings.NewReader(data))
	require.Nil(t, e)

	a := tab.Column("a")
	assert.Equal(t, DTstring, a.DataType())
	assert.Equal(t, "....", a.Element(0))
	assert.False(t, a.IsNA(0))
	assert.True(t, a.IsNA(1))

	b := tab.Column("b")
	assert.Equal(t, "x", b.Element(0))
	assert.True(t, b.IsNA(1))

	// non-finite spellings are text, not numbers or missing values
	tab, e = f.Read(strings.NewReader("a,b\n1.5,x\nNaN,y\ninf,z\n"))
	require.Nil(t, e)

	a = tab.Column("a")
	assert.Equal(t, DTstring, a.DataType())
	assert.False(t, a.HasNA())
	assert.Equal(t, []string{"1.5", "NaN", "inf"}, a.AsAny())

	_, ok := ToFloat("Infinity")
	assert.False(t, ok)
	x, ok := ToFloat(" 2.5 ")
	assert.True(t, ok)
	assert.Equal(t, 2.5, x)
}

func TestFiles_ReadErrors(t *testing.T) {
	f, _ := NewFiles()

	_, e := f.Read(strings.NewReader("a,b\n1,2,3\n"))
	var pe *ParseError
	require.True(t, errors.As(e, &pe))
	assert.Equal(t, 2, pe.Line)

	_, e = f.Read(strings.NewReader("a,a\n1,2\n"))
	assert.True(t, errors.As(e, &pe))

	_, e = f.Read(strings.NewReader("# nothing\n"))
	assert.True(t, errors.As(e, &pe))

	_, e = f.Read(strings.NewReader("a,b\n"))
	assert.True(t, errors.As(e, &pe))
}

func TestFiles_Options(t *testing.T) {
	f, e := NewFiles(FileSep(';'), FileNA("NA"), FileComment(0))
	require.Nil(t, e)

	tab, e := f.Read(strings.NewReader("x;y\n1;NA\n#2;...\n"))
	require.Nil(t, e)
	assert.Equal(t, 2, tab.RowCount())

	y := tab.Column("y")
	assert.True(t, y.IsNA(0))
	assert.Equal(t, "...", y.Element(1))

	_, e = NewFiles(FileSep('#'))
	assert.NotNil(t, e)

	_, e = NewFiles(FileSep('"'))
	assert.NotNil(t, e)

	nh, e := NewFiles(FileHeader(false), FileFieldNames("p", "q"))
	require.Nil(t, e)
	tab, e = nh.Read(strings.NewReader("1,2\n3,4\n"))
	require.Nil(t, e)
	assert.Equal(t, []string{"p", "q"}, tab.ColumnNames())
	assert.Equal(t, 2, tab.RowCount())
}

func TestFiles_SaveLoad(t *testing.T) {
	code, _ := NewCol([]string{"G01", "G02"}, DTstring, ColName("code"))
	year, _ := NewCol([]int{2000, 2001}, DTint, ColName("year"))
	mil := MakeVector(DTfloat, 0)
	_ = mil.Append(100.25, nil)
	milCol, _ := NewCol(mil, DTfloat, ColName("million"))
	tab, _ := NewTable(code, year, milCol)

	var buf bytes.Buffer
	f, _ := NewFiles()
	require.Nil(t, f.Write(&buf, tab))
	assert.Equal(t, "code,year,million\nG01,2000,100.25\nG02,2001,\n", buf.String())

	fn := filepath.Join(t.TempDir(), "long.csv")
	require.Nil(t, f.Save(fn, tab))

	f2, _ := NewFiles(FileNA(""))
	require.Nil(t, f2.Open(fn))
	back, e := f2.Load()
	require.Nil(t, e)
	assert.Nil(t, f2.Close())

	assert.Equal(t, tab.ColumnNames(), back.ColumnNames())
	assert.Equal(t, DTint, back.Column("year").DataType())
	assert.Equal(t, 100.25, back.Column("million").Element(0))
	assert.True(t, back.Column("million").IsNA(1))

	_, e = os.Stat(fn)
	assert.Nil(t, e)
}

func TestFiles_WriteIndexAndFormat(t *testing.T) {
	tab, _ := testTable().SetIndex("code")
	var buf bytes.Buffer
	f, _ := NewFiles(FileFloatFormat("%.2f"), FileNAString("NA"))
	require.Nil(t, f.Write(&buf, tab))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "code,1995 million,1995 per_cap", lines[0])
	assert.Equal(t, "G02,2.00,20", lines[1])
}
