package spending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	code, _ := NewCol([]string{"G02", "G01", "G03"}, DTstring, ColName("code"))
	x, _ := NewCol([]float64{2, 1, 3}, DTfloat, ColName("1995 million"))
	y, _ := NewCol([]int{20, 10, 30}, DTint, ColName("1995 per_cap"))
	tab, e := NewTable(code, x, y)
	if e != nil {
		panic(e)
	}

	return tab
}

func TestNewTable(t *testing.T) {
	x, _ := NewCol([]float64{1, 2}, DTfloat, ColName("x"))
	y, _ := NewCol([]float64{1}, DTfloat, ColName("y"))
	xx, _ := NewCol([]float64{1, 2}, DTfloat, ColName("x"))
	unnamed, _ := NewCol([]float64{1, 2}, DTfloat)

	_, e := NewTable()
	assert.NotNil(t, e)
	_, e = NewTable(x, y)
	assert.NotNil(t, e)
	_, e = NewTable(x, xx)
	assert.NotNil(t, e)
	_, e = NewTable(x, unnamed)
	assert.NotNil(t, e)

	tab, e := NewTable(x)
	assert.Nil(t, e)
	assert.Equal(t, 2, tab.RowCount())
	assert.Equal(t, []string{"x"}, tab.ColumnNames())
}

func TestTable_SetIndex(t *testing.T) {
	tab := testTable()
	idx, e := tab.SetIndex("code")
	require.Nil(t, e)

	assert.Equal(t, []string{"1995 million", "1995 per_cap"}, idx.ColumnNames())
	assert.Equal(t, 1, idx.IndexOf("G01"))
	assert.Equal(t, -1, idx.IndexOf("G09"))

	// receiver untouched
	assert.Equal(t, 3, tab.ColumnCount())
	assert.Nil(t, tab.Index())

	dup, _ := NewCol([]string{"G01", "G01", "G03"}, DTstring, ColName("code"))
	tab2, _ := tab.ReplaceColumn(dup)
	_, e = tab2.SetIndex("code")
	assert.NotNil(t, e)
}

func TestTable_Columns(t *testing.T) {
	tab := testTable()
	assert.Equal(t, []string{"1995 million"}, tab.ColumnsContaining("million"))
	assert.Nil(t, tab.ColumnsContaining("Million"))

	kept, e := tab.KeepColumns("1995 per_cap", "code")
	assert.Nil(t, e)
	assert.Equal(t, []string{"1995 per_cap", "code"}, kept.ColumnNames())

	_, e = tab.KeepColumns("nope")
	assert.NotNil(t, e)

	dropped, e := tab.DropColumns("code")
	assert.Nil(t, e)
	assert.Equal(t, []string{"1995 million", "1995 per_cap"}, dropped.ColumnNames())
	assert.Equal(t, 3, tab.ColumnCount())

	z, _ := NewCol([]float64{0, 0, 0}, DTfloat, ColName("z"))
	app, e := tab.AppendColumn(z)
	assert.Nil(t, e)
	assert.Equal(t, 4, app.ColumnCount())
	assert.Equal(t, 3, tab.ColumnCount())

	_, e = app.AppendColumn(z)
	assert.NotNil(t, e)
}

func TestTable_Sort(t *testing.T) {
	tab, _ := testTable().SetIndex("code")

	srt, e := tab.Sort(true, "1995 million")
	require.Nil(t, e)
	x, _ := srt.Column("1995 per_cap").AsInt()
	assert.Equal(t, []int{10, 20, 30}, x)
	idx, _ := srt.Index().AsString()
	assert.Equal(t, []string{"G01", "G02", "G03"}, idx)
	assert.Equal(t, 0, srt.IndexOf("G01"))

	desc, e := tab.Sort(false, "1995 per_cap")
	require.Nil(t, e)
	x, _ = desc.Column("1995 per_cap").AsInt()
	assert.Equal(t, []int{30, 20, 10}, x)

	_, e = tab.Sort(true, "missing")
	assert.NotNil(t, e)
}

func TestTable_Where(t *testing.T) {
	tab := testTable()
	w, e := tab.Where([]bool{true, false, true})
	require.Nil(t, e)
	assert.Equal(t, 2, w.RowCount())
	code, _ := w.Column("code").AsString()
	assert.Equal(t, []string{"G02", "G03"}, code)

	_, e = tab.Where([]bool{true})
	assert.NotNil(t, e)
}

func TestTable_String(t *testing.T) {
	tab, _ := testTable().SetIndex("code")
	s := tab.String()
	assert.Contains(t, s, "code")
	assert.Contains(t, s, "G03")
	assert.Contains(t, s, "1995 per_cap")
}
