package spending

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	v := MakeVector(DTfloat, 0)
	_ = v.Append(4, nil, 1, 3, 2)
	col, _ := NewCol(v, DTfloat, ColName("million"))

	s, e := Describe(col)
	require.Nil(t, e)
	assert.Equal(t, "million", s.Name)
	assert.Equal(t, 4, s.N)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 2.0, s.Median)
	assert.InDelta(t, 1.2910, s.StdDev, 1e-4)
	assert.Contains(t, s.String(), "median")

	// counts print as integers, statistics with the column's decimals
	lines := map[string]string{}
	for _, ln := range strings.Split(s.String(), "\n") {
		if fields := strings.Fields(ln); len(fields) == 2 {
			lines[fields[0]] = fields[1]
		}
	}
	assert.Equal(t, "4", lines["n"])
	assert.Equal(t, "1", lines["missing"])
	assert.Equal(t, "4.0", lines["max"])

	ints, _ := NewCol([]int{5, 5}, DTint, ColName("year"))
	s, e = Describe(ints)
	require.Nil(t, e)
	assert.Equal(t, 5.0, s.Mean)

	str, _ := NewCol([]string{"a"}, DTstring, ColName("code"))
	_, e = Describe(str)
	assert.NotNil(t, e)

	empty := MakeVector(DTfloat, 0)
	_ = empty.Append(nil, nil)
	emptyCol, _ := NewCol(empty, DTfloat, ColName("gdp_percent"))
	s, e = Describe(emptyCol)
	require.Nil(t, e)
	assert.Equal(t, 0, s.N)
	assert.Equal(t, 2, s.Missing)
	assert.True(t, math.IsNaN(s.Mean))
}

func TestCol_String(t *testing.T) {
	code, _ := NewCol([]string{"G01", "G02", "G01"}, DTstring, ColName("code"))
	s := code.String()
	assert.Contains(t, s, "column: code")
	assert.Contains(t, s, "G01")

	x, _ := NewCol([]float64{1, 2}, DTfloat, ColName("x"))
	assert.Contains(t, x.String(), "mean")
}
