package spending

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVector(t *testing.T) {
	v, e := NewVector([]float64{1, math.NaN(), 3}, DTfloat)
	require.Nil(t, e)
	assert.Equal(t, 3, v.Len())
	assert.False(t, v.IsNA(0))
	assert.True(t, v.IsNA(1))
	assert.True(t, v.HasNA())

	vi, e := NewVector([]string{"1", "2"}, DTint)
	require.Nil(t, e)
	x, e := vi.AsInt()
	assert.Nil(t, e)
	assert.Equal(t, []int{1, 2}, x)

	_, e = NewVector([]string{"a"}, DTfloat)
	assert.NotNil(t, e)

	_, e = NewVector([]int{1}, DTunknown)
	assert.NotNil(t, e)
}

func TestVector_Append(t *testing.T) {
	v := MakeVector(DTstring, 0)
	assert.Nil(t, v.Append("a", nil, "c"))
	assert.Equal(t, 3, v.Len())
	assert.True(t, v.IsNA(1))
	assert.False(t, v.IsNA(2))
	assert.Equal(t, "", v.ElementString(1))

	f := MakeVector(DTfloat, 0)
	assert.Nil(t, f.Append(1, "2.5", nil))
	xs, e := f.AsFloat()
	assert.Nil(t, e)
	assert.Equal(t, 2.5, xs[1])
	assert.True(t, math.IsNaN(xs[2]))

	assert.NotNil(t, f.Append("x"))
}

func TestVector_Conversions(t *testing.T) {
	v, _ := NewVector([]int{1, 2, 3}, DTint)
	xs, e := v.AsFloat()
	assert.Nil(t, e)
	assert.Equal(t, []float64{1, 2, 3}, xs)

	s, e := v.AsString()
	assert.Nil(t, e)
	assert.Equal(t, []string{"1", "2", "3"}, s)

	f, _ := NewVector([]float64{1.5}, DTfloat)
	_, e = f.AsInt()
	assert.NotNil(t, e)

	str := MakeVector(DTstring, 0)
	_ = str.Append("10", nil)
	fx, e := str.AsFloat()
	assert.Nil(t, e)
	assert.Equal(t, 10.0, fx[0])
	assert.True(t, math.IsNaN(fx[1]))
}

func TestVector_CopyTake(t *testing.T) {
	v := MakeVector(DTfloat, 0)
	_ = v.Append(1, nil, 3)

	c := v.Copy()
	c.SetNA(0)
	assert.False(t, v.IsNA(0))
	assert.True(t, c.IsNA(1))

	tk := v.Take([]int{2, 1, 0, 2})
	assert.Equal(t, 4, tk.Len())
	assert.Equal(t, 3.0, tk.Element(0))
	assert.True(t, tk.IsNA(1))
	assert.Equal(t, 3.0, tk.Element(3))
}

func TestImpute(t *testing.T) {
	assert.Equal(t, DTint, Impute([]string{"1", "2"}, nil))
	assert.Equal(t, DTfloat, Impute([]string{"1", "2"}, []bool{false, true}))
	assert.Equal(t, DTfloat, Impute([]string{"1.5", "2"}, nil))
	assert.Equal(t, DTstring, Impute([]string{"1.5", "x"}, nil))
	assert.Equal(t, DTfloat, Impute([]string{"...", " ..."}, []bool{true, true}))
}

func TestDTFromString(t *testing.T) {
	for dt := DTunknown; dt <= MaxDT; dt++ {
		assert.Equal(t, dt, DTFromString(dt.String()))
	}

	assert.Equal(t, DTunknown, DTFromString("DTdate"))
}
