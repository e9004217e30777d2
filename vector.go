package spending

import (
	"fmt"
	"math"
)

// Vector is a typed slice with a missing-value mask.
// Missing floats are also held as NaN so that arithmetic on them propagates.
type Vector struct {
	dt DataTypes

	data any
	na   []bool
}

func NewVector(data any, dt DataTypes) (*Vector, error) {
	if dt == DTunknown || dt > MaxDT {
		return nil, fmt.Errorf("cannot make vector of type %s", dt)
	}

	if WhatAmI(data) == dt {
		if v := (&Vector{dt: dt, data: data}); v.isSlice() {
			v.markNaN()
			return v, nil
		}
	}

	var xs []any
	switch x := data.(type) {
	case []any:
		xs = x
	case []float64:
		for _, xx := range x {
			xs = append(xs, xx)
		}
	case []int:
		for _, xx := range x {
			xs = append(xs, xx)
		}
	case []string:
		for _, xx := range x {
			xs = append(xs, xx)
		}
	default:
		xs = []any{data}
	}

	v := MakeVector(dt, 0)
	if e := v.Append(xs...); e != nil {
		return nil, e
	}

	return v, nil
}

func MakeVector(dt DataTypes, n int) *Vector {
	switch dt {
	case DTfloat:
		return &Vector{dt: dt, data: make([]float64, n)}
	case DTint:
		return &Vector{dt: dt, data: make([]int, n)}
	case DTstring:
		return &Vector{dt: dt, data: make([]string, n)}
	default:
		panic(fmt.Errorf("cannot make Vector with data type %s", dt))
	}
}

func (v *Vector) VectorType() DataTypes {
	return v.dt
}

func (v *Vector) Len() int {
	switch v.dt {
	case DTfloat:
		return len(v.data.([]float64))
	case DTint:
		return len(v.data.([]int))
	case DTstring:
		return len(v.data.([]string))
	default:
		panic(fmt.Errorf("unexpected error in Vector.Len"))
	}
}

// IsNA reports whether row indx holds the "no data" marker
func (v *Vector) IsNA(indx int) bool {
	if v.na != nil && v.na[indx] {
		return true
	}

	if v.dt == DTfloat {
		return math.IsNaN(v.data.([]float64)[indx])
	}

	return false
}

// HasNA reports whether any row is missing
func (v *Vector) HasNA() bool {
	for ind := range v.Len() {
		if v.IsNA(ind) {
			return true
		}
	}

	return false
}

// SetNA marks row indx as missing
func (v *Vector) SetNA(indx int) {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	if v.na == nil {
		v.na = make([]bool, v.Len())
	}

	v.na[indx] = true
	if v.dt == DTfloat {
		v.data.([]float64)[indx] = math.NaN()
	}
}

func (v *Vector) AsAny() any {
	return v.data
}

// AsFloat returns the data as []float64; missing rows are NaN
func (v *Vector) AsFloat() ([]float64, error) {
	if v.dt == DTfloat {
		return v.data.([]float64), nil
	}

	xOut := make([]float64, v.Len())
	for ind := range v.Len() {
		if v.IsNA(ind) {
			xOut[ind] = math.NaN()
			continue
		}

		x, ok := toFloat(v.Element(ind))
		if !ok {
			return nil, fmt.Errorf("cannot convert %v to float", v.Element(ind))
		}

		xOut[ind] = x.(float64)
	}

	return xOut, nil
}

func (v *Vector) AsInt() ([]int, error) {
	if v.dt == DTint {
		return v.data.([]int), nil
	}

	xOut := make([]int, v.Len())
	for ind := range v.Len() {
		x, ok := toInt(v.Element(ind))
		if v.IsNA(ind) || !ok {
			return nil, fmt.Errorf("cannot convert %v to int", v.Element(ind))
		}

		xOut[ind] = x.(int)
	}

	return xOut, nil
}

func (v *Vector) AsString() ([]string, error) {
	if v.dt == DTstring {
		return v.data.([]string), nil
	}

	xOut := make([]string, v.Len())
	for ind := range v.Len() {
		if v.IsNA(ind) {
			continue
		}

		x, _ := toString(v.Element(ind))
		xOut[ind] = x.(string)
	}

	return xOut, nil
}

func (v *Vector) Element(indx int) any {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	switch v.dt {
	case DTfloat:
		return v.data.([]float64)[indx]
	case DTint:
		return v.data.([]int)[indx]
	case DTstring:
		return v.data.([]string)[indx]
	default:
		panic(fmt.Errorf("error in Element"))
	}
}

func (v *Vector) ElementFloat(indx int) (float64, error) {
	if v.IsNA(indx) {
		return math.NaN(), nil
	}

	if x, ok := toFloat(v.Element(indx)); ok {
		return x.(float64), nil
	}

	return 0, fmt.Errorf("element %v is not float-able", v.Element(indx))
}

func (v *Vector) ElementInt(indx int) (int, error) {
	if v.IsNA(indx) {
		return 0, fmt.Errorf("element %d is missing", indx)
	}

	if x, ok := toInt(v.Element(indx)); ok {
		return x.(int), nil
	}

	return 0, fmt.Errorf("element %v is not int-able", v.Element(indx))
}

func (v *Vector) ElementString(indx int) string {
	if v.IsNA(indx) {
		return ""
	}

	x, _ := toString(v.Element(indx))

	return x.(string)
}

// Append adds values converted to the Vector's type. A nil value appends a missing row.
func (v *Vector) Append(data ...any) error {
	for _, d := range data {
		if d == nil {
			v.appendOne(zero(v.dt))
			v.SetNA(v.Len() - 1)
			continue
		}

		var (
			x  any
			ok bool
		)
		if x, ok = toDataType(d, v.dt); !ok {
			return fmt.Errorf("cannot make %s from %v in Append", v.dt, d)
		}

		v.appendOne(x)
		if v.dt == DTfloat && math.IsNaN(x.(float64)) {
			v.SetNA(v.Len() - 1)
		}
	}

	return nil
}

func (v *Vector) appendOne(x any) {
	switch v.dt {
	case DTfloat:
		v.data = append(v.data.([]float64), x.(float64))
	case DTint:
		v.data = append(v.data.([]int), x.(int))
	case DTstring:
		v.data = append(v.data.([]string), x.(string))
	}

	if v.na != nil && len(v.na) < v.Len() {
		v.na = append(v.na, false)
	}
}

func (v *Vector) Copy() *Vector {
	vCopy := &Vector{dt: v.dt}
	switch v.dt {
	case DTfloat:
		x := make([]float64, v.Len())
		copy(x, v.data.([]float64))
		vCopy.data = x
	case DTint:
		x := make([]int, v.Len())
		copy(x, v.data.([]int))
		vCopy.data = x
	case DTstring:
		x := make([]string, v.Len())
		copy(x, v.data.([]string))
		vCopy.data = x
	default:
		panic(fmt.Errorf("unexpected error in Vector.Copy"))
	}

	if v.na != nil {
		vCopy.na = make([]bool, len(v.na))
		copy(vCopy.na, v.na)
	}

	return vCopy
}

// Take returns a new Vector holding rows indx, in that order
func (v *Vector) Take(indx []int) *Vector {
	outVec := MakeVector(v.dt, len(indx))
	for ind, src := range indx {
		switch v.dt {
		case DTfloat:
			outVec.data.([]float64)[ind] = v.data.([]float64)[src]
		case DTint:
			outVec.data.([]int)[ind] = v.data.([]int)[src]
		case DTstring:
			outVec.data.([]string)[ind] = v.data.([]string)[src]
		}

		if v.na != nil && v.na[src] {
			outVec.SetNA(ind)
		}
	}

	return outVec
}

func (v *Vector) Less(i, j int) bool {
	switch v.dt {
	case DTfloat:
		return v.data.([]float64)[i] < v.data.([]float64)[j]
	case DTint:
		return v.data.([]int)[i] < v.data.([]int)[j]
	case DTstring:
		return v.data.([]string)[i] < v.data.([]string)[j]
	default:
		panic(fmt.Errorf("unexpected error in vector.Less"))
	}
}

// *********** Helpers ***********

func (v *Vector) isSlice() bool {
	switch v.data.(type) {
	case []float64, []int, []string:
		return true
	}

	return false
}

func (v *Vector) markNaN() {
	if v.dt != DTfloat {
		return
	}

	for ind, x := range v.data.([]float64) {
		if math.IsNaN(x) {
			v.SetNA(ind)
		}
	}
}

func zero(dt DataTypes) any {
	switch dt {
	case DTfloat:
		return 0.0
	case DTint:
		return 0
	default:
		return ""
	}
}
