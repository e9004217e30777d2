package spending

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// *********** Conversions ***********

func toFloat(x any) (any, bool) {
	if f, ok := x.(float64); ok {
		return f, true
	}

	// text must be a finite number: "NaN" and "Inf" stay text
	if s, ok := x.(string); ok {
		if f, e := strconv.ParseFloat(strings.TrimSpace(s), 64); e == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}

		return nil, false
	}

	if b, ok := x.([]byte); ok {
		return toFloat(string(b))
	}

	xv := reflect.ValueOf(x)
	if xv.CanFloat() {
		return xv.Float(), true
	}

	if xv.CanInt() {
		return float64(xv.Int()), true
	}

	if xv.CanUint() {
		return float64(xv.Uint()), true
	}

	return nil, false
}

func toInt(x any) (any, bool) {
	if i, ok := x.(int); ok {
		return i, true
	}

	if s, ok := x.(string); ok {
		if i, e := strconv.ParseInt(strings.TrimSpace(s), 10, 64); e == nil {
			return int(i), true
		}

		return nil, false
	}

	if b, ok := x.([]byte); ok {
		return toInt(string(b))
	}

	xv := reflect.ValueOf(x)
	if xv.CanInt() {
		return int(xv.Int()), true
	}

	if xv.CanUint() {
		return int(xv.Uint()), true
	}

	// only whole floats
	if xv.CanFloat() {
		f := xv.Float()
		if f != math.Trunc(f) || math.IsNaN(f) {
			return nil, false
		}

		return int(f), true
	}

	return nil, false
}

func toString(x any) (any, bool) {
	switch s := x.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case nil:
		return nil, false
	}

	return fmt.Sprintf("%v", x), true
}

func toDataType(x any, dt DataTypes) (any, bool) {
	switch dt {
	case DTfloat:
		return toFloat(x)
	case DTint:
		return toInt(x)
	case DTstring:
		return toString(x)
	}

	return nil, false
}

// ToFloat converts x to a float64, if possible
func ToFloat(x any) (float64, bool) {
	if f, ok := toFloat(x); ok {
		return f.(float64), true
	}

	return 0, false
}

// ToInt converts x to an int, if possible
func ToInt(x any) (int, bool) {
	if i, ok := toInt(x); ok {
		return i.(int), true
	}

	return 0, false
}

// Impute returns the narrowest type that every non-missing string in xs converts to.
// Columns with missing values are never DTint.
func Impute(xs []string, missing []bool) DataTypes {
	isInt, isFloat, seen := true, true, false
	for ind, x := range xs {
		if missing != nil && missing[ind] {
			isInt = false
			continue
		}

		seen = true
		if isInt {
			if _, ok := toInt(x); !ok {
				isInt = false
			}
		}

		if _, ok := toFloat(x); !ok {
			isFloat = false
			break
		}
	}

	switch {
	case !seen:
		return DTfloat
	case isInt:
		return DTint
	case isFloat:
		return DTfloat
	default:
		return DTstring
	}
}
