package spending

import "fmt"

// DataTypes are the types of data a Vector can hold
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
	DTint
)

// max value of DataTypes type
const MaxDT = DTint

var dtNames = []string{"DTunknown", "DTstring", "DTfloat", "DTint"}

func (dt DataTypes) String() string {
	if dt > MaxDT {
		return fmt.Sprintf("DataTypes(%d)", dt)
	}

	return dtNames[dt]
}

func DTFromString(nm string) DataTypes {
	for ind := DataTypes(0); ind <= MaxDT; ind++ {
		if dtNames[ind] == nm {
			return ind
		}
	}

	return DTunknown
}

// WhatAmI returns the DataTypes of a slice or scalar
func WhatAmI(x any) DataTypes {
	switch x.(type) {
	case float64, []float64:
		return DTfloat
	case int, []int:
		return DTint
	case string, []string:
		return DTstring
	default:
		return DTunknown
	}
}
