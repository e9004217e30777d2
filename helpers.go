package spending

import (
	"fmt"
	"math"
	"strings"
)

func validName(name string) error {
	const illegal = "\n\r\t,\"" + "\x00"

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("column name is empty")
	}

	if strings.ContainsAny(name, illegal) {
		return fmt.Errorf("illegal character in column name %q", name)
	}

	return nil
}

func prettyPrint(header []string, cols ...any) string {
	var colsS [][]string

	for ind := 0; ind < len(cols); ind++ {
		colsS = append(colsS, stringSlice(header[ind], cols[ind]))
	}

	out := ""
	for row := 0; row < len(colsS[0]); row++ {
		for c := 0; c < len(colsS); c++ {
			out += colsS[c][row]
		}
		out += "\n"
	}

	return out
}

func stringSlice(header string, inVal any) []string {
	const pad = 3
	c := []string{header}

	var (
		n   int
		num bool
	)
	switch x := inVal.(type) {
	case []float64:
		n, num = len(x), true
	case []int:
		n, num = len(x), true
	case []string:
		n = len(x)
	default:
		panic(fmt.Errorf("unsupported data type"))
	}

	maxLen := len(header)
	for ind := 0; ind < n; ind++ {
		var el string
		switch x := inVal.(type) {
		case []float64:
			el = fmt.Sprintf(selectFormat(x), x[ind])
		case []int:
			el = fmt.Sprintf("%d", x[ind])
		case []string:
			el = x[ind]
		}

		if l := len(el); l > maxLen {
			maxLen = l
		}

		c = append(c, el)
	}

	for ind, cx := range c {
		padded := cx + strings.Repeat(" ", maxLen-len(cx)+pad)
		if num {
			padded = strings.Repeat(" ", maxLen-len(cx)+pad) + cx
		}
		c[ind] = padded
	}

	return c
}

// selectFormat picks the number of decimal places from the range of x
func selectFormat(x []float64) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, xv := range x {
		if math.IsNaN(xv) || math.IsInf(xv, 0) {
			continue
		}

		xva := math.Abs(xv)
		minX = math.Min(minX, xva)
		maxX = math.Max(maxX, xva)
	}

	if minX >= maxX {
		return "%.1f"
	}

	l := math.Log10(maxX - minX)
	var dp int
	switch {
	case l < -1:
		dp = int(math.Abs(l)+0.5) + 1
	case l > 1:
		dp = 0
	default:
		dp = 1
	}

	return "%." + fmt.Sprintf("%d", dp) + "f"
}
