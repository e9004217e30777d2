package spending

import "fmt"

// ParseError is returned when input data cannot be turned into a table: malformed rows,
// a Function field without a description, duplicate category codes or badly named year columns.
type ParseError struct {
	Line   int // 1-based line in the source, 0 if not applicable
	Column string
	Msg    string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("parse error: line %d, column %s: %s", e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("parse error: line %d: %s", e.Line, e.Msg)
	case e.Column != "":
		return fmt.Sprintf("parse error: column %s: %s", e.Column, e.Msg)
	default:
		return "parse error: " + e.Msg
	}
}

// AlignmentError is returned when metric fragments do not share the same (code, year) keys.
type AlignmentError struct {
	Metric string
	Key    string
	Msg    string
}

func (e *AlignmentError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("alignment error: metric %s: %s", e.Metric, e.Msg)
	}

	return fmt.Sprintf("alignment error: metric %s, key %s: %s", e.Metric, e.Key, e.Msg)
}

// UsageError is returned when a caller breaks a function's contract.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "usage error: " + e.Msg
}
