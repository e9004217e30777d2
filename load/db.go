package load

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"time"

	sp "github.com/invertedv/spending"
)

// DB runs query and loads the result as a wide table. The result must have the CSV's layout:
// a Function column and the metric-year columns. NULLs and the missing tokens of opts are "no data".
func DB(ctx context.Context, dialect *Dialect, query string, opts ...sp.FileOpt) (*sp.Table, error) {
	var (
		f *sp.Files
		e error
	)
	if f, e = sp.NewFiles(opts...); e != nil {
		return nil, e
	}

	var (
		rows     *sql.Rows
		row2Read []any
		names    []string
	)
	if rows, row2Read, names, e = dialect.Rows(ctx, query); e != nil {
		return nil, e
	}
	defer func() { _ = rows.Close() }()

	return scanWide(rows, row2Read, names, f.NA)
}

// rowScanner is the part of *sql.Rows that scanWide reads
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanWide reads every row of rows into a wide table. row2Read holds one *any per field.
// NULLs and cells equal to one of na are missing.
func scanWide(rows rowScanner, row2Read []any, names, na []string) (*sp.Table, error) {
	raw := make([][]string, len(names))
	missing := make([][]bool, len(names))
	for rows.Next() {
		if e := rows.Scan(row2Read...); e != nil {
			return nil, e
		}

		for ind := range row2Read {
			cell, ok := cellString(*row2Read[ind].(*any))
			raw[ind] = append(raw[ind], cell)
			missing[ind] = append(missing[ind], !ok || slices.Contains(na, cell))
		}
	}

	if e := rows.Err(); e != nil {
		return nil, e
	}

	if len(raw) == 0 || len(raw[0]) == 0 {
		return nil, &sp.ParseError{Msg: "query returned no rows"}
	}

	wide, e := sp.TableFromStrings(names, raw, missing)
	if e != nil {
		return nil, e
	}

	// rows have no source line
	return categorize(wide, func(int) int { return 0 })
}

// cellString renders a scanned database value as text. ok is false for NULL.
func cellString(v any) (cell string, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case time.Time:
		return x.Format("2006-01-02"), true
	case *string:
		if x == nil {
			return "", false
		}

		return *x, true
	case *float64:
		if x == nil {
			return "", false
		}

		return strconv.FormatFloat(*x, 'f', -1, 64), true
	}

	return fmt.Sprintf("%v", v), true
}
