package load

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/jackc/pgx/stdlib"
)

// All code interacting with a database is here

const (
	ch = "clickhouse"
	pg = "postgres"
)

// Dialect is a database connection plus the name of the database flavor behind it
type Dialect struct {
	db      *sql.DB
	dialect string
}

func NewDialect(dialect string, db *sql.DB) (*Dialect, error) {
	dialect = strings.ToLower(dialect)

	if dialect != ch && dialect != pg {
		return nil, fmt.Errorf("unsupported database %s", dialect)
	}

	if db == nil {
		return nil, fmt.Errorf("nil database connection in NewDialect")
	}

	return &Dialect{db: db, dialect: dialect}, nil
}

// ConnectOptions holds what is needed to reach a database. A zero Port means the default
// port of the dialect.
type ConnectOptions struct {
	Dialect  string
	Host     string
	Port     int
	User     string
	Password string
	Database string

	DialTimeout time.Duration
}

// Connect opens and pings a ClickHouse or Postgres connection
func Connect(ctx context.Context, opts ConnectOptions) (*Dialect, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("no database host")
	}

	if opts.DialTimeout == 0 {
		opts.DialTimeout = 30 * time.Second
	}

	var db *sql.DB
	switch strings.ToLower(opts.Dialect) {
	case ch:
		db = newConnectCH(opts)
	case pg:
		var e error
		if db, e = newConnectPG(opts); e != nil {
			return nil, e
		}
	default:
		return nil, fmt.Errorf("unsupported database %s", opts.Dialect)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if e := db.PingContext(pingCtx); e != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot reach %s at %s: %w", opts.Dialect, opts.Host, e)
	}

	return NewDialect(opts.Dialect, db)
}

// ***************** Methods *****************

func (d *Dialect) DB() *sql.DB {
	return d.db
}

func (d *Dialect) DialectName() string {
	return d.dialect
}

// Rows runs qry. row2Read holds one *any per field for rows.Scan.
func (d *Dialect) Rows(ctx context.Context, qry string) (rows *sql.Rows, row2Read []any, fieldNames []string, err error) {
	var e error
	if rows, e = d.db.QueryContext(ctx, qry); e != nil {
		return nil, nil, nil, fmt.Errorf("%s query failed: %w", d.dialect, e)
	}

	if fieldNames, e = rows.Columns(); e != nil {
		_ = rows.Close()
		return nil, nil, nil, e
	}

	for range fieldNames {
		var x any
		row2Read = append(row2Read, &x)
	}

	return rows, row2Read, fieldNames, nil
}

func (d *Dialect) Close() error {
	return d.db.Close()
}

// ***************** Helpers *****************

func newConnectCH(opts ConnectOptions) *sql.DB {
	port := opts.Port
	if port == 0 {
		port = 9000
	}

	database := opts.Database
	if database == "" {
		database = "default"
	}

	return clickhouse.OpenDB(
		&clickhouse.Options{
			Addr: []string{opts.Host + ":" + strconv.Itoa(port)},
			Auth: clickhouse.Auth{
				Database: database,
				Username: opts.User,
				Password: opts.Password,
			},
			DialTimeout: opts.DialTimeout,
			Compression: &clickhouse.Compression{
				Method: clickhouse.CompressionLZ4,
			},
		})
}

func newConnectPG(opts ConnectOptions) (*sql.DB, error) {
	port := opts.Port
	if port == 0 {
		port = 5432
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(opts.User, opts.Password),
		Host:   opts.Host + ":" + strconv.Itoa(port),
		Path:   "/" + opts.Database,
	}

	return sql.Open("pgx", u.String())
}
