// Package sqldriver adapts database/sql to the driver.Driver interface,
// registering the three native drivers this module's platforms target.
package sqldriver

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/driver"
	"github.com/alekitto/dbal/internal/dbvalue"
)

// nativeDriverName maps a logical dialect name to the database/sql driver
// name it must Open with.
func nativeDriverName(dialect string) (string, error) {
	switch dialect {
	case "mysql", "mariadb":
		return "mysql", nil
	case "postgresql", "postgres", "pg":
		return "postgres", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", dbalerr.New(dbalerr.Config, "unknown dialect: "+dialect)
	}
}

// DB adapts *sql.DB to driver.Driver.
type DB struct {
	conn   *sql.DB
	dialect string
}

// Open opens a connection for dialect using dsn, the already-assembled
// native data-source name (ConnectionOptions.NativeDSN builds this from the
// parsed DSN scheme).
func Open(dialect, dsn string) (*DB, error) {
	nativeName, err := nativeDriverName(dialect)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open(nativeName, dsn)
	if err != nil {
		return nil, dbalerr.Wrap(dbalerr.Connect, "unable to open connection", err)
	}
	if dialect == "sqlite" {
		// mattn/go-sqlite3 gives every pooled connection its own database
		// for ":memory:", and serializes writes against a file database
		// anyway; a pool wider than one connection loses data on the
		// former and just contends on the latter.
		conn.SetMaxOpenConns(1)
	}
	return &DB{conn: conn, dialect: dialect}, nil
}

// WithPool applies connection-pool tuning on top of an already-open DB.
func (d *DB) WithPool(maxOpen, maxIdle int, maxLifetime, maxIdleTime time.Duration) *DB {
	if maxOpen > 0 {
		d.conn.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		d.conn.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		d.conn.SetConnMaxLifetime(maxLifetime)
	}
	if maxIdleTime > 0 {
		d.conn.SetConnMaxIdleTime(maxIdleTime)
	}
	return d
}

func (d *DB) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

func (d *DB) Prepare(ctx context.Context, sqlText string) (driver.Statement, error) {
	stmt, err := d.conn.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, dbalerr.Wrap(dbalerr.NotReady, "prepare failed", err)
	}
	return &preparedStatement{stmt: stmt}, nil
}

func (d *DB) Exec(ctx context.Context, sqlText string, params []dbvalue.Parameter) (driver.StatementResult, error) {
	res, err := d.conn.ExecContext(ctx, sqlText, bind(params)...)
	if err != nil {
		return nil, err
	}
	return &execResult{res: res}, nil
}

func (d *DB) Query(ctx context.Context, sqlText string, params []dbvalue.Parameter) (dbvalue.Rows, error) {
	rows, err := d.conn.QueryContext(ctx, sqlText, bind(params)...)
	if err != nil {
		return nil, err
	}
	return newRows(rows)
}

func (d *DB) BeginTx(ctx context.Context) (driver.Tx, error) {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, dbalerr.Wrap(dbalerr.Connect, "begin transaction failed", err)
	}
	return &sqlTx{tx: tx}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func bind(params []dbvalue.Parameter) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = nativeValue(p.Value)
	}
	return out
}

func nativeValue(v dbvalue.Value) any {
	switch v.Kind() {
	case dbvalue.KindNull:
		return nil
	case dbvalue.KindBytes:
		b, _ := v.Bytes()
		return b
	case dbvalue.KindDateTime:
		t, _ := v.DateTime()
		return t
	default:
		return v.String()
	}
}

type execResult struct {
	res sql.Result
}

func (r *execResult) RowsAffected() (int64, error) { return r.res.RowsAffected() }
func (r *execResult) LastInsertID() (int64, error) { return r.res.LastInsertId() }

type preparedStatement struct {
	stmt *sql.Stmt
}

func (s *preparedStatement) Execute(ctx context.Context, params []dbvalue.Parameter) (driver.StatementResult, error) {
	res, err := s.stmt.ExecContext(ctx, bind(params)...)
	if err != nil {
		return nil, err
	}
	return &execResult{res: res}, nil
}

func (s *preparedStatement) Query(ctx context.Context, params []dbvalue.Parameter) (dbvalue.Rows, error) {
	rows, err := s.stmt.QueryContext(ctx, bind(params)...)
	if err != nil {
		return nil, err
	}
	return newRows(rows)
}

func (s *preparedStatement) Close() error { return s.stmt.Close() }

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Exec(ctx context.Context, sqlText string, params []dbvalue.Parameter) (driver.StatementResult, error) {
	res, err := t.tx.ExecContext(ctx, sqlText, bind(params)...)
	if err != nil {
		return nil, err
	}
	return &execResult{res: res}, nil
}

func (t *sqlTx) Query(ctx context.Context, sqlText string, params []dbvalue.Parameter) (dbvalue.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, sqlText, bind(params)...)
	if err != nil {
		return nil, err
	}
	return newRows(rows)
}

func (t *sqlTx) Savepoint(ctx context.Context, name string) error {
	_, err := t.tx.ExecContext(ctx, "SAVEPOINT "+name)
	return err
}

func (t *sqlTx) ReleaseSavepoint(ctx context.Context, name string) error {
	_, err := t.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
	return err
}

func (t *sqlTx) RollbackTo(ctx context.Context, name string) error {
	_, err := t.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name)
	return err
}

func (t *sqlTx) Commit() error   { return t.tx.Commit() }
func (t *sqlTx) Rollback() error { return t.tx.Rollback() }
