// Package driver defines the narrow interface the connection façade and
// migration engine consume to talk to an actual database, and an adapter
// (sqldriver) that implements it on top of database/sql plus the three
// registered drivers for MySQL/MariaDB, PostgreSQL and SQLite.
package driver

import (
	"context"

	"github.com/alekitto/dbal/internal/dbvalue"
)

// StatementResult is what executing a non-query statement reports back.
type StatementResult interface {
	RowsAffected() (int64, error)
	LastInsertID() (int64, error)
}

// Statement is a prepared, parameterized unit of work a Driver can execute
// or query.
type Statement interface {
	Execute(ctx context.Context, params []dbvalue.Parameter) (StatementResult, error)
	Query(ctx context.Context, params []dbvalue.Parameter) (dbvalue.Rows, error)
	Close() error
}

// Driver is the minimal surface a connection façade needs from an
// underlying database client: prepare statements, run transactions, and
// close. It deliberately says nothing about connection pooling or
// reconnection - that is the concrete adapter's problem, not this
// interface's.
type Driver interface {
	Prepare(ctx context.Context, sql string) (Statement, error)
	Exec(ctx context.Context, sql string, params []dbvalue.Parameter) (StatementResult, error)
	Query(ctx context.Context, sql string, params []dbvalue.Parameter) (dbvalue.Rows, error)
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is an in-flight transaction.
type Tx interface {
	Exec(ctx context.Context, sql string, params []dbvalue.Parameter) (StatementResult, error)
	Query(ctx context.Context, sql string, params []dbvalue.Parameter) (dbvalue.Rows, error)
	Savepoint(ctx context.Context, name string) error
	ReleaseSavepoint(ctx context.Context, name string) error
	RollbackTo(ctx context.Context, name string) error
	Commit() error
	Rollback() error
}
