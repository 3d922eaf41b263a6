// Package dbal re-exports the stable surface of this module's internal
// packages: a Connection, its schema model, the migration engine, and the
// error taxonomy, so a consumer never needs to import internal/* directly.
package dbal

import (
	"github.com/alekitto/dbal/internal/config"
	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/dbconn"
	"github.com/alekitto/dbal/internal/dbvalue"
	"github.com/alekitto/dbal/internal/migration"
	"github.com/alekitto/dbal/internal/platform"
	"github.com/alekitto/dbal/internal/schema"
)

// Connection is a dialect-bound handle to a database: schema introspection,
// DDL execution and migrations all go through one of these.
type Connection = dbconn.Connection

// ConnectionOptions is the parsed, dialect-agnostic shape a DSN resolves to.
type ConnectionOptions = config.ConnectionOptions

// SSLMode is how a connection negotiates TLS with the server.
type SSLMode = config.SSLMode

// Schema, Table, Column, Index and ForeignKeyConstraint are the portable
// schema model every platform introspects into and diffs against.
type Schema = schema.Schema
type Table = schema.Table
type Column = schema.Column
type Index = schema.Index
type ForeignKeyConstraint = schema.ForeignKeyConstraint
type Sequence = schema.Sequence
type SchemaDiff = schema.SchemaDiff
type TableDiff = schema.TableDiff

// Value and Parameter are the portable value/binding model shared by every
// driver adapter.
type Value = dbvalue.Value
type Parameter = dbvalue.Parameter
type Row = dbvalue.Row

// Platform is the dialect interface (MySQL/MariaDB, PostgreSQL, SQLite).
type Platform = platform.Platform

// Migration, Migrator, ExecutionResult and MetadataStorage drive and record
// schema migrations.
type Migration = migration.Migration
type Migrator = migration.Migrator
type ExecutionResult = migration.ExecutionResult
type MetadataStorage = migration.MetadataStorage
type Direction = migration.Direction

const (
	Up   = migration.Up
	Down = migration.Down
)

// Error and Kind are this module's error taxonomy. Not every failure
// carries a Kind: the migration engine reports a recorded version missing
// from the migration set, and wraps a failed migration step, as plain
// fmt errors.
type Error = dbalerr.Error
type Kind = dbalerr.Kind

// ErrSkipMigration is the sentinel a Migration's Up/Down closure returns to
// mark itself as intentionally skipped rather than failed.
var ErrSkipMigration = dbalerr.ErrSkipMigration

// Open parses dsn and opens a Connection to the database it describes.
// Supported schemes: mysql://, mariadb://, pg:// (or psql://, postgres://,
// postgresql://), and sqlite:// (including the sqlite://:memory: sentinel).
func Open(dsn string, opts ...dbconn.Option) (*Connection, error) {
	return dbconn.Open(dsn, opts...)
}

// ParseDSN parses dsn into a ConnectionOptions without opening a connection,
// useful for a caller that wants to inspect or rewrite connection settings
// before dialing.
func ParseDSN(dsn string) (ConnectionOptions, error) {
	return config.ParseDSN(dsn)
}

// NewMigrator builds a Migrator over migrations, sorted by Version, that
// can be run against any Connection opened for the same dialect.
func NewMigrator(migrations []Migration, opts ...migration.MigratorOption) *Migrator {
	return migration.NewMigrator(migrations, opts...)
}

// NewSchema creates an empty Schema, the starting point for a migration's
// pre_up/pre_down callback or for hand-built schema comparisons.
func NewSchema() *Schema {
	return schema.NewSchema()
}

// NewTable creates an empty Table named name.
func NewTable(name string) *Table {
	return schema.NewTable(name)
}

// NewColumn creates a Column named name with logical type typ (one of the
// names registered in the type registry: INTEGER, BIGINT, STRING, TEXT,
// BOOLEAN, DATETIME, JSON, GUID, ...).
func NewColumn(name, typ string) *Column {
	return schema.NewColumn(name, typ)
}
