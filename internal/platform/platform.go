// Package platform is the dialect layer: one concrete implementation per
// supported database (MySQL/MariaDB, PostgreSQL, SQLite) that knows its own
// capability flags, quoting rules, reserved keywords and how to render a
// schema.Table or schema.TableDiff/SchemaDiff into that dialect's DDL.
package platform

import (
	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/events"
	"github.com/alekitto/dbal/internal/schema"
)

// Capabilities is the set of optional features a platform may or may not
// support. The renderers in this package consult only NativeJSON,
// NativeGUID and ForeignKeyConstraints, and leave out what a flag marks as
// unsupported; none of them returns dbalerr.PlatformFeatureUnsupported.
type Capabilities struct {
	Sequences              bool
	Schemas                bool
	IdentityColumns         bool
	PartialIndexes          bool
	ColumnLengthIndexes     bool
	Savepoints              bool
	ReleaseSavepoints       bool
	ForeignKeyConstraints   bool
	CreateDropDatabase      bool
	InlineColumnComments    bool
	CommentOnStatements     bool
	NativeGUID              bool
	NativeJSON              bool
	ColumnCollation         bool
}

// Platform is the dialect interface every driver adapter is paired with. It
// satisfies typeregistry.Dialect so logical types can render a native
// declaration without typeregistry importing this package.
type Platform interface {
	Name() string
	Capabilities() Capabilities
	HasNativeJSON() bool
	HasNativeGUID() bool

	QuoteIdentifier(name string) string
	IsReservedKeyword(word string) bool

	ColumnDeclarationSQL(col *schema.Column) (string, error)
	CreateTableSQL(table *schema.Table) ([]string, error)
	DropTableSQL(tableName string) string
	TableDiffToSQL(diff *schema.TableDiff) ([]string, error)
	SchemaDiffToSQL(diff *schema.SchemaDiff) ([]string, error)

	ListTablesSQL() string
	ListTableColumnsSQL(tableName string) string
	ListTableIndexesSQL(tableName string) string
	ListTableForeignKeysSQL(tableName string) string
}

// Dispatcher is events.Dispatcher under this package's name; nil is a valid
// value (no listeners, always use default SQL). No Platform method takes or
// calls one: DDL rendering itself dispatches no events.
type Dispatcher = events.Dispatcher

// dispatchSchemaEvent runs name through d (if non-nil) using a fresh
// BaseEvent, returning the event so callers can read back
// IsDefaultPrevented/SQL.
func dispatchSchemaEvent(d Dispatcher, name string) (*events.BaseEvent, error) {
	ev := events.NewBaseEvent(name)
	if d == nil {
		return ev, nil
	}
	if err := d.Dispatch(ev); err != nil {
		return ev, err
	}
	return ev, nil
}

func unsupported(platform, feature string) error {
	return dbalerr.PlatformFeatureUnsupportedf(feature, platform)
}
