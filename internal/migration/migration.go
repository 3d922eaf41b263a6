// Package migration is the schema migration engine: ordered, checksummed
// Migration values carrying up/down closures, a Migrator that works out
// which direction to run and in what order, an Executor that diffs schemas
// and runs the resulting DDL plus the migration's own closure inside one
// transaction, and a MetadataStorage that records what has already run.
package migration

import "github.com/alekitto/dbal/internal/schema"

// Direction is which way a migration plan runs.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// OpFunc is a migration's up or down body: it receives the Executor (so it
// can add ad hoc SQL via AddSQL) and the schema the migration is moving
// towards, and can return dbalerr.ErrSkipMigration to mark itself skipped
// without failing the whole run.
type OpFunc func(exec *Executor, toSchema *schema.Schema) error

// PreOpFunc rewrites the schema a migration is moving towards, before the
// comparator diffs it against the current one. Returning the same schema
// unchanged (or nil, meaning "no change") is the common case.
type PreOpFunc func(fromSchema *schema.Schema) (*schema.Schema, error)

// PostOpFunc runs after a migration's SQL has executed successfully.
type PostOpFunc func(toSchema *schema.Schema) error

// Migration is one versioned, checksummed unit of schema change.
// Description is a func rather than a plain string so a generated migration
// file can defer building it (matching how Up/Down are themselves funcs and
// keeping every field's zero value meaningful - an unset Description just
// renders as "").
type Migration struct {
	Version     int64
	Description func() string
	Up          OpFunc
	Down        OpFunc
	PreUp       PreOpFunc
	PostUp      PostOpFunc
	PreDown     PreOpFunc
	PostDown    PostOpFunc
	Checksum    []byte
}

func (m Migration) description() string {
	if m.Description == nil {
		return ""
	}
	return m.Description()
}

// plan pairs a Migration with the direction it must run in; ExecutionResult
// is attached once the Executor has run it.
type plan struct {
	migration Migration
	direction Direction
	result    *ExecutionResult
}
