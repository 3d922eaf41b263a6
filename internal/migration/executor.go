package migration

import (
	"context"
	"errors"
	"time"

	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/driver"
	"github.com/alekitto/dbal/internal/schema"
	"github.com/alekitto/dbal/internal/schemamanager"
)

// ExecutionResult is everything a single migration's run produced: the SQL
// it actually executed, whether it was skipped, and the schema it left the
// database in (so the next plan in the same run doesn't have to
// re-introspect).
type ExecutionResult struct {
	SQL           []string
	Version       int64
	Direction     Direction
	ExecutedAt    time.Time
	ExecutionTime int64
	Skipped       bool
	Err           error
	ToSchema      *schema.Schema
}

// Executor runs one migration plan: diff the schema the migration is moving
// towards against the current one, collect the resulting DDL, run the
// migration's own up/down closure (which may append more SQL via AddSQL),
// then execute everything inside the caller's transaction.
type Executor struct {
	tx  driver.Tx
	sql []string
}

func newExecutor(tx driver.Tx) *Executor {
	return &Executor{tx: tx}
}

// AddSQL appends a statement a migration's closure wants run alongside the
// comparator-generated DDL, in the order it was added.
func (e *Executor) AddSQL(sqlText string) {
	e.sql = append(e.sql, sqlText)
}

func (e *Executor) execute(ctx context.Context, sm *schemamanager.Manager, p *plan, fromSchema *schema.Schema) (int, error) {
	m := p.migration

	var err error
	if fromSchema == nil {
		fromSchema, err = sm.IntrospectSchema(ctx)
		if err != nil {
			return 0, err
		}
	}

	var toSchema *schema.Schema
	var opErr error
	skipped := false

	if p.direction == Up {
		toSchema, err = applyPreOp(m.PreUp, fromSchema)
		if err != nil {
			return 0, err
		}

		diff := sm.CreateComparator().CompareSchemas(fromSchema, toSchema)
		diffSQL, err := sm.Platform().SchemaDiffToSQL(diff)
		if err != nil {
			return 0, err
		}
		e.sql = append(e.sql, diffSQL...)

		if m.Up != nil {
			if opErr = m.Up(e, toSchema); errors.Is(opErr, dbalerr.ErrSkipMigration) {
				skipped = true
				opErr = nil
			}
		}
	} else {
		toSchema, err = applyPreOp(m.PreDown, fromSchema)
		if err != nil {
			return 0, err
		}

		diff := sm.CreateComparator().CompareSchemas(fromSchema, toSchema)
		diffSQL, err := sm.Platform().SchemaDiffToSQL(diff)
		if err != nil {
			return 0, err
		}
		e.sql = append(e.sql, diffSQL...)

		if m.Down != nil {
			if opErr = m.Down(e, toSchema); errors.Is(opErr, dbalerr.ErrSkipMigration) {
				skipped = true
				opErr = nil
			}
		}
	}

	start := time.Now()

	if opErr == nil {
		for _, s := range e.sql {
			if _, execErr := e.tx.Exec(ctx, s, nil); execErr != nil {
				opErr = execErr
				break
			}
		}
	}

	if opErr == nil {
		if p.direction == Up && m.PostUp != nil {
			opErr = m.PostUp(toSchema)
		} else if p.direction == Down && m.PostDown != nil {
			opErr = m.PostDown(toSchema)
		}
	}

	sqlCount := len(e.sql)
	p.result = &ExecutionResult{
		SQL:           e.sql,
		Version:       m.Version,
		Direction:     p.direction,
		ExecutedAt:    time.Now(),
		ExecutionTime: time.Since(start).Milliseconds(),
		Skipped:       skipped,
		Err:           opErr,
		ToSchema:      toSchema,
	}
	e.sql = nil

	return sqlCount, nil
}

func applyPreOp(pre PreOpFunc, from *schema.Schema) (*schema.Schema, error) {
	if pre == nil {
		return from.Clone(), nil
	}
	to, err := pre(from)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return from.Clone(), nil
	}
	return to, nil
}
