package migration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alekitto/dbal/internal/logging"
	"github.com/alekitto/dbal/internal/schema"
)

// Migrator holds the full ordered migration set for a module and drives
// them against a Connection: which direction to run, which migrations are
// still pending, and recording each one's outcome through a MetadataStorage.
type Migrator struct {
	migrations      []Migration
	ignoreMissing   bool
	locking         bool
	metadataStorage MetadataStorage
	logger          logging.Logger

	runMu sync.Mutex
}

type MigratorOption func(*Migrator)

func WithIgnoreMissing(ignore bool) MigratorOption {
	return func(m *Migrator) { m.ignoreMissing = ignore }
}

func WithLocking(locking bool) MigratorOption {
	return func(m *Migrator) { m.locking = locking }
}

func WithMetadataStorage(storage MetadataStorage) MigratorOption {
	return func(m *Migrator) { m.metadataStorage = storage }
}

// WithLogger attaches a logger (expected to be the "migration" channel of
// the module's logging.Manager) that reports plan direction and per-step
// progress.
func WithLogger(l logging.Logger) MigratorOption {
	return func(m *Migrator) {
		if l != nil {
			m.logger = l
		}
	}
}

func NewMigrator(migrations []Migration, opts ...MigratorOption) *Migrator {
	m := &Migrator{migrations: migrations, logger: logging.NewNullLogger()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Migrator) sortedMigrations() []Migration {
	out := append([]Migration(nil), m.migrations...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

func (m *Migrator) metadata(conn Connection) MetadataStorage {
	if m.metadataStorage != nil {
		return m.metadataStorage
	}
	return NewTableMetadataStorage(conn)
}

// Migrate runs every pending migration needed to reach the highest version
// in the migrator's set, inside a single transaction: if any migration
// fails, everything executed so far in this call rolls back together.
func (m *Migrator) Migrate(ctx context.Context, conn Connection) error {
	if len(m.migrations) == 0 {
		return nil
	}
	sorted := m.sortedMigrations()
	target := sorted[len(sorted)-1].Version

	return m.MigrateToVersion(ctx, conn, target)
}

// MigrateToVersion runs (or reverts) exactly the migrations needed to reach
// version, in the direction findDirection picks.
func (m *Migrator) MigrateToVersion(ctx context.Context, conn Connection, version int64) error {
	if m.locking {
		m.runMu.Lock()
		defer m.runMu.Unlock()
	}

	plans, direction, err := m.planUntilVersion(ctx, conn, version)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		m.logger.Info("nothing to migrate", map[string]interface{}{"target_version": version})
		return nil
	}
	m.logger.Info("running migration plan", map[string]interface{}{
		"target_version": version,
		"direction":      direction.String(),
		"steps":          len(plans),
	})

	tx, err := conn.BeginTx(ctx)
	if err != nil {
		return err
	}

	storage := m.metadata(conn)
	sm := conn.SchemaManager()
	executor := newExecutor(tx)

	var fromSchema *schema.Schema
	for i := range plans {
		p := &plans[i]
		if _, err := executor.execute(ctx, sm, p, fromSchema); err != nil {
			_ = tx.Rollback()
			return err
		}

		if p.result.Err != nil {
			m.logger.Error("migration step failed", map[string]interface{}{
				"version": p.migration.Version, "direction": p.direction.String(), "error": p.result.Err.Error(),
			})
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", p.migration.Version, p.direction, p.result.Err)
		}

		if err := storage.Complete(ctx, *p.result); err != nil {
			_ = tx.Rollback()
			return err
		}
		m.logger.Info("migration step complete", map[string]interface{}{
			"version": p.migration.Version, "direction": p.direction.String(), "sql_count": len(p.result.SQL), "skipped": p.result.Skipped,
		})
		fromSchema = p.result.ToSchema
	}

	return tx.Commit()
}

func (m *Migrator) planUntilVersion(ctx context.Context, conn Connection, version int64) ([]plan, Direction, error) {
	executed, err := m.metadata(conn).GetExecutedMigrations(ctx)
	if err != nil {
		return nil, Up, err
	}

	if !m.ignoreMissing {
		known := map[int64]bool{}
		for _, mig := range m.migrations {
			known[mig.Version] = true
		}
		for _, e := range executed.Items {
			if !known[e.Version] {
				return nil, Up, fmt.Errorf("migration %d is recorded as executed but is not present in the migration set", e.Version)
			}
		}
	}

	direction := findDirection(version, m.sortedMigrations(), executed)

	sorted := m.sortedMigrations()
	if direction == Down {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}

	// Selection is bounded by the target version on both sides: Up only
	// runs migrations at or below version that haven't executed yet, Down
	// only reverts executed migrations above version - a migration already
	// sitting at version itself stays applied.
	var plans []plan
	for _, mig := range sorted {
		has := executed.HasMigration(mig.Version)
		switch direction {
		case Up:
			if !has && mig.Version <= version {
				plans = append(plans, plan{migration: mig, direction: direction})
			}
		case Down:
			if has && mig.Version > version {
				plans = append(plans, plan{migration: mig, direction: direction})
			}
		}
	}
	return plans, direction, nil
}

// findDirection decides whether reaching version means running migrations
// forward or reverting them: version 0 always means "revert everything";
// otherwise, walking the sorted list up to version, the first migration not
// yet executed means there is forward work to do; failing that, version
// itself being executed but not the highest executed version means
// later migrations must be reverted down to it.
func findDirection(version int64, sorted []Migration, executed ExecutedMigrationList) Direction {
	if version == 0 {
		return Down
	}

	for _, mig := range sorted {
		if mig.Version == version {
			break
		}
		if !executed.HasMigration(mig.Version) {
			return Up
		}
	}

	if last, ok := executed.Last(); executed.HasMigration(version) && (!ok || last.Version != version) {
		return Down
	}
	return Up
}
