package migration

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alekitto/dbal/internal/dbvalue"
	"github.com/alekitto/dbal/internal/driver"
	"github.com/alekitto/dbal/internal/schema"
	"github.com/alekitto/dbal/internal/schemamanager"
)

// ExecutedMigration is one row read back from a MetadataStorage: a version
// that has already run, with when and how long it took.
type ExecutedMigration struct {
	Version       int64
	ExecutedAt    time.Time
	ExecutionTime int64
}

// ExecutedMigrationList is the set of migrations a MetadataStorage reports
// as already applied, ordered by ascending version.
type ExecutedMigrationList struct {
	Items []ExecutedMigration
}

func (l ExecutedMigrationList) HasMigration(version int64) bool {
	for _, m := range l.Items {
		if m.Version == version {
			return true
		}
	}
	return false
}

func (l ExecutedMigrationList) Last() (ExecutedMigration, bool) {
	if len(l.Items) == 0 {
		return ExecutedMigration{}, false
	}
	return l.Items[len(l.Items)-1], true
}

// MetadataStorage records which migrations have run, so the Migrator can
// work out which are still pending without replaying every closure.
type MetadataStorage interface {
	GetExecutedMigrations(ctx context.Context) (ExecutedMigrationList, error)
	Complete(ctx context.Context, result ExecutionResult) error
}

// Connection is the narrow surface the migration engine needs from a live
// database connection: a driver to run raw statements against, a schema
// manager to create/alter/introspect tables with, and the ability to start
// a transaction the whole migration run executes inside.
type Connection interface {
	Driver() driver.Driver
	SchemaManager() *schemamanager.Manager
	BeginTx(ctx context.Context) (driver.Tx, error)
}

// TableMetadataStorageOption configures a TableMetadataStorage's table and
// column names away from their defaults.
type TableMetadataStorageOption func(*TableMetadataStorage)

func WithTableName(name string) TableMetadataStorageOption {
	return func(s *TableMetadataStorage) { s.tableName = name }
}

func WithVersionColumnName(name string) TableMetadataStorageOption {
	return func(s *TableMetadataStorage) { s.versionColumnName = name }
}

func WithExecutedAtColumnName(name string) TableMetadataStorageOption {
	return func(s *TableMetadataStorage) { s.executedAtColumnName = name }
}

func WithExecutionTimeColumnName(name string) TableMetadataStorageOption {
	return func(s *TableMetadataStorage) { s.executionTimeColumnName = name }
}

// TableMetadataStorage records executed migrations as rows in an ordinary
// table, created and kept in sync with the expected column set through the
// same schema manager / comparator the rest of the module uses for every
// other table.
type TableMetadataStorage struct {
	conn Connection

	mu              sync.Mutex
	initialized     bool
	schemaUpToDate  bool

	tableName               string
	versionColumnName        string
	executedAtColumnName     string
	executionTimeColumnName  string
}

func NewTableMetadataStorage(conn Connection, opts ...TableMetadataStorageOption) *TableMetadataStorage {
	s := &TableMetadataStorage{
		conn:                    conn,
		tableName:               "migration_versions",
		versionColumnName:       "version",
		executedAtColumnName:    "executed_at",
		executionTimeColumnName: "execution_time",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TableMetadataStorage) expectedTable() *schema.Table {
	t := schema.NewTable(s.tableName)
	t.AddColumn(&schema.Column{Name: s.versionColumnName, Type: "BIGINT", NotNull: true})
	t.AddColumn(&schema.Column{Name: s.executedAtColumnName, Type: "DATETIME", NotNull: false})
	t.AddColumn(&schema.Column{Name: s.executionTimeColumnName, Type: "INTEGER", NotNull: false})
	t.SetPrimaryKey([]string{s.versionColumnName})
	return t
}

func (s *TableMetadataStorage) tableExists(ctx context.Context) (bool, error) {
	return s.conn.SchemaManager().TablesExist(ctx, []string{s.tableName})
}

// ensureInitialized creates the metadata table on first use, or alters it
// in place when the expected column set has drifted (e.g. a caller changed
// the configured column names between runs).
func (s *TableMetadataStorage) ensureInitialized(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sm := s.conn.SchemaManager()
	exists, err := s.tableExists(ctx)
	if err != nil {
		return err
	}

	if !exists {
		if err := sm.CreateTable(ctx, s.expectedTable()); err != nil {
			return err
		}
		s.initialized = true
		s.schemaUpToDate = true
		return nil
	}

	s.initialized = true
	if s.schemaUpToDate {
		return nil
	}

	onlineTable, err := sm.IntrospectTable(ctx, s.tableName)
	if err != nil {
		return err
	}
	if diff := sm.CreateComparator().DiffTable(onlineTable, s.expectedTable()); diff != nil {
		if err := sm.AlterTable(ctx, diff); err != nil {
			return err
		}
	}
	s.schemaUpToDate = true
	return nil
}

func (s *TableMetadataStorage) GetExecutedMigrations(ctx context.Context) (ExecutedMigrationList, error) {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return ExecutedMigrationList{}, err
	}
	if !exists {
		return ExecutedMigrationList{}, nil
	}
	if err := s.ensureInitialized(ctx); err != nil {
		return ExecutedMigrationList{}, err
	}

	rows, err := s.conn.Driver().Query(ctx, "SELECT * FROM "+s.tableName, nil)
	if err != nil {
		return ExecutedMigrationList{}, err
	}
	defer rows.Close()

	var items []ExecutedMigration
	for rows.Next() {
		row, err := rows.Scan()
		if err != nil {
			return ExecutedMigrationList{}, err
		}

		version, err := columnInt(row, s.versionColumnName)
		if err != nil {
			return ExecutedMigrationList{}, err
		}
		executedAt, _ := columnTime(row, s.executedAtColumnName)
		executionTime, _ := columnInt(row, s.executionTimeColumnName)

		items = append(items, ExecutedMigration{
			Version:       version,
			ExecutedAt:    executedAt,
			ExecutionTime: executionTime,
		})
	}
	if err := rows.Err(); err != nil {
		return ExecutedMigrationList{}, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Version < items[j].Version })
	return ExecutedMigrationList{Items: items}, nil
}

func (s *TableMetadataStorage) Complete(ctx context.Context, result ExecutionResult) error {
	if err := s.ensureInitialized(ctx); err != nil {
		return err
	}

	d := s.conn.Driver()
	if result.Direction == Up {
		insertSQL := "INSERT INTO " + s.tableName + " (" +
			s.versionColumnName + ", " + s.executionTimeColumnName + ", " + s.executedAtColumnName +
			") VALUES (?, ?, ?)"
		params := []dbvalue.Parameter{
			dbvalue.NewParameter(dbvalue.NewInt(result.Version)),
			dbvalue.NewParameter(dbvalue.NewInt(result.ExecutionTime)),
			dbvalue.NewParameter(dbvalue.NewDateTime(result.ExecutedAt)),
		}
		_, err := d.Exec(ctx, insertSQL, params)
		return err
	}

	deleteSQL := "DELETE FROM " + s.tableName + " WHERE " + s.versionColumnName + " = ?"
	_, err := d.Exec(ctx, deleteSQL, []dbvalue.Parameter{dbvalue.NewParameter(dbvalue.NewInt(result.Version))})
	return err
}

func columnInt(row *dbvalue.Row, name string) (int64, error) {
	v, err := row.Get(name)
	if err != nil {
		return 0, err
	}
	if v.IsNull() {
		return 0, nil
	}
	n, err := v.Int()
	if err == nil {
		return n, nil
	}
	u, err := v.UInt()
	if err == nil {
		return int64(u), nil
	}
	return 0, err
}

func columnTime(row *dbvalue.Row, name string) (time.Time, error) {
	v, err := row.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	if v.IsNull() {
		return time.Time{}, nil
	}
	return v.DateTime()
}
