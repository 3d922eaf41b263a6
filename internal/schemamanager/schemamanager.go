// Package schemamanager ties a driver.Driver, a platform.Platform and a
// schema.Comparator together: it is the one place that both generates DDL
// and runs it, and that turns raw introspection rows back into the
// portable schema model.
package schemamanager

import (
	"context"

	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/dbvalue"
	"github.com/alekitto/dbal/internal/driver"
	"github.com/alekitto/dbal/internal/events"
	"github.com/alekitto/dbal/internal/logging"
	"github.com/alekitto/dbal/internal/platform"
	"github.com/alekitto/dbal/internal/schema"
)

// DDL event names. Listeners registered against these can call
// PreventDefault to suppress the platform's own SQL and AddSQL to supply a
// replacement, or just observe that the operation is about to run. The event
// does not carry the platform's generated SQL; statements added without
// PreventDefault run after the platform's own.
const (
	EventCreateTable = "schema.createTable"
	EventAlterTable  = "schema.alterTable"
	EventDropTable   = "schema.dropTable"
)

type Manager struct {
	driver     driver.Driver
	platform   platform.Platform
	dispatcher events.Dispatcher
	logger     logging.Logger
}

func New(d driver.Driver, p platform.Platform, dispatcher events.Dispatcher) *Manager {
	return &Manager{driver: d, platform: p, dispatcher: dispatcher, logger: logging.NewNullLogger()}
}

// WithLogger attaches a logger (expected to be the "schema" channel of the
// module's logging.Manager) that reports DDL as it executes.
func (m *Manager) WithLogger(l logging.Logger) *Manager {
	if l != nil {
		m.logger = l
	}
	return m
}

func (m *Manager) Platform() platform.Platform { return m.platform }

func (m *Manager) CreateComparator() *schema.Comparator {
	return schema.NewComparator(m.platform)
}

func (m *Manager) dispatch(eventName string) (*events.BaseEvent, error) {
	ev := events.NewBaseEvent(eventName)
	if m.dispatcher == nil {
		return ev, nil
	}
	return ev, m.dispatcher.Dispatch(ev)
}

func (m *Manager) execAll(ctx context.Context, statements []string) error {
	for _, s := range statements {
		if _, err := m.driver.Exec(ctx, s, nil); err != nil {
			return err
		}
	}
	return nil
}

// CreateTable runs the platform's CREATE TABLE (and any accompanying CREATE
// INDEX / COMMENT ON) statements for table, unless a schema.createTable
// listener calls PreventDefault, in which case only the SQL pushed via
// AddSQL on the event runs.
func (m *Manager) CreateTable(ctx context.Context, table *schema.Table) error {
	ev, err := m.dispatch(EventCreateTable)
	if err != nil {
		return err
	}
	if ev.IsDefaultPrevented() {
		return m.execAll(ctx, ev.SQL())
	}

	statements, err := m.platform.CreateTableSQL(table)
	if err != nil {
		return err
	}
	m.logger.Info("creating table", map[string]interface{}{"table": table.Name})
	return m.execAll(ctx, append(statements, ev.SQL()...))
}

func (m *Manager) AlterTable(ctx context.Context, diff *schema.TableDiff) error {
	ev, err := m.dispatch(EventAlterTable)
	if err != nil {
		return err
	}
	if ev.IsDefaultPrevented() {
		return m.execAll(ctx, ev.SQL())
	}

	statements, err := m.platform.TableDiffToSQL(diff)
	if err != nil {
		return err
	}
	m.logger.Info("altering table", map[string]interface{}{"table": diff.OldTable.Name, "statements": len(statements)})
	return m.execAll(ctx, append(statements, ev.SQL()...))
}

func (m *Manager) DropTable(ctx context.Context, tableName string) error {
	ev, err := m.dispatch(EventDropTable)
	if err != nil {
		return err
	}
	if ev.IsDefaultPrevented() {
		return m.execAll(ctx, ev.SQL())
	}
	m.logger.Info("dropping table", map[string]interface{}{"table": tableName})
	return m.execAll(ctx, append([]string{m.platform.DropTableSQL(tableName)}, ev.SQL()...))
}

func (m *Manager) TablesExist(ctx context.Context, names []string) (bool, error) {
	existing, err := m.listTableNames(ctx)
	if err != nil {
		return false, err
	}
	have := map[string]bool{}
	for _, n := range existing {
		have[lowerASCII(n)] = true
	}
	for _, n := range names {
		if !have[lowerASCII(n)] {
			return false, nil
		}
	}
	return true, nil
}

func (m *Manager) listTableNames(ctx context.Context) ([]string, error) {
	rows, err := m.driver.Query(ctx, m.platform.ListTablesSQL(), nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		row, err := rows.Scan()
		if err != nil {
			return nil, err
		}
		v, err := row.At(0)
		if err != nil {
			return nil, err
		}
		names = append(names, v.String())
	}
	return names, rows.Err()
}

// IntrospectSchema rebuilds a Schema from the connected database: every
// table, reconstructed column-by-column from driver-native catalog rows.
func (m *Manager) IntrospectSchema(ctx context.Context) (*schema.Schema, error) {
	names, err := m.listTableNames(ctx)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("introspecting schema", map[string]interface{}{"tables": len(names)})
	s := schema.NewSchema()
	for _, name := range names {
		t, err := m.IntrospectTable(ctx, name)
		if err != nil {
			return nil, dbalerr.Wrap(dbalerr.SchemaIntrospectionFailed, "introspecting table "+name, err)
		}
		s.AddTable(t)
	}
	return s, nil
}

func (m *Manager) IntrospectTable(ctx context.Context, name string) (*schema.Table, error) {
	t := schema.NewTable(name)

	cols, err := m.introspectColumns(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, c := range cols {
		t.AddColumn(c)
	}

	idxs, pk, err := m.introspectIndexes(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, i := range idxs {
		t.AddIndex(i)
	}
	if len(pk) > 0 {
		t.PrimaryKeyColumns = pk
	}

	fks, err := m.introspectForeignKeys(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, fk := range fks {
		t.AddForeignKey(fk)
	}

	return t, nil
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func firstString(row *dbvalue.Row, names ...string) string {
	for _, n := range names {
		if v, err := row.Get(n); err == nil && !v.IsNull() {
			return v.String()
		}
	}
	return ""
}

func firstBool(row *dbvalue.Row, names ...string) bool {
	for _, n := range names {
		if v, err := row.Get(n); err == nil && !v.IsNull() {
			return v.Bool()
		}
	}
	return false
}
