package schemamanager

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekitto/dbal/internal/dbvalue"
	"github.com/alekitto/dbal/internal/driver"
	"github.com/alekitto/dbal/internal/events"
	"github.com/alekitto/dbal/internal/platform"
	"github.com/alekitto/dbal/internal/schema"
)

// recordingDriver is a driver.Driver stub that just logs every statement it
// is asked to run and answers table-listing queries from an in-memory set,
// enough to exercise Manager without a live database.
type recordingDriver struct {
	execLog []string
	tables  []string
}

func (d *recordingDriver) Prepare(ctx context.Context, sqlText string) (driver.Statement, error) {
	return nil, nil
}

func (d *recordingDriver) Exec(ctx context.Context, sqlText string, params []dbvalue.Parameter) (driver.StatementResult, error) {
	d.execLog = append(d.execLog, sqlText)
	return nil, nil
}

func (d *recordingDriver) Query(ctx context.Context, sqlText string, params []dbvalue.Parameter) (dbvalue.Rows, error) {
	rows := make([][]dbvalue.Value, len(d.tables))
	for i, n := range d.tables {
		rows[i] = []dbvalue.Value{dbvalue.NewString(n)}
	}
	return &staticRows{cols: []string{"name"}, rows: rows, i: -1}, nil
}

func (d *recordingDriver) BeginTx(ctx context.Context) (driver.Tx, error) { return nil, nil }
func (d *recordingDriver) Close() error                                  { return nil }

type staticRows struct {
	cols []string
	rows [][]dbvalue.Value
	i    int
}

func (r *staticRows) Next() bool {
	r.i++
	return r.i < len(r.rows)
}
func (r *staticRows) Scan() (*dbvalue.Row, error) { return dbvalue.NewRow(r.cols, r.rows[r.i]), nil }
func (r *staticRows) Err() error                  { return nil }
func (r *staticRows) Close() error                { return nil }

func TestManagerCreateTable(t *testing.T) {
	d := &recordingDriver{}
	m := New(d, platform.NewSQLitePlatform(), nil)

	table := schema.NewTable("widgets")
	table.AddColumn(schema.NewColumn("id", "INTEGER"))
	require.NoError(t, m.CreateTable(context.Background(), table))

	require.NotEmpty(t, d.execLog)
	assert.Contains(t, strings.ToUpper(d.execLog[0]), "CREATE TABLE")
}

func TestManagerDropTable(t *testing.T) {
	d := &recordingDriver{}
	m := New(d, platform.NewSQLitePlatform(), nil)

	require.NoError(t, m.DropTable(context.Background(), "widgets"))
	require.Len(t, d.execLog, 1)
	assert.Contains(t, strings.ToUpper(d.execLog[0]), "DROP TABLE")
}

func TestManagerTablesExist(t *testing.T) {
	d := &recordingDriver{tables: []string{"widgets", "orders"}}
	m := New(d, platform.NewSQLitePlatform(), nil)

	exists, err := m.TablesExist(context.Background(), []string{"widgets"})
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = m.TablesExist(context.Background(), []string{"gadgets"})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestManagerCreateTableEventPreventDefault(t *testing.T) {
	d := &recordingDriver{}
	dispatcher := events.NewDefaultDispatcher()
	dispatcher.ListenFunc(EventCreateTable, func(e events.Event) error {
		if base, ok := e.(*events.BaseEvent); ok {
			base.PreventDefault()
			base.AddSQL("CREATE TABLE widgets_custom (id INTEGER)")
		}
		return nil
	})

	m := New(d, platform.NewSQLitePlatform(), dispatcher)
	table := schema.NewTable("widgets")
	table.AddColumn(schema.NewColumn("id", "INTEGER"))
	require.NoError(t, m.CreateTable(context.Background(), table))

	require.Len(t, d.execLog, 1)
	assert.Equal(t, "CREATE TABLE widgets_custom (id INTEGER)", d.execLog[0])
}

func TestManagerWithLoggerDefaultsToNonNil(t *testing.T) {
	d := &recordingDriver{}
	m := New(d, platform.NewSQLitePlatform(), nil)
	assert.NotNil(t, m.logger)
	assert.Same(t, m, m.WithLogger(nil))
}
