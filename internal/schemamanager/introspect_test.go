package schemamanager

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekitto/dbal/internal/dbvalue"
	"github.com/alekitto/dbal/internal/driver"
	"github.com/alekitto/dbal/internal/platform"
)

// routedRows answers Query by matching a substring against the SQL text,
// independent of which dialect's catalog query actually produced the shape.
type routedRows struct {
	routes map[string]struct {
		cols []string
		rows [][]dbvalue.Value
	}
}

func (d *routedRows) Prepare(ctx context.Context, sqlText string) (driver.Statement, error) {
	return nil, nil
}
func (d *routedRows) Exec(ctx context.Context, sqlText string, params []dbvalue.Parameter) (driver.StatementResult, error) {
	return nil, nil
}
func (d *routedRows) Query(ctx context.Context, sqlText string, params []dbvalue.Parameter) (dbvalue.Rows, error) {
	for substr, route := range d.routes {
		if strings.Contains(sqlText, substr) {
			return &staticRows{cols: route.cols, rows: route.rows, i: -1}, nil
		}
	}
	return &staticRows{cols: nil, rows: nil, i: -1}, nil
}
func (d *routedRows) BeginTx(ctx context.Context) (driver.Tx, error) { return nil, nil }
func (d *routedRows) Close() error                                  { return nil }

func TestIntrospectColumnsGenericDialectReadsInformationSchemaShape(t *testing.T) {
	d := &routedRows{routes: map[string]struct {
		cols []string
		rows [][]dbvalue.Value
	}{
		"widgets": {
			cols: []string{"column_name", "data_type", "is_nullable", "column_default", "character_maximum_length"},
			rows: [][]dbvalue.Value{
				{dbvalue.NewString("id"), dbvalue.NewString("int"), dbvalue.NewString("NO"), dbvalue.NewString("auto_increment"), dbvalue.Null()},
				{dbvalue.NewString("name"), dbvalue.NewString("varchar"), dbvalue.NewString("YES"), dbvalue.Null(), dbvalue.NewString("255")},
			},
		},
	}}
	m := New(d, platform.NewMySQLPlatform(), nil)

	cols, err := m.introspectColumns(context.Background(), "widgets")
	require.NoError(t, err)
	require.Len(t, cols, 2)

	assert.Equal(t, "id", cols[0].Name)
	assert.True(t, cols[0].NotNull)
	assert.True(t, cols[0].AutoIncrement)

	assert.Equal(t, "name", cols[1].Name)
	assert.False(t, cols[1].NotNull)
	assert.Equal(t, 255, cols[1].Length)
}

func TestIntrospectColumnsSQLiteReadsPragmaShape(t *testing.T) {
	d := &routedRows{routes: map[string]struct {
		cols []string
		rows [][]dbvalue.Value
	}{
		"table_info": {
			cols: []string{"name", "type", "notnull", "pk"},
			rows: [][]dbvalue.Value{
				{dbvalue.NewString("id"), dbvalue.NewString("INTEGER"), dbvalue.NewString("0"), dbvalue.NewString("1")},
			},
		},
	}}
	m := New(d, platform.NewSQLitePlatform(), nil)

	cols, err := m.introspectColumns(context.Background(), "widgets")
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.False(t, cols[0].NotNull)
	assert.True(t, cols[0].AutoIncrement)
}

func TestIntrospectColumnsUsesCRTypeTagWhenPresent(t *testing.T) {
	tagged := "a comment (CRType:JSON)"
	d := &routedRows{routes: map[string]struct {
		cols []string
		rows [][]dbvalue.Value
	}{
		"widgets": {
			cols: []string{"column_name", "data_type", "column_comment"},
			rows: [][]dbvalue.Value{
				{dbvalue.NewString("payload"), dbvalue.NewString("text"), dbvalue.NewString(tagged)},
			},
		},
	}}
	m := New(d, platform.NewMySQLPlatform(), nil)

	cols, err := m.introspectColumns(context.Background(), "widgets")
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "JSON", cols[0].Type)
}

func TestIntrospectIndexesGroupsColumnsAndExcludesPrimary(t *testing.T) {
	d := &routedRows{routes: map[string]struct {
		cols []string
		rows [][]dbvalue.Value
	}{
		"widgets": {
			cols: []string{"index_name", "column_name", "non_unique", "indisprimary"},
			rows: [][]dbvalue.Value{
				{dbvalue.NewString("PRIMARY"), dbvalue.NewString("id"), dbvalue.NewString("0"), dbvalue.NewString("true")},
				{dbvalue.NewString("idx_name"), dbvalue.NewString("name"), dbvalue.NewString("1"), dbvalue.NewString("false")},
				{dbvalue.NewString("idx_name"), dbvalue.NewString("created_at"), dbvalue.NewString("1"), dbvalue.NewString("false")},
			},
		},
	}}
	m := New(d, platform.NewMySQLPlatform(), nil)

	idxs, pk, err := m.introspectIndexes(context.Background(), "widgets")
	require.NoError(t, err)
	require.Equal(t, []string{"id"}, pk)
	require.Len(t, idxs, 1)
	assert.Equal(t, "idx_name", idxs[0].Name)
	assert.Equal(t, []string{"name", "created_at"}, idxs[0].Columns)
}

func TestIntrospectForeignKeysGroupsMultiColumnKeys(t *testing.T) {
	d := &routedRows{routes: map[string]struct {
		cols []string
		rows [][]dbvalue.Value
	}{
		"widgets": {
			cols: []string{"constraint_name", "column_name", "foreign_table_name", "foreign_column_name"},
			rows: [][]dbvalue.Value{
				{dbvalue.NewString("fk_widgets_orders"), dbvalue.NewString("order_id"), dbvalue.NewString("orders"), dbvalue.NewString("id")},
				{dbvalue.NewString("fk_widgets_orders"), dbvalue.NewString("order_region"), dbvalue.NewString("orders"), dbvalue.NewString("region")},
			},
		},
	}}
	m := New(d, platform.NewMySQLPlatform(), nil)

	fks, err := m.introspectForeignKeys(context.Background(), "widgets")
	require.NoError(t, err)
	require.Len(t, fks, 1)
	assert.Equal(t, "orders", fks[0].ForeignTableName)
	assert.Equal(t, []string{"order_id", "order_region"}, fks[0].LocalColumns)
	assert.Equal(t, []string{"id", "region"}, fks[0].ForeignColumns)
}

func TestIntrospectForeignKeysGeneratesNameWhenMissing(t *testing.T) {
	d := &routedRows{routes: map[string]struct {
		cols []string
		rows [][]dbvalue.Value
	}{
		"widgets": {
			cols: []string{"from", "table", "to"},
			rows: [][]dbvalue.Value{
				{dbvalue.NewString("order_id"), dbvalue.NewString("orders"), dbvalue.NewString("id")},
			},
		},
	}}
	m := New(d, platform.NewSQLitePlatform(), nil)

	fks, err := m.introspectForeignKeys(context.Background(), "widgets")
	require.NoError(t, err)
	require.Len(t, fks, 1)
	assert.NotEmpty(t, fks[0].Name)
	assert.Equal(t, "orders", fks[0].ForeignTableName)
}

func TestMapNativeTypeCoversEachFamily(t *testing.T) {
	tests := map[string]string{
		"BIGINT":           "BIGINT",
		"SMALLINT":         "SMALLINT",
		"INT":              "INTEGER",
		"NUMERIC(10,2)":    "DECIMAL",
		"DOUBLE PRECISION": "FLOAT",
		"BOOLEAN":          "BOOLEAN",
		"UUID":             "GUID",
		"JSONB":            "JSON",
		"TIMESTAMP":        "DATETIME",
		"DATE":             "DATE",
		"TIME":             "TIME",
		"BYTEA":            "BLOB",
		"TEXT":             "TEXT",
		"SOMETHING_ODD":    "STRING",
	}
	for native, want := range tests {
		assert.Equal(t, want, mapNativeType(native), "native type %s", native)
	}
}
