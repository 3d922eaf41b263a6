package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekitto/dbal/internal/dbvalue"
	"github.com/alekitto/dbal/internal/schema"
)

func widgetsTable() *schema.Table {
	tbl := schema.NewTable("widgets")
	id := schema.NewColumn("id", "INTEGER")
	id.AutoIncrement = true
	tbl.AddColumn(id)
	tbl.AddColumn(schema.NewColumn("name", "STRING"))
	return tbl
}

func TestSQLiteCreateTableSQL(t *testing.T) {
	p := NewSQLitePlatform()
	stmts, err := p.CreateTableSQL(widgetsTable())
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	// "widgets" is not a reserved keyword, so it renders unquoted.
	assert.Contains(t, stmts[0], "CREATE TABLE widgets")
	assert.Contains(t, stmts[0], "AUTOINCREMENT")
}

func TestSQLiteCreateTableSQLQuotesReservedKeywordTableName(t *testing.T) {
	p := NewSQLitePlatform()
	tbl := schema.NewTable("table")
	tbl.AddColumn(schema.NewColumn("id", "INTEGER"))
	stmts, err := p.CreateTableSQL(tbl)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], `CREATE TABLE "table"`, "a reserved-word table name must be quoted")
}

func TestSQLiteCreateTableSQLRejectsNoColumns(t *testing.T) {
	p := NewSQLitePlatform()
	_, err := p.CreateTableSQL(schema.NewTable("empty"))
	assert.Error(t, err)
}

func TestSQLiteDropTableSQL(t *testing.T) {
	p := NewSQLitePlatform()
	assert.Equal(t, "DROP TABLE widgets", p.DropTableSQL("widgets"))
	assert.Equal(t, `DROP TABLE "table"`, p.DropTableSQL("table"))
}

func TestSQLiteTableDiffToSQLAddColumnOnlyFastPath(t *testing.T) {
	p := NewSQLitePlatform()
	diff := &schema.TableDiff{
		OldTable:     widgetsTable(),
		AddedColumns: []*schema.Column{schema.NewColumn("price", "DECIMAL")},
	}

	stmts, err := p.TableDiffToSQL(diff)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "ALTER TABLE")
	assert.Contains(t, stmts[0], "ADD COLUMN")
}

func TestSQLiteTableDiffToSQLRebuildsWhenAddedColumnIsAutoIncrement(t *testing.T) {
	p := NewSQLitePlatform()
	added := schema.NewColumn("seq", "INTEGER")
	added.AutoIncrement = true
	diff := &schema.TableDiff{
		OldTable:     widgetsTable(),
		AddedColumns: []*schema.Column{added},
	}

	stmts, err := p.TableDiffToSQL(diff)
	require.NoError(t, err)
	require.True(t, len(stmts) >= 4, "an autoincrement ADD COLUMN cannot use the fast path, since SQLite rejects PRIMARY KEY AUTOINCREMENT outside CREATE TABLE")
	assert.Contains(t, strings.ToUpper(stmts[0]), "CREATE TABLE")
}

func TestSQLiteTableDiffToSQLRebuildsWhenAddedColumnHasRuntimeDefault(t *testing.T) {
	p := NewSQLitePlatform()
	added := schema.NewColumn("created_at", "DATETIME")
	def := dbvalue.NewString("CURRENT_TIMESTAMP")
	added.Default = &def
	diff := &schema.TableDiff{
		OldTable:     widgetsTable(),
		AddedColumns: []*schema.Column{added},
	}

	stmts, err := p.TableDiffToSQL(diff)
	require.NoError(t, err)
	require.True(t, len(stmts) >= 4, "a runtime default like CURRENT_TIMESTAMP must not go through the fast path")
	assert.Contains(t, strings.ToUpper(stmts[0]), "CREATE TABLE")
}

func TestSQLiteTableDiffToSQLRebuildsOnColumnRemoval(t *testing.T) {
	p := NewSQLitePlatform()
	old := widgetsTable()
	diff := &schema.TableDiff{
		OldTable:       old,
		RemovedColumns: []*schema.Column{old.Columns[1]},
	}

	stmts, err := p.TableDiffToSQL(diff)
	require.NoError(t, err)
	require.True(t, len(stmts) >= 4, "the rebuild strategy emits create-temp, copy, drop-old, rename-into-place")
	assert.Contains(t, strings.ToUpper(stmts[0]), "CREATE TABLE")
	joined := strings.Join(stmts, "\n")
	assert.Contains(t, joined, "INSERT INTO")
	assert.Contains(t, strings.ToUpper(joined), "DROP TABLE")
	assert.Contains(t, joined, "RENAME TO")
}

func TestSQLiteListTablesSQLCoversMainAndTempCatalogs(t *testing.T) {
	p := NewSQLitePlatform()
	q := p.ListTablesSQL()
	assert.Contains(t, q, "sqlite_master")
	assert.Contains(t, q, "sqlite_temp_master")
	assert.Contains(t, q, "UNION ALL")
}

func TestMySQLCreateTableSQLUsesBacktickQuoting(t *testing.T) {
	p := NewMySQLPlatform()
	tbl := schema.NewTable("select")
	tbl.AddColumn(schema.NewColumn("id", "INTEGER"))
	stmts, err := p.CreateTableSQL(tbl)
	require.NoError(t, err)
	assert.Contains(t, stmts[0], "`select`", "a reserved-word table name must be backtick-quoted")
}

func TestMariaDBNameDiffersFromMySQL(t *testing.T) {
	assert.Equal(t, "mysql", NewMySQLPlatform().Name())
	assert.Equal(t, "mariadb", NewMariaDBPlatform().Name())
	assert.True(t, NewMySQLPlatform().Capabilities().NativeJSON)
	assert.False(t, NewMariaDBPlatform().Capabilities().NativeJSON, "MariaDB has no native JSON type")
}

func TestPostgreSQLCreateTableSQLUsesDoubleQuoting(t *testing.T) {
	p := NewPostgreSQLPlatform()
	tbl := schema.NewTable("select")
	tbl.AddColumn(schema.NewColumn("id", "INTEGER"))
	stmts, err := p.CreateTableSQL(tbl)
	require.NoError(t, err)
	assert.Contains(t, stmts[0], `"select"`, "a reserved-word table name must be double-quoted")
}

func TestPostgreSQLBooleanDefaultRendersTrueFalseKeyword(t *testing.T) {
	p := NewPostgreSQLPlatform()
	col := schema.NewColumn("active", "BOOLEAN")
	def := dbvalue.NewBoolean(true)
	col.Default = &def

	decl, err := p.ColumnDeclarationSQL(col)
	require.NoError(t, err)
	assert.Contains(t, decl, "DEFAULT TRUE")
	assert.NotContains(t, decl, "DEFAULT 1", "PostgreSQL rejects an integer literal as a boolean column's default")
}

func TestMySQLBooleanDefaultRendersNumericLiteral(t *testing.T) {
	p := NewMySQLPlatform()
	col := schema.NewColumn("active", "BOOLEAN")
	def := dbvalue.NewBoolean(false)
	col.Default = &def

	decl, err := p.ColumnDeclarationSQL(col)
	require.NoError(t, err)
	assert.Contains(t, decl, "DEFAULT 0")
}

func TestQuoteIdentifierEscapesEmbeddedQuoteChar(t *testing.T) {
	p := NewPostgreSQLPlatform()
	assert.Equal(t, `"wei""rd"`, p.QuoteIdentifier(`wei"rd`))

	m := NewMySQLPlatform()
	assert.Equal(t, "`wei``rd`", m.QuoteIdentifier("wei`rd"))
}

func TestIsReservedKeywordCaseInsensitive(t *testing.T) {
	p := NewPostgreSQLPlatform()
	assert.True(t, p.IsReservedKeyword("select"))
	assert.True(t, p.IsReservedKeyword("SELECT"))
	assert.False(t, p.IsReservedKeyword("widgets"))
}

func TestSchemaDiffToSQLEmitsCreateAndDropTableStatements(t *testing.T) {
	p := NewSQLitePlatform()
	diff := &schema.SchemaDiff{
		CreatedTables: []*schema.Table{widgetsTable()},
		DroppedTables: []*schema.Table{schema.NewTable("legacy")},
	}

	stmts, err := p.SchemaDiffToSQL(diff)
	require.NoError(t, err)
	joined := strings.Join(stmts, "\n")
	assert.Contains(t, strings.ToUpper(joined), "CREATE TABLE")
	assert.Contains(t, strings.ToUpper(joined), "DROP TABLE")
}
