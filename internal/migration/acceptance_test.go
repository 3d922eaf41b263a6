package migration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekitto/dbal/internal/platform"
	"github.com/alekitto/dbal/internal/schema"
	"github.com/alekitto/dbal/internal/typeregistry"
)

// This file gathers the module's binding acceptance scenarios in one place,
// one test per scenario, so a reviewer can check the whole list at a glance
// instead of hunting through per-package test files.

// SC1: create-table SQL (MySQL). Table "test" with an auto-incrementing,
// NOT NULL "id" and a nullable "test" VARCHAR(255), PK (id).
func TestAcceptanceSC1MySQLCreateTableSQL(t *testing.T) {
	p := platform.NewMySQLPlatform()

	tbl := schema.NewTable("test")
	id := schema.NewColumn("id", typeregistry.INTEGER)
	id.AutoIncrement = true
	id.NotNull = true
	tbl.AddColumn(id)
	col := schema.NewColumn("test", typeregistry.STRING)
	col.Length = 255
	tbl.AddColumn(col)
	tbl.SetPrimaryKey([]string{"id"})

	stmts, err := p.CreateTableSQL(tbl)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	ddl := stmts[0]

	// "test", "id" and "test" (the column) are none of them reserved words,
	// so they render unquoted, matching how a non-keyword identifier is
	// rendered on every dialect here.
	assert.Contains(t, ddl, "CREATE TABLE test")
	assert.Contains(t, ddl, "AUTO_INCREMENT")
	assert.Contains(t, ddl, "NOT NULL")
	assert.Contains(t, ddl, "VARCHAR(255)")
	assert.Contains(t, ddl, "DEFAULT NULL")
	assert.Contains(t, ddl, "PRIMARY KEY (id)")
	assert.Contains(t, ddl, "ENGINE=InnoDB")
}

// SC2: create-table SQL (PostgreSQL), same inputs. Autoincrement renders as
// the literal SERIAL pseudo-type, not an identity-column clause; see
// DESIGN.md.
func TestAcceptanceSC2PostgreSQLCreateTableSQL(t *testing.T) {
	p := platform.NewPostgreSQLPlatform()

	tbl := schema.NewTable("test")
	id := schema.NewColumn("id", typeregistry.INTEGER)
	id.AutoIncrement = true
	id.NotNull = true
	tbl.AddColumn(id)
	col := schema.NewColumn("test", typeregistry.STRING)
	col.Length = 255
	tbl.AddColumn(col)
	tbl.SetPrimaryKey([]string{"id"})

	stmts, err := p.CreateTableSQL(tbl)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	ddl := stmts[0]

	assert.Contains(t, ddl, "CREATE TABLE test")
	assert.Contains(t, ddl, "SERIAL")
	assert.NotContains(t, ddl, "GENERATED BY DEFAULT AS IDENTITY")
	assert.Contains(t, ddl, "NOT NULL")
	assert.Contains(t, ddl, "VARCHAR(255)")
	assert.Contains(t, ddl, "DEFAULT NULL")
	assert.Contains(t, ddl, "PRIMARY KEY (id)")
}

// SC3: rename reserved-keyword columns (PostgreSQL). "select", "create" and
// "table" all rename to non-keyword names; each RENAME COLUMN statement
// must quote whichever identifier is still a reserved word.
func TestAcceptanceSC3PostgreSQLRenameReservedKeywordColumns(t *testing.T) {
	p := platform.NewPostgreSQLPlatform()
	c := schema.NewComparator(p)

	from := schema.NewTable("mytable")
	from.AddColumn(schema.NewColumn("select", typeregistry.STRING))
	from.AddColumn(schema.NewColumn("create", typeregistry.INTEGER))
	from.AddColumn(schema.NewColumn("table", typeregistry.TEXT))

	to := schema.NewTable("mytable")
	to.AddColumn(schema.NewColumn("bar", typeregistry.STRING))
	to.AddColumn(schema.NewColumn("reserved_keyword", typeregistry.INTEGER))
	to.AddColumn(schema.NewColumn("from", typeregistry.TEXT))

	diff := c.DiffTable(from, to)
	require.NotNil(t, diff)
	require.Len(t, diff.RenamedColumns, 3)

	stmts, err := p.TableDiffToSQL(diff)
	require.NoError(t, err)
	joined := strings.Join(stmts, "\n")

	assert.Contains(t, joined, `ALTER TABLE mytable RENAME COLUMN "create" TO reserved_keyword`)
	assert.Contains(t, joined, `ALTER TABLE mytable RENAME COLUMN "table" TO "from"`)
	assert.Contains(t, joined, `ALTER TABLE mytable RENAME COLUMN "select" TO "bar"`)
}

// SC4: SQLite add-column fast path. A diff with only an added column emits a
// single ALTER TABLE ADD COLUMN; adding any rename to that same diff forces
// the create-copy-drop-rename rebuild strategy instead.
func TestAcceptanceSC4SQLiteAddColumnFastPath(t *testing.T) {
	p := platform.NewSQLitePlatform()

	diff := &schema.TableDiff{
		OldTable:     schema.NewTable("T"),
		AddedColumns: []*schema.Column{func() *schema.Column { c := schema.NewColumn("foo", typeregistry.INTEGER); c.NotNull = true; return c }()},
	}

	stmts, err := p.TableDiffToSQL(diff)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	// Neither "T" nor "foo" is a reserved keyword, so both render unquoted.
	assert.Equal(t, "ALTER TABLE T ADD COLUMN foo INTEGER NOT NULL", stmts[0])

	diff.RenamedColumns = map[string]*schema.Column{
		"bar": func() *schema.Column { c := schema.NewColumn("baz", typeregistry.INTEGER); return c }(),
	}
	diff.OldTable.AddColumn(schema.NewColumn("bar", typeregistry.INTEGER))

	stmts, err = p.TableDiffToSQL(diff)
	require.NoError(t, err)
	assert.Greater(t, len(stmts), 1, "a rename in the same diff must force the rebuild strategy")
}

// SC5: migrator direction selection. Migrations [1,2,3], executed {1,2,3},
// target v=2 => Down, plan [3,2]; executed {1}, target v=3 => Up, plan [2,3].
func TestAcceptanceSC5MigratorDirectionSelection(t *testing.T) {
	sorted := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}

	allExecuted := ExecutedMigrationList{Items: []ExecutedMigration{{Version: 1}, {Version: 2}, {Version: 3}}}
	assert.Equal(t, Down, findDirection(2, sorted, allExecuted))

	onlyFirstExecuted := ExecutedMigrationList{Items: []ExecutedMigration{{Version: 1}}}
	assert.Equal(t, Up, findDirection(3, sorted, onlyFirstExecuted))

	// Plan building follows the direction: Down walks descending and selects
	// versions in E; Up walks ascending and selects versions not in E.
	conn := newTestConnection()
	var ran []string
	migs := []Migration{
		{Version: 1, Up: func(e *Executor, s *schema.Schema) error { ran = append(ran, "up1"); return nil }},
		{Version: 2, Up: func(e *Executor, s *schema.Schema) error { ran = append(ran, "up2"); return nil },
			Down: func(e *Executor, s *schema.Schema) error { ran = append(ran, "down2"); return nil }},
		{Version: 3, Up: func(e *Executor, s *schema.Schema) error { ran = append(ran, "up3"); return nil },
			Down: func(e *Executor, s *schema.Schema) error { ran = append(ran, "down3"); return nil }},
	}
	m := NewMigrator(migs)
	require.NoError(t, m.Migrate(context.Background(), conn))
	ran = nil

	require.NoError(t, m.MigrateToVersion(context.Background(), conn, 2))
	assert.Equal(t, []string{"down3"}, ran, "reverting from 3 to 2 must only run migration 3's Down")
}

// SC6: boolean conversion (PostgreSQL). Recognized false/true literals
// convert cleanly; an unrecognized literal fails as ConversionFailed.
func TestAcceptanceSC6PostgreSQLBooleanConversion(t *testing.T) {
	ty, err := typeregistry.Lookup(typeregistry.BOOLEAN)
	require.NoError(t, err)
	pg := platform.NewPostgreSQLPlatform()

	for _, lit := range []string{"f", "false", "0"} {
		v, err := ty.ConvertToValue(lit, pg)
		require.NoError(t, err, "literal %q", lit)
		assert.False(t, v.Bool(), "literal %q", lit)
	}
	for _, lit := range []string{"t", "true", "1", "yes", "on"} {
		v, err := ty.ConvertToValue(lit, pg)
		require.NoError(t, err, "literal %q", lit)
		assert.True(t, v.Bool(), "literal %q", lit)
	}

	_, err = ty.ConvertToValue("maybe", pg)
	require.Error(t, err)
}
