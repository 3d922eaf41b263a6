package platform

import (
	"fmt"
	"strings"

	"github.com/alekitto/dbal/internal/dbvalue"
	"github.com/alekitto/dbal/internal/schema"
)

// SQLitePlatform implements Platform for SQLite.
type SQLitePlatform struct{}

func NewSQLitePlatform() *SQLitePlatform { return &SQLitePlatform{} }

func (p *SQLitePlatform) Name() string { return "sqlite" }

func (p *SQLitePlatform) Capabilities() Capabilities {
	return Capabilities{
		Sequences:             false,
		Schemas:               false,
		IdentityColumns:       true,
		PartialIndexes:        true,
		ColumnLengthIndexes:   false,
		Savepoints:            true,
		ReleaseSavepoints:     true,
		ForeignKeyConstraints: true,
		CreateDropDatabase:    false,
		InlineColumnComments:  false,
		CommentOnStatements:   false,
		NativeGUID:            false,
		NativeJSON:            false,
		ColumnCollation:       true,
	}
}

func (p *SQLitePlatform) HasNativeJSON() bool { return false }
func (p *SQLitePlatform) HasNativeGUID() bool { return false }

func (p *SQLitePlatform) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (p *SQLitePlatform) IsReservedKeyword(word string) bool {
	return sqliteReservedKeywords[strings.ToUpper(word)]
}

func (p *SQLitePlatform) ColumnDeclarationSQL(col *schema.Column) (string, error) {
	decl, err := declarationSQL(p, col)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", quoteIfNeeded(p, col.Name), decl)
	if col.NotNull {
		b.WriteString(" NOT NULL")
	}
	if col.AutoIncrement {
		b.WriteString(" PRIMARY KEY AUTOINCREMENT")
	} else if col.Default != nil {
		fmt.Fprintf(&b, " DEFAULT %s", sqlLiteral(p, *col.Default))
	}
	return b.String(), nil
}

func (p *SQLitePlatform) CreateTableSQL(table *schema.Table) ([]string, error) {
	if len(table.Columns) == 0 {
		return nil, errNoColumns(table.Name)
	}

	hasAutoIncrementPK := false
	for _, c := range table.Columns {
		if c.AutoIncrement {
			hasAutoIncrementPK = true
		}
	}

	var parts []string
	for _, col := range table.Columns {
		decl, err := p.ColumnDeclarationSQL(col)
		if err != nil {
			return nil, err
		}
		parts = append(parts, decl)
	}
	if !hasAutoIncrementPK && len(table.PrimaryKeyColumns) > 0 {
		parts = append(parts, fmt.Sprintf("PRIMARY KEY (%s)", joinColumns(p, table.PrimaryKeyColumns)))
	}
	if p.Capabilities().ForeignKeyConstraints {
		for _, fk := range table.ForeignKeys {
			parts = append(parts, p.foreignKeyDefinitionSQL(fk))
		}
	}

	var sql []string
	sql = append(sql, fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", quoteIfNeeded(p, table.Name), strings.Join(parts, ",\n  ")))

	for _, idx := range table.Indexes {
		if idx.IsPrimary {
			continue
		}
		sql = append(sql, p.createIndexSQL(table.Name, idx))
	}

	return sql, nil
}

func (p *SQLitePlatform) createIndexSQL(tableName string, idx *schema.Index) string {
	kind := "CREATE INDEX"
	if idx.IsUnique {
		kind = "CREATE UNIQUE INDEX"
	}
	sql := fmt.Sprintf("%s %s ON %s (%s)", kind, p.QuoteIdentifier(idx.Name), quoteIfNeeded(p, tableName), joinColumns(p, idx.Columns))
	if idx.Where != "" {
		sql += " WHERE " + idx.Where
	}
	return sql
}

func (p *SQLitePlatform) foreignKeyDefinitionSQL(fk *schema.ForeignKeyConstraint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FOREIGN KEY (%s) REFERENCES %s (%s)",
		joinColumns(p, fk.LocalColumns), quoteIfNeeded(p, fk.ForeignTableName), joinColumns(p, fk.ForeignColumns))
	if fk.OnDelete != "" {
		fmt.Fprintf(&b, " ON DELETE %s", fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		fmt.Fprintf(&b, " ON UPDATE %s", fk.OnUpdate)
	}
	return b.String()
}

func (p *SQLitePlatform) DropTableSQL(tableName string) string {
	return fmt.Sprintf("DROP TABLE %s", quoteIfNeeded(p, tableName))
}

// TableDiffToSQL for SQLite takes the fast ADD-COLUMN-only path when the
// diff is nothing but added columns - the one alteration SQLite's own ALTER
// TABLE grammar supports. Anything else (dropped/changed/renamed columns,
// index or FK changes, a table rename bundled with other changes) falls
// back to the rebuild-via-temp-table strategy SQLite itself recommends:
// create the new shape under a temporary name, copy the data across by the
// columns that exist in both versions, drop the old table, then rename the
// new one into place.
func (p *SQLitePlatform) TableDiffToSQL(diff *schema.TableDiff) ([]string, error) {
	if p.isAddColumnOnly(diff) {
		var sql []string
		qTable := quoteIfNeeded(p, diff.OldTable.Name)
		for _, col := range diff.AddedColumns {
			decl, err := p.ColumnDeclarationSQL(col)
			if err != nil {
				return nil, err
			}
			sql = append(sql, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", qTable, decl))
		}
		return sql, nil
	}

	return p.rebuildTableSQL(diff)
}

func (p *SQLitePlatform) isAddColumnOnly(diff *schema.TableDiff) bool {
	if !(diff.NewName == "" &&
		len(diff.ChangedColumns) == 0 &&
		len(diff.RemovedColumns) == 0 &&
		len(diff.RenamedColumns) == 0 &&
		len(diff.AddedIndexes) == 0 &&
		len(diff.ChangedIndexes) == 0 &&
		len(diff.RemovedIndexes) == 0 &&
		len(diff.RenamedIndexes) == 0 &&
		len(diff.AddedForeignKeys) == 0 &&
		len(diff.RemovedForeignKeys) == 0 &&
		len(diff.AddedColumns) > 0) {
		return false
	}

	// ADD COLUMN can only introduce a column whose value is the same
	// constant for every existing row: an autoincrement column needs
	// "PRIMARY KEY AUTOINCREMENT", which SQLite rejects outside of the
	// original CREATE TABLE, and a runtime-computed default like
	// CURRENT_TIMESTAMP would be evaluated once at ALTER time rather than
	// per row, unlike a genuine rebuild. Either forces the rebuild path.
	for _, col := range diff.AddedColumns {
		if col.AutoIncrement || hasRuntimeDefault(col) {
			return false
		}
	}
	return true
}

// runtimeDefaultFuncs are bareword SQL functions recognized as a column
// default, evaluated at insert time rather than baked in as a literal.
var runtimeDefaultFuncs = map[string]bool{
	"CURRENT_TIMESTAMP": true,
	"CURRENT_DATE":      true,
	"CURRENT_TIME":      true,
}

func hasRuntimeDefault(col *schema.Column) bool {
	if col.Default == nil || col.Default.Kind() != dbvalue.KindString {
		return false
	}
	return runtimeDefaultFuncs[strings.ToUpper(col.Default.String())]
}

func (p *SQLitePlatform) rebuildTableSQL(diff *schema.TableDiff) ([]string, error) {
	old := diff.OldTable
	finalName := old.Name
	if diff.NewName != "" {
		finalName = diff.NewName
	}
	tempName := "__temp__" + old.Name

	newTable := schema.NewTable(tempName)
	newTable.PrimaryKeyColumns = old.PrimaryKeyColumns
	newTable.Options = old.Options
	newTable.Comment = old.Comment

	removed := map[string]bool{}
	for _, c := range diff.RemovedColumns {
		removed[strings.ToLower(c.Name)] = true
	}
	changed := map[string]*schema.Column{}
	for _, cd := range diff.ChangedColumns {
		changed[strings.ToLower(cd.OldName)] = cd.Column
	}
	renamed := map[string]*schema.Column{}
	for oldName, col := range diff.RenamedColumns {
		renamed[strings.ToLower(oldName)] = col
	}

	var copyPairs [][2]string // [newColumnName, oldColumnName]
	for _, col := range old.Columns {
		key := strings.ToLower(col.Name)
		if removed[key] {
			continue
		}
		if nc, ok := changed[key]; ok {
			newTable.AddColumn(nc)
			copyPairs = append(copyPairs, [2]string{nc.Name, col.Name})
			continue
		}
		if nc, ok := renamed[key]; ok {
			newTable.AddColumn(nc)
			copyPairs = append(copyPairs, [2]string{nc.Name, col.Name})
			continue
		}
		newTable.AddColumn(col)
		copyPairs = append(copyPairs, [2]string{col.Name, col.Name})
	}
	for _, col := range diff.AddedColumns {
		newTable.AddColumn(col)
	}
	for _, idx := range old.Indexes {
		if !idx.IsPrimary {
			newTable.AddIndex(idx)
		}
	}
	for _, idx := range diff.AddedIndexes {
		newTable.AddIndex(idx)
	}
	for _, fk := range old.ForeignKeys {
		newTable.AddForeignKey(fk)
	}
	for _, fk := range diff.AddedForeignKeys {
		newTable.AddForeignKey(fk)
	}

	createStmts, err := p.CreateTableSQL(newTable)
	if err != nil {
		return nil, err
	}

	var sql []string
	sql = append(sql, createStmts...)

	newCols := make([]string, len(copyPairs))
	oldCols := make([]string, len(copyPairs))
	for i, pair := range copyPairs {
		newCols[i] = quoteIfNeeded(p, pair[0])
		oldCols[i] = quoteIfNeeded(p, pair[1])
	}
	sql = append(sql, fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
		quoteIfNeeded(p, tempName), strings.Join(newCols, ", "), strings.Join(oldCols, ", "), quoteIfNeeded(p, old.Name)))

	sql = append(sql, p.DropTableSQL(old.Name))
	sql = append(sql, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", quoteIfNeeded(p, tempName), quoteIfNeeded(p, finalName)))

	return sql, nil
}

func (p *SQLitePlatform) SchemaDiffToSQL(diff *schema.SchemaDiff) ([]string, error) {
	return genericSchemaDiffToSQL(p, diff)
}

// ListTablesSQL covers both the main and temp catalogs: sqlite_master holds
// permanent objects, sqlite_temp_master holds the connection's temporary
// ones, and a table name could exist in either (or, shadowing, both).
func (p *SQLitePlatform) ListTablesSQL() string {
	return "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' " +
		"UNION ALL SELECT name FROM sqlite_temp_master WHERE type='table' AND name NOT LIKE 'sqlite_%' " +
		"ORDER BY name"
}

func (p *SQLitePlatform) ListTableColumnsSQL(tableName string) string {
	return fmt.Sprintf("PRAGMA table_info(%s)", p.QuoteIdentifier(tableName))
}

func (p *SQLitePlatform) ListTableIndexesSQL(tableName string) string {
	return fmt.Sprintf("PRAGMA index_list(%s)", p.QuoteIdentifier(tableName))
}

func (p *SQLitePlatform) ListTableForeignKeysSQL(tableName string) string {
	return fmt.Sprintf("PRAGMA foreign_key_list(%s)", p.QuoteIdentifier(tableName))
}
