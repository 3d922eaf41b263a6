package platform

import (
	"fmt"
	"strings"

	"github.com/alekitto/dbal/internal/schema"
)

// MySQLPlatform implements Platform for MySQL and MariaDB. The mariadb flag,
// rather than a second near-duplicate type, covers the difference: it
// changes Name() and clears NativeJSON (MariaDB's JSON is an alias for
// LONGTEXT). Every other rule, including the absence of any CHECK
// constraint handling, is shared.
type MySQLPlatform struct {
	mariadb bool
}

func NewMySQLPlatform() *MySQLPlatform    { return &MySQLPlatform{} }
func NewMariaDBPlatform() *MySQLPlatform  { return &MySQLPlatform{mariadb: true} }

func (p *MySQLPlatform) Name() string {
	if p.mariadb {
		return "mariadb"
	}
	return "mysql"
}

func (p *MySQLPlatform) Capabilities() Capabilities {
	return Capabilities{
		Sequences:            false,
		Schemas:              false,
		IdentityColumns:      true,
		PartialIndexes:       false,
		ColumnLengthIndexes:  true,
		Savepoints:           true,
		ReleaseSavepoints:    true,
		ForeignKeyConstraints: true,
		CreateDropDatabase:   true,
		InlineColumnComments: true,
		CommentOnStatements:  false,
		NativeGUID:           false,
		NativeJSON:           !p.mariadb,
		ColumnCollation:      true,
	}
}

func (p *MySQLPlatform) HasNativeJSON() bool { return p.Capabilities().NativeJSON }
func (p *MySQLPlatform) HasNativeGUID() bool { return p.Capabilities().NativeGUID }

func (p *MySQLPlatform) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (p *MySQLPlatform) IsReservedKeyword(word string) bool {
	return mysqlReservedKeywords[strings.ToUpper(word)]
}

func (p *MySQLPlatform) ColumnDeclarationSQL(col *schema.Column) (string, error) {
	decl, err := declarationSQL(p, col)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", quoteIfNeeded(p, col.Name), decl)
	if col.Collation != "" {
		fmt.Fprintf(&b, " COLLATE %s", col.Collation)
	}
	if col.NotNull {
		b.WriteString(" NOT NULL")
	} else {
		b.WriteString(" NULL")
	}
	if col.AutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	} else if col.Default != nil {
		fmt.Fprintf(&b, " DEFAULT %s", sqlLiteral(p, *col.Default))
	} else if !col.NotNull {
		b.WriteString(" DEFAULT NULL")
	}
	comment := commentWithTypeTag(col.Comment, col.Type, needsTypeTag(p, col.Type))
	if comment != "" {
		fmt.Fprintf(&b, " COMMENT %s", quoteStringLiteral(comment))
	}
	return b.String(), nil
}

func (p *MySQLPlatform) CreateTableSQL(table *schema.Table) ([]string, error) {
	if len(table.Columns) == 0 {
		return nil, errNoColumns(table.Name)
	}

	var parts []string
	for _, col := range table.Columns {
		decl, err := p.ColumnDeclarationSQL(col)
		if err != nil {
			return nil, err
		}
		parts = append(parts, decl)
	}
	if len(table.PrimaryKeyColumns) > 0 {
		parts = append(parts, fmt.Sprintf("PRIMARY KEY (%s)", joinColumns(p, table.PrimaryKeyColumns)))
	}
	for _, idx := range table.Indexes {
		if idx.IsPrimary {
			continue
		}
		parts = append(parts, p.indexDefinitionSQL(idx))
	}
	for _, fk := range table.ForeignKeys {
		parts = append(parts, p.foreignKeyDefinitionSQL(fk))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n  %s\n)", quoteIfNeeded(p, table.Name), strings.Join(parts, ",\n  "))

	engine := table.Options["engine"]
	if engine == "" {
		engine = "InnoDB"
	}
	fmt.Fprintf(&b, " ENGINE=%s", engine)
	if charset := table.Options["charset"]; charset != "" {
		fmt.Fprintf(&b, " DEFAULT CHARSET=%s", charset)
	}
	if table.Comment != "" {
		fmt.Fprintf(&b, " COMMENT=%s", quoteStringLiteral(table.Comment))
	}

	return []string{b.String()}, nil
}

func (p *MySQLPlatform) indexDefinitionSQL(idx *schema.Index) string {
	kind := "KEY"
	if idx.IsUnique {
		kind = "UNIQUE KEY"
	}
	if containsFlag(idx.Flags, "fulltext") {
		kind = "FULLTEXT KEY"
	} else if containsFlag(idx.Flags, "spatial") {
		kind = "SPATIAL KEY"
	}
	return fmt.Sprintf("%s %s (%s)", kind, p.QuoteIdentifier(idx.Name), joinColumns(p, idx.Columns))
}

func (p *MySQLPlatform) foreignKeyDefinitionSQL(fk *schema.ForeignKeyConstraint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		p.QuoteIdentifier(fk.Name), joinColumns(p, fk.LocalColumns), quoteIfNeeded(p, fk.ForeignTableName), joinColumns(p, fk.ForeignColumns))
	if fk.OnDelete != "" {
		fmt.Fprintf(&b, " ON DELETE %s", fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		fmt.Fprintf(&b, " ON UPDATE %s", fk.OnUpdate)
	}
	return b.String()
}

func (p *MySQLPlatform) DropTableSQL(tableName string) string {
	return fmt.Sprintf("DROP TABLE %s", quoteIfNeeded(p, tableName))
}

// TableDiffToSQL for MySQL: drop changed/removed FKs and indexes, then a
// single collapsed ALTER TABLE carrying every column add/drop/modify/rename
// clause, then the table rename, then add the new/changed indexes and FKs
// and any index renames. MySQL folds a column's comment into its MODIFY
// COLUMN clause, so there is no separate "comment-on-column" tail here.
func (p *MySQLPlatform) TableDiffToSQL(diff *schema.TableDiff) ([]string, error) {
	var sql []string
	tableName := diff.OldTable.Name
	qTable := quoteIfNeeded(p, tableName)

	for _, fk := range diff.RemovedForeignKeys {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", qTable, p.QuoteIdentifier(fk.Name)))
	}
	for _, idx := range diff.RemovedIndexes {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s DROP INDEX %s", qTable, p.QuoteIdentifier(idx.Name)))
	}
	for _, idx := range diff.ChangedIndexes {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s DROP INDEX %s", qTable, p.QuoteIdentifier(idx.Name)))
	}

	var clauses []string
	for _, col := range diff.AddedColumns {
		decl, err := p.ColumnDeclarationSQL(col)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, "ADD COLUMN "+decl)
	}
	for oldName, col := range diff.RenamedColumns {
		decl, err := p.ColumnDeclarationSQL(col)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, fmt.Sprintf("CHANGE COLUMN %s %s", p.QuoteIdentifier(oldName), decl))
	}
	for _, cd := range diff.ChangedColumns {
		decl, err := p.ColumnDeclarationSQL(cd.Column)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, "MODIFY COLUMN "+decl)
	}
	for _, col := range diff.RemovedColumns {
		clauses = append(clauses, "DROP COLUMN "+p.QuoteIdentifier(col.Name))
	}
	if diff.NewName != "" {
		clauses = append(clauses, "RENAME TO "+quoteIfNeeded(p, diff.NewName))
	}
	if len(clauses) > 0 {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s %s", qTable, strings.Join(clauses, ", ")))
	}

	qFinalTable := qTable
	if diff.NewName != "" {
		qFinalTable = quoteIfNeeded(p, diff.NewName)
	}

	for _, idx := range diff.AddedIndexes {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s ADD %s", qFinalTable, p.indexDefinitionSQL(idx)))
	}
	for _, idx := range diff.ChangedIndexes {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s ADD %s", qFinalTable, p.indexDefinitionSQL(idx)))
	}
	for oldName, idx := range diff.RenamedIndexes {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s RENAME INDEX %s TO %s", qFinalTable, p.QuoteIdentifier(oldName), p.QuoteIdentifier(idx.Name)))
	}
	for _, fk := range diff.AddedForeignKeys {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s ADD %s", qFinalTable, p.foreignKeyDefinitionSQL(fk)))
	}

	return sql, nil
}

func (p *MySQLPlatform) SchemaDiffToSQL(diff *schema.SchemaDiff) ([]string, error) {
	return genericSchemaDiffToSQL(p, diff)
}

func (p *MySQLPlatform) ListTablesSQL() string {
	return "SELECT table_name AS name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE' ORDER BY table_name"
}

func (p *MySQLPlatform) ListTableColumnsSQL(tableName string) string {
	return fmt.Sprintf("SELECT * FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = %s ORDER BY ordinal_position", quoteStringLiteral(tableName))
}

func (p *MySQLPlatform) ListTableIndexesSQL(tableName string) string {
	return fmt.Sprintf("SELECT * FROM information_schema.statistics WHERE table_schema = DATABASE() AND table_name = %s ORDER BY index_name, seq_in_index", quoteStringLiteral(tableName))
}

func (p *MySQLPlatform) ListTableForeignKeysSQL(tableName string) string {
	return fmt.Sprintf(`SELECT * FROM information_schema.key_column_usage
WHERE table_schema = DATABASE() AND table_name = %s AND referenced_table_name IS NOT NULL`, quoteStringLiteral(tableName))
}

func containsFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}
