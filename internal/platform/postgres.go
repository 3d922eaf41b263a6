package platform

import (
	"fmt"
	"strings"

	"github.com/alekitto/dbal/internal/schema"
)

// PostgreSQLPlatform implements Platform for PostgreSQL.
type PostgreSQLPlatform struct{}

func NewPostgreSQLPlatform() *PostgreSQLPlatform { return &PostgreSQLPlatform{} }

func (p *PostgreSQLPlatform) Name() string { return "postgresql" }

func (p *PostgreSQLPlatform) Capabilities() Capabilities {
	return Capabilities{
		Sequences:             true,
		Schemas:               true,
		IdentityColumns:       true,
		PartialIndexes:        true,
		ColumnLengthIndexes:   false,
		Savepoints:            true,
		ReleaseSavepoints:     true,
		ForeignKeyConstraints: true,
		CreateDropDatabase:    true,
		InlineColumnComments:  false,
		CommentOnStatements:   true,
		NativeGUID:            true,
		NativeJSON:            true,
		ColumnCollation:       true,
	}
}

func (p *PostgreSQLPlatform) HasNativeJSON() bool { return true }
func (p *PostgreSQLPlatform) HasNativeGUID() bool { return true }

func (p *PostgreSQLPlatform) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (p *PostgreSQLPlatform) IsReservedKeyword(word string) bool {
	return postgresReservedKeywords[strings.ToUpper(word)]
}

func (p *PostgreSQLPlatform) ColumnDeclarationSQL(col *schema.Column) (string, error) {
	decl, err := declarationSQL(p, col)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", quoteIfNeeded(p, col.Name), decl)
	if col.Collation != "" {
		fmt.Fprintf(&b, " COLLATE %s", quoteStringLiteral(col.Collation))
	}
	if col.NotNull {
		b.WriteString(" NOT NULL")
	}
	if col.AutoIncrement {
		// SERIAL/BIGSERIAL/SMALLSERIAL, already selected by declarationSQL,
		// carries its own implicit DEFAULT nextval(...); nothing more to add.
	} else if col.Default != nil {
		fmt.Fprintf(&b, " DEFAULT %s", sqlLiteral(p, *col.Default))
	} else if !col.NotNull {
		b.WriteString(" DEFAULT NULL")
	}
	return b.String(), nil
}

func (p *PostgreSQLPlatform) CreateTableSQL(table *schema.Table) ([]string, error) {
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
	for _, fk := range table.ForeignKeys {
		parts = append(parts, p.foreignKeyDefinitionSQL(fk))
	}

	var sql []string
	sql = append(sql, fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", quoteIfNeeded(p, table.Name), strings.Join(parts, ",\n  ")))

	for _, idx := range table.Indexes {
		if idx.IsPrimary {
			continue
		}
		sql = append(sql, p.createIndexSQL(table.Name, idx))
	}

	if table.Comment != "" {
		sql = append(sql, fmt.Sprintf("COMMENT ON TABLE %s IS %s", quoteIfNeeded(p, table.Name), quoteStringLiteral(table.Comment)))
	}
	for _, col := range table.Columns {
		comment := commentWithTypeTag(col.Comment, col.Type, needsTypeTag(p, col.Type))
		if comment != "" {
			sql = append(sql, p.commentOnColumnSQL(table.Name, col.Name, comment))
		}
	}

	return sql, nil
}

func (p *PostgreSQLPlatform) createIndexSQL(tableName string, idx *schema.Index) string {
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

func (p *PostgreSQLPlatform) foreignKeyDefinitionSQL(fk *schema.ForeignKeyConstraint) string {
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

func (p *PostgreSQLPlatform) commentOnColumnSQL(tableName, columnName, comment string) string {
	return fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s", quoteIfNeeded(p, tableName), quoteIfNeeded(p, columnName), quoteStringLiteral(comment))
}

func (p *PostgreSQLPlatform) DropTableSQL(tableName string) string {
	return fmt.Sprintf("DROP TABLE %s", quoteIfNeeded(p, tableName))
}

// TableDiffToSQL for PostgreSQL: one ALTER TABLE ... ALTER COLUMN per
// changed column property (PostgreSQL has no single clause that changes
// type, nullability and default together), plus autoincrement transitions
// rewired through CREATE SEQUENCE + OWNED BY rather than a column flag,
// since "GENERATED BY DEFAULT AS IDENTITY" cannot be added via a plain
// ALTER COLUMN TYPE statement. Comments are emitted as trailing COMMENT ON
// COLUMN statements, after every structural change.
func (p *PostgreSQLPlatform) TableDiffToSQL(diff *schema.TableDiff) ([]string, error) {
	var sql []string
	tableName := diff.OldTable.Name
	qTable := quoteIfNeeded(p, tableName)

	for _, fk := range diff.RemovedForeignKeys {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", qTable, p.QuoteIdentifier(fk.Name)))
	}
	for _, idx := range diff.RemovedIndexes {
		sql = append(sql, fmt.Sprintf("DROP INDEX %s", p.QuoteIdentifier(idx.Name)))
	}
	for _, idx := range diff.ChangedIndexes {
		sql = append(sql, fmt.Sprintf("DROP INDEX %s", p.QuoteIdentifier(idx.Name)))
	}

	for _, col := range diff.AddedColumns {
		decl, err := p.ColumnDeclarationSQL(col)
		if err != nil {
			return nil, err
		}
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", qTable, decl))
	}

	for oldName, col := range diff.RenamedColumns {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s", qTable, quoteIfNeeded(p, oldName), quoteIfNeeded(p, col.Name)))
	}

	for _, cd := range diff.ChangedColumns {
		qCol := quoteIfNeeded(p, cd.Column.Name)
		if cd.HasChanged("type") || cd.HasChanged("length") || cd.HasChanged("precision") || cd.HasChanged("scale") || cd.HasChanged("fixed") {
			decl, err := declarationSQL(p, cd.Column)
			if err != nil {
				return nil, err
			}
			sql = append(sql, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s", qTable, qCol, decl))
		}
		if cd.HasChanged("notnull") {
			if cd.Column.NotNull {
				sql = append(sql, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL", qTable, qCol))
			} else {
				sql = append(sql, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP NOT NULL", qTable, qCol))
			}
		}
		if cd.HasChanged("default") {
			if cd.Column.Default != nil {
				sql = append(sql, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s", qTable, qCol, sqlLiteral(p, *cd.Column.Default)))
			} else {
				sql = append(sql, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", qTable, qCol))
			}
		}
		if cd.HasChanged("autoincrement") {
			if cd.Column.AutoIncrement {
				seqName := tableName + "_" + cd.Column.Name + "_seq"
				sql = append(sql,
					fmt.Sprintf("CREATE SEQUENCE %s OWNED BY %s.%s", p.QuoteIdentifier(seqName), qTable, qCol),
					fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT nextval(%s)", qTable, qCol, quoteStringLiteral(seqName)),
				)
			} else {
				sql = append(sql, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", qTable, qCol))
			}
		}
	}

	for _, col := range diff.RemovedColumns {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", qTable, quoteIfNeeded(p, col.Name)))
	}

	if diff.NewName != "" {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", qTable, quoteIfNeeded(p, diff.NewName)))
	}

	finalTableName := tableName
	if diff.NewName != "" {
		finalTableName = diff.NewName
	}

	for _, idx := range diff.AddedIndexes {
		sql = append(sql, p.createIndexSQL(finalTableName, idx))
	}
	for _, idx := range diff.ChangedIndexes {
		sql = append(sql, p.createIndexSQL(finalTableName, idx))
	}
	for oldName, idx := range diff.RenamedIndexes {
		sql = append(sql, fmt.Sprintf("ALTER INDEX %s RENAME TO %s", p.QuoteIdentifier(oldName), p.QuoteIdentifier(idx.Name)))
	}
	for _, fk := range diff.AddedForeignKeys {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s ADD %s", quoteIfNeeded(p, finalTableName), p.foreignKeyDefinitionSQL(fk)))
	}

	for _, cd := range diff.ChangedColumns {
		if cd.HasChanged("comment") {
			comment := commentWithTypeTag(cd.Column.Comment, cd.Column.Type, needsTypeTag(p, cd.Column.Type))
			sql = append(sql, p.commentOnColumnSQL(finalTableName, cd.Column.Name, comment))
		}
	}

	return sql, nil
}

func (p *PostgreSQLPlatform) SchemaDiffToSQL(diff *schema.SchemaDiff) ([]string, error) {
	var sql []string
	for _, ns := range diff.CreatedSchemas {
		sql = append(sql, fmt.Sprintf("CREATE SCHEMA %s", p.QuoteIdentifier(ns)))
	}
	generic, err := genericSchemaDiffToSQL(p, diff)
	if err != nil {
		return nil, err
	}
	sql = append(sql, generic...)
	for _, ns := range diff.DroppedSchemas {
		sql = append(sql, fmt.Sprintf("DROP SCHEMA %s", p.QuoteIdentifier(ns)))
	}
	for _, seq := range diff.CreatedSequences {
		sql = append(sql, fmt.Sprintf("CREATE SEQUENCE %s START WITH %d INCREMENT BY %d", p.QuoteIdentifier(seq.Name), valueOr(seq.StartingValue, 1), valueOr(seq.Allocation, 1)))
	}
	for _, seq := range diff.AlteredSequences {
		sql = append(sql, fmt.Sprintf("ALTER SEQUENCE %s INCREMENT BY %d", p.QuoteIdentifier(seq.Name), valueOr(seq.Allocation, 1)))
	}
	for _, seq := range diff.DroppedSequences {
		sql = append(sql, fmt.Sprintf("DROP SEQUENCE %s", p.QuoteIdentifier(seq.Name)))
	}
	return sql, nil
}

func valueOr(v int64, fallback int64) int64 {
	if v == 0 {
		return fallback
	}
	return v
}

func (p *PostgreSQLPlatform) ListTablesSQL() string {
	return "SELECT table_name AS name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name"
}

func (p *PostgreSQLPlatform) ListTableColumnsSQL(tableName string) string {
	return fmt.Sprintf("SELECT * FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = %s ORDER BY ordinal_position", quoteStringLiteral(tableName))
}

func (p *PostgreSQLPlatform) ListTableIndexesSQL(tableName string) string {
	return fmt.Sprintf(`SELECT i.relname AS index_name, a.attname AS column_name, ix.indisunique, ix.indisprimary
FROM pg_class t, pg_class i, pg_index ix, pg_attribute a
WHERE t.oid = ix.indrelid AND i.oid = ix.indexrelid
  AND a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
  AND t.relkind = 'r' AND t.relname = %s`, quoteStringLiteral(tableName))
}

func (p *PostgreSQLPlatform) ListTableForeignKeysSQL(tableName string) string {
	return fmt.Sprintf(`SELECT tc.constraint_name, kcu.column_name, ccu.table_name AS foreign_table_name, ccu.column_name AS foreign_column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name
JOIN information_schema.constraint_column_usage ccu ON tc.constraint_name = ccu.constraint_name
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_name = %s`, quoteStringLiteral(tableName))
}
