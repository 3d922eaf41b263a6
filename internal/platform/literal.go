package platform

import (
	"fmt"
	"strings"

	"github.com/alekitto/dbal/internal/dbvalue"
	"github.com/alekitto/dbal/internal/schema"
)

func quoteStringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sqlLiteral renders a Value as a SQL literal suitable for a DEFAULT clause.
// Boolean literals use each platform's accepted spelling: PostgreSQL renders
// TRUE/FALSE, and rejects an integer literal as a boolean column's DEFAULT
// outright; MySQL and SQLite render 1/0, since MySQL's BOOLEAN is a
// TINYINT(1) alias with no TRUE/FALSE keyword support in older versions and
// SQLite has no boolean type at all.
func sqlLiteral(p Platform, v dbvalue.Value) string {
	switch v.Kind() {
	case dbvalue.KindNull:
		return "NULL"
	case dbvalue.KindBoolean:
		if p != nil && p.Name() == "postgresql" {
			if v.Bool() {
				return "TRUE"
			}
			return "FALSE"
		}
		if v.Bool() {
			return "1"
		}
		return "0"
	case dbvalue.KindInt, dbvalue.KindUInt, dbvalue.KindFloat:
		return v.String()
	default:
		return quoteStringLiteral(v.String())
	}
}

// genericSchemaDiffToSQL sequences a SchemaDiff into statements using the
// ordering every dialect shares: drop orphaned FKs first (since they
// reference a table about to disappear), then drop tables, then create
// tables, then alter the rest, then sequences.
func genericSchemaDiffToSQL(p Platform, diff *schema.SchemaDiff) ([]string, error) {
	var sql []string

	for _, fk := range diff.OrphanedForeignKeys {
		sql = append(sql, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", quoteIfNeeded(p, fk.ForeignTableName), p.QuoteIdentifier(fk.Name)))
	}
	for _, t := range diff.DroppedTables {
		sql = append(sql, p.DropTableSQL(t.Name))
	}
	for _, t := range diff.CreatedTables {
		stmts, err := p.CreateTableSQL(t)
		if err != nil {
			return nil, err
		}
		sql = append(sql, stmts...)
	}
	for _, td := range diff.AlteredTables {
		stmts, err := p.TableDiffToSQL(td)
		if err != nil {
			return nil, err
		}
		sql = append(sql, stmts...)
	}

	return sql, nil
}
