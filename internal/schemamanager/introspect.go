package schemamanager

import (
	"context"
	"strconv"
	"strings"

	"github.com/alekitto/dbal/internal/platform"
	"github.com/alekitto/dbal/internal/schema"
	"github.com/alekitto/dbal/internal/typeregistry"
)

func (m *Manager) introspectColumns(ctx context.Context, tableName string) ([]*schema.Column, error) {
	rows, err := m.driver.Query(ctx, m.platform.ListTableColumnsSQL(tableName), nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []*schema.Column
	for rows.Next() {
		row, err := rows.Scan()
		if err != nil {
			return nil, err
		}

		name := firstString(row, "column_name", "name")
		nativeType := firstString(row, "data_type", "udt_name", "type")
		comment := firstString(row, "column_comment", "comment")

		logicalType := mapNativeType(nativeType)
		if tagged, ok := platform.ExtractCRType(comment); ok {
			if _, err := typeregistry.Lookup(tagged); err == nil {
				logicalType = tagged
			}
		}

		col := schema.NewColumn(name, logicalType)
		col.Comment = comment

		if m.platform.Name() == "sqlite" {
			notNull := firstString(row, "notnull")
			col.NotNull = notNull == "1"
			if pk := firstString(row, "pk"); pk != "" && pk != "0" {
				col.AutoIncrement = strings.EqualFold(nativeType, "INTEGER")
			}
		} else {
			col.NotNull = strings.EqualFold(firstString(row, "is_nullable"), "NO")
			col.AutoIncrement = strings.Contains(strings.ToLower(firstString(row, "extra", "column_default")), "auto_increment") ||
				strings.Contains(strings.ToLower(firstString(row, "column_default")), "nextval")
		}

		if lenStr := firstString(row, "character_maximum_length"); lenStr != "" {
			if l, err := strconv.Atoi(lenStr); err == nil {
				col.Length = l
			}
		}
		if precStr := firstString(row, "numeric_precision"); precStr != "" {
			if p, err := strconv.Atoi(precStr); err == nil {
				col.Precision = p
			}
		}
		if scaleStr := firstString(row, "numeric_scale"); scaleStr != "" {
			if s, err := strconv.Atoi(scaleStr); err == nil {
				col.Scale = s
			}
		}
		col.Collation = firstString(row, "collation_name")

		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// mapNativeType maps a driver-reported native type name to this module's
// logical type name. It is intentionally small: platforms that need exact
// round-tripping for a type with no unambiguous native shape rely on the
// "(CRType:NAME)" comment tag instead, checked by the caller before this
// function's guess is used.
func mapNativeType(native string) string {
	n := strings.ToUpper(native)
	switch {
	case strings.Contains(n, "BIGINT"):
		return typeregistry.BIGINT
	case strings.Contains(n, "SMALLINT"):
		return typeregistry.SMALLINT
	case strings.Contains(n, "INT"):
		return typeregistry.INTEGER
	case strings.Contains(n, "NUMERIC"), strings.Contains(n, "DECIMAL"):
		return typeregistry.DECIMAL
	case strings.Contains(n, "DOUBLE"), strings.Contains(n, "FLOAT"), strings.Contains(n, "REAL"):
		return typeregistry.FLOAT
	case strings.Contains(n, "BOOL"):
		return typeregistry.BOOLEAN
	case strings.Contains(n, "UUID"):
		return typeregistry.GUID
	case strings.Contains(n, "JSON"):
		return typeregistry.JSON
	case strings.Contains(n, "TIMESTAMP"), strings.Contains(n, "DATETIME"):
		return typeregistry.DATETIME
	case strings.Contains(n, "DATE"):
		return typeregistry.DATE
	case strings.Contains(n, "TIME"):
		return typeregistry.TIME
	case strings.Contains(n, "BLOB"), strings.Contains(n, "BYTEA"), strings.Contains(n, "BINARY"):
		return typeregistry.BLOB
	case strings.Contains(n, "TEXT"):
		return typeregistry.TEXT
	default:
		return typeregistry.STRING
	}
}

func (m *Manager) introspectIndexes(ctx context.Context, tableName string) ([]*schema.Index, []string, error) {
	rows, err := m.driver.Query(ctx, m.platform.ListTableIndexesSQL(tableName), nil)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	byName := map[string]*schema.Index{}
	var order []string
	var primaryCols []string

	for rows.Next() {
		row, err := rows.Scan()
		if err != nil {
			return nil, nil, err
		}

		name := firstString(row, "index_name", "name")
		if name == "" {
			continue
		}
		col := firstString(row, "column_name")
		unique := firstBool(row, "non_unique") == false && m.platform.Name() != "sqlite" || firstBool(row, "indisunique") || firstBool(row, "unique")

		idx, ok := byName[lowerASCII(name)]
		if !ok {
			idx = &schema.Index{Name: name, IsUnique: unique, IsPrimary: name == "PRIMARY" || firstBool(row, "indisprimary")}
			byName[lowerASCII(name)] = idx
			order = append(order, name)
		}
		if col != "" {
			idx.Columns = append(idx.Columns, col)
		}
		if idx.IsPrimary {
			primaryCols = append(primaryCols, col)
		}
	}

	var result []*schema.Index
	for _, n := range order {
		idx := byName[lowerASCII(n)]
		if idx.IsPrimary {
			continue
		}
		result = append(result, idx)
	}

	return result, primaryCols, rows.Err()
}

func (m *Manager) introspectForeignKeys(ctx context.Context, tableName string) ([]*schema.ForeignKeyConstraint, error) {
	rows, err := m.driver.Query(ctx, m.platform.ListTableForeignKeysSQL(tableName), nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byName := map[string]*schema.ForeignKeyConstraint{}
	var order []string

	for rows.Next() {
		row, err := rows.Scan()
		if err != nil {
			return nil, err
		}

		name := firstString(row, "constraint_name")
		localCol := firstString(row, "column_name", "from")
		foreignTable := firstString(row, "foreign_table_name", "referenced_table_name", "table")
		foreignCol := firstString(row, "foreign_column_name", "referenced_column_name", "to")
		if name == "" {
			name = schema.GenerateIdentifierName("fk", tableName, []string{localCol}, 64)
		}

		fk, ok := byName[lowerASCII(name)]
		if !ok {
			fk = &schema.ForeignKeyConstraint{Name: name, ForeignTableName: foreignTable}
			byName[lowerASCII(name)] = fk
			order = append(order, name)
		}
		if localCol != "" {
			fk.LocalColumns = append(fk.LocalColumns, localCol)
		}
		if foreignCol != "" {
			fk.ForeignColumns = append(fk.ForeignColumns, foreignCol)
		}
	}

	var result []*schema.ForeignKeyConstraint
	for _, n := range order {
		result = append(result, byName[lowerASCII(n)])
	}
	return result, rows.Err()
}
