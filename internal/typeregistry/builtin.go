package typeregistry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/dbvalue"
)

// Exported logical type name constants, the strings a Column's Type field
// carries and that DeclarationOptions/Lookup key off of.
const (
	SMALLINT  = "SMALLINT"
	INTEGER   = "INTEGER"
	BIGINT    = "BIGINT"
	DECIMAL   = "DECIMAL"
	FLOAT     = "FLOAT"
	BOOLEAN   = "BOOLEAN"
	STRING    = "STRING"
	TEXT      = "TEXT"
	BINARY    = "BINARY"
	BLOB      = "BLOB"
	GUID      = "GUID"
	JSON      = "JSON"
	DATE      = "DATE"
	DATETIME  = "DATETIME"
	DATETIMETZ = "DATETIME_TZ"
	TIME      = "TIME"
	ARRAY     = "ARRAY"
)

// funcType implements Type via three plain functions rather than a distinct
// struct per logical type: a trait-object hierarchy collapses to one
// concrete type with a small per-kind strategy, dispatched through this one
// vtable.
type funcType struct {
	name    string
	declSQL func(d Dialect, opts DeclarationOptions) string
	toValue func(raw any, d Dialect) (dbvalue.Value, error)
	toDB    func(v dbvalue.Value, d Dialect) (any, error)
}

func (t *funcType) Name() string { return t.name }

func (t *funcType) DeclarationSQL(d Dialect, opts DeclarationOptions) string {
	return t.declSQL(d, opts)
}

func (t *funcType) ConvertToValue(raw any, d Dialect) (dbvalue.Value, error) {
	if raw == nil {
		return dbvalue.Null(), nil
	}
	return t.toValue(raw, d)
}

func (t *funcType) ConvertToDatabaseValue(v dbvalue.Value, d Dialect) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	return t.toDB(v, d)
}

func asInt64(raw any) (int64, error) {
	switch n := raw.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	case float64:
		return int64(n), nil
	default:
		return 0, dbalerr.NewConversionFailed(raw, "integer")
	}
}

func asFloat64(raw any) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case []byte:
		return strconv.ParseFloat(string(n), 64)
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, dbalerr.NewConversionFailed(raw, "float")
	}
}

// postgreSQLTrueLiterals and postgreSQLFalseLiterals are the literal wire
// shapes PostgreSQL itself accepts for its boolean type, case-insensitively.
var (
	postgreSQLTrueLiterals  = map[string]bool{"t": true, "true": true, "y": true, "yes": true, "on": true, "1": true}
	postgreSQLFalseLiterals = map[string]bool{"f": true, "false": true, "n": true, "no": true, "off": true, "0": true}
)

// convertFromPostgreSQLBoolean rejects any literal outside PostgreSQL's own
// recognized boolean shapes instead of silently coercing it, unlike the
// permissive truthiness coercion used by every other dialect.
func convertFromPostgreSQLBoolean(raw any) (dbvalue.Value, error) {
	switch r := raw.(type) {
	case bool:
		return dbvalue.NewBoolean(r), nil
	case int64:
		return dbvalue.NewBoolean(r != 0), nil
	case int:
		return dbvalue.NewBoolean(r != 0), nil
	}

	s, err := asString(raw)
	if err != nil {
		return dbvalue.Value{}, err
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	if postgreSQLTrueLiterals[lower] {
		return dbvalue.NewBoolean(true), nil
	}
	if postgreSQLFalseLiterals[lower] {
		return dbvalue.NewBoolean(false), nil
	}
	return dbvalue.Value{}, dbalerr.NewConversionFailed(raw, BOOLEAN)
}

func asString(raw any) (string, error) {
	switch s := raw.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return fmt.Sprintf("%v", raw), nil
	}
}

func builtinTypes() []Type {
	return []Type{
		integerFamily(SMALLINT, "SMALLINT"),
		integerFamily(INTEGER, "INT"),
		integerFamily(BIGINT, "BIGINT"),
		&funcType{
			name: DECIMAL,
			declSQL: func(d Dialect, o DeclarationOptions) string {
				p, s := o.Precision, o.Scale
				if p == 0 {
					p = 10
				}
				return fmt.Sprintf("NUMERIC(%d, %d)", p, s)
			},
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
				s, err := asString(raw)
				if err != nil {
					return dbvalue.Value{}, err
				}
				return dbvalue.NewString(s), nil
			},
			toDB: func(v dbvalue.Value, d Dialect) (any, error) { return v.String(), nil },
		},
		&funcType{
			name:    FLOAT,
			declSQL: func(d Dialect, o DeclarationOptions) string { return "DOUBLE PRECISION" },
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
				f, err := asFloat64(raw)
				if err != nil {
					return dbvalue.Value{}, err
				}
				return dbvalue.NewFloat(f), nil
			},
			toDB: func(v dbvalue.Value, d Dialect) (any, error) { return v.Float() },
		},
		&funcType{
			name:    BOOLEAN,
			declSQL: func(d Dialect, o DeclarationOptions) string { return "BOOLEAN" },
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
				if d.Name() == "postgresql" {
					return convertFromPostgreSQLBoolean(raw)
				}
				return dbvalue.NewBoolean(dbvalue.NewString(fmt.Sprintf("%v", raw)).Bool()), nil
			},
			toDB: func(v dbvalue.Value, d Dialect) (any, error) { return v.Bool(), nil },
		},
		stringFamily(STRING, false),
		stringFamily(TEXT, true),
		&funcType{
			name: BINARY,
			declSQL: func(d Dialect, o DeclarationOptions) string {
				l := o.Length
				if l == 0 {
					l = 255
				}
				if o.Fixed {
					return fmt.Sprintf("BINARY(%d)", l)
				}
				return fmt.Sprintf("VARBINARY(%d)", l)
			},
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
				b, ok := raw.([]byte)
				if !ok {
					s, err := asString(raw)
					if err != nil {
						return dbvalue.Value{}, err
					}
					b = []byte(s)
				}
				return dbvalue.NewBytes(b), nil
			},
			toDB: func(v dbvalue.Value, d Dialect) (any, error) { return v.Bytes() },
		},
		&funcType{
			name:    BLOB,
			declSQL: func(d Dialect, o DeclarationOptions) string { return "BLOB" },
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
				b, ok := raw.([]byte)
				if !ok {
					s, err := asString(raw)
					if err != nil {
						return dbvalue.Value{}, err
					}
					b = []byte(s)
				}
				return dbvalue.NewBytes(b), nil
			},
			toDB: func(v dbvalue.Value, d Dialect) (any, error) { return v.Bytes() },
		},
		&funcType{
			name: GUID,
			declSQL: func(d Dialect, o DeclarationOptions) string {
				if d.HasNativeGUID() {
					return "UUID"
				}
				return "CHAR(36)"
			},
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
				s, err := asString(raw)
				if err != nil {
					return dbvalue.Value{}, err
				}
				u, err := uuid.Parse(strings.TrimSpace(s))
				if err != nil {
					return dbvalue.Value{}, dbalerr.NewConversionFailed(raw, GUID)
				}
				return dbvalue.NewUUID(u), nil
			},
			toDB: func(v dbvalue.Value, d Dialect) (any, error) {
				u, err := v.UUID()
				if err != nil {
					return nil, err
				}
				return u.String(), nil
			},
		},
		&funcType{
			name: JSON,
			declSQL: func(d Dialect, o DeclarationOptions) string {
				if d.HasNativeJSON() {
					return "JSON"
				}
				return "TEXT"
			},
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
				s, err := asString(raw)
				if err != nil {
					return dbvalue.Value{}, err
				}
				return dbvalue.NewJSON(s), nil
			},
			toDB: func(v dbvalue.Value, d Dialect) (any, error) { return v.String(), nil },
		},
		&funcType{
			name:    DATE,
			declSQL: func(d Dialect, o DeclarationOptions) string { return "DATE" },
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) { return timeValue(raw, "2006-01-02") },
			toDB:    func(v dbvalue.Value, d Dialect) (any, error) { return formatTime(v, "2006-01-02") },
		},
		&funcType{
			name:    DATETIME,
			declSQL: func(d Dialect, o DeclarationOptions) string { return "TIMESTAMP" },
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) { return timeValue(raw, "2006-01-02 15:04:05") },
			toDB:    func(v dbvalue.Value, d Dialect) (any, error) { return formatTime(v, "2006-01-02 15:04:05") },
		},
		&funcType{
			name:    DATETIMETZ,
			declSQL: func(d Dialect, o DeclarationOptions) string { return "TIMESTAMP WITH TIME ZONE" },
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) { return timeValue(raw, time.RFC3339) },
			toDB:    func(v dbvalue.Value, d Dialect) (any, error) { return formatTime(v, time.RFC3339) },
		},
		&funcType{
			name:    TIME,
			declSQL: func(d Dialect, o DeclarationOptions) string { return "TIME" },
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) { return timeValue(raw, "15:04:05") },
			toDB:    func(v dbvalue.Value, d Dialect) (any, error) { return formatTime(v, "15:04:05") },
		},
		&funcType{
			name: ARRAY,
			declSQL: func(d Dialect, o DeclarationOptions) string { return "TEXT" },
			toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
				s, err := asString(raw)
				if err != nil {
					return dbvalue.Value{}, err
				}
				parts := strings.Split(s, "|")
				items := make([]dbvalue.Value, 0, len(parts))
				for _, p := range parts {
					if p == "" {
						continue
					}
					items = append(items, dbvalue.NewString(p))
				}
				return dbvalue.NewArray(items), nil
			},
			toDB: func(v dbvalue.Value, d Dialect) (any, error) {
				items, err := v.Array()
				if err != nil {
					return nil, err
				}
				parts := make([]string, len(items))
				for i, it := range items {
					parts[i] = it.String()
				}
				return strings.Join(parts, "|"), nil
			},
		},
	}
}

func integerFamily(name, nativeName string) Type {
	return &funcType{
		name: name,
		declSQL: func(d Dialect, o DeclarationOptions) string {
			if o.AutoIncrement && d.Name() == "postgresql" {
				switch name {
				case SMALLINT:
					return "SMALLSERIAL"
				case BIGINT:
					return "BIGSERIAL"
				default:
					return "SERIAL"
				}
			}
			native := nativeName
			if name == INTEGER && d.Name() == "sqlite" {
				native = "INTEGER"
			}
			if o.Unsigned {
				return native + " UNSIGNED"
			}
			return native
		},
		toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
			n, err := asInt64(raw)
			if err != nil {
				return dbvalue.Value{}, err
			}
			return dbvalue.NewInt(n), nil
		},
		toDB: func(v dbvalue.Value, d Dialect) (any, error) { return v.Int() },
	}
}

func stringFamily(name string, isText bool) Type {
	return &funcType{
		name: name,
		declSQL: func(d Dialect, o DeclarationOptions) string {
			if isText {
				return "TEXT"
			}
			l := o.Length
			if l == 0 {
				l = 255
			}
			if o.Fixed {
				return fmt.Sprintf("CHAR(%d)", l)
			}
			return fmt.Sprintf("VARCHAR(%d)", l)
		},
		toValue: func(raw any, d Dialect) (dbvalue.Value, error) {
			s, err := asString(raw)
			if err != nil {
				return dbvalue.Value{}, err
			}
			return dbvalue.NewString(s), nil
		},
		toDB: func(v dbvalue.Value, d Dialect) (any, error) { return v.String(), nil },
	}
}

func timeValue(raw any, layout string) (dbvalue.Value, error) {
	switch t := raw.(type) {
	case time.Time:
		return dbvalue.NewDateTime(t), nil
	default:
		s, err := asString(raw)
		if err != nil {
			return dbvalue.Value{}, err
		}
		parsed, err := time.Parse(layout, s)
		if err != nil {
			return dbvalue.Value{}, dbalerr.NewConversionFailed(raw, layout)
		}
		return dbvalue.NewDateTime(parsed), nil
	}
}

func formatTime(v dbvalue.Value, layout string) (any, error) {
	t, err := v.DateTime()
	if err != nil {
		return nil, err
	}
	return t.Format(layout), nil
}
