package sqldriver

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alekitto/dbal/internal/dbvalue"
)

// sqlRows adapts *sql.Rows to dbvalue.Rows: a forward-only cursor, scanning
// every column as a driver-native any so the caller's type conversion
// (typeregistry) decides how to interpret each one rather than this
// adapter guessing.
type sqlRows struct {
	rows    *sql.Rows
	columns []string
	current *dbvalue.Row
	err     error
}

func newRows(rows *sql.Rows) (*sqlRows, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	return &sqlRows{rows: rows, columns: columns}, nil
}

func (r *sqlRows) Next() bool {
	if !r.rows.Next() {
		return false
	}

	raw := make([]any, len(r.columns))
	ptrs := make([]any, len(r.columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		r.err = err
		return false
	}

	values := make([]dbvalue.Value, len(raw))
	for i, v := range raw {
		values[i] = rawToValue(v)
	}
	r.current = dbvalue.NewRow(r.columns, values)
	return true
}

func rawToValue(v any) dbvalue.Value {
	switch t := v.(type) {
	case nil:
		return dbvalue.Null()
	case []byte:
		return dbvalue.NewBytes(t)
	case string:
		return dbvalue.NewString(t)
	case int64:
		return dbvalue.NewInt(t)
	case float64:
		return dbvalue.NewFloat(t)
	case bool:
		return dbvalue.NewBoolean(t)
	case time.Time:
		return dbvalue.NewDateTime(t)
	default:
		return dbvalue.NewString(fmt.Sprintf("%v", t))
	}
}

func (r *sqlRows) Scan() (*dbvalue.Row, error) {
	return r.current, nil
}

func (r *sqlRows) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.rows.Err()
}

func (r *sqlRows) Close() error {
	return r.rows.Close()
}
