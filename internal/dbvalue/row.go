package dbvalue

import "github.com/alekitto/dbal/internal/dbalerr"

// Row is one result row: an ordered list of column names paired with their
// decoded Values. Lookups by name are case-sensitive and match the column
// name as the driver reported it.
type Row struct {
	columns []string
	values  []Value
	index   map[string]int
}

func NewRow(columns []string, values []Value) *Row {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Row{columns: columns, values: values, index: index}
}

func (r *Row) Columns() []string { return r.columns }

func (r *Row) At(i int) (Value, error) {
	if i < 0 || i >= len(r.values) {
		return Value{}, dbalerr.New(dbalerr.OutOfBounds, "row index out of bounds")
	}
	return r.values[i], nil
}

func (r *Row) Get(column string) (Value, error) {
	i, ok := r.index[column]
	if !ok {
		return Value{}, dbalerr.ColumnDoesNotExistf(column, "")
	}
	return r.values[i], nil
}

// Rows is a forward-only, non-restartable cursor over a result set, mirroring
// the shape database/sql.Rows exposes: Next advances one row at a time,
// Scan decodes the current row, and the cursor cannot be rewound.
type Rows interface {
	Next() bool
	Scan() (*Row, error)
	Err() error
	Close() error
}
