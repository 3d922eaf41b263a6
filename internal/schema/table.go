package schema

// Table owns its columns, indexes, foreign keys, unique constraints and
// check constraints. Column order is preserved in Columns; lookups by name
// are case-insensitive, matching how every supported dialect treats
// unquoted identifiers.
type Table struct {
	Name             string
	Columns          []*Column
	Indexes          []*Index
	ForeignKeys      []*ForeignKeyConstraint
	UniqueConstraints []*UniqueConstraint
	CheckConstraints []*CheckConstraint
	PrimaryKeyColumns []string
	Comment          string
	Options          map[string]string // engine-specific table options: "engine", "charset", "collation"
}

func NewTable(name string) *Table {
	return &Table{Name: name, Options: map[string]string{}}
}

func (t *Table) AddColumn(c *Column) *Table {
	t.Columns = append(t.Columns, c)
	return t
}

func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if equalFoldName(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

func (t *Table) AddIndex(i *Index) *Table {
	t.Indexes = append(t.Indexes, i)
	return t
}

func (t *Table) Index(name string) (*Index, bool) {
	for _, i := range t.Indexes {
		if equalFoldName(i.Name, name) {
			return i, true
		}
	}
	return nil, false
}

func (t *Table) AddForeignKey(fk *ForeignKeyConstraint) *Table {
	t.ForeignKeys = append(t.ForeignKeys, fk)
	return t
}

func (t *Table) SetPrimaryKey(columns []string) *Table {
	t.PrimaryKeyColumns = append([]string(nil), columns...)
	t.AddIndex(&Index{Name: "PRIMARY", Columns: columns, IsUnique: true, IsPrimary: true})
	return t
}

// ForeignKeysReferencing returns every FK in t that targets tableName.
func (t *Table) ForeignKeysReferencing(tableName string) []*ForeignKeyConstraint {
	var out []*ForeignKeyConstraint
	for _, fk := range t.ForeignKeys {
		if equalFoldName(fk.ForeignTableName, tableName) {
			out = append(out, fk)
		}
	}
	return out
}
