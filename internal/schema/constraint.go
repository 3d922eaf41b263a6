package schema

// ForeignKeyConstraint ties a set of local columns to a set of columns on a
// (possibly not-yet-loaded) foreign table. The foreign table is stored by
// NAME only, never as a pointer to a Table: schema graphs are acyclic here,
// and a FK resolves its target on demand by looking it up in Schema.Tables,
// which sidesteps the cyclic table<->FK ownership the original model had.
type ForeignKeyConstraint struct {
	Name             string
	LocalColumns     []string
	ForeignTableName string
	ForeignColumns   []string
	OnUpdate         string // "", "CASCADE", "SET NULL", "RESTRICT", "NO ACTION"
	OnDelete         string
}

// Equal compares two foreign keys case-insensitively on every field that
// defines behavior (referenced table/columns, local columns, and the two
// referential actions); the constraint name itself is not part of identity,
// since an unnamed constraint gets an autogenerated name.
func (fk *ForeignKeyConstraint) Equal(other *ForeignKeyConstraint) bool {
	if !equalFoldNameSlice(fk.LocalColumns, other.LocalColumns) {
		return false
	}
	if !equalFoldName(fk.ForeignTableName, other.ForeignTableName) {
		return false
	}
	if !equalFoldNameSlice(fk.ForeignColumns, other.ForeignColumns) {
		return false
	}
	if !equalFoldAction(fk.OnUpdate, other.OnUpdate) {
		return false
	}
	return equalFoldAction(fk.OnDelete, other.OnDelete)
}

func equalFoldAction(a, b string) bool {
	if a == "" {
		a = "RESTRICT"
	}
	if b == "" {
		b = "RESTRICT"
	}
	return equalFoldName(a, b)
}

func equalFoldNameSlice(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalFoldName(a[i], b[i]) {
			return false
		}
	}
	return true
}

// UniqueConstraint is a named uniqueness rule over a column set that is not
// necessarily backed by an index of its own (some platforms implement it as
// one; the model keeps it distinct from Index so schema introspection can
// report what the database actually told us).
type UniqueConstraint struct {
	Name    string
	Columns []string
}

// CheckConstraint is a named boolean SQL expression a row must satisfy.
type CheckConstraint struct {
	Name       string
	Expression string
}

// Sequence is a standalone auto-incrementing counter some platforms expose
// as its own database object (PostgreSQL's serial/identity backing
// sequences, for instance).
type Sequence struct {
	Name         string
	StartingValue int64
	Allocation   int64
}

// IsAutoIncrementSequenceFor reports whether this sequence is the implicit
// backing sequence PostgreSQL/SQLite-style AUTO_INCREMENT columns get, named
// "<table>_<column>_seq". Comparator.diffSequences never reports such a
// sequence as created or dropped when it backs an autoincrement column in
// the schema it appears in, nor as altered when it does so in both schemas,
// since it is the column's AutoIncrement flag, not the sequence object
// itself, that is diffed in that case.
func (s *Sequence) IsAutoIncrementSequenceFor(table *Table) bool {
	if table == nil {
		return false
	}
	for _, col := range table.Columns {
		if col.AutoIncrement && equalFoldName(s.Name, table.Name+"_"+col.Name+"_seq") {
			return true
		}
	}
	return false
}

// View is a named, read-only query saved in the schema. The core model does
// not attempt to parse or diff the SQL body beyond exact-text comparison.
type View struct {
	Name string
	SQL  string
}
