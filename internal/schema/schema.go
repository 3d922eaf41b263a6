package schema

// Schema owns every table, view and sequence introspected from, or meant to
// be applied to, one database/connection, plus the set of namespace
// ("schema" in the PostgreSQL sense) names known to exist.
type Schema struct {
	Tables        []*Table
	Views         []*View
	Sequences     []*Sequence
	NamespaceNames []string
}

func NewSchema() *Schema {
	return &Schema{}
}

func (s *Schema) AddTable(t *Table) *Schema {
	s.Tables = append(s.Tables, t)
	return s
}

func (s *Schema) Table(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if equalFoldName(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

func (s *Schema) HasTable(name string) bool {
	_, ok := s.Table(name)
	return ok
}

func (s *Schema) AddSequence(seq *Sequence) *Schema {
	s.Sequences = append(s.Sequences, seq)
	return s
}

func (s *Schema) AddView(v *View) *Schema {
	s.Views = append(s.Views, v)
	return s
}

// Clone deep-copies enough of the schema for the migration executor to
// treat pre_up/pre_down mutations as operating on an independent value: the
// slices are copied, but the Column/Index/ForeignKeyConstraint element
// pointers are shared, since those are DiffColumn- and FK.Equal-compared by
// value and never mutated in place after being attached to a Table.
func (s *Schema) Clone() *Schema {
	clone := &Schema{
		NamespaceNames: append([]string(nil), s.NamespaceNames...),
	}
	for _, t := range s.Tables {
		nt := &Table{
			Name:              t.Name,
			Columns:           append([]*Column(nil), t.Columns...),
			Indexes:           append([]*Index(nil), t.Indexes...),
			ForeignKeys:       append([]*ForeignKeyConstraint(nil), t.ForeignKeys...),
			UniqueConstraints: append([]*UniqueConstraint(nil), t.UniqueConstraints...),
			CheckConstraints:  append([]*CheckConstraint(nil), t.CheckConstraints...),
			PrimaryKeyColumns: append([]string(nil), t.PrimaryKeyColumns...),
			Comment:           t.Comment,
			Options:           cloneStringMap(t.Options),
		}
		clone.Tables = append(clone.Tables, nt)
	}
	for _, v := range s.Views {
		vv := *v
		clone.Views = append(clone.Views, &vv)
	}
	for _, seq := range s.Sequences {
		sv := *seq
		clone.Sequences = append(clone.Sequences, &sv)
	}
	return clone
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
