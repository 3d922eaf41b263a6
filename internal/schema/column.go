package schema

import "github.com/alekitto/dbal/internal/dbvalue"

// Column is a plain data description of a table column. Every optional
// semantic attribute a platform might care about (length, precision/scale,
// default, collation, comment, ...) is present but zero-valued when unused;
// Comparator.DiffColumn is the single place that decides which of these
// actually matter for equality.
type Column struct {
	Name          string
	Type          string // a typeregistry type name
	NotNull       bool
	Unsigned      bool
	AutoIncrement bool
	Length        int
	Precision     int
	Scale         int
	Fixed         bool
	Default       *dbvalue.Value
	Collation     string
	Comment       string
	Charset       string
	VirtualAs     string
	StoredAs      string
}

func NewColumn(name, typ string) *Column {
	return &Column{Name: name, Type: typ}
}

// Index describes a unique, primary, or plain index over an ordered set of
// columns, optionally restricted by a partial-index WHERE clause.
type Index struct {
	Name      string
	Columns   []string
	IsUnique  bool
	IsPrimary bool
	Flags     []string // e.g. "fulltext", "spatial"
	Where     string    // partial index predicate, platform-permitting
}

func NewIndex(name string, columns []string, unique, primary bool) *Index {
	return &Index{Name: name, Columns: append([]string(nil), columns...), IsUnique: unique, IsPrimary: primary}
}

// spansSameColumns reports whether two indexes cover the same columns in the
// same order, case-insensitively.
func (i *Index) spansSameColumns(other *Index) bool {
	if len(i.Columns) != len(other.Columns) {
		return false
	}
	for k := range i.Columns {
		if !equalFoldName(i.Columns[k], other.Columns[k]) {
			return false
		}
	}
	return true
}

// IsFulfilledBy reports whether other can serve every purpose i serves:
// same columns in the same order, at least the same flags and
// where-predicate, and - ordinarily - the same uniqueness and primary-ness.
// The one relaxation: if i is a plain index (neither unique nor primary),
// any unique or primary index over the same columns fulfills it too, since a
// stronger constraint can always stand in for a weaker one. This relation is
// NOT symmetric: a more specific index fulfills a less specific request, but
// not the reverse; diffIndex relies on exactly that asymmetry.
func (i *Index) IsFulfilledBy(other *Index) bool {
	if !i.spansSameColumns(other) {
		return false
	}
	if i.Where != other.Where {
		return false
	}
	for _, f := range i.Flags {
		if !containsFold(other.Flags, f) {
			return false
		}
	}
	if !i.IsUnique && !i.IsPrimary {
		return true
	}
	return i.IsPrimary == other.IsPrimary && i.IsUnique == other.IsUnique
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if equalFoldName(h, needle) {
			return true
		}
	}
	return false
}

func equalFoldName(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
