// Package schema holds the portable schema model (identifiers, columns,
// indexes, foreign keys, sequences, tables, views, the schema itself) and
// the Comparator that diffs two Schema values into a SchemaDiff.
package schema

import (
	"hash/crc32"
	"strings"
)

// Identifier is a quoted-or-not, possibly namespaced name: a table, column,
// index or constraint name as it appears (or should appear) in SQL. A
// leading quote character (`, ", or [) marks it quoted; the namespace, if
// any, is everything before the first unquoted '.'.
type Identifier struct {
	name      string
	quoted    bool
	namespace string
}

// NewIdentifier builds an Identifier from raw text. If quote is true and the
// text isn't already quoted, it is wrapped in double quotes.
func NewIdentifier(name string, quote bool) Identifier {
	id := Identifier{}
	id.setName(name)
	if quote && !id.quoted {
		id.setName(`"` + id.name + `"`)
	}
	return id
}

func (id *Identifier) setName(raw string) {
	id.quoted = isQuotedFirstChar(raw)
	trimmed := trimQuotes(raw)

	if idx := strings.IndexByte(trimmed, '.'); idx >= 0 && !id.quoted {
		id.namespace = trimmed[:idx]
		trimmed = trimmed[idx+1:]
	}
	id.name = trimmed
}

func isQuotedFirstChar(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '`', '"', '[':
		return true
	default:
		return false
	}
}

func trimQuotes(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '`':
		return strings.Trim(s, "`")
	case '"':
		return strings.Trim(s, `"`)
	case '[':
		return strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	default:
		return s
	}
}

// Name returns the unquoted, unnamespaced identifier text.
func (id Identifier) Name() string { return id.name }

// IsQuoted reports whether this identifier was given explicit quoting.
func (id Identifier) IsQuoted() bool { return id.quoted }

// Namespace returns the portion before the first '.', if any.
func (id Identifier) Namespace() string { return id.namespace }

// IsInDefaultNamespace reports whether the identifier carries no namespace,
// or carries exactly the given default.
func (id Identifier) IsInDefaultNamespace(defaultNamespace string) bool {
	return id.namespace == "" || strings.EqualFold(id.namespace, defaultNamespace)
}

// QuotedName renders the identifier, quoting each dot-separated segment with
// quoteChar if the identifier was explicitly quoted or the segment is a
// reserved keyword for the given dialect.
func (id Identifier) QuotedName(quoteChar string, isReserved func(string) bool) string {
	segments := []string{id.name}
	if id.namespace != "" {
		segments = []string{id.namespace, id.name}
	}

	for i, seg := range segments {
		if id.quoted || (isReserved != nil && isReserved(seg)) {
			segments[i] = quoteChar + seg + quoteChar
		}
	}
	return strings.Join(segments, ".")
}

// String renders the fully-qualified, unquoted identifier (namespace.name).
func (id Identifier) String() string {
	if id.namespace != "" {
		return id.namespace + "." + id.name
	}
	return id.name
}

// GenerateIdentifierName derives a deterministic, length-bounded identifier
// (for an auto-named index or foreign key constraint) from a table name and
// a set of column names, the way an unnamed constraint gets a stable name:
// a short prefix, the table name, and a CRC32 checksum of the columns so
// distinct column sets on the same table never collide.
func GenerateIdentifierName(prefix string, tableName string, columnNames []string, maxLength int) string {
	h := crc32.ChecksumIEEE([]byte(strings.Join(columnNames, "_")))
	base := strings.ToUpper(strings.TrimPrefix(tableName, "."))
	name := prefix + "_" + base + "_" + strings.ToUpper(itoa36(uint64(h)))
	if maxLength > 0 && len(name) > maxLength {
		name = name[:maxLength]
	}
	return name
}

func itoa36(v uint64) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	if v == 0 {
		return "0"
	}
	var buf [16]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v%36]
		v /= 36
	}
	return string(buf[i:])
}
