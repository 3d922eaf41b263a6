package platform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/schema"
	"github.com/alekitto/dbal/internal/typeregistry"
)

// crTypeTagPattern matches the "(CRType:NAME)" tag a platform appends to a
// native column comment so a logical type that has no first-class native
// representation (enum, array, guid on a dialect without one, ...) round-
// trips through introspection instead of coming back as a generic string.
var crTypeTagPattern = regexp.MustCompile(`\(CRType:(\w+)\)`)

func crTypeTag(typeName string) string {
	return fmt.Sprintf("(CRType:%s)", typeName)
}

// ExtractCRType pulls the logical type name back out of a native comment,
// if present.
func ExtractCRType(comment string) (string, bool) {
	m := crTypeTagPattern.FindStringSubmatch(comment)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// commentWithTypeTag appends a (CRType:NAME) tag to comment when typeName is
// not one the dialect can represent natively without help, i.e. when it
// would otherwise be indistinguishable from a plain string/int column on
// introspection.
func commentWithTypeTag(comment, typeName string, needsTag bool) string {
	if !needsTag {
		return comment
	}
	tag := crTypeTag(typeName)
	if comment == "" {
		return tag
	}
	return comment + " " + tag
}

func declarationSQL(p typeregistry.Dialect, col *schema.Column) (string, error) {
	t, err := typeregistry.Lookup(col.Type)
	if err != nil {
		return "", err
	}
	opts := typeregistry.DeclarationOptions{
		Length:        col.Length,
		Precision:     col.Precision,
		Scale:         col.Scale,
		Fixed:         col.Fixed,
		Unsigned:      col.Unsigned,
		NotNull:       col.NotNull,
		Default:       col.Default,
		AutoIncrement: col.AutoIncrement,
	}
	return t.DeclarationSQL(p, opts), nil
}

// needsTypeTag reports whether typeName has no unambiguous native
// representation on the given platform and so needs the comment tag to
// round-trip.
func needsTypeTag(p Platform, typeName string) bool {
	switch typeName {
	case typeregistry.GUID:
		return !p.Capabilities().NativeGUID
	case typeregistry.JSON:
		return !p.Capabilities().NativeJSON
	case typeregistry.ARRAY:
		return true
	default:
		return false
	}
}

func quoteIfNeeded(p Platform, name string) string {
	id := schema.NewIdentifier(name, false)
	return id.QuotedName(quoteCharFor(p), p.IsReservedKeyword)
}

func quoteCharFor(p Platform) string {
	if p.Name() == "mysql" || p.Name() == "mariadb" {
		return "`"
	}
	return `"`
}

func joinColumns(p Platform, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIfNeeded(p, c)
	}
	return strings.Join(quoted, ", ")
}

func errNoColumns(tableName string) error {
	return dbalerr.New(dbalerr.NoColumnsSpecifiedForTable, fmt.Sprintf("table %q has no columns", tableName))
}
