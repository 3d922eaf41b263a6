package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIdentifierParsesNamespaceWhenUnquoted(t *testing.T) {
	id := NewIdentifier("public.widgets", false)
	assert.Equal(t, "widgets", id.Name())
	assert.Equal(t, "public", id.Namespace())
	assert.False(t, id.IsQuoted())
}

func TestNewIdentifierQuotedNameIsNotSplitOnDot(t *testing.T) {
	id := NewIdentifier(`"weird.name"`, false)
	assert.Equal(t, "weird.name", id.Name())
	assert.Equal(t, "", id.Namespace())
	assert.True(t, id.IsQuoted())
}

func TestNewIdentifierForcesQuoting(t *testing.T) {
	id := NewIdentifier("widgets", true)
	assert.True(t, id.IsQuoted())
	assert.Equal(t, "widgets", id.Name())
}

func TestIsInDefaultNamespace(t *testing.T) {
	id := NewIdentifier("widgets", false)
	assert.True(t, id.IsInDefaultNamespace("public"))

	id = NewIdentifier("public.widgets", false)
	assert.True(t, id.IsInDefaultNamespace("public"))
	assert.False(t, id.IsInDefaultNamespace("other"))
}

func TestQuotedNameQuotesReservedKeywords(t *testing.T) {
	id := NewIdentifier("order", false)
	isReserved := func(s string) bool { return strings.EqualFold(s, "order") }
	assert.Equal(t, `"order"`, id.QuotedName(`"`, isReserved))

	id2 := NewIdentifier("widgets", false)
	assert.Equal(t, "widgets", id2.QuotedName(`"`, isReserved))
}

func TestStringRendersNamespaceQualified(t *testing.T) {
	id := NewIdentifier("public.widgets", false)
	assert.Equal(t, "public.widgets", id.String())
}

func TestGenerateIdentifierNameIsDeterministicAndDistinguishesColumnSets(t *testing.T) {
	a := GenerateIdentifierName("idx", "widgets", []string{"a", "b"}, 0)
	b := GenerateIdentifierName("idx", "widgets", []string{"a", "b"}, 0)
	assert.Equal(t, a, b)

	c := GenerateIdentifierName("idx", "widgets", []string{"a", "c"}, 0)
	assert.NotEqual(t, a, c, "distinct column sets must not collide")
}

func TestGenerateIdentifierNameRespectsMaxLength(t *testing.T) {
	name := GenerateIdentifierName("idx", "widgets", []string{"a", "b"}, 12)
	assert.LessOrEqual(t, len(name), 12)
}
