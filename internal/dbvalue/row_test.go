package dbvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekitto/dbal/internal/dbalerr"
)

func TestRowGetByNameAndIndex(t *testing.T) {
	row := NewRow([]string{"id", "name"}, []Value{NewInt(1), NewString("widget")})

	v, err := row.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "widget", v.String())

	v, err = row.At(0)
	require.NoError(t, err)
	n, _ := v.Int()
	assert.Equal(t, int64(1), n)

	assert.Equal(t, []string{"id", "name"}, row.Columns())
}

func TestRowGetUnknownColumn(t *testing.T) {
	row := NewRow([]string{"id"}, []Value{NewInt(1)})
	_, err := row.Get("missing")
	require.Error(t, err)
	var derr *dbalerr.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dbalerr.ColumnDoesNotExist, derr.Kind)
}

func TestRowAtOutOfBounds(t *testing.T) {
	row := NewRow([]string{"id"}, []Value{NewInt(1)})
	_, err := row.At(5)
	require.Error(t, err)
	var derr *dbalerr.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dbalerr.OutOfBounds, derr.Kind)
}

func TestNewParameterKinds(t *testing.T) {
	p := NewParameter(NewInt(1))
	assert.Equal(t, ParameterKindPositional, p.Kind)

	np := NewNamedParameter("id", NewInt(1))
	assert.Equal(t, ParameterKindNamed, np.Kind)
	assert.Equal(t, "id", np.Name)
}
