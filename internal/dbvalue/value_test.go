package dbvalue

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekitto/dbal/internal/dbalerr"
)

func TestNullIsZeroValue(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.Equal(t, Null(), v)
}

func TestIntAcceptsUIntTooNarrowly(t *testing.T) {
	v := NewUInt(7)
	n, err := v.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestIntRejectsString(t *testing.T) {
	_, err := NewString("7").Int()
	require.Error(t, err)
	var derr *dbalerr.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dbalerr.TypeMismatch, derr.Kind)
}

func TestFloatWidensFromIntAndUInt(t *testing.T) {
	f, err := NewInt(3).Float()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	f, err = NewUInt(4).Float()
	require.NoError(t, err)
	assert.Equal(t, 4.0, f)
}

func TestBytesAcceptsStringAndJSON(t *testing.T) {
	b, err := NewString("hi").Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), b)

	b, err = NewJSON(`{"a":1}`).Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), b)
}

func TestDateTimeRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	v := NewDateTime(now)
	got, err := v.DateTime()
	require.NoError(t, err)
	assert.True(t, now.Equal(got))
}

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	v := NewUUID(id)
	got, err := v.UUID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestArrayRoundTrip(t *testing.T) {
	v := NewArray([]Value{NewInt(1), NewInt(2)})
	items, err := v.Array()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestBoolCoercion(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), false},
		{"zero int", NewInt(0), false},
		{"nonzero int", NewInt(1), true},
		{"zero float", NewFloat(0), false},
		{"empty string", NewString(""), false},
		{"string zero", NewString("0"), false},
		{"string false", NewString("false"), false},
		{"string False", NewString("False"), false},
		{"string no", NewString("no"), false},
		{"string yes", NewString("yes"), true},
		{"string t", NewString("t"), true},
		{"bytes empty", NewBytes(nil), false},
		{"bytes zero byte", NewBytes([]byte{'0'}), false},
		{"bytes other", NewBytes([]byte("x")), true},
		{"array empty", NewArray(nil), false},
		{"array nonempty", NewArray([]Value{NewInt(1)}), true},
		{"uuid", NewUUID(uuid.New()), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.Bool())
		})
	}
}

func TestEqualAcrossKinds(t *testing.T) {
	assert.True(t, NewInt(1).Equal(NewInt(1)))
	assert.False(t, NewInt(1).Equal(NewUInt(1)), "different kinds never compare equal, even with equivalent numeric value")

	a := NewArray([]Value{NewInt(1), NewString("x")})
	b := NewArray([]Value{NewInt(1), NewString("x")})
	c := NewArray([]Value{NewInt(1), NewString("y")})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.In(time.FixedZone("x", 3600)).Add(0)
	assert.True(t, NewDateTime(t1).Equal(NewDateTime(t2)), "DateTime equality uses time.Time.Equal, not wall-clock identity")
}

func TestStringFormatsNullIntBooleanAndString(t *testing.T) {
	assert.Equal(t, "", Null().String())
	assert.Equal(t, "42", NewInt(42).String())
	assert.Equal(t, "true", NewBoolean(true).String())
	assert.Equal(t, "false", NewBoolean(false).String())
	assert.Equal(t, "hi", NewString("hi").String())
}
