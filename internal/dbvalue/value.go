// Package dbvalue holds the portable value model every driver adapter and
// platform converts to and from: a closed tagged union of the value shapes
// SQL engines actually exchange, plus the row/cursor and parameter types
// built on top of it.
package dbvalue

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alekitto/dbal/internal/dbalerr"
)

type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindUInt
	KindFloat
	KindBoolean
	KindString
	KindBytes
	KindDateTime
	KindJSON
	KindUUID
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindUInt:
		return "UInt"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindDateTime:
		return "DateTime"
	case KindJSON:
		return "Json"
	case KindUUID:
		return "Uuid"
	case KindArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// Value is a closed tagged union over the shapes a SQL value can take. The
// zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	b    bool
	s    string
	by   []byte
	t    time.Time
	uuid uuid.UUID
	arr  []Value
}

func Null() Value                      { return Value{kind: KindNull} }
func NewInt(v int64) Value             { return Value{kind: KindInt, i: v} }
func NewUInt(v uint64) Value           { return Value{kind: KindUInt, u: v} }
func NewFloat(v float64) Value         { return Value{kind: KindFloat, f: v} }
func NewBoolean(v bool) Value          { return Value{kind: KindBoolean, b: v} }
func NewString(v string) Value         { return Value{kind: KindString, s: v} }
func NewBytes(v []byte) Value          { return Value{kind: KindBytes, by: v} }
func NewDateTime(v time.Time) Value    { return Value{kind: KindDateTime, t: v} }
func NewJSON(v string) Value           { return Value{kind: KindJSON, s: v} }
func NewUUID(v uuid.UUID) Value        { return Value{kind: KindUUID, uuid: v} }
func NewArray(items []Value) Value     { return Value{kind: KindArray, arr: items} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Int() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindUInt:
		return int64(v.u), nil
	default:
		return 0, dbalerr.New(dbalerr.TypeMismatch, fmt.Sprintf("value is %s, not Int", v.kind))
	}
}

func (v Value) UInt() (uint64, error) {
	switch v.kind {
	case KindUInt:
		return v.u, nil
	case KindInt:
		return uint64(v.i), nil
	default:
		return 0, dbalerr.New(dbalerr.TypeMismatch, fmt.Sprintf("value is %s, not UInt", v.kind))
	}
}

func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	case KindUInt:
		return float64(v.u), nil
	default:
		return 0, dbalerr.New(dbalerr.TypeMismatch, fmt.Sprintf("value is %s, not Float", v.kind))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString, KindJSON:
		return v.s
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindUInt:
		return fmt.Sprintf("%d", v.u)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindBytes:
		return string(v.by)
	case KindDateTime:
		return v.t.Format(time.RFC3339Nano)
	case KindUUID:
		return v.uuid.String()
	default:
		return fmt.Sprintf("%v", v.arr)
	}
}

func (v Value) Bytes() ([]byte, error) {
	switch v.kind {
	case KindBytes:
		return v.by, nil
	case KindString, KindJSON:
		return []byte(v.s), nil
	default:
		return nil, dbalerr.New(dbalerr.TypeMismatch, fmt.Sprintf("value is %s, not Bytes", v.kind))
	}
}

func (v Value) DateTime() (time.Time, error) {
	if v.kind != KindDateTime {
		return time.Time{}, dbalerr.New(dbalerr.TypeMismatch, fmt.Sprintf("value is %s, not DateTime", v.kind))
	}
	return v.t, nil
}

func (v Value) UUID() (uuid.UUID, error) {
	if v.kind != KindUUID {
		return uuid.UUID{}, dbalerr.New(dbalerr.TypeMismatch, fmt.Sprintf("value is %s, not Uuid", v.kind))
	}
	return v.uuid, nil
}

func (v Value) Array() ([]Value, error) {
	if v.kind != KindArray {
		return nil, dbalerr.New(dbalerr.TypeMismatch, fmt.Sprintf("value is %s, not Array", v.kind))
	}
	return v.arr, nil
}

// Bool applies the module's truthiness coercion: every kind converts to a
// boolean rather than erroring, mirroring how platforms accept a variety of
// literal shapes (0/1, "t"/"f", "true"/"false", "yes"/"no") as boolean
// input. Null is false. Numeric zero is false. Empty string is false;
// "0", "f", "false", "n", "no" (case-insensitively) are also false.
func (v Value) Bool() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindInt:
		return v.i != 0
	case KindUInt:
		return v.u != 0
	case KindFloat:
		return v.f != 0
	case KindString, KindJSON:
		switch strings.ToLower(v.s) {
		case "", "0", "f", "false", "n", "no":
			return false
		default:
			return true
		}
	case KindBytes:
		return len(v.by) > 0 && !(len(v.by) == 1 && (v.by[0] == '0' || v.by[0] == 0))
	case KindArray:
		return len(v.arr) > 0
	default:
		return true
	}
}

// Equal reports whether two values have the same kind and content. Array
// equality is element-wise; DateTime equality uses time.Time.Equal so
// differing monotonic readings of the same instant still compare equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == other.i
	case KindUInt:
		return v.u == other.u
	case KindFloat:
		return v.f == other.f
	case KindBoolean:
		return v.b == other.b
	case KindString, KindJSON:
		return v.s == other.s
	case KindBytes:
		return string(v.by) == string(other.by)
	case KindDateTime:
		return v.t.Equal(other.t)
	case KindUUID:
		return v.uuid == other.uuid
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
