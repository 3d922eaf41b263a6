// Package typeregistry is the process-wide, read-mostly registry of logical
// column types (INTEGER, STRING, DATETIME, JSON, ...) and the conversions
// between their wire/native representation and the portable dbvalue.Value
// model. It mirrors a column's "(CRType:NAME)" comment tag, which platforms
// append to a native column comment so a NAME round-trips through
// introspection even on engines with no first-class enum/array/guid type.
package typeregistry

import (
	"sync"

	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/dbvalue"
)

// Dialect is the minimal view of a platform a Type needs to pick a native
// SQL declaration or apply dialect-specific conversion rules. The concrete
// platform.Platform type satisfies this by duck typing; typeregistry never
// imports the platform package, avoiding an import cycle (platform imports
// typeregistry to map columns to native DDL).
type Dialect interface {
	Name() string
	HasNativeJSON() bool
	HasNativeGUID() bool
}

// Type is a logical column type: it knows its own name, how to render a
// native SQL column declaration for a given dialect and column options, and
// how to convert between the portable Value model and whatever a driver
// adapter hands back from the wire.
type Type interface {
	Name() string
	DeclarationSQL(d Dialect, opts DeclarationOptions) string
	ConvertToValue(raw any, d Dialect) (dbvalue.Value, error)
	ConvertToDatabaseValue(v dbvalue.Value, d Dialect) (any, error)
}

// DeclarationOptions carries the subset of Column fields a type's
// DeclarationSQL needs. It is an explicit struct, not a kwargs-style map, so
// the accepted keys are documented by the Go compiler instead of by
// convention.
type DeclarationOptions struct {
	Length        int
	Precision     int
	Scale         int
	Fixed         bool
	Unsigned      bool
	NotNull       bool
	Default       *dbvalue.Value
	AutoIncrement bool
}

var (
	mutex sync.RWMutex
	types = map[string]Type{}
)

// Register adds a Type under name. Registration is monotonic: re-registering
// an existing name panics, since the registry is a process-wide singleton
// and silently overwriting a type would change behavior for every caller
// that already resolved it.
func Register(name string, t Type) {
	mutex.Lock()
	defer mutex.Unlock()
	if _, exists := types[name]; exists {
		panic("typeregistry: type " + name + " already registered")
	}
	types[name] = t
}

// Lookup resolves a type by name.
func Lookup(name string) (Type, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	t, ok := types[name]
	if !ok {
		return nil, dbalerr.New(dbalerr.UnknownType, "unknown type: "+name)
	}
	return t, nil
}

// Names returns every registered type name, for introspection/testing.
func Names() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	out := make([]string, 0, len(types))
	for n := range types {
		out = append(out, n)
	}
	return out
}

func init() {
	for _, t := range builtinTypes() {
		Register(t.Name(), t)
	}
}
