package dbvalue

// ParameterKind tells the driver adapter how to bind a Parameter: as a plain
// positional value, or as one of the special shapes some platforms require
// explicit handling for (e.g. a large object, or an array that needs its own
// placeholder syntax).
type ParameterKind int

const (
	ParameterKindPositional ParameterKind = iota
	ParameterKindNamed
	ParameterKindLargeObject
	ParameterKindArray
)

// Parameter pairs a Value with the binding strategy the statement should use
// for it. A Name is only meaningful when Kind is ParameterKindNamed; core
// code never builds those itself (spec: named parameters are unsupported at
// the DBAL layer), but the type exists so a driver adapter can reject them
// with dbalerr.UnsupportedNamedParameters rather than silently mishandling
// them.
type Parameter struct {
	Value Value
	Kind  ParameterKind
	Name  string
}

func NewParameter(v Value) Parameter {
	return Parameter{Value: v, Kind: ParameterKindPositional}
}

func NewNamedParameter(name string, v Value) Parameter {
	return Parameter{Value: v, Kind: ParameterKindNamed, Name: name}
}
