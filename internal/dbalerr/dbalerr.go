// Package dbalerr is the error taxonomy shared by every layer of the
// module: value conversion, schema comparison, platform DDL generation and
// the migration engine all report failures as a *dbalerr.Error carrying one
// of the Kind values below, so callers can branch on failure class instead
// of parsing messages.
package dbalerr

import "fmt"

type Kind int

const (
	UnknownError Kind = iota
	NotConnected
	NotReady
	OutOfBounds
	TypeMismatch
	ConversionFailed
	UnknownType
	UnknownDatabaseType
	MixedParameterTypes
	UnsupportedNamedParameters
	PlatformFeatureUnsupported
	NoColumnsSpecifiedForTable
	IndexDefinitionInvalid
	ForeignKeyDefinitionInvalid
	ColumnDoesNotExist
	DatabaseRequired
	SchemaIntrospectionFailed
	Connect
	Config
	SkipMigration
)

func (k Kind) String() string {
	switch k {
	case NotConnected:
		return "NotConnected"
	case NotReady:
		return "NotReady"
	case OutOfBounds:
		return "OutOfBounds"
	case TypeMismatch:
		return "TypeMismatch"
	case ConversionFailed:
		return "ConversionFailed"
	case UnknownType:
		return "UnknownType"
	case UnknownDatabaseType:
		return "UnknownDatabaseType"
	case MixedParameterTypes:
		return "MixedParameterTypes"
	case UnsupportedNamedParameters:
		return "UnsupportedNamedParameters"
	case PlatformFeatureUnsupported:
		return "PlatformFeatureUnsupported"
	case NoColumnsSpecifiedForTable:
		return "NoColumnsSpecifiedForTable"
	case IndexDefinitionInvalid:
		return "IndexDefinitionInvalid"
	case ForeignKeyDefinitionInvalid:
		return "ForeignKeyDefinitionInvalid"
	case ColumnDoesNotExist:
		return "ColumnDoesNotExist"
	case DatabaseRequired:
		return "DatabaseRequired"
	case SchemaIntrospectionFailed:
		return "SchemaIntrospectionFailed"
	case Connect:
		return "Connect"
	case Config:
		return "Config"
	case SkipMigration:
		return "SkipMigration"
	default:
		return "UnknownError"
	}
}

// Error wraps an underlying cause with a Kind so callers can do
// errors.As(err, &dbalerr.Error{}) and switch on Kind, or just
// errors.Is(err, dbalerr.ErrSkipMigration).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ErrSkipMigration is the sentinel a migration's Up/Down closure returns to
// signal "do not apply this migration, but do not treat this as a failure
// either". It is consumed at exactly one call site, in the migration
// executor, and never surfaces to the Migrator's caller.
var ErrSkipMigration = &Error{Kind: SkipMigration, Message: "migration skipped"}

func NewConversionFailed(value any, targetType string) *Error {
	return New(ConversionFailed, fmt.Sprintf("could not convert value %v to type %s", value, targetType))
}

func TypeMismatchf(format string, args ...any) *Error {
	return New(TypeMismatch, fmt.Sprintf(format, args...))
}

func PlatformFeatureUnsupportedf(feature, platform string) *Error {
	return New(PlatformFeatureUnsupported, fmt.Sprintf("%s does not support %s", platform, feature))
}

func ColumnDoesNotExistf(name, table string) *Error {
	return New(ColumnDoesNotExist, fmt.Sprintf("column %q does not exist on table %q", name, table))
}

func IndexDefinitionInvalidf(format string, args ...any) *Error {
	return New(IndexDefinitionInvalid, fmt.Sprintf(format, args...))
}

func ForeignKeyDefinitionInvalidf(format string, args ...any) *Error {
	return New(ForeignKeyDefinitionInvalid, fmt.Sprintf(format, args...))
}

func UnknownDatabaseTypef(format string, args ...any) *Error {
	return New(UnknownDatabaseType, fmt.Sprintf(format, args...))
}

func Configf(format string, args ...any) *Error {
	return New(Config, fmt.Sprintf(format, args...))
}

func Connectf(format string, args ...any) *Error {
	return New(Connect, fmt.Sprintf(format, args...))
}
