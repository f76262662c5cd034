package constants

const Namespace = "typecheck"

// ErrorFieldNamespace for all exported error field keys.
const ErrorFieldNamespace = Namespace

// Built-in type names understood by the declaration parser.
const (
	TypeNameAny      = "any"
	TypeNameSkip     = "-"
	TypeNameOneOf    = "oneof"
	TypeNameDuration = "duration"
	TypeNameTime     = "time"
	TypeNameBytes    = "bytes"
)

// Prefixes composing derived types in declaration expressions.
const (
	TypePrefixPointer = "*"
	TypePrefixSlice   = "[]"
)

// VariadicElementFormat names an element of a flattened variadic parameter.
const VariadicElementFormat = "%s[%d]"
