package errors

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/typecheck/constants"
)

func newError(msg string) error {
	return errorc.New(constants.Namespace + ": " + msg)
}

// Sentinel errors. Use errors.Is to match.
var (
	ErrInvalidArgumentType    = newError("invalid argument type")
	ErrTooManyPositionalSpecs = newError("more positional type specs than positional parameters")
	ErrDuplicateKeywordSpec   = newError("duplicate keyword type spec")
	ErrConflictingSpec        = newError("parameter declared both positionally and by keyword")
	ErrUnknownParameter       = newError("keyword type spec names an unknown parameter")
	ErrEmptyKeywordName       = newError("keyword type spec must have a non-empty name")
	ErrNotAFunction           = newError("value is not a function")
	ErrNilFunction            = newError("nil function")
	ErrNilHandler             = newError("nil failure handler")
	ErrParamNamesMismatch     = newError("parameter names do not match function arity")
	ErrMissingReceiver        = newError("method signature has no receiver parameter")
	ErrDuplicateTypeName      = newError("duplicate type name")
	ErrUnknownTypeName        = newError("unknown type name")
	ErrInvalidExpression      = newError("invalid type spec expression")
	ErrInvalidManifest        = newError("invalid manifest")
	ErrUnknownFunction        = newError("function not declared in manifest")
)

// Internal hierarchical segments used to build dotted keys.
const (
	keySegmentArgument = ".argument."
	keySegmentFunction = ".function."
	keySegmentSpec     = ".spec."
	keySegmentManifest = ".manifest."
)

// Exported structured error field keys, passed to errorc.String.
const (
	ErrorFieldArgumentName = constants.ErrorFieldNamespace + keySegmentArgument + "name" // typecheck.argument.name
)

const (
	ErrorFieldFunctionName = constants.ErrorFieldNamespace + keySegmentFunction + "name"        // typecheck.function.name
	ErrorFieldFunctionType = constants.ErrorFieldNamespace + keySegmentFunction + "type"        // typecheck.function.type
	ErrorFieldParamCount   = constants.ErrorFieldNamespace + keySegmentFunction + "param_count" // typecheck.function.param_count
	ErrorFieldSpecCount    = constants.ErrorFieldNamespace + keySegmentFunction + "spec_count"  // typecheck.function.spec_count
)

const (
	ErrorFieldTypeName   = constants.ErrorFieldNamespace + keySegmentSpec + "type_name"  // typecheck.spec.type_name
	ErrorFieldExpression = constants.ErrorFieldNamespace + keySegmentSpec + "expression" // typecheck.spec.expression
)

const (
	ErrorFieldManifestKey = constants.ErrorFieldNamespace + keySegmentManifest + "key" // typecheck.manifest.key
)

const (
	ErrorFieldCause = constants.ErrorFieldNamespace + ".cause" // typecheck.cause
)
