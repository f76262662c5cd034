package typecheck

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/ygrebnov/typecheck/errors"
)

// ArgumentError is raised when a checked argument does not match its declared
// TypeSpec. It unwraps to errors.ErrInvalidArgumentType so callers can use
// errors.Is.
type ArgumentError struct {
	Function string   // wrapped function name, may be empty
	Name     string   // parameter name
	Index    int      // position among checked arguments; -1 for keywords or when unknown
	Value    any      // offending value, unmodified
	Spec     TypeSpec // declared spec
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("typecheck: argument %s (%v: %T) %s", e.Name, e.Value, e.Value, e.Spec.describe())
}

func (e *ArgumentError) Unwrap() error { return errors.ErrInvalidArgumentType }

// MarshalJSON exports ArgumentError as an object with function, parameter,
// index, value type, expected spec and message fields.
func (e *ArgumentError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Function  string `json:"function,omitempty"`
		Parameter string `json:"parameter"`
		Index     int    `json:"index"`
		ValueType string `json:"valueType"`
		Expected  string `json:"expected"`
		Message   string `json:"message"`
	}{
		Function:  e.Function,
		Parameter: e.Name,
		Index:     e.Index,
		ValueType: fmt.Sprintf("%T", e.Value),
		Expected:  e.Spec.String(),
		Message:   e.Error(),
	})
}
