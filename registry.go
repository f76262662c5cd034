package typecheck

import (
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/typecheck/constants"
	"github.com/ygrebnov/typecheck/errors"
)

// Registry maps type names to reflect types for declaration expressions.
// Names are registered once and never replaced, so parsed expressions are
// cached for the registry's lifetime.
type Registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type

	specs sync.Map // expression -> TypeSpec
	decls sync.Map // expression -> Declaration
}

// NewRegistry returns a Registry holding the built-in type names.
func NewRegistry() *Registry {
	ensureBuiltins()
	r := &Registry{types: make(map[string]reflect.Type, len(builtinTypes))}
	for name, t := range builtinTypes {
		r.types[name] = t
	}
	return r
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the registry used by the package-level ParseSpec and
// ParseDeclaration.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() { defaultRegistry = NewRegistry() })
	return defaultRegistry
}

// Register adds a named type. Names must be non-empty, must not contain
// expression syntax characters and must not already be registered.
func (r *Registry) Register(name string, t reflect.Type) error {
	if t == nil || !validTypeName(name) {
		return errorc.With(errors.ErrInvalidExpression, errorc.String(errors.ErrorFieldTypeName, name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		return errorc.With(errors.ErrDuplicateTypeName, errorc.String(errors.ErrorFieldTypeName, name))
	}
	r.types[name] = t
	return nil
}

// RegisterType adds T to r under name.
func RegisterType[T any](r *Registry, name string) error {
	return r.Register(name, reflect.TypeOf((*T)(nil)).Elem())
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

func validTypeName(name string) bool {
	if name == "" || name == constants.TypeNameAny || name == constants.TypeNameSkip || name == constants.TypeNameOneOf {
		return false
	}
	return !strings.ContainsAny(name, " \t\n(),=*[]")
}

// Lazy built-in name storage.
var (
	builtinsOnce sync.Once
	builtinTypes map[string]reflect.Type
)

// ensureBuiltins initializes built-in type names exactly once.
func ensureBuiltins() {
	builtinsOnce.Do(func() {
		builtinTypes = map[string]reflect.Type{
			"bool":                     reflect.TypeOf(false),
			"string":                   reflect.TypeOf(""),
			"int":                      reflect.TypeOf(int(0)),
			"int8":                     reflect.TypeOf(int8(0)),
			"int16":                    reflect.TypeOf(int16(0)),
			"int32":                    reflect.TypeOf(int32(0)),
			"int64":                    reflect.TypeOf(int64(0)),
			"uint":                     reflect.TypeOf(uint(0)),
			"uint8":                    reflect.TypeOf(uint8(0)),
			"uint16":                   reflect.TypeOf(uint16(0)),
			"uint32":                   reflect.TypeOf(uint32(0)),
			"uint64":                   reflect.TypeOf(uint64(0)),
			"uintptr":                  reflect.TypeOf(uintptr(0)),
			"float32":                  reflect.TypeOf(float32(0)),
			"float64":                  reflect.TypeOf(float64(0)),
			"complex64":                reflect.TypeOf(complex64(0)),
			"complex128":               reflect.TypeOf(complex128(0)),
			"byte":                     reflect.TypeOf(byte(0)),
			"rune":                     reflect.TypeOf(rune(0)),
			"error":                    reflect.TypeOf((*error)(nil)).Elem(),
			constants.TypeNameDuration: reflect.TypeOf(time.Duration(0)),
			constants.TypeNameTime:     reflect.TypeOf(time.Time{}),
			constants.TypeNameBytes:    reflect.TypeOf([]byte(nil)),
		}
	})
}
