package typecheck

import (
	"reflect"
	"strings"

	"github.com/ygrebnov/typecheck/constants"
)

// TypeSpec is the set of types a single parameter accepts. A value matches
// when it matches any member. The zero TypeSpec accepts everything.
//
// TypeSpec is immutable; constructors copy their inputs.
type TypeSpec struct {
	types []reflect.Type
}

// Type returns a TypeSpec accepting T. T may be an interface type, in which
// case any value implementing it matches.
func Type[T any]() TypeSpec {
	return TypeSpec{types: []reflect.Type{reflect.TypeOf((*T)(nil)).Elem()}}
}

// Of returns a TypeSpec accepting any of the given types. Nil types are
// ignored, so Of with only nil types is Any and disables checking for the
// parameter it is declared for, as does reflect.TypeOf of a nil interface.
func Of(types ...reflect.Type) TypeSpec {
	var s TypeSpec
	for _, t := range types {
		s = s.with(t)
	}
	return s
}

// TypeOf returns a TypeSpec accepting the dynamic type of v.
// An untyped nil yields Any: the parameter is declared but not checked.
func TypeOf(v any) TypeSpec {
	return Of(reflect.TypeOf(v))
}

// OneOf returns the union of the given specs. If any of them is Any, the
// union is Any as well.
func OneOf(specs ...TypeSpec) TypeSpec {
	var s TypeSpec
	for _, spec := range specs {
		if spec.IsAny() {
			return Any()
		}
		for _, t := range spec.types {
			s = s.with(t)
		}
	}
	return s
}

// Any returns a TypeSpec that declares a parameter without checking it.
func Any() TypeSpec { return TypeSpec{} }

// IsAny reports whether the spec accepts every value.
func (s TypeSpec) IsAny() bool { return len(s.types) == 0 }

// Types returns a copy of the member types in declaration order.
func (s TypeSpec) Types() []reflect.Type {
	out := make([]reflect.Type, len(s.types))
	copy(out, s.types)
	return out
}

// Matches reports whether v is an instance of one of the member types.
//
// A typed value matches T when its dynamic type is exactly T, or when T is an
// interface the type implements. Types sharing an underlying type do not match
// each other: []int is not a named slice of int. An untyped nil only matches
// interface members.
func (s TypeSpec) Matches(v any) bool {
	if s.IsAny() {
		return true
	}
	vt := reflect.TypeOf(v)
	for _, t := range s.types {
		if matchType(vt, t) {
			return true
		}
	}
	return false
}

func matchType(vt, t reflect.Type) bool {
	if vt == nil {
		return t.Kind() == reflect.Interface
	}
	return vt == t || (t.Kind() == reflect.Interface && vt.Implements(t))
}

// String renders the spec in the declaration expression syntax.
func (s TypeSpec) String() string {
	switch len(s.types) {
	case 0:
		return constants.TypeNameAny
	case 1:
		return s.types[0].String()
	default:
		return constants.TypeNameOneOf + "(" + strings.Join(s.typeNames(), ", ") + ")"
	}
}

// describe renders the expectation part of an InvalidArgumentType message.
func (s TypeSpec) describe() string {
	if len(s.types) == 1 {
		return "must be of type " + s.types[0].String()
	}
	return "must be of one type of " + strings.Join(s.typeNames(), ", ")
}

func (s TypeSpec) typeNames() []string {
	names := make([]string, len(s.types))
	for i, t := range s.types {
		names[i] = t.String()
	}
	return names
}

// with returns a copy of s including t, keeping members unique.
func (s TypeSpec) with(t reflect.Type) TypeSpec {
	if t == nil {
		return s
	}
	for _, existing := range s.types {
		if existing == t {
			return s
		}
	}
	types := make([]reflect.Type, len(s.types), len(s.types)+1)
	copy(types, s.types)
	return TypeSpec{types: append(types, t)}
}
