package binder

import "reflect"

// HasMember reports whether v exposes a method called name, or a struct field
// called name holding a non-empty value.
//
// This is the receiver detection heuristic: a method's receiver normally
// carries a member named after the method itself. A field counts only when
// set: zero values and empty strings, slices, maps or arrays are treated as
// absent. It yields a false positive whenever a regular argument happens to
// expose such a member, which is why ReceiverExplicit is preferred.
func HasMember(v any, name string) bool {
	if v == nil || name == "" {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.MethodByName(name).IsValid() {
		return true
	}
	// Methods with pointer receivers on an addressable copy.
	if rv.Kind() != reflect.Pointer {
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		if pv.MethodByName(name).IsValid() {
			return true
		}
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false
	}
	f := rv.FieldByName(name)
	return f.IsValid() && !empty(f)
}

func empty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
