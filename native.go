package typecheck

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/typecheck/constants"
	"github.com/ygrebnov/typecheck/errors"
	"github.com/ygrebnov/typecheck/internal/binder"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// WrapFunc returns a function of the same type as fn that checks its
// arguments before calling fn.
//
// Every parameter of a Go function is positional. Parameters are named with
// WithParamNames, or by index otherwise; keyword specs name a parameter and
// apply to it when no positional spec covers it. Elements of a variadic
// parameter are checked one by one against the variadic parameter's
// positional spec and are named "<param>[i]".
//
// When the strategy aborts a call and the last result of F is error, the
// wrapper returns zero values and the error. Otherwise it panics with the
// error.
func WrapFunc[F any](d *Decorator, fn F, opts ...Option) (F, error) {
	var zero F
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return zero, errorc.With(errors.ErrNotAFunction, errorc.String(errors.ErrorFieldFunctionType, typeName(fn)))
	}
	if v.IsNil() {
		return zero, errors.ErrNilFunction
	}

	t := v.Type()
	cfg := d.cfg.with(opts)
	name := cfg.name
	if name == "" {
		name = runtimeFuncName(v)
	}

	names, err := nativeParamNames(name, cfg.paramNames, t.NumIn())
	if err != nil {
		return zero, err
	}
	if err = d.decl.checkCapacity(name, cfg.receiver, t.NumIn()); err != nil {
		return zero, err
	}
	kwIndex, err := resolveNativeKeywords(d.decl, names, cfg.receiver, t.IsVariadic())
	if err != nil {
		return zero, err
	}

	nb := &nativeBinding{
		checker:      d.newChecker(name, cfg),
		names:        names,
		positional:   d.decl.positional,
		kwIndex:      kwIndex,
		variadic:     t.IsVariadic(),
		raiseByError: t.NumOut() > 0 && t.Out(t.NumOut()-1) == errorType,
		fnType:       t,
	}

	wrapped := reflect.MakeFunc(t, func(in []reflect.Value) []reflect.Value {
		if err := nb.checkArgs(in); err != nil {
			if !nb.raiseByError {
				panic(err)
			}
			return nb.errorResults(err)
		}
		if nb.variadic {
			return v.CallSlice(in)
		}
		return v.Call(in)
	})

	return wrapped.Interface().(F), nil
}

// MustWrapFunc is like WrapFunc but panics on misconfiguration.
func MustWrapFunc[F any](d *Decorator, fn F, opts ...Option) F {
	w, err := WrapFunc(d, fn, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

// nativeBinding adapts reflect arguments of a Go function to the binder.
type nativeBinding struct {
	*checker
	names        []string
	positional   []TypeSpec
	kwIndex      map[string]int // keyword name -> parameter index, receiver included
	variadic     bool
	raiseByError bool
	fnType       reflect.Type
}

func (nb *nativeBinding) checkArgs(in []reflect.Value) error {
	args := make([]any, 0, len(in))
	names := make([]string, 0, len(in))
	last := len(in) - 1
	for i, v := range in {
		if nb.variadic && i == last {
			break
		}
		args = append(args, v.Interface())
		names = append(names, nb.names[i])
	}

	var nVariadic int
	if nb.variadic {
		rest := in[last]
		nVariadic = rest.Len()
		for j := 0; j < nVariadic; j++ {
			args = append(args, rest.Index(j).Interface())
			names = append(names, fmt.Sprintf(constants.VariadicElementFormat, nb.names[last], j))
		}
	}

	offset := 0
	if binder.SkipReceiver(nb.receiver, nb.funcName, args) {
		args, names, offset = args[1:], names[1:], 1
	}

	positional := nb.positional
	if nb.variadic {
		positional = expandVariadic(positional, len(nb.names)-1-offset, nVariadic)
	}

	var kwargs map[string]any
	for kw, idx := range nb.kwIndex {
		eff := idx - offset
		if eff < 0 || eff < len(nb.positional) || eff >= len(args) {
			continue
		}
		if kwargs == nil {
			kwargs = make(map[string]any, len(nb.kwIndex))
		}
		kwargs[kw] = args[eff]
	}

	return nb.checkInput(context.Background(), binder.Input[TypeSpec]{
		FuncName:   nb.funcName,
		Params:     names,
		Receiver:   binder.ReceiverNone,
		Positional: positional,
		Keywords:   nb.keywords,
		Args:       args,
		Kwargs:     kwargs,
	})
}

func (nb *nativeBinding) errorResults(err error) []reflect.Value {
	out := make([]reflect.Value, nb.fnType.NumOut())
	for i := range out {
		out[i] = reflect.Zero(nb.fnType.Out(i))
	}
	out[len(out)-1] = reflect.ValueOf(&err).Elem()
	return out
}

// expandVariadic repeats the spec of the variadic parameter, at index fixed,
// once per variadic element.
func expandVariadic(positional []TypeSpec, fixed, n int) []TypeSpec {
	if fixed < 0 || len(positional) <= fixed {
		return positional
	}
	out := make([]TypeSpec, 0, fixed+n)
	out = append(out, positional[:fixed]...)
	for j := 0; j < n; j++ {
		out = append(out, positional[fixed])
	}
	return out
}

func nativeParamNames(funcName string, names []string, numIn int) ([]string, error) {
	if names == nil {
		out := make([]string, numIn)
		for i := range out {
			out[i] = strconv.Itoa(i)
		}
		return out, nil
	}
	if len(names) != numIn {
		return nil, errorc.With(
			errors.ErrParamNamesMismatch,
			errorc.String(errors.ErrorFieldFunctionName, funcName),
			errorc.String(errors.ErrorFieldParamCount, strconv.Itoa(numIn)),
		)
	}
	return names, nil
}

// resolveNativeKeywords maps keyword specs onto parameter indexes.
//
// A keyword spec cannot name the receiver or the variadic parameter, and under
// a fixed receiver mode it cannot name a parameter already covered by a
// positional spec.
func resolveNativeKeywords(decl Declaration, names []string, mode binder.ReceiverMode, variadic bool) (map[string]int, error) {
	if len(decl.keywords) == 0 {
		return nil, nil
	}
	out := make(map[string]int, len(decl.keywords))
	for _, kw := range decl.keywords {
		idx := slices.Index(names, kw.Name)
		switch {
		case idx < 0:
			return nil, unknownParameter(kw.Name, "")
		case variadic && idx == len(names)-1:
			return nil, unknownParameter(kw.Name, "variadic")
		case mode == binder.ReceiverExplicit && idx == 0:
			return nil, unknownParameter(kw.Name, "receiver")
		}

		eff := idx
		if mode == binder.ReceiverExplicit {
			eff--
		}
		if mode != binder.ReceiverDetect && eff < len(decl.positional) {
			return nil, errorc.With(errors.ErrConflictingSpec, errorc.String(errors.ErrorFieldArgumentName, kw.Name))
		}
		out[kw.Name] = idx
	}
	return out, nil
}

func unknownParameter(name, cause string) error {
	if cause == "" {
		return errorc.With(errors.ErrUnknownParameter, errorc.String(errors.ErrorFieldArgumentName, name))
	}
	return errorc.With(
		errors.ErrUnknownParameter,
		errorc.String(errors.ErrorFieldArgumentName, name),
		errorc.String(errors.ErrorFieldCause, cause),
	)
}

// runtimeFuncName returns the bare name of a function value: package path,
// receiver type and closure suffixes removed.
func runtimeFuncName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
