// Package binder reconciles a static declaration of per-parameter type specs
// with the live arguments of a single call.
package binder

// ReceiverMode selects how an implicit first parameter is treated.
type ReceiverMode int

const (
	// ReceiverNone checks every positional argument.
	ReceiverNone ReceiverMode = iota
	// ReceiverExplicit always excludes the first positional argument.
	ReceiverExplicit
	// ReceiverDetect excludes the first positional argument when it exposes a
	// member named like the wrapped function. See HasMember.
	ReceiverDetect
)

// String returns the mode name as used in manifests.
func (m ReceiverMode) String() string {
	switch m {
	case ReceiverNone:
		return "none"
	case ReceiverExplicit:
		return "explicit"
	case ReceiverDetect:
		return "detect"
	default:
		return "unknown"
	}
}

// Keyword is a declared keyword spec. Keywords are kept as an ordered list so
// evaluation order follows declaration order.
type Keyword[S any] struct {
	Name string
	Spec S
}

// Input holds everything needed to bind one call.
type Input[S any] struct {
	// FuncName is the wrapped function name, used by ReceiverDetect.
	FuncName string
	// Params are the parameter names in declaration order, receiver included.
	Params   []string
	Receiver ReceiverMode

	Positional []S
	Keywords   []Keyword[S]

	Args   []any
	Kwargs map[string]any
}

// Entry is a single (name, value, spec) triple subject to checking.
// Index is the positional index among checked arguments, or -1 for keywords.
type Entry[S any] struct {
	Name  string
	Index int
	Value any
	Spec  S
}

// Bind produces the ordered entries for a call: positional entries first, then
// keyword entries in keyword declaration order.
//
// Only arguments that are both present in the call and declared produce an
// entry. Parameters omitted from the call (relying on the callee's own default)
// are not synthesized.
func Bind[S any](in Input[S]) []Entry[S] {
	args, params := in.Args, in.Params
	if SkipReceiver(in.Receiver, in.FuncName, args) {
		args = args[1:]
		if len(params) > 0 {
			params = params[1:]
		}
	}

	n := min(len(args), len(params), len(in.Positional))
	entries := make([]Entry[S], 0, n+len(in.Keywords))
	for i := 0; i < n; i++ {
		entries = append(entries, Entry[S]{
			Name:  params[i],
			Index: i,
			Value: args[i],
			Spec:  in.Positional[i],
		})
	}

	if len(in.Kwargs) == 0 {
		return entries
	}
	for _, kw := range in.Keywords {
		v, ok := in.Kwargs[kw.Name]
		if !ok {
			continue
		}
		entries = append(entries, Entry[S]{Name: kw.Name, Index: -1, Value: v, Spec: kw.Spec})
	}
	return entries
}

// SkipReceiver reports whether the first positional argument is a receiver
// and must be excluded from binding.
func SkipReceiver(mode ReceiverMode, funcName string, args []any) bool {
	if len(args) == 0 {
		return false
	}
	switch mode {
	case ReceiverExplicit:
		return true
	case ReceiverDetect:
		return HasMember(args[0], funcName)
	default:
		return false
	}
}

// PositionalCapacity returns how many positional specs a callable with the
// given parameter count can accept under the receiver mode.
//
// ReceiverDetect is decided per call, so the full parameter count is allowed.
func PositionalCapacity(mode ReceiverMode, params int) int {
	if mode == ReceiverExplicit && params > 0 {
		return params - 1
	}
	return params
}
