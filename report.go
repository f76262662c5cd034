package typecheck

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// Report accumulates ArgumentError entries from advisory checks across any
// number of wrapped functions (see CollectStrategy and CollectFailures).
// It is safe for concurrent use.
type Report struct {
	mu       sync.Mutex
	failures []*ArgumentError
}

// Add appends a failure. Nil failures are ignored.
func (r *Report) Add(ae *ArgumentError) {
	if r == nil || ae == nil {
		return
	}
	r.mu.Lock()
	r.failures = append(r.failures, ae)
	r.mu.Unlock()
}

// Len returns the number of accumulated failures.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures)
}

// Empty reports whether there are no failures.
func (r *Report) Empty() bool { return r.Len() == 0 }

// Failures returns a snapshot of the accumulated failures in arrival order.
func (r *Report) Failures() []*ArgumentError {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.failures)
}

// Reset drops all accumulated failures.
func (r *Report) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.failures = nil
	r.mu.Unlock()
}

// Functions returns the names of functions with failures, sorted. Failures
// recorded without a function name are listed under "".
func (r *Report) Functions() []string {
	var names []string
	for _, ae := range r.Failures() {
		if !slices.Contains(names, ae.Function) {
			names = append(names, ae.Function)
		}
	}
	slices.Sort(names)
	return names
}

// Function returns the failures of one wrapped function, grouped by
// parameter in the order parameters first failed.
func (r *Report) Function(name string) []ParameterFailures {
	var out []ParameterFailures
	for _, ae := range r.Failures() {
		if ae.Function != name {
			continue
		}
		i := slices.IndexFunc(out, func(p ParameterFailures) bool { return p.Parameter == ae.Name })
		if i < 0 {
			out = append(out, ParameterFailures{Parameter: ae.Name})
			i = len(out) - 1
		}
		out[i].Values = append(out[i].Values, ae.Value)
		out[i].Expected = ae.Spec
	}
	return out
}

// ParameterFailures lists every rejected value of one parameter.
type ParameterFailures struct {
	Parameter string
	Expected  TypeSpec
	Values    []any
}

// Error renders one line per function and parameter, e.g.
//
//	typecheck: 3 invalid arguments
//	  sum_print(x): 2 values, must be of type int
//	  sum_print(prompt): 1 value, must be of type string
func (r *Report) Error() string {
	n := r.Len()
	if n == 0 {
		return ""
	}
	if n == 1 {
		return r.Failures()[0].Error()
	}

	var b strings.Builder
	b.WriteString("typecheck: ")
	b.WriteString(plural(n, "invalid argument"))
	for _, fn := range r.Functions() {
		for _, p := range r.Function(fn) {
			b.WriteString("\n  ")
			b.WriteString(fn)
			b.WriteString("(")
			b.WriteString(p.Parameter)
			b.WriteString("): ")
			b.WriteString(plural(len(p.Values), "value"))
			b.WriteString(", ")
			b.WriteString(p.Expected.describe())
		}
	}
	return b.String()
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (r *Report) Unwrap() []error {
	failures := r.Failures()
	errs := make([]error, len(failures))
	for i, ae := range failures {
		errs[i] = ae
	}
	return errs
}

// MarshalJSON exports the report as function -> parameter -> failures, each
// failure in ArgumentError's JSON form.
func (r *Report) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	out := make(map[string]map[string][]*ArgumentError)
	for _, ae := range r.Failures() {
		byParam, ok := out[ae.Function]
		if !ok {
			byParam = make(map[string][]*ArgumentError)
			out[ae.Function] = byParam
		}
		byParam[ae.Name] = append(byParam[ae.Name], ae)
	}
	return json.Marshal(out)
}
