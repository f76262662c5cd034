package typecheck

import (
	"log/slog"
)

// FailureStrategy decides what happens when an argument fails its check.
//
// Reject is called once per failing argument, in binding order. A non-nil
// return aborts the call: no further arguments are checked, the wrapped
// function is not invoked and the error is returned to the caller.
type FailureStrategy interface {
	Reject(ae *ArgumentError) error
	Name() string
}

// FailureHandler receives advisory failures: the offending value, the
// parameter name and the declared spec. Returning an error aborts the call.
type FailureHandler func(value any, name string, spec TypeSpec) error

// RaiseStrategy returns the default strategy: the first failing argument
// aborts the call with its *ArgumentError.
func RaiseStrategy() FailureStrategy { return raiseStrategy{} }

// CallbackStrategy returns a strategy invoking h for every failing argument.
// The call proceeds unless h returns an error.
func CallbackStrategy(h FailureHandler) FailureStrategy { return callbackStrategy{handler: h} }

type raiseStrategy struct{}

func (raiseStrategy) Reject(ae *ArgumentError) error { return ae }

func (raiseStrategy) Name() string { return "raise" }

type callbackStrategy struct {
	handler FailureHandler
}

func (s callbackStrategy) Reject(ae *ArgumentError) error {
	return s.handler(ae.Value, ae.Name, ae.Spec)
}

func (callbackStrategy) Name() string { return "callback" }

// LogFailures returns a handler logging each failure at warn level and
// letting the call proceed. A nil logger means slog.Default().
func LogFailures(logger *slog.Logger) FailureHandler {
	return func(value any, name string, spec TypeSpec) error {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		l.Warn("invalid type received for argument",
			"parameter", name,
			"value_type", typeName(value),
			"expected", spec.String(),
		)
		return nil
	}
}

// CollectFailures returns a handler recording each failure into r and letting
// the call proceed. Recorded entries carry no function name and Index -1
// since the handler only sees the parameter; use CollectStrategy to keep them.
func CollectFailures(r *Report) FailureHandler {
	return func(value any, name string, spec TypeSpec) error {
		r.Add(&ArgumentError{Name: name, Index: -1, Value: value, Spec: spec})
		return nil
	}
}

// CollectStrategy returns a strategy recording every failure into r, with its
// function name and index, and letting the call proceed.
func CollectStrategy(r *Report) FailureStrategy { return collectStrategy{report: r} }

type collectStrategy struct {
	report *Report
}

func (s collectStrategy) Reject(ae *ArgumentError) error {
	s.report.Add(ae)
	return nil
}

func (collectStrategy) Name() string { return "collect" }

// ChainHandlers runs handlers in order and stops at the first error.
// Nil handlers are skipped.
func ChainHandlers(handlers ...FailureHandler) FailureHandler {
	return func(value any, name string, spec TypeSpec) error {
		for _, h := range handlers {
			if h == nil {
				continue
			}
			if err := h(value, name, spec); err != nil {
				return err
			}
		}
		return nil
	}
}
