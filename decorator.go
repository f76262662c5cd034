// Package typecheck wraps functions so that every call checks its arguments
// against declared types before the function body runs.
//
// A Declaration lists one TypeSpec per positional parameter plus named keyword
// specs. New builds a Decorator that rejects the first mismatching argument
// with an *ArgumentError; NewPlus builds one that reports mismatches to a
// FailureHandler and lets the call proceed. Decorators wrap either dynamic
// callables (Func, with named parameters and keyword arguments) or native Go
// functions (WrapFunc).
package typecheck

import (
	"context"
	"fmt"

	"github.com/ygrebnov/typecheck/errors"
	"github.com/ygrebnov/typecheck/internal/binder"
)

// Call carries the live arguments of a single invocation.
type Call struct {
	Args   []any
	Kwargs map[string]any
}

// Func is a dynamic callable accepting positional and keyword arguments.
type Func func(ctx context.Context, call Call) (any, error)

// Signature describes a Func: its name and parameter names in declaration
// order. For methods the receiver is the first parameter.
type Signature struct {
	Name   string
	Params []string
}

// Decorator holds an immutable Declaration and the failure strategy installed
// on every function it wraps.
type Decorator struct {
	decl     Declaration
	strategy FailureStrategy
	cfg      config
}

// New returns a Decorator that rejects the first argument not matching its
// spec: the wrapped function is not invoked and the caller gets an
// *ArgumentError.
func New(decl Declaration, opts ...Option) (*Decorator, error) {
	return NewDecorator(RaiseStrategy(), decl, opts...)
}

// NewPlus returns a Decorator that calls handler for every argument not
// matching its spec and then invokes the wrapped function with the original
// arguments. The call is aborted only if handler returns an error.
func NewPlus(handler FailureHandler, decl Declaration, opts ...Option) (*Decorator, error) {
	if handler == nil {
		return nil, errors.ErrNilHandler
	}
	return NewDecorator(CallbackStrategy(handler), decl, opts...)
}

// NewDecorator returns a Decorator using an arbitrary failure strategy.
// A nil strategy means RaiseStrategy.
func NewDecorator(strategy FailureStrategy, decl Declaration, opts ...Option) (*Decorator, error) {
	if strategy == nil {
		strategy = RaiseStrategy()
	}
	if err := decl.Validate(); err != nil {
		return nil, err
	}
	return &Decorator{
		decl:     decl,
		strategy: strategy,
		cfg:      defaultConfig().with(opts),
	}, nil
}

// Declaration returns the decorator's declaration.
func (d *Decorator) Declaration() Declaration { return d.decl }

// Wrap returns fn guarded by the decorator's declaration. Options override the
// decorator's own for this function only.
//
// Misconfiguration, such as more positional specs than sig accepts, is
// reported here rather than on the first call.
func (d *Decorator) Wrap(sig Signature, fn Func, opts ...Option) (Func, error) {
	if fn == nil {
		return nil, errors.ErrNilFunction
	}
	cfg := d.cfg.with(opts)
	name := sig.Name
	if cfg.name != "" {
		name = cfg.name
	}
	if err := d.decl.checkCapacity(name, cfg.receiver, len(sig.Params)); err != nil {
		return nil, err
	}

	c := d.newChecker(name, cfg)
	params := append([]string(nil), sig.Params...)

	return func(ctx context.Context, call Call) (any, error) {
		if err := c.check(ctx, params, d.decl.positional, call.Args, call.Kwargs); err != nil {
			return nil, err
		}
		return fn(ctx, call)
	}, nil
}

// MustWrap is like Wrap but panics on misconfiguration.
func (d *Decorator) MustWrap(sig Signature, fn Func, opts ...Option) Func {
	w, err := d.Wrap(sig, fn, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

func (d *Decorator) newChecker(name string, cfg config) *checker {
	return &checker{
		funcName: name,
		receiver: cfg.receiver,
		keywords: d.decl.binderKeywords(),
		strategy: d.strategy,
		cfg:      cfg,
	}
}

// checker evaluates one call. It holds no mutable state and is shared by all
// calls of a wrapped function.
type checker struct {
	funcName string
	receiver binder.ReceiverMode
	keywords []binder.Keyword[TypeSpec]
	strategy FailureStrategy
	cfg      config
}

// check binds a dynamic call and evaluates it.
func (c *checker) check(ctx context.Context, params []string, positional []TypeSpec, args []any, kwargs map[string]any) error {
	return c.checkInput(ctx, binder.Input[TypeSpec]{
		FuncName:   c.funcName,
		Params:     params,
		Receiver:   c.receiver,
		Positional: positional,
		Keywords:   c.keywords,
		Args:       args,
		Kwargs:     kwargs,
	})
}

// checkInput runs every bound entry through the failure strategy.
// Returns the strategy's error if it aborted the call.
func (c *checker) checkInput(ctx context.Context, in binder.Input[TypeSpec]) error {
	entries := binder.Bind(in)

	failed := false
	for _, e := range entries {
		if e.Spec.Matches(e.Value) {
			continue
		}
		failed = true
		ae := &ArgumentError{Function: c.funcName, Name: e.Name, Index: e.Index, Value: e.Value, Spec: e.Spec}
		c.cfg.log().DebugContext(ctx, "typecheck: argument rejected",
			"function", c.funcName,
			"parameter", e.Name,
			"value_type", typeName(e.Value),
			"expected", e.Spec.String(),
			"strategy", c.strategy.Name(),
		)
		if c.cfg.metrics {
			observeInvalidArgument(c.funcName, e.Name)
		}
		if err := c.strategy.Reject(ae); err != nil {
			c.observe(outcomeRejected)
			return err
		}
	}

	if failed {
		c.observe(outcomeAdvisory)
	} else {
		c.observe(outcomePassed)
	}
	return nil
}

func (c *checker) observe(outcome string) {
	if c.cfg.metrics {
		observeCall(c.funcName, outcome)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
