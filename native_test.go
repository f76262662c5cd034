package typecheck

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tcerrors "github.com/ygrebnov/typecheck/errors"
)

func TestWrapFunc_ErrorResult(t *testing.T) {
	t.Parallel()

	d, err := New(Declare(Type[int](), Type[int]()), WithMetrics(false))
	require.NoError(t, err)

	calls := 0
	div := func(a, b any) (any, error) {
		calls++
		return a.(int) / b.(int), nil
	}
	w, err := WrapFunc(d, div, WithParamNames("a", "b"), WithName("div"))
	require.NoError(t, err)

	got, err := w(6, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = w(6, "3")
	require.ErrorIs(t, err, tcerrors.ErrInvalidArgumentType)
	assert.Nil(t, got)
	assert.Equal(t, 1, calls)

	var ae *ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "b", ae.Name)
	assert.Equal(t, 1, ae.Index)
	assert.Equal(t, "div", ae.Function)
}

func TestWrapFunc_PanicsWithoutErrorResult(t *testing.T) {
	t.Parallel()

	d, err := New(Declare(Type[string]()), WithMetrics(false))
	require.NoError(t, err)

	w := MustWrapFunc(d, func(v any) string { return fmt.Sprint(v) })
	assert.Equal(t, "ok", w("ok"))

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok, "expected error panic, got %v", r)
		assert.ErrorIs(t, err, tcerrors.ErrInvalidArgumentType)
	}()
	w(42)
}

func TestWrapFunc_DefaultParamNames(t *testing.T) {
	t.Parallel()

	d, err := New(Declare(Any(), Type[int]()), WithMetrics(false))
	require.NoError(t, err)

	w := MustWrapFunc(d, func(a, b any) error { return nil })
	err = w(nil, "x")

	var ae *ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "1", ae.Name)
}

func TestWrapFunc_Variadic(t *testing.T) {
	t.Parallel()

	d, err := New(Declare(Type[string](), Type[int]()), WithMetrics(false))
	require.NoError(t, err)

	join := func(sep any, parts ...any) (string, error) {
		s := make([]string, len(parts))
		for i, p := range parts {
			s[i] = fmt.Sprint(p)
		}
		return strings.Join(s, sep.(string)), nil
	}
	w, err := WrapFunc(d, join, WithParamNames("sep", "parts"))
	require.NoError(t, err)

	got, err := w("-", 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "1-2-3", got)

	got, err = w("-")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = w("-", 1, "two", 3)
	var ae *ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "parts[1]", ae.Name)
	assert.Equal(t, "two", ae.Value)
}

func TestWrapFunc_KeywordSpecs(t *testing.T) {
	t.Parallel()

	d, err := New(Declare(Type[int]()).Keyword("prompt", Type[string]()), WithMetrics(false))
	require.NoError(t, err)

	w, err := WrapFunc(d, func(x, y, prompt any) error { return nil }, WithParamNames("x", "y", "prompt"))
	require.NoError(t, err)

	require.NoError(t, w(1, "unchecked", "fmt"))

	err = w(1, 2, 3)
	var ae *ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "prompt", ae.Name)
	assert.Equal(t, -1, ae.Index)
}

type greeter struct{ name string }

func (g greeter) Greet(loud any) (string, error) {
	if loud.(bool) {
		return strings.ToUpper("hello " + g.name), nil
	}
	return "hello " + g.name, nil
}

func TestWrapFunc_MethodExpression(t *testing.T) {
	t.Parallel()

	d, err := New(Declare(Type[bool]()), WithMetrics(false))
	require.NoError(t, err)

	w, err := WrapFunc(d, greeter.Greet, AsMethod(), WithParamNames("g", "loud"))
	require.NoError(t, err)

	got, err := w(greeter{name: "ann"}, true)
	require.NoError(t, err)
	assert.Equal(t, "HELLO ANN", got)

	_, err = w(greeter{name: "ann"}, "yes")
	var ae *ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "loud", ae.Name)
	assert.Equal(t, "Greet", ae.Function)
}

func TestWrapFunc_Misconfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		decl Declaration
		fn   any
		opts []Option
		want error
	}{
		{
			name: "not a function",
			decl: Declare(),
			fn:   42,
			want: tcerrors.ErrNotAFunction,
		},
		{
			name: "nil function",
			decl: Declare(),
			fn:   (func())(nil),
			want: tcerrors.ErrNilFunction,
		},
		{
			name: "too many positional specs",
			decl: Declare(Type[int](), Type[int]()),
			fn:   func(any) {},
			want: tcerrors.ErrTooManyPositionalSpecs,
		},
		{
			name: "param names mismatch",
			decl: Declare(),
			fn:   func(any, any) {},
			opts: []Option{WithParamNames("a")},
			want: tcerrors.ErrParamNamesMismatch,
		},
		{
			name: "unknown keyword parameter",
			decl: Declare().Keyword("missing", Type[int]()),
			fn:   func(any) {},
			opts: []Option{WithParamNames("a")},
			want: tcerrors.ErrUnknownParameter,
		},
		{
			name: "keyword on variadic parameter",
			decl: Declare().Keyword("rest", Type[int]()),
			fn:   func(any, ...any) {},
			opts: []Option{WithParamNames("a", "rest")},
			want: tcerrors.ErrUnknownParameter,
		},
		{
			name: "keyword on receiver",
			decl: Declare().Keyword("self", Type[int]()),
			fn:   func(any, any) {},
			opts: []Option{AsMethod(), WithParamNames("self", "a")},
			want: tcerrors.ErrUnknownParameter,
		},
		{
			name: "keyword overlapping positional spec",
			decl: Declare(Type[int]()).Keyword("a", Type[string]()),
			fn:   func(any, any) {},
			opts: []Option{WithParamNames("a", "b")},
			want: tcerrors.ErrConflictingSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := New(tt.decl)
			require.NoError(t, err)
			_, err = WrapFunc(d, tt.fn, tt.opts...)
			assert.True(t, errors.Is(err, tt.want), "WrapFunc() error = %v, want %v", err, tt.want)
		})
	}
}

func TestExpandVariadic(t *testing.T) {
	t.Parallel()

	s, i := Type[string](), Type[int]()
	assert.Equal(t, []TypeSpec{s, i, i, i}, expandVariadic([]TypeSpec{s, i}, 1, 3))
	assert.Equal(t, []TypeSpec{s}, expandVariadic([]TypeSpec{s, i}, 1, 0))
	assert.Equal(t, []TypeSpec{s}, expandVariadic([]TypeSpec{s}, 1, 3))
}

func TestRuntimeFuncName(t *testing.T) {
	t.Parallel()

	d, err := New(Declare(Type[int]()), WithMetrics(false))
	require.NoError(t, err)

	w := MustWrapFunc(d, namedForRuntime)
	err = w("x")
	var ae *ArgumentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "namedForRuntime", ae.Function)
}

func namedForRuntime(any) error { return nil }
