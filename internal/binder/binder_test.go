package binder

import (
	"reflect"
	"testing"
)

type person struct{ first string }

func (p person) GetName() string { return p.first }

type ptrOnly struct{}

func (p *ptrOnly) Save() {}

type withField struct {
	Render func()
}

type withFlags struct {
	Render string
	Tags   []string
	Count  int
}

func TestBind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Input[string]
		want []Entry[string]
	}{
		{
			name: "positional and keyword in declaration order",
			in: Input[string]{
				FuncName:   "sum_print",
				Params:     []string{"x", "y", "prompt"},
				Positional: []string{"int", "int"},
				Keywords:   []Keyword[string]{{Name: "prompt", Spec: "string"}},
				Args:       []any{1, "bad"},
				Kwargs:     map[string]any{"prompt": 42},
			},
			want: []Entry[string]{
				{Name: "x", Index: 0, Value: 1, Spec: "int"},
				{Name: "y", Index: 1, Value: "bad", Spec: "int"},
				{Name: "prompt", Index: -1, Value: 42, Spec: "string"},
			},
		},
		{
			name: "omitted keyword is not synthesized",
			in: Input[string]{
				Params:     []string{"x", "y", "prompt"},
				Positional: []string{"int", "int"},
				Keywords:   []Keyword[string]{{Name: "prompt", Spec: "string"}},
				Args:       []any{1, 2},
			},
			want: []Entry[string]{
				{Name: "x", Index: 0, Value: 1, Spec: "int"},
				{Name: "y", Index: 1, Value: 2, Spec: "int"},
			},
		},
		{
			name: "undeclared arguments pass through",
			in: Input[string]{
				Params:     []string{"x", "y"},
				Positional: []string{"int"},
				Args:       []any{1, 2},
				Kwargs:     map[string]any{"extra": true},
			},
			want: []Entry[string]{
				{Name: "x", Index: 0, Value: 1, Spec: "int"},
			},
		},
		{
			name: "keyword order follows declaration, not call",
			in: Input[string]{
				Keywords: []Keyword[string]{{Name: "b", Spec: "B"}, {Name: "a", Spec: "A"}},
				Kwargs:   map[string]any{"a": 1, "b": 2},
			},
			want: []Entry[string]{
				{Name: "b", Index: -1, Value: 2, Spec: "B"},
				{Name: "a", Index: -1, Value: 1, Spec: "A"},
			},
		},
		{
			name: "fewer arguments than specs",
			in: Input[string]{
				Params:     []string{"x", "y"},
				Positional: []string{"int", "int"},
				Args:       []any{1},
			},
			want: []Entry[string]{
				{Name: "x", Index: 0, Value: 1, Spec: "int"},
			},
		},
		{
			name: "explicit receiver is skipped",
			in: Input[string]{
				Params:     []string{"self", "capitalize"},
				Receiver:   ReceiverExplicit,
				Positional: []string{"bool"},
				Args:       []any{person{}, true},
			},
			want: []Entry[string]{
				{Name: "capitalize", Index: 0, Value: true, Spec: "bool"},
			},
		},
		{
			name: "detected receiver is skipped",
			in: Input[string]{
				FuncName:   "GetName",
				Params:     []string{"self", "capitalize"},
				Receiver:   ReceiverDetect,
				Positional: []string{"bool"},
				Args:       []any{person{}, true},
			},
			want: []Entry[string]{
				{Name: "capitalize", Index: 0, Value: true, Spec: "bool"},
			},
		},
		{
			name: "detection leaves a plain first argument in place",
			in: Input[string]{
				FuncName:   "make",
				Params:     []string{"first_name", "age"},
				Receiver:   ReceiverDetect,
				Positional: []string{"string", "int"},
				Args:       []any{"Juan", 37},
			},
			want: []Entry[string]{
				{Name: "first_name", Index: 0, Value: "Juan", Spec: "string"},
				{Name: "age", Index: 1, Value: 37, Spec: "int"},
			},
		},
		{
			name: "detection ignores an empty field named like the function",
			in: Input[string]{
				FuncName:   "Render",
				Params:     []string{"opts", "n"},
				Receiver:   ReceiverDetect,
				Positional: []string{"withFlags", "int"},
				Args:       []any{withFlags{}, 1},
			},
			want: []Entry[string]{
				{Name: "opts", Index: 0, Value: withFlags{}, Spec: "withFlags"},
				{Name: "n", Index: 1, Value: 1, Spec: "int"},
			},
		},
		{
			name: "no arguments",
			in: Input[string]{
				Params:     []string{"x"},
				Receiver:   ReceiverExplicit,
				Positional: []string{"int"},
			},
			want: []Entry[string]{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Bind(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Bind()\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}

func TestHasMember(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    any
		fn   string
		want bool
	}{
		{"value method", person{}, "GetName", true},
		{"pointer to value method", &person{}, "GetName", true},
		{"pointer method on value", ptrOnly{}, "Save", true},
		{"pointer method on pointer", &ptrOnly{}, "Save", true},
		{"set struct field", withField{Render: func() {}}, "Render", true},
		{"set struct field through pointer", &withField{Render: func() {}}, "Render", true},
		{"nil func field", withField{}, "Render", false},
		{"nil pointer with field", (*withField)(nil), "Render", false},
		{"empty string field", withFlags{}, "Render", false},
		{"non-empty string field", withFlags{Render: "html"}, "Render", true},
		{"empty slice field", withFlags{Tags: []string{}}, "Tags", false},
		{"non-empty slice field", withFlags{Tags: []string{"a"}}, "Tags", true},
		{"zero int field", withFlags{}, "Count", false},
		{"non-zero int field", withFlags{Count: 1}, "Count", true},
		{"missing member", person{}, "Other", false},
		{"scalar", 42, "GetName", false},
		{"untyped nil", nil, "GetName", false},
		{"empty name", person{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasMember(tt.v, tt.fn); got != tt.want {
				t.Fatalf("HasMember(%T, %q) = %v, want %v", tt.v, tt.fn, got, tt.want)
			}
		})
	}
}

func TestPositionalCapacity(t *testing.T) {
	t.Parallel()

	if got := PositionalCapacity(ReceiverNone, 3); got != 3 {
		t.Fatalf("none: got %d, want 3", got)
	}
	if got := PositionalCapacity(ReceiverExplicit, 3); got != 2 {
		t.Fatalf("explicit: got %d, want 2", got)
	}
	if got := PositionalCapacity(ReceiverExplicit, 0); got != 0 {
		t.Fatalf("explicit, no params: got %d, want 0", got)
	}
	if got := PositionalCapacity(ReceiverDetect, 3); got != 3 {
		t.Fatalf("detect: got %d, want 3", got)
	}
}

func TestReceiverMode_String(t *testing.T) {
	t.Parallel()

	for mode, want := range map[ReceiverMode]string{
		ReceiverNone:     "none",
		ReceiverExplicit: "explicit",
		ReceiverDetect:   "detect",
		ReceiverMode(42): "unknown",
	} {
		if got := mode.String(); got != want {
			t.Fatalf("ReceiverMode(%d).String() = %q, want %q", int(mode), got, want)
		}
	}
}
