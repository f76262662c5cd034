// Package manifest loads typecheck declarations for named functions from YAML.
//
//	functions:
//	  sum_print:
//	    receiver: none        # none | explicit | detect
//	    args: [int, int]
//	    kwargs:
//	      prompt: string
//
// Argument specs use the typecheck expression syntax and are resolved against
// a typecheck.Registry. Keyword order is preserved.
package manifest

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ygrebnov/errorc"
	"gopkg.in/yaml.v3"

	"github.com/ygrebnov/typecheck"
	"github.com/ygrebnov/typecheck/errors"
)

// Function is a declaration attached to a function name.
type Function struct {
	Name        string
	Receiver    typecheck.ReceiverMode
	Declaration typecheck.Declaration
}

// Options returns the decorator options implied by the receiver mode.
func (f Function) Options() []typecheck.Option {
	return []typecheck.Option{typecheck.WithName(f.Name), typecheck.WithReceiverMode(f.Receiver)}
}

// Manifest is a set of function declarations in document order.
type Manifest struct {
	functions map[string]Function
	order     []string
}

type document struct {
	Functions yaml.Node `yaml:"functions"`
}

type functionDoc struct {
	Receiver string    `yaml:"receiver"`
	Args     []string  `yaml:"args"`
	Kwargs   yaml.Node `yaml:"kwargs"`
}

// LoadFile reads a manifest from path.
func LoadFile(path string, reg *typecheck.Registry) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, reg)
}

// Load decodes a manifest. A nil registry means typecheck.DefaultRegistry().
func Load(r io.Reader, reg *typecheck.Registry) (*Manifest, error) {
	if reg == nil {
		reg = typecheck.DefaultRegistry()
	}
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return &Manifest{functions: map[string]Function{}}, nil
		}
		return nil, errorc.With(errors.ErrInvalidManifest, errorc.String(errors.ErrorFieldCause, err.Error()))
	}

	m := &Manifest{functions: make(map[string]Function)}
	if isNull(&doc.Functions) {
		return m, nil
	}
	if doc.Functions.Kind != yaml.MappingNode {
		return nil, invalid("functions", "must be a mapping")
	}

	for i := 0; i+1 < len(doc.Functions.Content); i += 2 {
		k, v := doc.Functions.Content[i], doc.Functions.Content[i+1]
		name := k.Value
		if _, dup := m.functions[name]; dup {
			return nil, invalid(name, "duplicate function at line "+strconv.Itoa(k.Line))
		}
		fn, err := decodeFunction(name, v, reg)
		if err != nil {
			return nil, err
		}
		m.functions[name] = fn
		m.order = append(m.order, name)
	}
	return m, nil
}

func decodeFunction(name string, n *yaml.Node, reg *typecheck.Registry) (Function, error) {
	var fd functionDoc
	if err := n.Decode(&fd); err != nil {
		return Function{}, invalid(name, err.Error())
	}

	mode, err := parseReceiver(fd.Receiver)
	if err != nil {
		return Function{}, invalid(name, err.Error())
	}

	positional := make([]typecheck.TypeSpec, 0, len(fd.Args))
	for _, expr := range fd.Args {
		spec, err := reg.ParseSpec(expr)
		if err != nil {
			return Function{}, err
		}
		positional = append(positional, spec)
	}
	decl := typecheck.Declare(positional...)

	switch {
	case isNull(&fd.Kwargs):
	case fd.Kwargs.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(fd.Kwargs.Content); i += 2 {
			k, v := fd.Kwargs.Content[i], fd.Kwargs.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return Function{}, invalid(name+"."+k.Value, "keyword spec must be a scalar")
			}
			spec, err := reg.ParseSpec(v.Value)
			if err != nil {
				return Function{}, err
			}
			decl = decl.Keyword(k.Value, spec)
		}
	default:
		return Function{}, invalid(name, "kwargs must be a mapping")
	}

	if err := decl.Validate(); err != nil {
		return Function{}, err
	}
	return Function{Name: name, Receiver: mode, Declaration: decl}, nil
}

// isNull reports whether n is absent or an explicit null.
func isNull(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func parseReceiver(s string) (typecheck.ReceiverMode, error) {
	switch s {
	case "", typecheck.ReceiverNone.String():
		return typecheck.ReceiverNone, nil
	case typecheck.ReceiverExplicit.String():
		return typecheck.ReceiverExplicit, nil
	case typecheck.ReceiverDetect.String():
		return typecheck.ReceiverDetect, nil
	default:
		return typecheck.ReceiverNone, fmt.Errorf("unknown receiver mode %q", s)
	}
}

func invalid(key, cause string) error {
	return errorc.With(
		errors.ErrInvalidManifest,
		errorc.String(errors.ErrorFieldManifestKey, key),
		errorc.String(errors.ErrorFieldCause, cause),
	)
}

// Names returns function names in document order.
func (m *Manifest) Names() []string {
	return append([]string(nil), m.order...)
}

// Function returns the declaration for name.
func (m *Manifest) Function(name string) (Function, bool) {
	f, ok := m.functions[name]
	return f, ok
}

// Decorator builds a decorator for name. With a nil handler the decorator
// rejects mismatching arguments; otherwise handler receives them and calls
// proceed. Extra options are applied after the manifest's own.
func (m *Manifest) Decorator(name string, handler typecheck.FailureHandler, opts ...typecheck.Option) (*typecheck.Decorator, error) {
	f, ok := m.functions[name]
	if !ok {
		return nil, errorc.With(errors.ErrUnknownFunction, errorc.String(errors.ErrorFieldFunctionName, name))
	}
	all := append(f.Options(), opts...)
	if handler == nil {
		return typecheck.New(f.Declaration, all...)
	}
	return typecheck.NewPlus(handler, f.Declaration, all...)
}
