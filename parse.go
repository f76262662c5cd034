package typecheck

import (
	"reflect"
	"strings"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/typecheck/constants"
	"github.com/ygrebnov/typecheck/errors"
	"github.com/ygrebnov/typecheck/internal/parse"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// ParseSpec parses a single TypeSpec expression using the default registry.
func ParseSpec(expr string) (TypeSpec, error) { return DefaultRegistry().ParseSpec(expr) }

// ParseDeclaration parses a declaration expression using the default registry.
func ParseDeclaration(expr string) (Declaration, error) {
	return DefaultRegistry().ParseDeclaration(expr)
}

// MustParseDeclaration is like ParseDeclaration but panics on error.
func MustParseDeclaration(expr string) Declaration {
	d, err := ParseDeclaration(expr)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseSpec parses a TypeSpec expression. Accepted forms:
//   - a registered name: int, string, duration
//   - a pointer or slice of a name: *int, []string, []any
//   - a disjunction: oneof(int, string)
//   - any or - for an unchecked parameter
func (r *Registry) ParseSpec(expr string) (TypeSpec, error) {
	if v, ok := r.specs.Load(expr); ok {
		return v.(TypeSpec), nil
	}
	if !parse.Balanced(expr) {
		return TypeSpec{}, invalidExpression(expr)
	}
	spec, err := r.parseSpec(expr)
	if err != nil {
		return TypeSpec{}, err
	}
	r.specs.Store(expr, spec)
	return spec, nil
}

// ParseDeclaration parses a comma-separated list of positional specs followed
// by name=spec keyword specs, e.g. "int, int, prompt=string". Keyword specs
// keep their order. An empty expression declares nothing.
func (r *Registry) ParseDeclaration(expr string) (Declaration, error) {
	if v, ok := r.decls.Load(expr); ok {
		return v.(Declaration), nil
	}
	if !parse.Balanced(expr) {
		return Declaration{}, invalidExpression(expr)
	}

	d := Declaration{}
	if strings.TrimSpace(expr) != "" {
		keywords := false
		for _, tok := range parse.Split(expr) {
			name, specExpr, isKeyword := splitKeyword(tok)
			if !isKeyword {
				if keywords {
					// positional after keyword
					return Declaration{}, invalidExpression(expr)
				}
				spec, err := r.parseSpec(tok)
				if err != nil {
					return Declaration{}, err
				}
				d.positional = append(d.positional, spec)
				continue
			}
			keywords = true
			if name == "" {
				return Declaration{}, errors.ErrEmptyKeywordName
			}
			spec, err := r.parseSpec(specExpr)
			if err != nil {
				return Declaration{}, err
			}
			d = d.Keyword(name, spec)
		}
	}
	if err := d.Validate(); err != nil {
		return Declaration{}, err
	}
	r.decls.Store(expr, d)
	return d, nil
}

func (r *Registry) parseSpec(expr string) (TypeSpec, error) {
	expr = strings.TrimSpace(expr)
	switch expr {
	case "":
		return TypeSpec{}, invalidExpression(expr)
	case constants.TypeNameAny, constants.TypeNameSkip:
		return Any(), nil
	}

	tok := parse.ParseToken(expr)
	if !tok.Call {
		t, err := r.parseType(expr)
		if err != nil {
			return TypeSpec{}, err
		}
		return Of(t), nil
	}
	if tok.Name != constants.TypeNameOneOf || len(tok.Params) == 0 {
		return TypeSpec{}, invalidExpression(expr)
	}
	specs := make([]TypeSpec, 0, len(tok.Params))
	for _, p := range tok.Params {
		s, err := r.parseSpec(p)
		if err != nil {
			return TypeSpec{}, err
		}
		specs = append(specs, s)
	}
	return OneOf(specs...), nil
}

func (r *Registry) parseType(name string) (reflect.Type, error) {
	switch {
	case strings.HasPrefix(name, constants.TypePrefixPointer):
		elem, err := r.parseType(strings.TrimSpace(name[len(constants.TypePrefixPointer):]))
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil
	case strings.HasPrefix(name, constants.TypePrefixSlice):
		elem, err := r.parseType(strings.TrimSpace(name[len(constants.TypePrefixSlice):]))
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case name == constants.TypeNameAny:
		return anyType, nil
	}
	t, ok := r.Lookup(name)
	if !ok {
		return nil, errorc.With(errors.ErrUnknownTypeName, errorc.String(errors.ErrorFieldTypeName, name))
	}
	return t, nil
}

// splitKeyword splits "name=spec". Only an '=' outside parentheses counts.
func splitKeyword(tok string) (name, spec string, ok bool) {
	depth := 0
	for i, c := range tok {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case '=':
			if depth == 0 {
				return strings.TrimSpace(tok[:i]), strings.TrimSpace(tok[i+1:]), true
			}
		}
	}
	return "", "", false
}

func invalidExpression(expr string) error {
	return errorc.With(errors.ErrInvalidExpression, errorc.String(errors.ErrorFieldExpression, expr))
}
