package typecheck

import (
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/typecheck/errors"
	"github.com/ygrebnov/typecheck/internal/binder"
)

// KeywordSpec is a TypeSpec bound to a parameter name.
type KeywordSpec struct {
	Name string
	Spec TypeSpec
}

// Declaration is the full set of type specs attached to a callable: an
// ordered positional list and an ordered list of keyword specs. Keyword specs
// are checked in the order they were declared.
//
// Declaration methods never modify the receiver.
type Declaration struct {
	positional []TypeSpec
	keywords   []KeywordSpec
}

// Declare returns a Declaration with the given positional specs.
func Declare(positional ...TypeSpec) Declaration {
	d := Declaration{}
	if len(positional) > 0 {
		d.positional = append([]TypeSpec(nil), positional...)
	}
	return d
}

// Keyword returns a copy of d with a keyword spec appended.
func (d Declaration) Keyword(name string, spec TypeSpec) Declaration {
	kws := make([]KeywordSpec, len(d.keywords), len(d.keywords)+1)
	copy(kws, d.keywords)
	return Declaration{
		positional: d.positional,
		keywords:   append(kws, KeywordSpec{Name: name, Spec: spec}),
	}
}

// Positional returns a copy of the positional specs.
func (d Declaration) Positional() []TypeSpec {
	return append([]TypeSpec(nil), d.positional...)
}

// Keywords returns a copy of the keyword specs in declaration order.
func (d Declaration) Keywords() []KeywordSpec {
	return append([]KeywordSpec(nil), d.keywords...)
}

// Validate reports declaration-level misconfiguration: empty or duplicate
// keyword names.
func (d Declaration) Validate() error {
	seen := make(map[string]struct{}, len(d.keywords))
	for _, kw := range d.keywords {
		if kw.Name == "" {
			return errors.ErrEmptyKeywordName
		}
		if _, dup := seen[kw.Name]; dup {
			return errorc.With(
				errors.ErrDuplicateKeywordSpec,
				errorc.String(errors.ErrorFieldArgumentName, kw.Name),
			)
		}
		seen[kw.Name] = struct{}{}
	}
	return nil
}

// checkCapacity verifies the positional specs fit a callable taking params
// parameters under the given receiver mode.
func (d Declaration) checkCapacity(funcName string, mode binder.ReceiverMode, params int) error {
	if mode == binder.ReceiverExplicit && params == 0 {
		return errorc.With(errors.ErrMissingReceiver, errorc.String(errors.ErrorFieldFunctionName, funcName))
	}
	capacity := binder.PositionalCapacity(mode, params)
	if len(d.positional) > capacity {
		return errorc.With(
			errors.ErrTooManyPositionalSpecs,
			errorc.String(errors.ErrorFieldFunctionName, funcName),
			errorc.String(errors.ErrorFieldParamCount, strconv.Itoa(capacity)),
			errorc.String(errors.ErrorFieldSpecCount, strconv.Itoa(len(d.positional))),
		)
	}
	return nil
}

func (d Declaration) binderKeywords() []binder.Keyword[TypeSpec] {
	if len(d.keywords) == 0 {
		return nil
	}
	out := make([]binder.Keyword[TypeSpec], len(d.keywords))
	for i, kw := range d.keywords {
		out[i] = binder.Keyword[TypeSpec]{Name: kw.Name, Spec: kw.Spec}
	}
	return out
}
