package dsl

import (
	"context"
	"fmt"

	"github.com/reoring/safefn"
	js "github.com/reoring/safefn/jsonschema"
)

// AnyAdapter wraps any safefn.Schema with DSL decorations: defaults,
// nullability, and refinements. It keeps the original schema to support
// JSON Schema augmentation.
type AnyAdapter struct {
	validate   func(context.Context, any) safefn.Outcome
	jsonSchema func() (*js.Schema, error)
	def        func() any
	orig       safefn.Schema
	nullable   bool
}

var _ Schema = AnyAdapter{}

// Adapt wraps s. Adapting an AnyAdapter returns it unchanged.
func Adapt(s safefn.Schema) AnyAdapter {
	if ad, ok := s.(AnyAdapter); ok {
		return ad
	}
	ad := AnyAdapter{
		validate:   s.Validate,
		jsonSchema: func() (*js.Schema, error) { return describe(s) },
		orig:       s,
	}
	if d, ok := s.(defaulter); ok {
		if _, has := d.DefaultValue(); has {
			ad.def = func() any {
				v, _ := d.DefaultValue()
				return v
			}
		}
	}
	return ad
}

// Orig returns the schema this adapter was created from.
func (ad AnyAdapter) Orig() safefn.Schema { return ad.orig }

func (ad AnyAdapter) Validate(ctx context.Context, v any) safefn.Outcome {
	if ad.validate == nil {
		return safefn.Valid(v)
	}
	return ad.validate(ctx, v)
}

func (ad AnyAdapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	s, err := ad.jsonSchema()
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &js.Schema{}
	}
	return s, nil
}

// DefaultValue returns the declared default. Computed defaults are evaluated
// on every call.
func (ad AnyAdapter) DefaultValue() (any, bool) {
	if ad.def == nil {
		return nil, false
	}
	return ad.def(), true
}

// Default declares a static default used when the value is missing from a
// tuple or object. The default is validated like any supplied value.
func (ad AnyAdapter) Default(v any) AnyAdapter {
	out := ad
	out.def = func() any { return v }
	prev := ad.jsonSchema
	out.jsonSchema = func() (*js.Schema, error) {
		s, err := AnyAdapter{jsonSchema: prev}.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Default = v
		return s, nil
	}
	return out
}

// DefaultFunc declares a computed default.
func (ad AnyAdapter) DefaultFunc(fn func() any) AnyAdapter {
	out := ad
	out.def = fn
	return out
}

// Nullable accepts nil in addition to the wrapped schema's values.
func (ad AnyAdapter) Nullable() AnyAdapter {
	prev := ad.validate
	prevJSON := ad.jsonSchema
	out := ad
	out.nullable = true
	out.validate = func(ctx context.Context, v any) safefn.Outcome {
		if v == nil {
			return safefn.Valid(nil)
		}
		if prev == nil {
			return safefn.Valid(v)
		}
		return prev(ctx, v)
	}
	out.jsonSchema = func() (*js.Schema, error) {
		s, err := AnyAdapter{jsonSchema: prevJSON}.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Nullable = true
		return s, nil
	}
	return out
}

// Refine adds a check that runs after the wrapped schema accepted the value.
// A returned Issues error is kept as is; other errors become a single
// "custom" issue.
func (ad AnyAdapter) Refine(name string, fn func(ctx context.Context, v any) error) AnyAdapter {
	if fn == nil {
		return ad
	}
	prev := ad.Validate
	out := ad
	out.validate = func(ctx context.Context, v any) safefn.Outcome {
		return then(ctx, prev(ctx, v), func(ctx context.Context, o safefn.Outcome) safefn.Outcome {
			if !o.OK() {
				return o
			}
			return refineOutcome(ctx, name, fn, o.Value())
		})
	}
	return out
}

// RefineAsync is like Refine but the check may suspend (for example to
// consult an external service), so the outcome is pending. Synchronous
// handlers reject schemas using it.
func (ad AnyAdapter) RefineAsync(name string, fn func(ctx context.Context, v any) error) AnyAdapter {
	if fn == nil {
		return ad
	}
	prev := ad.Validate
	out := ad
	out.validate = func(ctx context.Context, v any) safefn.Outcome {
		first := prev(ctx, v)
		return safefn.Defer(func(ctx context.Context) safefn.Outcome {
			o := first.Await(ctx)
			if !o.OK() {
				return o
			}
			return refineOutcome(ctx, name, fn, o.Value())
		})
	}
	return out
}

func refineOutcome(ctx context.Context, name string, fn func(context.Context, any) error, v any) safefn.Outcome {
	err := fn(ctx, v)
	if err == nil {
		return safefn.Valid(v)
	}
	if iss, ok := safefn.AsIssues(err); ok && len(iss) > 0 {
		return safefn.Invalid(iss...)
	}
	return safefn.Invalid(safefn.Issue{
		Path:    "/",
		Code:    safefn.CodeCustom,
		Message: err.Error(),
		Hint:    fmt.Sprintf("refine %q", name),
	})
}

// ---- shorthands ----

// Default wraps s with a static default.
func Default(s safefn.Schema, v any) AnyAdapter { return Adapt(s).Default(v) }

// Nullable wraps s to also accept nil.
func Nullable(s safefn.Schema) AnyAdapter { return Adapt(s).Nullable() }

// Refine wraps s with a synchronous check.
func Refine(s safefn.Schema, name string, fn func(ctx context.Context, v any) error) AnyAdapter {
	return Adapt(s).Refine(name, fn)
}

// RefineAsync wraps s with a check whose outcome is always pending.
func RefineAsync(s safefn.Schema, name string, fn func(ctx context.Context, v any) error) AnyAdapter {
	return Adapt(s).RefineAsync(name, fn)
}
