package dsl

import (
	"context"

	"github.com/reoring/safefn"
	js "github.com/reoring/safefn/jsonschema"
)

// ArraySchema validates every element of a list against one element schema.
// The normalized value is a []any.
type ArraySchema struct {
	elem     AnyAdapter
	min, max *int
}

// Array returns a list schema whose elements satisfy elem.
func Array(elem safefn.Schema) ArraySchema { return ArraySchema{elem: Adapt(elem)} }

func (a ArraySchema) Min(n int) ArraySchema { a.min = &n; return a }
func (a ArraySchema) Max(n int) ArraySchema { a.max = &n; return a }

func (a ArraySchema) Default(v any) AnyAdapter { return Adapt(a).Default(v) }
func (a ArraySchema) Nullable() AnyAdapter     { return Adapt(a).Nullable() }

func (a ArraySchema) Validate(ctx context.Context, v any) safefn.Outcome {
	list, ok := asList(v)
	if !ok {
		return invalidType("expected array")
	}
	var iss safefn.Issues
	if a.min != nil && len(list) < *a.min {
		iss = append(iss, issue("/", safefn.CodeTooShort, "", map[string]any{"min": *a.min, "got": len(list)}))
	}
	if a.max != nil && len(list) > *a.max {
		iss = append(iss, issue("/", safefn.CodeTooLong, "", map[string]any{"max": *a.max, "got": len(list)}))
	}
	parts := make([]safefn.Outcome, len(list))
	for i, el := range list {
		parts[i] = a.elem.Validate(ctx, el)
	}
	return join(parts, func(settled []safefn.Outcome) safefn.Outcome {
		return collect(iss, settled)
	})
}

func (a ArraySchema) JSONSchema() (*js.Schema, error) {
	items, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "array", Items: items, MinItems: a.min, MaxItems: a.max}, nil
}

// collect merges settled element outcomes into one list outcome.
func collect(iss safefn.Issues, settled []safefn.Outcome) safefn.Outcome {
	all := append(safefn.Issues(nil), iss...)
	out := make([]any, len(settled))
	for i, c := range settled {
		if !c.OK() {
			all = append(all, c.Issues().Rebase(indexPath(i))...)
			continue
		}
		out[i] = c.Value()
	}
	if len(all) > 0 {
		return safefn.Invalid(all...)
	}
	return safefn.Valid(out)
}
