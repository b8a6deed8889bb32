package dsl

import (
	"context"

	"github.com/reoring/safefn"
	js "github.com/reoring/safefn/jsonschema"
)

// TupleSchema validates a fixed-length list with one schema per position.
// It implements safefn.Positional, so a handler declared with a tuple input
// gets trailing defaults backfilled before validation.
type TupleSchema struct {
	items []AnyAdapter
}

var _ safefn.Positional = TupleSchema{}

// Tuple returns a positional schema. Defaults are declared on the items:
//
//	dsl.Tuple(dsl.String(), dsl.Int().Default(10))
func Tuple(items ...safefn.Schema) TupleSchema {
	t := TupleSchema{items: make([]AnyAdapter, len(items))}
	for i, s := range items {
		t.items[i] = Adapt(s)
	}
	return t
}

// Arity is the number of positions.
func (t TupleSchema) Arity() int { return len(t.items) }

// DefaultAt reports the value used when position i is missing: its declared
// default, or nil for a nullable position.
func (t TupleSchema) DefaultAt(i int) (any, bool) {
	if i < 0 || i >= len(t.items) {
		return nil, false
	}
	return absent(t.items[i])
}

func absent(it AnyAdapter) (any, bool) {
	if d, has := it.DefaultValue(); has {
		return d, true
	}
	if it.nullable {
		return nil, true
	}
	return nil, false
}

// Validate accepts lists of at most Arity elements. A missing position takes
// its default (nil when nullable), or is reported as required.
func (t TupleSchema) Validate(ctx context.Context, v any) safefn.Outcome {
	list, ok := asList(v)
	if !ok {
		return invalidType("expected array")
	}
	var iss safefn.Issues
	if len(list) > len(t.items) {
		iss = append(iss, issue("/", safefn.CodeTooLong, "", map[string]any{"max": len(t.items), "got": len(list)}))
	}
	parts := make([]safefn.Outcome, len(t.items))
	for i, it := range t.items {
		if i < len(list) {
			parts[i] = it.Validate(ctx, list[i])
			continue
		}
		d, has := absent(it)
		if !has {
			parts[i] = safefn.Invalid(issue("/", safefn.CodeRequired, "", map[string]any{"index": i}))
			continue
		}
		parts[i] = it.Validate(ctx, d)
	}
	return join(parts, func(settled []safefn.Outcome) safefn.Outcome {
		return collect(iss, settled)
	})
}

func (t TupleSchema) JSONSchema() (*js.Schema, error) {
	prefix := make([]*js.Schema, len(t.items))
	required := 0
	for i, it := range t.items {
		s, err := it.JSONSchema()
		if err != nil {
			return nil, err
		}
		prefix[i] = s
		if _, has := absent(it); !has {
			required = i + 1
		}
	}
	n := len(t.items)
	return &js.Schema{Type: "array", PrefixItems: prefix, MinItems: &required, MaxItems: &n}, nil
}
