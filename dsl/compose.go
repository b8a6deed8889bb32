package dsl

import (
	"context"
	"reflect"
	"strconv"

	"github.com/reoring/safefn"
	"github.com/reoring/safefn/i18n"
	js "github.com/reoring/safefn/jsonschema"
)

// Schema is implemented by every DSL schema: the safefn adapter contract
// plus JSON Schema export.
type Schema interface {
	safefn.Schema
	JSONSchema() (*js.Schema, error)
}

// defaulter is implemented by schemas carrying a declared default.
type defaulter interface {
	DefaultValue() (any, bool)
}

func issue(path, code, hint string, params map[string]any) safefn.Issue {
	return safefn.Issue{Path: path, Code: code, Message: i18n.T(code, nil), Hint: hint, Params: params}
}

func invalidType(hint string) safefn.Outcome {
	return safefn.Invalid(issue("/", safefn.CodeInvalidType, hint, nil))
}

// then applies next to o once it is settled. A pending o keeps the result
// pending.
func then(ctx context.Context, o safefn.Outcome, next func(context.Context, safefn.Outcome) safefn.Outcome) safefn.Outcome {
	if !o.Pending() {
		return next(ctx, o)
	}
	return safefn.Defer(func(ctx context.Context) safefn.Outcome {
		return next(ctx, o.Await(ctx))
	})
}

// join settles child outcomes and hands them to finish. If any child is
// pending the parent is pending too, so synchronous callers can reject it
// without running the deferred work.
func join(parts []safefn.Outcome, finish func([]safefn.Outcome) safefn.Outcome) safefn.Outcome {
	for _, p := range parts {
		if p.Pending() {
			return safefn.Defer(func(ctx context.Context) safefn.Outcome {
				settled := make([]safefn.Outcome, len(parts))
				for i, c := range parts {
					settled[i] = c.Await(ctx)
				}
				return finish(settled)
			})
		}
	}
	return finish(parts)
}

// asList accepts []any and any other slice or array kind.
func asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		// []byte is a value, not a list.
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func indexPath(i int) string { return "/" + strconv.Itoa(i) }

func describe(s safefn.Schema) (*js.Schema, error) {
	if d, ok := s.(safefn.Describer); ok {
		return d.JSONSchema()
	}
	return &js.Schema{}, nil
}
