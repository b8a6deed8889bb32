package safefn

import (
	"context"
	"fmt"

	js "github.com/reoring/safefn/jsonschema"
)

// Schema is the adapter contract every input, output, and error schema
// satisfies. Validate either accepts v, returning the normalized value, or
// rejects it with a non-empty list of issues. The outcome may be pending when
// validation needs to suspend (for example to perform I/O).
type Schema interface {
	Validate(ctx context.Context, v any) Outcome
}

// SchemaFunc adapts an ordinary function to Schema.
type SchemaFunc func(ctx context.Context, v any) Outcome

func (f SchemaFunc) Validate(ctx context.Context, v any) Outcome { return f(ctx, v) }

// Positional is implemented by schemas that describe a fixed-length list of
// positional arguments. DefaultAt reports the declared default of the
// element at index i, if any; computed defaults are evaluated on each call.
type Positional interface {
	Schema
	Arity() int
	DefaultAt(i int) (any, bool)
}

// Describer is implemented by schemas that can project themselves into JSON
// Schema.
type Describer interface {
	JSONSchema() (*js.Schema, error)
}

// Outcome is the result of a Validate call: ready (valid or invalid) or
// pending.
type Outcome struct {
	value    any
	issues   Issues
	deferred func(context.Context) Outcome
}

// Valid returns a ready outcome accepting v.
func Valid(v any) Outcome { return Outcome{value: v} }

// Invalid returns a ready outcome rejecting the input. An empty list is
// replaced by a single generic issue so that the outcome stays invalid.
func Invalid(iss ...Issue) Outcome {
	if len(iss) == 0 {
		iss = Issues{{Path: "/", Code: CodeCustom, Message: "invalid value"}}
	}
	return Outcome{issues: append(Issues(nil), iss...)}
}

// Defer returns a pending outcome. fn runs only when the outcome is awaited.
func Defer(fn func(ctx context.Context) Outcome) Outcome {
	return Outcome{deferred: fn}
}

// OutcomeOf converts a (value, error) pair into a ready outcome. Errors that
// are not Issues become a single parse_error issue at the root.
func OutcomeOf(v any, err error) Outcome {
	if err != nil {
		return Invalid(issuesFromErr("/", err)...)
	}
	return Valid(v)
}

// Pending reports whether the outcome still has deferred work.
func (o Outcome) Pending() bool { return o.deferred != nil }

// OK reports a ready outcome without issues.
func (o Outcome) OK() bool { return o.deferred == nil && len(o.issues) == 0 }

// Value is the normalized value of a successful outcome.
func (o Outcome) Value() any { return o.value }

// Issues lists the problems of a failed outcome.
func (o Outcome) Issues() Issues { return o.issues }

// Await settles a pending outcome on the calling goroutine. Ready outcomes
// are returned unchanged. A panic during deferred validation becomes an
// issue.
func (o Outcome) Await(ctx context.Context) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Invalid(Issue{Path: "/", Code: CodeCustom, Message: fmt.Sprintf("validation panicked: %v", r)})
		}
	}()
	for o.deferred != nil {
		o = o.deferred(ctx)
	}
	return o
}

// FromParser adapts a typed parser to Schema. Issues returned by Parse keep
// their paths; any other error becomes a single root issue.
func FromParser[T any](p interface {
	Parse(ctx context.Context, v any) (T, error)
}) Schema {
	return SchemaFunc(func(ctx context.Context, v any) Outcome {
		out, err := p.Parse(ctx, v)
		if err != nil {
			return OutcomeOf(nil, err)
		}
		return Valid(out)
	})
}
