package safefn

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	js "github.com/reoring/safefn/jsonschema"
)

// Declaration describes a handler contract: input, output, and error schemas
// plus configuration. It is an immutable value; every method returns a new
// Declaration, so callables bound earlier never observe later changes.
type Declaration struct {
	input  Schema
	output Schema
	kinds  []ErrorKind
	cfg    Config
	log    zerolog.Logger
}

// New starts a declaration.
func New(opts ...Option) Declaration {
	d := Declaration{log: zerolog.Nop()}
	for _, o := range opts {
		o(&d)
	}
	return d
}

// Input sets the input schema. Use a Positional schema (such as dsl.Tuple)
// to validate several positional arguments with per-slot defaults.
func (d Declaration) Input(s Schema) Declaration {
	d.input = s
	return d
}

// Output sets the output schema.
func (d Declaration) Output(s Schema) Declaration {
	d.output = s
	return d
}

// Errors sets the declared error kinds. Classification tries them in the
// given order.
func (d Declaration) Errors(kinds ...ErrorKind) Declaration {
	d.kinds = slices.Clone(kinds)
	return d
}

// With applies options to a copy of the declaration.
func (d Declaration) With(opts ...Option) Declaration {
	d.kinds = slices.Clone(d.kinds)
	for _, o := range opts {
		o(&d)
	}
	return d
}

// Config returns the declaration's configuration.
func (d Declaration) Config() Config { return d.cfg }

// Kinds returns a copy of the declared error kinds.
func (d Declaration) Kinds() []ErrorKind { return slices.Clone(d.kinds) }

// Check reports why the declaration cannot be bound, or nil.
func (d Declaration) Check() error {
	var errs []error
	if d.input == nil {
		errs = append(errs, ErrMissingInput)
	}
	if d.output == nil {
		errs = append(errs, ErrMissingOutput)
	}
	seen := make(map[string]struct{}, len(d.kinds))
	for _, k := range d.kinds {
		if err := k.check(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[k.name]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate kind %q", ErrInvalidKind, k.name))
		}
		seen[k.name] = struct{}{}
	}
	return errors.Join(errs...)
}

// HandlerSync binds fn under the synchronous contract. It panics with a
// *DefinitionError when the declaration is incomplete.
func (d Declaration) HandlerSync(fn Func) SyncFunc {
	w := d.bind(fn, ModeSync)
	return func(ctx context.Context, args ...any) Result {
		return w.call(ctx, args)
	}
}

// Handler binds fn under the asynchronous contract: fn must return a
// *Pending (see Async). Each call runs on its own goroutine. It panics with a
// *DefinitionError when the declaration is incomplete.
func (d Declaration) Handler(fn Func) AsyncFunc {
	w := d.bind(fn, ModeAsync)
	return func(ctx context.Context, args ...any) *Future[Result] {
		raw := slices.Clone(args)
		return Go(func() Result { return w.call(ctx, raw) })
	}
}

func (d Declaration) bind(fn Func, m Mode) *wrapper {
	err := d.Check()
	if fn == nil {
		err = errors.Join(err, ErrMissingHandler)
	}
	if err != nil {
		panic(&DefinitionError{Err: err})
	}
	return &wrapper{decl: d.With(), fn: fn, mode: m}
}

// Description is the JSON Schema projection of a declaration.
type Description struct {
	Input  *js.Schema            `json:"input,omitempty" yaml:"input,omitempty"`
	Output *js.Schema            `json:"output,omitempty" yaml:"output,omitempty"`
	Errors map[string]*js.Schema `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Describe projects every schema that implements Describer. Schemas that do
// not are left out.
func (d Declaration) Describe() (Description, error) {
	var out Description
	var err error
	if out.Input, err = describe(d.input); err != nil {
		return Description{}, fmt.Errorf("input: %w", err)
	}
	if out.Output, err = describe(d.output); err != nil {
		return Description{}, fmt.Errorf("output: %w", err)
	}
	for _, k := range d.kinds {
		s, err := describe(k.schema)
		if err != nil {
			return Description{}, fmt.Errorf("error %q: %w", k.name, err)
		}
		if s == nil {
			continue
		}
		if out.Errors == nil {
			out.Errors = map[string]*js.Schema{}
		}
		out.Errors[k.name] = s
	}
	return out, nil
}

func describe(s Schema) (*js.Schema, error) {
	if ds, ok := s.(Describer); ok {
		return ds.JSONSchema()
	}
	return nil, nil
}
