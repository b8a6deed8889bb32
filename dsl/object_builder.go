package dsl

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/reoring/safefn"
)

// UnknownPolicy controls keys that no field declares.
type UnknownPolicy int

const (
	// UnknownStrict reports each unknown key as an issue.
	UnknownStrict UnknownPolicy = iota
	// UnknownStrip drops unknown keys.
	UnknownStrip
	// UnknownPassthrough collects unknown keys under a target field.
	UnknownPassthrough
)

type objectBuilder struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy UnknownPolicy
	unknownTarget string
	refines       []objRefine
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder with safe defaults (UnknownStrict).
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]AnyAdapter{},
		required:      map[string]struct{}{},
		unknownPolicy: UnknownStrict,
	}
}

// Field registers a field. Any safefn.Schema is accepted and adapted.
func (b *objectBuilder) Field(name string, s safefn.Schema) *fieldStep {
	b.fields[name] = Adapt(s)
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

// Default sets a default for the current field. A missing field takes the
// default, which is then validated like a supplied value.
func (f *fieldStep) Default(v any) *objectBuilder {
	f.b.fields[f.name] = f.b.fields[f.name].Default(v)
	return f.b
}

func (f *fieldStep) Field(name string, s safefn.Schema) *fieldStep { return f.b.Field(name, s) }
func (f *fieldStep) UnknownStrict() *objectBuilder                 { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder                  { return f.b.UnknownStrip() }
func (f *fieldStep) UnknownPassthrough(target string) *objectBuilder {
	return f.b.UnknownPassthrough(target)
}
func (f *fieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	return f.b.Refine(name, fn)
}
func (f *fieldStep) Build() (Schema, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() Schema      { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict sets unknown policy to Strict.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = UnknownStrict
	b.unknownTarget = ""
	return b
}

// UnknownStrip sets unknown policy to Strip.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = UnknownStrip
	b.unknownTarget = ""
	return b
}

// UnknownPassthrough keeps unknown keys in a map stored under target.
func (b *objectBuilder) UnknownPassthrough(target string) *objectBuilder {
	b.unknownPolicy = UnknownPassthrough
	b.unknownTarget = target
	return b
}

// Refine adds an object-level check executed once every field is valid.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: name, fn: fn})
	return b
}

var errUnknownTarget = errors.New("dsl: passthrough target must not be empty")

// Build validates the builder and returns a Schema. The builder may be
// reused afterwards; the schema keeps its own copy of the fields.
func (b *objectBuilder) Build() (Schema, error) {
	if b.unknownPolicy == UnknownPassthrough {
		if b.unknownTarget == "" {
			return nil, errUnknownTarget
		}
		if _, clash := b.fields[b.unknownTarget]; clash {
			return nil, fmt.Errorf("dsl: passthrough target %q is also a declared field", b.unknownTarget)
		}
	}
	for name := range b.required {
		if _, ok := b.fields[name]; !ok {
			return nil, fmt.Errorf("dsl: required field %q is not declared", name)
		}
	}
	fields := make(map[string]AnyAdapter, len(b.fields))
	keys := make([]string, 0, len(b.fields))
	for k, ad := range b.fields {
		fields[k] = ad
		keys = append(keys, k)
	}
	sort.Strings(keys)
	required := make(map[string]struct{}, len(b.required))
	for k := range b.required {
		required[k] = struct{}{}
	}
	return &objectSchema{
		fields:        fields,
		required:      required,
		unknownPolicy: b.unknownPolicy,
		unknownTarget: b.unknownTarget,
		refines:       append([]objRefine(nil), b.refines...),
		sortedKeys:    keys,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
