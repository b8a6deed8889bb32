package dsl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/safefn"
	js "github.com/reoring/safefn/jsonschema"
)

type objectSchema struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy UnknownPolicy
	unknownTarget string
	refines       []objRefine
	sortedKeys    []string
}

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

// Validate checks every declared field in key order, so issue order is
// deterministic. Missing fields take their default; missing required fields
// without one are reported. The normalized value is a fresh map.
func (o *objectSchema) Validate(ctx context.Context, v any) safefn.Outcome {
	src, ok := v.(map[string]any)
	if !ok {
		return invalidType("expected object")
	}

	var iss safefn.Issues
	var keys []string
	var parts []safefn.Outcome
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		val, present := src[k]
		if !present {
			d, has := ad.DefaultValue()
			if !has {
				if _, req := o.required[k]; req {
					iss = append(iss, issue(pointer(k), safefn.CodeRequired, "", map[string]any{"field": k}))
				}
				continue
			}
			val = d
		}
		keys = append(keys, k)
		parts = append(parts, ad.Validate(ctx, val))
	}

	extra, unknown := o.collectUnknown(src)
	iss = append(iss, unknown...)

	return join(parts, func(settled []safefn.Outcome) safefn.Outcome {
		all := append(safefn.Issues(nil), iss...)
		out := make(map[string]any, len(keys)+1)
		for i, c := range settled {
			if !c.OK() {
				all = append(all, c.Issues().Rebase(pointer(keys[i]))...)
				continue
			}
			out[keys[i]] = c.Value()
		}
		if len(all) > 0 {
			return safefn.Invalid(all...)
		}
		if extra != nil {
			out[o.unknownTarget] = extra
		}
		return o.refine(ctx, out)
	})
}

// collectUnknown applies the unknown-key policy. Keys are visited in sorted
// order.
func (o *objectSchema) collectUnknown(src map[string]any) (map[string]any, safefn.Issues) {
	var unknown []string
	for k := range src {
		if _, known := o.fields[k]; !known {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		if o.unknownPolicy == UnknownPassthrough {
			return map[string]any{}, nil
		}
		return nil, nil
	}
	sort.Strings(unknown)
	switch o.unknownPolicy {
	case UnknownStrip:
		return nil, nil
	case UnknownPassthrough:
		extra := make(map[string]any, len(unknown))
		for _, k := range unknown {
			extra[k] = src[k]
		}
		return extra, nil
	default:
		iss := make(safefn.Issues, 0, len(unknown))
		for _, k := range unknown {
			iss = append(iss, issue(pointer(k), safefn.CodeUnknownKey, "", map[string]any{"key": k}))
		}
		return nil, iss
	}
}

func (o *objectSchema) refine(ctx context.Context, out map[string]any) safefn.Outcome {
	var iss safefn.Issues
	for _, r := range o.refines {
		err := r.fn(ctx, out)
		if err == nil {
			continue
		}
		if got, ok := safefn.AsIssues(err); ok && len(got) > 0 {
			iss = append(iss, got...)
			continue
		}
		iss = append(iss, safefn.Issue{
			Path:    "/",
			Code:    safefn.CodeCustom,
			Message: err.Error(),
			Hint:    fmt.Sprintf("refine %q", r.name),
		})
	}
	if len(iss) > 0 {
		return safefn.Invalid(iss...)
	}
	return safefn.Valid(out)
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(o.fields))}
	for _, k := range o.sortedKeys {
		fs, err := o.fields[k].JSONSchema()
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		s.Properties[k] = fs
		if _, req := o.required[k]; req {
			s.Required = append(s.Required, k)
		}
	}
	switch o.unknownPolicy {
	case UnknownStrict:
		s.AdditionalProperties = false
	case UnknownPassthrough:
		s.AdditionalProperties = true
	}
	return s, nil
}

// pointer returns the JSON Pointer of a top-level key.
func pointer(key string) string {
	r := strings.NewReplacer("~", "~0", "/", "~1")
	return "/" + r.Replace(key)
}
