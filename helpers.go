package safefn

import (
	"context"
	"fmt"
	"strings"
)

// ErrorHelper builds a typed error of one declared kind from a payload that
// may omit the discriminant. It panics with an *Error of reason
// ReasonInvalidErrorPayload when the payload is rejected under every
// discriminant spelling.
type ErrorHelper func(payload map[string]any) *Error

// ErrorHelpers holds one helper per declared error kind, keyed by kind name.
// Handlers receive it among their arguments (see Args.Errors).
type ErrorHelpers map[string]ErrorHelper

// New builds a typed error of the named kind. Unknown kinds panic like a
// rejected payload.
func (h ErrorHelpers) New(kind string, payload map[string]any) *Error {
	fn, ok := h[kind]
	if !ok {
		panic(NewError(ReasonInvalidErrorPayload, fmt.Sprintf("unknown error kind %q", kind)))
	}
	return fn(payload)
}

func buildHelpers(ctx context.Context, m Mode, kinds []ErrorKind) ErrorHelpers {
	h := make(ErrorHelpers, len(kinds))
	for _, k := range kinds {
		h[k.name] = k.helper(ctx, m)
	}
	return h
}

func (k ErrorKind) helper(ctx context.Context, m Mode) ErrorHelper {
	return func(payload map[string]any) *Error {
		if _, set := payload[k.field]; set {
			o, cerr := m.settle(ctx, k.schema, cloneMap(payload))
			if cerr != nil {
				panic(cerr)
			}
			if o.OK() {
				return typedError(k.name, o.Value())
			}
			panic(NewError(ReasonInvalidErrorPayload,
				fmt.Sprintf("invalid %q error payload", k.name), WithIssues(o.Issues())))
		}

		spellings := k.Discriminants()
		var all Issues
		for _, tag := range spellings {
			p := cloneMap(payload)
			if p == nil {
				p = map[string]any{}
			}
			p[k.field] = tag
			o, cerr := m.settle(ctx, k.schema, p)
			if cerr != nil {
				panic(cerr)
			}
			if o.OK() {
				return typedError(k.name, o.Value())
			}
			for _, it := range o.Issues() {
				if it.Params == nil {
					it.Params = map[string]any{}
				} else {
					it.Params = cloneMap(it.Params)
				}
				it.Params[k.field] = tag
				all = append(all, it)
			}
		}
		msg := fmt.Sprintf("invalid %q error payload: tried %s=%s", k.name, k.field, strings.Join(quoteAll(spellings), "|"))
		panic(NewError(ReasonInvalidErrorPayload, msg, WithIssues(all)))
	}
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
