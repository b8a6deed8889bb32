package dsl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reoring/safefn"
	g "github.com/reoring/safefn/dsl"
)

func TestAdapt_SchemaFunc(t *testing.T) {
	ctx := context.Background()
	even := safefn.SchemaFunc(func(ctx context.Context, v any) safefn.Outcome {
		n, ok := v.(int)
		if !ok || n%2 != 0 {
			return safefn.Invalid()
		}
		return safefn.Valid(n)
	})
	ad := g.Adapt(even)
	if ad.Orig() == nil {
		t.Fatalf("Orig must keep the wrapped schema")
	}
	if o := ad.Validate(ctx, 2); !o.OK() {
		t.Fatalf("unexpected issues: %v", o.Issues())
	}
	if o := ad.Validate(ctx, 3); o.OK() || o.Issues()[0].Code != safefn.CodeCustom {
		t.Fatalf("want generic custom issue, got %v", o.Issues())
	}
	s, err := ad.JSONSchema()
	if err != nil || s == nil {
		t.Fatalf("non-describing schemas export an empty schema, got %v %v", s, err)
	}
	if g.Adapt(ad).Orig() == nil {
		t.Fatalf("adapting an adapter must return it unchanged")
	}
}

func TestRefine_SyncAndAsync(t *testing.T) {
	ctx := context.Background()
	notAdmin := func(ctx context.Context, v any) error {
		if v == "admin" {
			return errors.New("reserved")
		}
		return nil
	}

	s := g.Refine(g.String(), "not-admin", notAdmin)
	if o := s.Validate(ctx, "admin"); o.Pending() || o.OK() {
		t.Fatalf("sync refine must reject immediately")
	}
	if o := s.Validate(ctx, 1); o.Issues()[0].Code != safefn.CodeInvalidType {
		t.Fatalf("refine must not run on invalid base values: %v", o.Issues())
	}

	as := g.RefineAsync(g.String(), "not-admin", notAdmin)
	o := as.Validate(ctx, "root")
	if !o.Pending() {
		t.Fatalf("async refine must be pending")
	}
	if got := o.Await(ctx); !got.OK() || got.Value() != "root" {
		t.Fatalf("got %#v %v", got.Value(), got.Issues())
	}
	if got := as.Validate(ctx, "admin").Await(ctx); got.OK() || got.Issues()[0].Hint != `refine "not-admin"` {
		t.Fatalf("got %v", got.Issues())
	}
}

func TestDefault_ValidatedLikeInput(t *testing.T) {
	ctx := context.Background()
	tup := g.Tuple(g.Default(g.Int().Min(5), 1))
	o := tup.Validate(ctx, []any{})
	if o.OK() || o.Issues()[0].Code != safefn.CodeTooSmall {
		t.Fatalf("invalid default must be reported, got %v", o.Issues())
	}
}
