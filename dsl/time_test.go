package dsl_test

import (
	"context"
	"testing"
	"time"

	"github.com/reoring/safefn"
	g "github.com/reoring/safefn/dsl"
)

func TestTime_RFC3339(t *testing.T) {
	ctx := context.Background()
	o := g.Time().Validate(ctx, "2024-05-01T09:30:00.250+09:00")
	if !o.OK() {
		t.Fatalf("unexpected issues: %v", o.Issues())
	}
	got := o.Value().(time.Time)
	if got.Location() != time.UTC {
		t.Fatalf("want UTC, got %v", got.Location())
	}
	if s := g.FormatTime(got); s != "2024-05-01T00:30:00.25Z" {
		t.Fatalf("canonical form = %q", s)
	}

	// round trip through the canonical form
	if back := g.Time().Validate(ctx, g.FormatTime(got)); !back.OK() || !back.Value().(time.Time).Equal(got) {
		t.Fatalf("round trip failed: %v", back.Issues())
	}

	if o := g.Time().Validate(ctx, "yesterday"); o.OK() || o.Issues()[0].Code != safefn.CodeParseError {
		t.Fatalf("want parse_error, got %v", o.Issues())
	}
	if o := g.Time().Validate(ctx, 1714555800); o.OK() || o.Issues()[0].Code != safefn.CodeInvalidType {
		t.Fatalf("want invalid_type, got %v", o.Issues())
	}
}
