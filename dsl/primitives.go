package dsl

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"unicode/utf8"

	"github.com/reoring/safefn"
	js "github.com/reoring/safefn/jsonschema"
)

// ---------------- string ----------------

// StringSchema accepts Go strings. Length bounds count runes.
type StringSchema struct {
	min, max *int
	pattern  *regexp.Regexp
}

// String returns a string schema without constraints.
func String() StringSchema { return StringSchema{} }

// Min requires at least n runes.
func (s StringSchema) Min(n int) StringSchema { s.min = &n; return s }

// Max allows at most n runes.
func (s StringSchema) Max(n int) StringSchema { s.max = &n; return s }

// NonEmpty is Min(1).
func (s StringSchema) NonEmpty() StringSchema { return s.Min(1) }

// Pattern requires a match of expr. It panics when expr does not compile.
func (s StringSchema) Pattern(expr string) StringSchema {
	s.pattern = regexp.MustCompile(expr)
	return s
}

func (s StringSchema) Default(v any) AnyAdapter { return Adapt(s).Default(v) }
func (s StringSchema) Nullable() AnyAdapter     { return Adapt(s).Nullable() }

func (s StringSchema) Validate(_ context.Context, v any) safefn.Outcome {
	str, ok := v.(string)
	if !ok {
		return invalidType("expected string")
	}
	n := utf8.RuneCountInString(str)
	var iss safefn.Issues
	if s.min != nil && n < *s.min {
		iss = append(iss, issue("/", safefn.CodeTooShort, "", map[string]any{"min": *s.min, "got": n}))
	}
	if s.max != nil && n > *s.max {
		iss = append(iss, issue("/", safefn.CodeTooLong, "", map[string]any{"max": *s.max, "got": n}))
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		iss = append(iss, issue("/", safefn.CodeInvalidValue, "pattern "+s.pattern.String(), map[string]any{"pattern": s.pattern.String()}))
	}
	if len(iss) > 0 {
		return safefn.Invalid(iss...)
	}
	return safefn.Valid(str)
}

func (s StringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string", MinLength: s.min, MaxLength: s.max}
	if s.pattern != nil {
		out.Pattern = s.pattern.String()
	}
	return out, nil
}

// ---------------- number ----------------

// NumberSchema accepts any Go numeric value or json.Number and normalizes it
// to float64. NaN and infinities are rejected.
type NumberSchema struct {
	min, max *float64
}

// Number returns a number schema without bounds.
func Number() NumberSchema { return NumberSchema{} }

func (s NumberSchema) Min(f float64) NumberSchema { s.min = &f; return s }
func (s NumberSchema) Max(f float64) NumberSchema { s.max = &f; return s }

func (s NumberSchema) Default(v any) AnyAdapter { return Adapt(s).Default(v) }
func (s NumberSchema) Nullable() AnyAdapter     { return Adapt(s).Nullable() }

func (s NumberSchema) Validate(_ context.Context, v any) safefn.Outcome {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return invalidType("expected finite number")
	}
	if iss := bounds(f, s.min, s.max); len(iss) > 0 {
		return safefn.Invalid(iss...)
	}
	return safefn.Valid(f)
}

func (s NumberSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "number", Minimum: s.min, Maximum: s.max}, nil
}

// ---------------- int ----------------

// IntSchema accepts integral values (including floats without a fractional
// part) and normalizes them to int.
type IntSchema struct {
	min, max *int
}

// Int returns an integer schema without bounds.
func Int() IntSchema { return IntSchema{} }

func (s IntSchema) Min(n int) IntSchema { s.min = &n; return s }
func (s IntSchema) Max(n int) IntSchema { s.max = &n; return s }

func (s IntSchema) Default(v any) AnyAdapter { return Adapt(s).Default(v) }
func (s IntSchema) Nullable() AnyAdapter     { return Adapt(s).Nullable() }

func (s IntSchema) Validate(_ context.Context, v any) safefn.Outcome {
	n, ok := toInt(v)
	if !ok {
		return invalidType("expected integer")
	}
	var iss safefn.Issues
	if s.min != nil && n < *s.min {
		iss = append(iss, issue("/", safefn.CodeTooSmall, "", map[string]any{"min": *s.min, "got": n}))
	}
	if s.max != nil && n > *s.max {
		iss = append(iss, issue("/", safefn.CodeTooBig, "", map[string]any{"max": *s.max, "got": n}))
	}
	if len(iss) > 0 {
		return safefn.Invalid(iss...)
	}
	return safefn.Valid(n)
}

func (s IntSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "integer", Minimum: ptrFloat(s.min), Maximum: ptrFloat(s.max)}, nil
}

// ---------------- bool ----------------

type boolSchema struct{}

// Bool returns the bool schema.
func Bool() AnyAdapter { return Adapt(boolSchema{}) }

func (boolSchema) Validate(_ context.Context, v any) safefn.Outcome {
	b, ok := v.(bool)
	if !ok {
		return invalidType("expected boolean")
	}
	return safefn.Valid(b)
}

func (boolSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

// ---------------- enum / literal / any ----------------

type enumSchema struct{ values []string }

// Enum accepts one of the given strings.
func Enum(values ...string) AnyAdapter {
	return Adapt(enumSchema{values: append([]string(nil), values...)})
}

func (e enumSchema) Validate(_ context.Context, v any) safefn.Outcome {
	s, ok := v.(string)
	if !ok {
		return invalidType("expected string")
	}
	for _, allowed := range e.values {
		if s == allowed {
			return safefn.Valid(s)
		}
	}
	return safefn.Invalid(issue("/", safefn.CodeInvalidEnum, "", map[string]any{"allowed": append([]string(nil), e.values...), "got": s}))
}

func (e enumSchema) JSONSchema() (*js.Schema, error) {
	vals := make([]any, len(e.values))
	for i, v := range e.values {
		vals[i] = v
	}
	return &js.Schema{Type: "string", Enum: vals}, nil
}

type literalSchema struct{ want any }

// Literal accepts values deeply equal to want. Numbers are compared after
// normalization, so Literal(1) accepts 1.0 and json.Number("1").
func Literal(want any) AnyAdapter { return Adapt(literalSchema{want: want}) }

func (l literalSchema) Validate(_ context.Context, v any) safefn.Outcome {
	if sameLiteral(l.want, v) {
		return safefn.Valid(l.want)
	}
	return safefn.Invalid(issue("/", safefn.CodeInvalidValue, fmt.Sprintf("expected %v", l.want), map[string]any{"expected": l.want}))
}

func (l literalSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Const: l.want}, nil }

func sameLiteral(want, got any) bool {
	if wf, ok := toFloat(want); ok {
		gf, ok := toFloat(got)
		return ok && wf == gf
	}
	return reflect.DeepEqual(want, got)
}

type anySchema struct{}

// Any accepts every value unchanged.
func Any() AnyAdapter { return Adapt(anySchema{}) }

func (anySchema) Validate(_ context.Context, v any) safefn.Outcome { return safefn.Valid(v) }
func (anySchema) JSONSchema() (*js.Schema, error)                  { return &js.Schema{}, nil }

// ---- helpers ----

func bounds(f float64, lo, hi *float64) safefn.Issues {
	var iss safefn.Issues
	if lo != nil && f < *lo {
		iss = append(iss, issue("/", safefn.CodeTooSmall, "", map[string]any{"min": *lo, "got": f}))
	}
	if hi != nil && f > *hi {
		iss = append(iss, issue("/", safefn.CodeTooBig, "", map[string]any{"max": *hi, "got": f}))
	}
	return iss
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), int64(int(t)) == t
	case uint:
		return int(t), t <= math.MaxInt
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), uint64(t) <= math.MaxInt
	case uint64:
		return int(t), t <= math.MaxInt
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return toInt(i)
		}
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}

func ptrFloat(n *int) *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}
