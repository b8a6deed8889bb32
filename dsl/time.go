package dsl

import (
	"context"
	"time"

	"github.com/reoring/safefn"
	js "github.com/reoring/safefn/jsonschema"
)

type timeSchema struct{}

// Time accepts RFC3339 strings (fractional seconds optional) and time.Time
// values. The normalized value is a time.Time in UTC.
func Time() AnyAdapter { return Adapt(timeSchema{}) }

func (timeSchema) Validate(_ context.Context, v any) safefn.Outcome {
	switch t := v.(type) {
	case time.Time:
		return safefn.Valid(t.UTC())
	case string:
		parsed, err := parseRFC3339(t)
		if err != nil {
			return safefn.Invalid(safefn.Issue{
				Path:    "/",
				Code:    safefn.CodeParseError,
				Message: "invalid RFC3339 time",
				Hint:    err.Error(),
			})
		}
		return safefn.Valid(parsed.UTC())
	}
	return invalidType("expected RFC3339 string")
}

func (timeSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}

// FormatTime renders t the way Time expects it back: UTC, RFC3339 with
// trailing zeros of the fraction trimmed.
func FormatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
