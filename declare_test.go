package safefn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/safefn"
	"github.com/reoring/safefn/dsl"
	js "github.com/reoring/safefn/jsonschema"
)

func definitionPanic(t *testing.T, fn func()) *safefn.DefinitionError {
	t.Helper()
	var got *safefn.DefinitionError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a panic")
			de, ok := r.(*safefn.DefinitionError)
			require.True(t, ok, "panic value %T", r)
			got = de
		}()
		fn()
	}()
	return got
}

func TestDeclaration_MissingSchemasPanicAtBindTime(t *testing.T) {
	noop := func(ctx context.Context, args safefn.Args) (any, error) { return nil, nil }

	de := definitionPanic(t, func() { safefn.New().Output(dsl.Any()).HandlerSync(noop) })
	assert.ErrorIs(t, de, safefn.ErrMissingInput)

	de = definitionPanic(t, func() { safefn.New().Input(dsl.Tuple()).Handler(noop) })
	assert.ErrorIs(t, de, safefn.ErrMissingOutput)

	de = definitionPanic(t, func() { safefn.New().HandlerSync(nil) })
	assert.ErrorIs(t, de, safefn.ErrMissingInput)
	assert.ErrorIs(t, de, safefn.ErrMissingOutput)
	assert.ErrorIs(t, de, safefn.ErrMissingHandler)
	assert.Contains(t, de.Error(), "safefn: invalid declaration")
}

func TestDeclaration_CheckKinds(t *testing.T) {
	base := safefn.New().Input(dsl.Tuple()).Output(dsl.Any())
	require.NoError(t, base.Check())

	err := base.Errors(
		safefn.Kind("a", dsl.Any()),
		safefn.Kind("a", dsl.Any()),
		safefn.Kind("", dsl.Any()),
		safefn.Kind("b", nil),
		safefn.Kind("c", dsl.Any()).Discriminant(""),
	).Check()
	require.Error(t, err)
	assert.ErrorIs(t, err, safefn.ErrInvalidKind)
	assert.Contains(t, err.Error(), `duplicate kind "a"`)
	assert.Contains(t, err.Error(), "empty name")
	assert.Contains(t, err.Error(), `"b" has no schema`)
	assert.Contains(t, err.Error(), `"c" has no discriminant field`)
}

func TestDeclaration_Immutable(t *testing.T) {
	ctx := context.Background()
	echo := func(ctx context.Context, args safefn.Args) (any, error) { return args.At(0), nil }

	base := safefn.New().Input(dsl.Tuple(dsl.Any())).Output(dsl.String())
	asString := base.HandlerSync(echo)
	asInt := base.Output(dsl.Int()).HandlerSync(echo)

	assert.NoError(t, asString(ctx, "x").Err())
	assert.Error(t, asString(ctx, 1).Err())
	assert.NoError(t, asInt(ctx, 1).Err())
	assert.Error(t, asInt(ctx, "x").Err())

	kinds := []safefn.ErrorKind{safefn.Kind("a", dsl.Any())}
	d := base.Errors(kinds...)
	kinds[0] = safefn.Kind("changed", dsl.Any())
	assert.Equal(t, "a", d.Kinds()[0].Name())

	first := base.With(safefn.WithHelpersFirst(true))
	assert.True(t, first.Config().HelpersFirst)
	assert.False(t, base.Config().HelpersFirst)
	assert.Equal(t, safefn.Config{HelpersFirst: true}, base.With(safefn.WithConfig(safefn.Config{HelpersFirst: true})).Config())
}

func TestDeclaration_Describe(t *testing.T) {
	desc, err := speedDecl().Errors(
		safefn.Kind("tooFast", dsl.Object().Field("code", dsl.Literal("tooFast")).Required().MustBuild()),
		safefn.Kind("opaque", safefn.SchemaFunc(func(ctx context.Context, v any) safefn.Outcome { return safefn.Valid(v) })),
	).Describe()
	require.NoError(t, err)
	assert.Contains(t, desc.Errors, "tooFast")
	assert.NotContains(t, desc.Errors, "opaque", "schemas without JSON Schema are skipped")

	desc.Errors = nil
	b, err := js.Marshal(desc)
	require.NoError(t, err)
	gd := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gd.Assert(t, "speed_description", b)
}

func TestError_Accessors(t *testing.T) {
	cause := errors.New("disk full")
	e := safefn.NewError(safefn.ReasonThrown, "", safefn.WithCause(cause))
	assert.Equal(t, "handler threw unknown error", e.Message())
	assert.Equal(t, "handler threw unknown error: disk full", e.Error())
	assert.ErrorIs(t, e, cause)
	assert.False(t, e.Typed())
	assert.Empty(t, e.Kind())

	iss := safefn.Issues{{Path: "/0", Code: safefn.CodeRequired}}
	v := safefn.NewError(safefn.ReasonValidation, "input validation failed", safefn.WithIssues(iss))
	assert.Equal(t, "input validation failed: required at /0", v.Error())
	got, ok := safefn.AsIssues(v)
	require.True(t, ok)
	assert.Equal(t, iss, got)

	v.Issues()[0].Path = "/mutated"
	assert.Equal(t, "/0", v.Issues()[0].Path)
}
