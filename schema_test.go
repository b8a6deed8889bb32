package safefn_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/safefn"
)

type portParser struct{}

func (portParser) Parse(_ context.Context, v any) (int, error) {
	s, ok := v.(string)
	if !ok {
		return 0, safefn.Issues{{Path: "/", Code: safefn.CodeInvalidType, Message: "expected string"}}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("not a number")
	}
	return n, nil
}

func TestFromParser(t *testing.T) {
	ctx := context.Background()
	s := safefn.FromParser[int](portParser{})

	o := s.Validate(ctx, "8080")
	require.True(t, o.OK())
	assert.Equal(t, 8080, o.Value())

	o = s.Validate(ctx, 8080)
	require.False(t, o.OK())
	assert.Equal(t, safefn.CodeInvalidType, o.Issues()[0].Code)

	o = s.Validate(ctx, "http")
	require.Len(t, o.Issues(), 1)
	assert.Equal(t, safefn.CodeParseError, o.Issues()[0].Code)
	assert.Equal(t, "not a number", o.Issues()[0].Message)
}

func TestOutcome_AwaitRecoversPanics(t *testing.T) {
	o := safefn.Defer(func(context.Context) safefn.Outcome { panic("bad schema") })
	assert.True(t, o.Pending())
	got := o.Await(context.Background())
	assert.False(t, got.Pending())
	require.Len(t, got.Issues(), 1)
	assert.Contains(t, got.Issues()[0].Message, "validation panicked: bad schema")
}
