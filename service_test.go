package safefn_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/safefn"
)

type clock interface{ Now() int }

type fixedClock int

func (c fixedClock) Now() int { return int(c) }

func TestService_RoundTrip(t *testing.T) {
	ctx := safefn.WithService[clock](context.Background(), fixedClock(42))

	c, ok := safefn.Service[clock](ctx)
	require.True(t, ok)
	assert.Equal(t, 42, c.Now())

	// keyed by the type parameter, not the dynamic type
	_, ok = safefn.Service[fixedClock](ctx)
	assert.False(t, ok)
}

func TestRequireService_Missing(t *testing.T) {
	_, err := safefn.RequireService[clock](context.Background())
	require.Error(t, err)
	iss, ok := safefn.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, safefn.CodeDependencyUnavailable, iss[0].Code)
	assert.Equal(t, "/", iss[0].Path)

	ctx := safefn.WithService[clock](context.Background(), fixedClock(1))
	c, err := safefn.RequireService[clock](ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Now())
}
