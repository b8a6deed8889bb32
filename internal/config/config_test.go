package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/safefn/internal/config"
)

type settings struct {
	HelpersFirst bool   `split_words:"true" default:"false"`
	Format       string `default:"json"`
	Log          struct {
		Debug bool `default:"false"`
	}
}

func TestNew_FromEnvFile(t *testing.T) {
	// registered so the exported variables are restored after the test
	t.Setenv("SFTEST_HELPERS_FIRST", "false")
	t.Setenv("SFTEST_LOG_DEBUG", "false")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SFTEST_HELPERS_FIRST=true\nSFTEST_LOG_DEBUG=true\n"), 0o600))

	got, err := config.New[settings]("SFTEST", path)
	require.NoError(t, err)
	assert.True(t, got.HelpersFirst)
	assert.True(t, got.Log.Debug)
	assert.Equal(t, "json", got.Format)
}

func TestNew_EnvironmentOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SFTEST_FORMAT", "yaml")

	got, err := config.New[settings]("SFTEST", "")
	require.NoError(t, err)
	assert.Equal(t, "yaml", got.Format)
	assert.False(t, got.HelpersFirst)
}

func TestNew_MissingExplicitFile(t *testing.T) {
	_, err := config.New[settings]("SFTEST", filepath.Join(t.TempDir(), "nope.env"))
	assert.ErrorContains(t, err, "failed to load env file")
	assert.Panics(t, func() { config.MustNew[settings]("SFTEST", filepath.Join(t.TempDir(), "nope.env")) })
}
