package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	golden(t).Assert(t, "list", []byte(out))
}

func TestList_YAML(t *testing.T) {
	out, _, err := execute(t, "list", "--format", "yaml")
	require.NoError(t, err)
	var views []entryView
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	require.Len(t, views, 3)
	assert.Equal(t, "lookup", views[1].Name)
	assert.Equal(t, "async", views[1].Mode)
	assert.Equal(t, []string{"notFound"}, views[1].Errors)
}

func TestRun_Speed(t *testing.T) {
	out, _, err := execute(t, "run", "speed", "fast")
	require.NoError(t, err)
	golden(t).Assert(t, "run_speed", []byte(out))

	out, _, err = execute(t, "run", "speed", `"slow"`, "456")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"foo": "slow-456"}, got["data"])
}

func TestRun_TypedError(t *testing.T) {
	out, _, err := execute(t, "run", "divide", "5", "0")
	require.ErrorIs(t, err, errCallFailed)
	golden(t).Assert(t, "run_divide_by_zero", []byte(out))
}

func TestRun_AsyncLookup(t *testing.T) {
	out, _, err := execute(t, "run", "lookup", "u_1", "-o", "yaml")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"id": "u_1", "name": "Alice", "admin": true}, got["data"])
	assert.Equal(t, false, got["isDefined"])
}

func TestRun_ValidationFailure(t *testing.T) {
	out, _, err := execute(t, "run", "speed", "warp")
	require.ErrorIs(t, err, errCallFailed)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	ev := got["error"].(map[string]any)
	assert.Equal(t, "failure caused by validation", ev["reason"])
}

func TestRun_UnknownHandler(t *testing.T) {
	_, _, err := execute(t, "run", "nope")
	assert.ErrorContains(t, err, `unknown handler "nope"`)
}

func TestSchema(t *testing.T) {
	out, _, err := execute(t, "schema", "speed")
	require.NoError(t, err)
	golden(t).Assert(t, "schema_speed", []byte(out))
}

func TestDebugLogging(t *testing.T) {
	_, logs, err := execute(t, "run", "speed", "fast", "--debug")
	require.NoError(t, err)
	assert.Contains(t, logs, "settings loaded")

	_, logs, err = execute(t, "run", "speed", "warp", "--debug")
	require.ErrorIs(t, err, errCallFailed)
	assert.Contains(t, logs, "safefn: input rejected")
	assert.Contains(t, logs, `"call_id"`)
}

func TestSettingsFromEnvFile(t *testing.T) {
	t.Setenv("SAFEFN_FORMAT", "json")
	path := filepath.Join(t.TempDir(), "cli.env")
	require.NoError(t, os.WriteFile(path, []byte("SAFEFN_FORMAT=yaml\n"), 0o600))

	out, _, err := execute(t, "list", "--env", path)
	require.NoError(t, err)
	assert.Contains(t, out, "name: divide")

	out, _, err = execute(t, "list", "--env", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "divide"`)

	_, _, err = execute(t, "list", "--format", "xml")
	assert.ErrorContains(t, err, `unsupported format "xml"`)
}

func TestParseArg(t *testing.T) {
	assert.Equal(t, "fast", parseArg("fast"))
	assert.Equal(t, "fast", parseArg(`"fast"`))
	assert.Equal(t, json.Number("456"), parseArg("456"))
	assert.Equal(t, true, parseArg("true"))
	assert.Equal(t, []any{json.Number("1"), "a"}, parseArg(`[1,"a"]`))
	assert.Equal(t, "1 2", parseArg("1 2"))
}
