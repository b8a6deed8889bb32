package logx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	buf.Reset()
	l = New(&buf, Config{Debug: true})
	l.Debug().Msg("trace")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Config{PrettyFormat: true}).Info().Str("k", "v").Msg("hello")
	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "k=v")
	assert.NotContains(t, out, `"message"`)
}
