package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	cases := map[string][]string{
		"notFound":       {"not", "Found"},
		"NotFound":       {"Not", "Found"},
		"not_found":      {"not", "found"},
		"rate-limited":   {"rate", "limited"},
		"userID":         {"user", "ID"},
		"HTTPTimeout":    {"HTTP", "Timeout"},
		"quota exceeded": {"quota", "exceeded"},
		"v2Error":        {"v2", "Error"},
	}
	for in, want := range cases {
		assert.Equal(t, want, Words(in), in)
	}
}

func TestPascalAndUpperSnake(t *testing.T) {
	assert.Equal(t, "NotFound", Pascal("notFound"))
	assert.Equal(t, "NotFound", Pascal("not_found"))
	assert.Equal(t, "NOT_FOUND", UpperSnake("notFound"))
	assert.Equal(t, "USER_ID", UpperSnake("userID"))
}

func TestDiscriminants(t *testing.T) {
	assert.Equal(t, []string{"notFound", "NotFoundError", "NOT_FOUND_ERROR"}, Discriminants("notFound"))
	assert.Equal(t, []string{"timeoutError", "TimeoutError", "TIMEOUT_ERROR"}, Discriminants("timeoutError"))
	assert.Equal(t, []string{"NOT_FOUND", "NotFoundError", "NOT_FOUND_ERROR"}, Discriminants("NOT_FOUND"))
}
