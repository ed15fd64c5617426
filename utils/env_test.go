package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("EIGHTIFY_INT", "42")
	t.Setenv("EIGHTIFY_BAD_INT", "forty")
	t.Setenv("EIGHTIFY_DURATION", "90s")
	t.Setenv("EIGHTIFY_NEG_DURATION", "-5s")
	t.Setenv("EIGHTIFY_BOOL", "false")
	t.Setenv("EIGHTIFY_LIST", " a, ,b ")

	assert.Equal(t, 42, GetEnvAsInt("EIGHTIFY_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("EIGHTIFY_BAD_INT", 1))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("EIGHTIFY_DURATION", time.Minute))
	assert.Equal(t, time.Minute, GetEnvAsDuration("EIGHTIFY_NEG_DURATION", time.Minute))
	assert.False(t, GetEnvAsBool("EIGHTIFY_BOOL", true))
	assert.Equal(t, []string{"a", "b"}, GetEnvAsStringSlice("EIGHTIFY_LIST", nil))
	assert.Equal(t, "fallback", GetEnvAsString("EIGHTIFY_MISSING", "fallback"))
}
