package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("SESSION_TTL", "120")
	t.Setenv("ROUTER_ESCALATE_CLASSIFIED_EMERGENCY", "true")

	cfg := Load()

	assert.Equal(t, "groq", cfg.Llm.Provider)
	assert.Equal(t, 45*time.Second, cfg.Llm.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Router.EscalateClassifiedEmergency)
	assert.Equal(t, "memory", cfg.Session.ProfileStore)
}

func TestEnvHelpersFallBack(t *testing.T) {
	t.Setenv("BAD_INT", "x")
	t.Setenv("BAD_BOOL", "maybe")
	t.Setenv("BAD_DURATION", "soon")

	assert.Equal(t, 7, getEnvAsInt("BAD_INT", 7))
	assert.True(t, getEnvAsBool("BAD_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsDuration("BAD_DURATION", time.Minute))
	assert.Equal(t, "fallback", getEnv("UNSET_KEY_FOR_TEST", "fallback"))
}
