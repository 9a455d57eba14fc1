package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_EmptyValues(t *testing.T) {
	for _, key := range []string{"APP_PORT", "SESSION_STORE", "SESSION_TTL", "NATS_URL", "DB_CONNECTION_STRING", "OTEL_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	// Set-but-empty values are taken literally for strings, ignored for typed values.
	assert.Equal(t, "", cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "NOTE_ACTIVITY", cfg.App.ActivityTopic)
	assert.Equal(t, 1024*1024, cfg.App.BodyLimit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("BODY_LIMIT", "2048")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Session.CookieSecure)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 2048, cfg.App.BodyLimit)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvAsDuration_RejectsNonPositive(t *testing.T) {
	t.Setenv("SOME_TTL", "-5m")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_TTL", time.Minute))

	t.Setenv("SOME_TTL", "garbage")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_TTL", time.Minute))
}
