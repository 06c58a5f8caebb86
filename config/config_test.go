package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg := Load()
	assert.Equal(t, "smart-health-api", cfg.AppName)
	assert.Equal(t, 500*time.Millisecond, cfg.LoginLatency)
	assert.Equal(t, time.Second, cfg.SignupLatency)
	assert.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
	assert.Equal(t, "offline", cfg.GeneratorName())
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("LOGIN_LATENCY", "0s")
	t.Setenv("REDIS_ENABLED", "nope")
	t.Setenv("MAX_CONVERSATIONS_PER_CLIENT", "3")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	assert.Equal(t, time.Duration(0), cfg.LoginLatency)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, 3, cfg.MaxConversationsPerClient)
	assert.Equal(t, "gemini", cfg.GeneratorName())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
