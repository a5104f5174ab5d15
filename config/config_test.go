package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("WORKER_CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example/ ,,https://b.example")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.WorkerCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	cfg, _ := LoadConfig()
	assert.True(t, cfg.IsProduction())
}
