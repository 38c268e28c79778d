package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "MONGODB_URI", "MONGODB_DATABASE", "REDIS_DB",
		"ACCESS_TOKEN_TTL", "CORS_ORIGINS", "RESET_DB", "JWT_SECRET",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "blog", cfg.MongoDatabase)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, []string{
		"http://localhost:8000",
		"http://localhost:3000",
		"https://blog-app-client-plum.vercel.app",
		"https://blog-app-client-3fjisnzxy-julius-albert-grajos-projects.vercel.app",
	}, cfg.CORSOrigins)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, "change-me", cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MONGODB_DATABASE", "blog_test")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ACCESS_TOKEN_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RESET_DB", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "blog_test", cfg.MongoDatabase)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.ResetDB)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL", "-5m")
	t.Setenv("RESET_DB", "maybe")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.False(t, cfg.ResetDB)
}
