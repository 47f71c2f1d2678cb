package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("PORT", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("PRIMARY_DB_DRIVER", "")
	t.Setenv("FALLBACK_DB_DRIVER", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "default_secret_key", cfg.JWT.Secret)
	assert.Equal(t, 60*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "mysql", cfg.Database.Primary.Driver)
	assert.Equal(t, "sqlite", cfg.Database.Fallback.Driver)
	assert.Equal(t, "./data/fallback.db", cfg.Database.Fallback.DSN)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("BASE_URL", "https://blog.example/")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PRIMARY_DB_DRIVER", "postgres")
	t.Setenv("PRIMARY_DB_DSN", "")
	t.Setenv("POSTGRES_USER", "blog")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "blog")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "https://blog.example", cfg.Server.BaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "postgres", cfg.Database.Primary.Driver)
	assert.Contains(t, cfg.Database.Primary.DSN, "dbname=blog")
}

func TestInvalidTTLFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "soon")
	assert.Equal(t, 60*time.Minute, Load().JWT.TTL)
}
