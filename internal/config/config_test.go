package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GO_ENV", "DB_DRIVER", "DATABASE_URL", "SQLITE_PATH",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_SSLMODE",
		"JWT_SECRET", "SESSION_TTL", "FE_URL", "SEED", "REVOCATION_PURGE_SPEC", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, EnvDevelopment, cfg.GoEnv)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "@hourly", cfg.RevocationPurgeSpec)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=corner sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_ProductionRejectsDefaultSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"POSTGRES_PORT": "abc",
		"SESSION_TTL":   "seven days",
		"SEED":          "maybe",
		"GO_ENV":        "staging",
		"DB_DRIVER":     "mysql",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)

			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestPostgresDSN_PrefersDatabaseURL(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://u:p@db:5432/corner"}
	assert.Equal(t, "postgres://u:p@db:5432/corner", cfg.PostgresDSN())
}
