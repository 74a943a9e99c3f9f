package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "DishDash API", cfg.ProjectName)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "/api/v1", cfg.APIV1Prefix)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 15, cfg.DBMaxOpenConns)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "mistral-large-latest", cfg.LLMModel)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.ExposeErrorDetails)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SECRET_KEY", "from-secret-key")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("BACKEND_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("EXPOSE_ERROR_DETAILS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "from-secret-key", cfg.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.LLMTimeout)
	assert.False(t, cfg.ExposeErrorDetails)
}

func TestSecretResolution(t *testing.T) {
	secretsDir := t.TempDir()
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", secretsDir)

	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("from-dir\n"), 0o600))
	keyFile := filepath.Join(t.TempDir(), "mistral")
	require.NoError(t, os.WriteFile(keyFile, []byte("  key-from-file "), 0o600))
	t.Setenv("MISTRAL_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-dir", cfg.JWTSecret)
	assert.Equal(t, "key-from-file", cfg.LLMAPIKey)
}

func TestGetEnvAsType(t *testing.T) {
	t.Setenv("INT_KEY", "42")
	t.Setenv("BAD_INT_KEY", "forty-two")
	t.Setenv("BOOL_KEY", "true")
	t.Setenv("DURATION_KEY", "90s")

	assert.Equal(t, 42, GetEnvAsType("INT_KEY", 1))
	assert.Equal(t, 1, GetEnvAsType("BAD_INT_KEY", 1))
	assert.Equal(t, 7, GetEnvAsType("MISSING_KEY", 7))
	assert.True(t, GetEnvAsType("BOOL_KEY", false))
	assert.Equal(t, 90*time.Second, GetEnvAsType("DURATION_KEY", time.Second))
}

func TestValidateConfigProduction(t *testing.T) {
	cfg := &Config{
		Environment:         Production,
		ServerPort:          8000,
		DBDriver:            "sqlite",
		DBMaxOpenConns:      10,
		DBMaxIdleConns:      5,
		JWTSecret:           DefaultJWTSecret,
		JWTAlgorithm:        "RS256",
		AccessTokenTTL:      time.Minute,
		LLMTimeout:          time.Second,
		DBQueryTimeout:      time.Second,
		SuggestionCacheSize: 1,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var fields []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ve ValidationError
		require.True(t, errors.As(e, &ve))
		fields = append(fields, ve.Field)
	}
	assert.ElementsMatch(t, []string{"JWT_ALGORITHM", "JWT_SECRET", "MISTRAL_API_KEY", "DB_DRIVER"}, fields)
}

func TestConfigStringMasksSecrets(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://user:hunter2@db:5432/dishdash",
		RedisURL:    "redis://:redispass@cache:6379/0",
		JWTSecret:   "super-secret",
		LLMAPIKey:   "sk-live",
	}

	s := cfg.String()
	assert.NotContains(t, s, "hunter2")
	assert.NotContains(t, s, "redispass")
	assert.NotContains(t, s, "super-secret")
	assert.NotContains(t, s, "sk-live")
	assert.Contains(t, s, "postgres://user:REDACTED@db:5432/dishdash")
}
