package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "dev-secret-change-me"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Application metadata
	ProjectName string
	Version     string
	APIV1Prefix string

	// Server configuration
	ServerHost            string
	ServerPort            int
	ServerReadTimeout     time.Duration
	ServerWriteTimeout    time.Duration
	ServerShutdownTimeout time.Duration

	// Database configuration
	DatabaseURL       string
	DBDriver          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBPath            string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectRetries  int
	DBQueryTimeout    time.Duration

	// Redis configuration, empty disables the shared suggestion cache
	RedisURL string

	// Token configuration
	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL time.Duration

	// Recipe generator configuration
	LLMAPIKey      string
	LLMAPIURL      string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMTemperature float64

	SuggestionCacheTTL  time.Duration
	SuggestionCacheSize int

	CORSOrigins []string

	LogLevel  string
	LogFormat string

	// ExposeErrorDetails appends internal error messages to 500 responses.
	ExposeErrorDetails bool
}

// LoadConfig reads configuration from a .env file (if present), environment
// variables and secret files, then validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	env := GetEnvironment()
	cfg := &Config{
		Environment: env,

		ProjectName: GetEnvWithDefault("PROJECT_NAME", "DishDash API"),
		Version:     GetEnvWithDefault("VERSION", "1.0.0"),
		APIV1Prefix: GetEnvWithDefault("API_V1_STR", "/api/v1"),

		ServerHost:            GetEnvWithDefault("SERVER_HOST", "0.0.0.0"),
		ServerPort:            GetEnvAsType("SERVER_PORT", 8000),
		ServerReadTimeout:     GetEnvAsType("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:    GetEnvAsType("SERVER_WRITE_TIMEOUT", 90*time.Second),
		ServerShutdownTimeout: GetEnvAsType("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),

		DatabaseURL:       readSecretOrEnv("DATABASE_URL", ""),
		DBDriver:          strings.ToLower(GetEnvWithDefault("DB_DRIVER", "postgres")),
		DBHost:            GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:            GetEnvWithDefault("DB_PORT", "5432"),
		DBUser:            GetEnvWithDefault("DB_USER", "postgres"),
		DBPassword:        readSecretOrEnv("DB_PASSWORD", "postgres"),
		DBName:            GetEnvWithDefault("DB_NAME", "dishdash"),
		DBSSLMode:         GetEnvWithDefault("DB_SSL_MODE", "disable"),
		DBPath:            GetEnvWithDefault("DB_PATH", "dishdash.db"),
		DBMaxOpenConns:    GetEnvAsType("DB_MAX_OPEN_CONNS", 15),
		DBMaxIdleConns:    GetEnvAsType("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: GetEnvAsType("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBConnectRetries:  GetEnvAsType("DB_CONNECT_RETRIES", 5),
		DBQueryTimeout:    GetEnvAsType("DB_QUERY_TIMEOUT", 10*time.Second),

		RedisURL: readSecretOrEnv("REDIS_URL", ""),

		JWTSecret:      firstNonEmpty(readSecretOrEnv("JWT_SECRET", ""), readSecretOrEnv("SECRET_KEY", ""), DefaultJWTSecret),
		JWTAlgorithm:   strings.ToUpper(GetEnvWithDefault("JWT_ALGORITHM", "HS256")),
		AccessTokenTTL: time.Duration(GetEnvAsType("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,

		LLMAPIKey:      readSecretOrEnv("MISTRAL_API_KEY", ""),
		LLMAPIURL:      GetEnvWithDefault("LLM_API_URL", "https://api.mistral.ai/v1/chat/completions"),
		LLMModel:       GetEnvWithDefault("LLM_MODEL", "mistral-large-latest"),
		LLMTimeout:     GetEnvAsType("LLM_TIMEOUT", 60*time.Second),
		LLMTemperature: GetEnvAsType("LLM_TEMPERATURE", 0.7),

		SuggestionCacheTTL:  GetEnvAsType("SUGGESTION_CACHE_TTL", 10*time.Minute),
		SuggestionCacheSize: GetEnvAsType("SUGGESTION_CACHE_SIZE", 256),

		CORSOrigins: GetEnvAsType("BACKEND_CORS_ORIGINS", []string{"http://localhost:3000"}),

		LogLevel:  GetEnvWithDefault("LOG_LEVEL", defaultLogLevel(env)),
		LogFormat: GetEnvWithDefault("LOG_FORMAT", defaultLogFormat(env)),

		ExposeErrorDetails: GetEnvAsType("EXPOSE_ERROR_DETAILS", env == Development || env == Test),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Addr: %s, DBDriver: %s, DatabaseURL: %s, DBHost: %s, DBName: %s, DBPassword: [REDACTED], RedisURL: %s, JWTSecret: [REDACTED], JWTAlgorithm: %s, LLMAPIURL: %s, LLMModel: %s, LLMAPIKey: [REDACTED], LogLevel: %s}",
		c.Environment, c.Addr(), c.DBDriver, maskURL(c.DatabaseURL), c.DBHost, c.DBName,
		maskURL(c.RedisURL), c.JWTAlgorithm, c.LLMAPIURL, c.LLMModel, c.LogLevel)
}

// maskURL replaces the password of a connection URL
func maskURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		if _, ok := parsed.User.Password(); ok {
			parsed.User = url.UserPassword(parsed.User.Username(), "REDACTED")
		}
	}

	return parsed.String()
}

// GetEnvWithDefault returns the value of key or defaultValue when unset.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling. Unparseable values fall back to defaultValue.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case float64:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return any(floatValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	case time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return any(d).(T)
	case []string:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			return defaultValue
		}
		return any(items).(T)
	default:
		return defaultValue
	}
}

// readSecretOrEnv resolves a secret from NAME, then the file named by NAME_FILE,
// then SECRETS_DIR/<name>.
func readSecretOrEnv(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	if path := os.Getenv(name + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	if value := readSecret(strings.ToLower(name)); value != "" {
		return value
	}
	return defaultValue
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func defaultLogLevel(env Environment) string {
	switch env {
	case Development:
		return "debug"
	case Production:
		return "info"
	default:
		return "warn"
	}
}

func defaultLogFormat(env Environment) string {
	if env == Development {
		return "text"
	}
	return "json"
}
