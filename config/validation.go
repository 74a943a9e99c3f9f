package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// ValidateConfig checks if the configuration meets the requirements for its environment.
// All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []error

	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", "must be between 1 and 65535"})
	}

	switch cfg.DBDriver {
	case "postgres", "postgresql", "sqlite":
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q (supported: postgres, sqlite)", cfg.DBDriver)})
	}

	if cfg.DBMaxOpenConns <= 0 {
		errs = append(errs, ValidationError{"DB_MAX_OPEN_CONNS", "must be positive"})
	}
	if cfg.DBMaxIdleConns < 0 || cfg.DBMaxIdleConns > cfg.DBMaxOpenConns {
		errs = append(errs, ValidationError{"DB_MAX_IDLE_CONNS", "must be between 0 and DB_MAX_OPEN_CONNS"})
	}

	if !supportedAlgorithms[cfg.JWTAlgorithm] {
		errs = append(errs, ValidationError{"JWT_ALGORITHM", fmt.Sprintf("unsupported algorithm %q", cfg.JWTAlgorithm)})
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required"})
	}
	if cfg.AccessTokenTTL <= 0 {
		errs = append(errs, ValidationError{"ACCESS_TOKEN_EXPIRE_MINUTES", "must be positive"})
	}

	if cfg.LLMTimeout <= 0 {
		errs = append(errs, ValidationError{"LLM_TIMEOUT", "must be positive"})
	}
	if cfg.DBQueryTimeout <= 0 {
		errs = append(errs, ValidationError{"DB_QUERY_TIMEOUT", "must be positive"})
	}
	if cfg.SuggestionCacheSize < 0 {
		errs = append(errs, ValidationError{"SUGGESTION_CACHE_SIZE", "must not be negative"})
	}

	if cfg.Environment == Production {
		if cfg.JWTSecret == DefaultJWTSecret {
			errs = append(errs, ValidationError{"JWT_SECRET", "default secret is not allowed in production"})
		}
		if cfg.LLMAPIKey == "" {
			errs = append(errs, ValidationError{"MISTRAL_API_KEY", "is required in production"})
		}
		if cfg.DBDriver == "sqlite" {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not allowed in production"})
		}
	}

	return errors.Join(errs...)
}
