package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the current
// environment. The model-provider key is only enforced outside tests so the
// suite can run without live credentials.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		errors = append(errors, "database host, port and name are required")
	}

	if IsProduction() {
		if cfg.JWTSecret == "" {
			errors = append(errors, "JWT_SECRET is required in production")
		}
		if cfg.OpenRouterAPIKey == "" {
			errors = append(errors, "OPENROUTER_API_KEY is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			errors = append(errors, "DB_SSL_MODE must not be 'disable' in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
