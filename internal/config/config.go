// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BackendGenAI = "genai"
	BackendAgent = "agent"
)

// Config holds all application configuration.
type Config struct {
	Port           string `validate:"required,numeric"`
	GoogleAPIKey   string `validate:"required"`
	GeminiModel    string `validate:"required"`
	AdviceBackend  string `validate:"oneof=genai agent"`
	DBURL          string
	RabbitMQURL    string
	R2             R2Config
	SessionTTL     time.Duration `validate:"gt=0"`
	MaxUploadBytes int64         `validate:"gt=0"`
	SecureCookies  bool
}

// R2Config is the Cloudflare R2 bucket résumé uploads are kept in.
type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled is true once any R2 setting is present. Validate rejects a
// partial configuration.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" || r.Bucket != "" || r.AccessKey != "" || r.SecretKey != ""
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GoogleAPIKey:  getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AdviceBackend: strings.ToLower(getEnv("ADVICE_BACKEND", BackendGenAI)),
		DBURL:         getEnv("DB_URL", ""),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		R2: R2Config{
			AccountID: getEnv("R2_ACCOUNT_ID", ""),
			Bucket:    getEnv("R2_BUCKET", ""),
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
		},
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		SecureCookies:  getEnvBool("SECURE_COOKIES", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s failed %q check", envName(fe.Field()), fe.Tag())
		}
		return err
	}
	if c.R2.Enabled() && (c.R2.AccountID == "" || c.R2.Bucket == "" || c.R2.AccessKey == "" || c.R2.SecretKey == "") {
		return fmt.Errorf("R2_ACCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY and R2_SECRET_KEY must be set together")
	}
	return nil
}

func envName(field string) string {
	switch field {
	case "Port":
		return "PORT"
	case "GoogleAPIKey":
		return "GOOGLE_API_KEY"
	case "GeminiModel":
		return "GEMINI_MODEL"
	case "AdviceBackend":
		return "ADVICE_BACKEND"
	case "SessionTTL":
		return "SESSION_TTL_MINUTES"
	case "MaxUploadBytes":
		return "MAX_UPLOAD_MB"
	}
	return field
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
