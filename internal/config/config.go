package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// CTA policy names accepted in CTA_POLICY.
const (
	CTAPolicyCooldown = "cooldown"
	CTAPolicySpacing  = "spacing"
)

// Session backend names accepted in SESSION_BACKEND.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Chat behavior
	DefaultSessionID string
	CTAPolicy        string
	CTACooldownTurns int
	CTASpacingTurns  int
	BookingToken     string

	// LLM
	OpenAIAPIKey   string
	OpenAIModel    string
	ClassifierOnly bool // scripted replies only, no generator delegation
	LLMTimeout     time.Duration

	// Session storage
	SessionBackend string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisTLS       bool

	// Transcript sinks
	DatabaseURL          string
	SheetsSpreadsheetID  string
	SheetsCredentialsEnv string

	// HTTP
	CORSAllowedOrigins []string
	RateLimitPerMinute int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "10000"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DefaultSessionID: getEnv("DEFAULT_SESSION_ID", "default"),
		CTAPolicy:        strings.ToLower(strings.TrimSpace(getEnv("CTA_POLICY", CTAPolicyCooldown))),
		CTACooldownTurns: getEnvAsInt("CTA_COOLDOWN_TURNS", 3),
		CTASpacingTurns:  getEnvAsInt("CTA_SPACING_TURNS", 3),
		BookingToken:     getEnv("BOOKING_TOKEN", "{{BOOK_CALL}}"),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		ClassifierOnly: getEnvAsBool("CLASSIFIER_ONLY", false),
		LLMTimeout:     getEnvAsDuration("LLM_TIMEOUT", 10*time.Second),

		SessionBackend: strings.ToLower(strings.TrimSpace(getEnv("SESSION_BACKEND", SessionBackendMemory))),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:      getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),

		DatabaseURL:          getEnv("DATABASE_URL", ""),
		SheetsSpreadsheetID:  getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsEnv: getEnv("SHEETS_CREDENTIALS_JSON", ""),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
