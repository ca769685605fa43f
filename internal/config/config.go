package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	DatabaseURL string

	// Sessions
	JWTSecret string
	TokenTTL  time.Duration

	// Firebase (optional second identity provider)
	FirebaseProjectID string

	// LLM
	LLMProvider   string // groq or claude
	GroqAPIKey    string
	GroqBaseURL   string
	GroqModel     string
	ClaudeAPIKey  string
	ClaudeBaseURL string
	ClaudeModel   string

	// Portfolio
	PortfolioPath string   // empty uses the embedded dataset
	DefaultLinks  []string // empty uses the built-in defaults

	// Email persona
	SenderName    string
	SenderProfile string

	// Page fetching
	FetchTimeout  time.Duration
	FetchMaxBytes int64

	// Rate Limiting
	RateLimitRPS int

	// CORS
	AllowedOrigins []string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func Load() (*Config, error) {
	// Load .env file if it exists (development only). Real env vars take precedence.
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 15*time.Minute),
		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
		GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:       getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:         getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		ClaudeAPIKey:      getEnv("CLAUDE_API_KEY", ""),
		ClaudeBaseURL:     getEnv("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		ClaudeModel:       getEnv("CLAUDE_MODEL", ""),
		PortfolioPath:     getEnv("PORTFOLIO_PATH", ""),
		DefaultLinks:      getEnvList("DEFAULT_PORTFOLIO_LINKS", nil),
		SenderName:        getEnv("SENDER_NAME", ""),
		SenderProfile:     getEnv("SENDER_PROFILE", ""),
		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchMaxBytes:     int64(getEnvInt("FETCH_MAX_BYTES", 2<<20)),
		RateLimitRPS:      getEnvInt("RATE_LIMIT_RPS", 10),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.LLMProvider != "groq" && cfg.LLMProvider != "claude" {
		return nil, fmt.Errorf("LLM_PROVIDER must be groq or claude, got %q", cfg.LLMProvider)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping blanks
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
