package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	JWT  JWTConfig
	Mail MailConfig

	// FrontendURL is the base used when building deep links in
	// notification emails.
	FrontendURL string

	// NotificationCooldownMinutes is the minimum interval between
	// notification bursts for the same scheduled lesson.
	NotificationCooldownMinutes int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type MailConfig struct {
	// Backend selects the mail transport: "sendgrid", "smtp" or "console".
	Backend     string
	From        string
	FromName    string
	SendGridKey string
	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
}

func LoadConfig() (*Config, error) {
	// Best effort: env vars win over .env entries.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", ""),
			Expiration:        getDurationEnv("JWT_EXPIRATION", 24*time.Hour),
			RefreshExpiration: getDurationEnv("JWT_REFRESH_EXPIRATION", 7*24*time.Hour),
		},
		Mail: MailConfig{
			Backend:     getEnv("MAIL_BACKEND", "console"),
			From:        getEnv("MAIL_FROM", "noreply@makerspace.com"),
			FromName:    getEnv("MAIL_FROM_NAME", "Makerspace"),
			SendGridKey: getEnv("SENDGRID_API_KEY", ""),
			SMTPHost:    getEnv("SMTP_HOST", "localhost"),
			SMTPPort:    getEnv("SMTP_PORT", "587"),
			SMTPUser:    getEnv("SMTP_USER", ""),
			SMTPPass:    getEnv("SMTP_PASS", ""),
		},
		FrontendURL:                 getEnv("FRONTEND_URL", "http://localhost:3000"),
		NotificationCooldownMinutes: getIntEnv("NOTIFICATION_COOLDOWN_MINUTES", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.NotificationCooldownMinutes < 0 {
		return nil, fmt.Errorf("NOTIFICATION_COOLDOWN_MINUTES must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
