package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Stripe     StripeConfig
	Mail       MailConfig
}

type ServerConfig struct {
	Port            string
	Env             string
	BaseURL         string // public base URL, used for payment return URLs
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RateLimit       int // requests per window per client IP
	RateLimitWindow time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

// MailConfig configures the EmailJS-style transactional relay used for
// application emails.
type MailConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	AdminEmail string
}

func Load() *Config {
	// Best effort; env vars win over .env and defaults.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         env("PORT", "8080"),
			Env:          env("APP_ENV", "development"),
			BaseURL:      env("BASE_URL", "http://localhost:8080"),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			RateLimit:       envInt("RATE_LIMIT", 100),
			RateLimitWindow: time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             env("DATABASE_DSN", "wellwish:wellwish@tcp(localhost:3306)/wellwish?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  env("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: env("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "wellwish",
		},
		OAuth: OAuthConfig{
			GoogleClientID:     env("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: env("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  env("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: env("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    env("CLOUDINARY_API_KEY", ""),
			APISecret: env("CLOUDINARY_API_SECRET", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     env("STRIPE_SECRET_KEY", ""),
			WebhookSecret: env("STRIPE_WEBHOOK_SECRET", ""),
			Currency:      env("STRIPE_CURRENCY", "usd"),
		},
		Mail: MailConfig{
			BaseURL:    env("EMAILJS_BASE_URL", "https://api.emailjs.com"),
			ServiceID:  env("EMAILJS_SERVICE_ID", ""),
			TemplateID: env("EMAILJS_TEMPLATE_ID", ""),
			PublicKey:  env("EMAILJS_PUBLIC_KEY", ""),
			AdminEmail: env("ADMIN_EMAIL", ""),
		},
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
