package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the application reads from the environment.
// It is loaded once in main and passed down explicitly.
type Config struct {
	Port    string
	BaseURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	StripeSecretKey     string
	StripePriceID       string
	StripeWebhookSecret string

	FeaturedSlug         string
	SiteVerificationFile string
	PublicDir            string
	DraftTTL             time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripePriceID:       os.Getenv("STRIPE_PRICE_ID"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		FeaturedSlug:         os.Getenv("FEATURED_SLUG"),
		SiteVerificationFile: os.Getenv("SITE_VERIFICATION_FILE"),
		PublicDir:            getEnv("PUBLIC_DIR", "./public"),
	}

	ttlHours, err := strconv.Atoi(getEnv("DRAFT_TTL_HOURS", "72"))
	if err != nil || ttlHours < 0 {
		return nil, fmt.Errorf("invalid DRAFT_TTL_HOURS: %s", os.Getenv("DRAFT_TTL_HOURS"))
	}
	cfg.DraftTTL = time.Duration(ttlHours) * time.Hour

	required := map[string]string{
		"DB_HOST":           cfg.DBHost,
		"DB_USER":           cfg.DBUser,
		"DB_NAME":           cfg.DBName,
		"STRIPE_SECRET_KEY": cfg.StripeSecretKey,
		"STRIPE_PRICE_ID":   cfg.StripePriceID,
	}
	for key, value := range required {
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", key)
		}
	}

	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// SuccessURL is the browser-return URL for a checkout session. Stripe
// substitutes the session id placeholder itself.
func (c *Config) SuccessURL(toolID uint) string {
	return fmt.Sprintf("%s/checkout_success?session_id={CHECKOUT_SESSION_ID}&tool_id=%d", c.BaseURL, toolID)
}

func (c *Config) CancelURL(toolID uint) string {
	return fmt.Sprintf("%s/checkout_cancel?tool_id=%d", c.BaseURL, toolID)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
