package config

import (
	"fmt"
	"os"
	"time"
)

// Config is loaded once at startup and injected; nothing reads ambient
// env vars after boot.
type Config struct {
	Addr              string
	DatabaseDSN       string
	PaystackSecretKey string
	PaystackBaseURL   string
	CallbackURL       string
	Currency          string
	GatewayTimeout    time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Addr:              envOr("ADDR", ":8080"),
		DatabaseDSN:       os.Getenv("DB_DSN"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:   envOr("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		CallbackURL:       envOr("PAYMENT_CALLBACK_URL", "http://127.0.0.1:8080/api/v1/payment/verify"),
		Currency:          envOr("PAYMENT_CURRENCY", "NGN"),
		GatewayTimeout:    10 * time.Second,
	}

	if v := os.Getenv("GATEWAY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GATEWAY_TIMEOUT: %w", err)
		}
		cfg.GatewayTimeout = d
	}

	if cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN environment variable is required")
	}
	if cfg.PaystackSecretKey == "" {
		return Config{}, fmt.Errorf("PAYSTACK_SECRET_KEY environment variable is required")
	}

	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
