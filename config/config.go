package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	OpenAIAPIKey string
	OpenAIModel  string

	CatalogAPIURL string
	CatalogAPIKey string

	PaymentProvider   string // "http" or "stripe"
	PaymentGatewayURL string
	PaymentGatewayKey string
	StripeSecretKey   string

	RedisURL string // optional; empty keeps carts in memory
	CartTTL  time.Duration

	WhatsAppAPIURL      string
	WhatsAppAPIKey      string
	WhatsAppVerifyToken string

	ExternalCallTimeout time.Duration
	SessionTTL          time.Duration // 0 disables checkout session eviction
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                getEnv("PORT", "8000"),
		Env:                 getEnv("APP_ENV", "development"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		CatalogAPIURL:       os.Getenv("CATALOG_API_URL"),
		CatalogAPIKey:       os.Getenv("CATALOG_API_KEY"),
		PaymentProvider:     getEnv("PAYMENT_PROVIDER", "http"),
		PaymentGatewayURL:   os.Getenv("PAYMENT_GATEWAY_URL"),
		PaymentGatewayKey:   os.Getenv("PAYMENT_GATEWAY_KEY"),
		StripeSecretKey:     os.Getenv("STRIPE_API_KEY"),
		RedisURL:            os.Getenv("REDIS_URL"),
		CartTTL:             getDuration("CART_TTL", 7*24*time.Hour),
		WhatsAppAPIURL:      os.Getenv("WHATSAPP_API_URL"),
		WhatsAppAPIKey:      os.Getenv("WHATSAPP_API_KEY"),
		WhatsAppVerifyToken: os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		ExternalCallTimeout: getDuration("EXTERNAL_CALL_TIMEOUT", 10*time.Second),
		SessionTTL:          getDuration("CHECKOUT_SESSION_TTL", 0),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
