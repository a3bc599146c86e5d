package config

import (
	"errors"
	"os"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port               string
	MongoURI           string
	DBName             string
	StripeSecretKey    string
	StripeWebhookToken string
	ClientBaseURL      string
}

// Load reads configuration from the environment. MONGOURI is the only
// required variable; everything else has a default or is validated where
// it is used.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getenv("PORT", "8080"),
		MongoURI:           os.Getenv("MONGOURI"),
		DBName:             getenv("DB_NAME", "e-tuition-bd"),
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookToken: os.Getenv("STRIPE_WEBHOOK_TOKEN"),
		ClientBaseURL:      getenv("CLIENT_BASE_URL", "http://localhost:5173"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGOURI environment variable not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
