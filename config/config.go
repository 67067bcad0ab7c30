// Package config loads application configuration from the environment.
// A .env file is honored in development; production supplies real
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"wanderly/logger"
)

// ProviderConfig holds credentials for the external data sources and the
// LLM service. Keys are opaque strings passed through unchanged. A
// missing key disables the provider (the registry serves sample data
// instead) unless Strict is set, in which case startup fails.
type ProviderConfig struct {
	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusEnv          string
	SerpAPIKey          string
	HFAPIKey            string
	HFModel             string
	Strict              bool
}

// DatabaseConfig holds Postgres connection settings. DATABASE_URL wins
// when present; otherwise the discrete vars are assembled into a DSN.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the connection string for database/sql.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string
	Database       DatabaseConfig
	Providers      ProviderConfig
}

// Load reads configuration from the environment, applying development
// defaults for anything unset.
func Load() *Config {
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "wanderly"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Providers: ProviderConfig{
			AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
			AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
			AmadeusEnv:          os.Getenv("AMADEUS_ENV"),
			SerpAPIKey:          os.Getenv("SERPAPI_API_KEY"),
			HFAPIKey:            os.Getenv("HUGGINGFACE_API_KEY"),
			HFModel:             getEnv("HF_MODEL", "mistralai/Mistral-7B-Instruct-v0.3"),
			Strict:              os.Getenv("STRICT_PROVIDERS") == "true",
		},
	}

	cfg.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	for _, u := range strings.Split(os.Getenv("FRONTEND_URL"), ",") {
		if u = strings.TrimSpace(u); u != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, u)
		}
	}

	return cfg
}

// MissingCredentials names the provider credentials that are unset.
// Callers surface these at startup so a configuration gap is visible to
// the operator rather than silently degrading into sample data.
func (c *Config) MissingCredentials() []string {
	var missing []string
	p := c.Providers
	if p.AmadeusClientID == "" || p.AmadeusClientSecret == "" {
		missing = append(missing, "AMADEUS_CLIENT_ID/AMADEUS_CLIENT_SECRET")
	}
	if p.SerpAPIKey == "" {
		missing = append(missing, "SERPAPI_API_KEY")
	}
	if p.HFAPIKey == "" {
		missing = append(missing, "HUGGINGFACE_API_KEY")
	}
	return missing
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
