package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("HF_MODEL", "")
	t.Setenv("STRICT_PROVIDERS", "")
	t.Setenv("FRONTEND_URL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:5173")
	assert.Equal(t, "mistralai/Mistral-7B-Instruct-v0.3", cfg.Providers.HFModel)
	assert.False(t, cfg.Providers.Strict)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STRICT_PROVIDERS", "true")
	t.Setenv("FRONTEND_URL", "https://app.example.com, https://staging.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Providers.Strict)
	assert.Contains(t, cfg.AllowedOrigins, "https://app.example.com")
	assert.Contains(t, cfg.AllowedOrigins, "https://staging.example.com")
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "postgres", Name: "wanderly", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=wanderly sslmode=disable",
		d.DSN())

	d.URL = "postgres://u:p@host/db"
	assert.Equal(t, "postgres://u:p@host/db", d.DSN(), "DATABASE_URL wins when set")
}

func TestMissingCredentials(t *testing.T) {
	cfg := &Config{}
	missing := cfg.MissingCredentials()
	assert.Contains(t, missing, "AMADEUS_CLIENT_ID/AMADEUS_CLIENT_SECRET")
	assert.Contains(t, missing, "SERPAPI_API_KEY")
	assert.Contains(t, missing, "HUGGINGFACE_API_KEY")

	cfg.Providers = ProviderConfig{
		AmadeusClientID:     "id",
		AmadeusClientSecret: "secret",
		SerpAPIKey:          "key",
		HFAPIKey:            "key",
	}
	assert.Empty(t, cfg.MissingCredentials())
}
