package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wanderly/config"
	"wanderly/database"
	"wanderly/handlers"
	"wanderly/logger"
	"wanderly/providers"
	"wanderly/services"
)

func main() {
	log := logger.GetLogger()
	defer logger.Close()

	cfg := config.Load()

	// Missing credentials are a configuration condition: name them at
	// startup so the operator sees them, instead of discovering sample
	// data in production. STRICT_PROVIDERS turns them into a hard stop.
	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		if cfg.Providers.Strict {
			log.Fatalw("missing provider credentials", "missing", missing)
		}
		for _, m := range missing {
			log.Warnw("provider credential not set, category will use sample data", "credential", m)
		}
	}

	store, err := database.Open(cfg.Database.DSN(), log)
	if err != nil {
		log.Fatalw("database initialization failed", "error", err)
	}
	defer store.Close()

	registry := providers.NewRegistry(log)

	amadeus := providers.NewAmadeusClient(
		cfg.Providers.AmadeusClientID,
		cfg.Providers.AmadeusClientSecret,
		cfg.Providers.AmadeusEnv,
	)
	if amadeus.Configured() {
		registry.Register(providers.CategoryTransportation, &providers.AmadeusFlights{Client: amadeus})
		registry.Register(providers.CategoryAccommodation, &providers.AmadeusStays{Client: amadeus})
		log.Infow("amadeus provider enabled",
			"client_id", logger.MaskSecret(cfg.Providers.AmadeusClientID))
	}

	serp := providers.NewSerpAPIClient(cfg.Providers.SerpAPIKey)
	if serp.Configured() {
		registry.Register(providers.CategoryFood, &providers.SerpFood{Client: serp})
		registry.Register(providers.CategoryAttractions, &providers.SerpAttractions{Client: serp})
		log.Infow("serpapi provider enabled",
			"api_key", logger.MaskSecret(cfg.Providers.SerpAPIKey))
	}

	ai := services.NewAIClient(cfg.Providers.HFAPIKey, cfg.Providers.HFModel)
	if ai.Configured() {
		log.Infow("LLM synthesis enabled", "model", cfg.Providers.HFModel)
	} else {
		log.Warn("LLM synthesis disabled, itineraries will use the deterministic builder")
	}

	if cfg.Environment == "production" || os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(store, registry, ai, log)
	h.RegisterRoutes(r.Group("/api"))

	log.Infow("wanderly backend starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalw("failed to start server", "error", err)
	}
}
