// Package handlers wires the HTTP surface: the planning wizard
// endpoints, the one-shot plan endpoint, and the itinerary retrieval
// and download endpoints.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderly/database"
	"wanderly/models"
	"wanderly/providers"
)

// Store is the persistence surface the handlers need.
type Store interface {
	SaveTrip(t *models.Trip) error
	UpdateTrip(t *models.Trip) error
	GetTrip(id string) (*models.Trip, error)
	SaveItinerary(rec *database.ItineraryRecord) error
	GetItinerary(id string) (*database.ItineraryRecord, error)
	LatestItineraryByTrip(tripID string) (*database.ItineraryRecord, error)
	Ping() error
}

// OptionFetcher supplies category options under the total-fallback
// policy; the bool reports whether the data came from a live provider.
type OptionFetcher interface {
	Options(ctx context.Context, cat providers.Category, q providers.Query) ([]providers.Option, bool)
}

// Synthesizer turns the request plus option sets into raw LLM output.
type Synthesizer interface {
	Configured() bool
	Synthesize(ctx context.Context, req models.TripRequest, options map[providers.Category][]providers.Option) (string, error)
}

type Handler struct {
	store    Store
	registry OptionFetcher
	ai       Synthesizer
	log      *zap.SugaredLogger
}

func New(store Store, registry OptionFetcher, ai Synthesizer, log *zap.SugaredLogger) *Handler {
	return &Handler{
		store:    store,
		registry: registry,
		ai:       ai,
		log:      log,
	}
}

// RegisterRoutes mounts every endpoint on the /api group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/health", h.Health)

	api.POST("/trips", h.CreateTrip)
	api.GET("/trips/:id", h.GetTrip)
	api.PATCH("/trips/:id", h.UpdateTrip)
	api.POST("/trips/:id/generate", h.GenerateTrip)

	api.POST("/plan", h.Plan)

	api.GET("/itinerary/:id", h.GetItinerary)
	api.GET("/itinerary/:id/markdown", h.GetItineraryMarkdown)
	api.GET("/download/:id", h.Download)
}

func (h *Handler) Health(c *gin.Context) {
	dbStatus := "ok"
	if err := h.store.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	aiStatus := "ok"
	if !h.ai.Configured() {
		aiStatus = "not configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "Wanderly API",
		"database": dbStatus,
		"ai":       aiStatus,
	})
}
