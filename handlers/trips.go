package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wanderly/models"
)

// CreateTrip opens a new planning session in the collecting state.
func (h *Handler) CreateTrip(c *gin.Context) {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip := &models.Trip{
		ID:      uuid.New().String(),
		Status:  models.StatusCollecting,
		Request: req,
	}
	if err := h.store.SaveTrip(trip); err != nil {
		h.log.Errorw("failed to save trip", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save trip"})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// GetTrip returns the session plus its latest itinerary, if one has
// been generated.
func (h *Handler) GetTrip(c *gin.Context) {
	trip, err := h.store.GetTrip(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}

	resp := gin.H{"trip": trip}
	if rec, err := h.store.LatestItineraryByTrip(trip.ID); err == nil {
		resp["itinerary"] = rec
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.log.Warnw("failed to load itinerary for trip", "trip_id", trip.ID, "error", err)
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTrip replaces the preferences of a session. A displayed trip
// moves back to collecting; a trip mid-generation cannot be edited.
func (h *Handler) UpdateTrip(c *gin.Context) {
	trip, err := h.store.GetTrip(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}

	if trip.Status == models.StatusGenerating {
		c.JSON(http.StatusConflict, gin.H{"error": "trip is being generated, try again shortly"})
		return
	}
	if trip.Status == models.StatusDisplaying {
		if err := trip.Transition(models.StatusCollecting); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
	}

	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip.Request = req
	if err := h.store.UpdateTrip(trip); err != nil {
		h.log.Errorw("failed to update trip", "trip_id", trip.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update trip"})
		return
	}

	c.JSON(http.StatusOK, trip)
}

// GenerateTrip runs the planning pipeline for an existing session.
func (h *Handler) GenerateTrip(c *gin.Context) {
	trip, err := h.store.GetTrip(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}

	if !trip.Status.CanTransition(models.StatusGenerating) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "trip cannot be generated from status " + string(trip.Status),
		})
		return
	}

	h.runPipeline(c, trip)
}
