package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wanderly/database"
	"wanderly/models"
	"wanderly/planner"
	"wanderly/providers"
	"wanderly/services"
)

// PlanResponse reports the outcome of a generation run. Synthesis is
// "ai" when the LLM produced the itinerary and "fallback" when the
// deterministic builder did; DataSource is "live" when every category
// came from a real provider and "estimated" otherwise.
type PlanResponse struct {
	TripID      string           `json:"trip_id"`
	ItineraryID string           `json:"itinerary_id"`
	Itinerary   models.Itinerary `json:"itinerary"`
	Synthesis   string           `json:"synthesis"`
	DataSource  string           `json:"data_source"`
	PDFURL      string           `json:"pdf_url"`
	MarkdownURL string           `json:"markdown_url"`
}

// Plan is the one-shot endpoint: create a session and generate in a
// single call.
func (h *Handler) Plan(c *gin.Context) {
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

	h.runPipeline(c, trip)
}

// runPipeline drives the session through generating to displaying:
// fetch the four option categories, synthesize, render, persist. The
// trip's status is rolled back to collecting if persistence or
// rendering fails.
func (h *Handler) runPipeline(c *gin.Context, trip *models.Trip) {
	ctx := c.Request.Context()

	if err := trip.Transition(models.StatusGenerating); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.UpdateTrip(trip); err != nil {
		h.log.Errorw("failed to update trip status", "trip_id", trip.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update trip"})
		return
	}

	options, live := h.fetchOptions(ctx, trip.Request)
	itin, synthesis := h.synthesize(ctx, trip.Request, options)
	markdown := services.RenderMarkdown(itin)

	pdfBytes, err := services.RenderPDF(itin)
	if err != nil {
		h.log.Errorw("PDF generation failed", "trip_id", trip.ID, "error", err)
		h.rollback(trip)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render itinerary"})
		return
	}

	dataSource := "live"
	if !live {
		dataSource = "estimated"
	}

	rec := &database.ItineraryRecord{
		ID:         uuid.New().String(),
		TripID:     trip.ID,
		Itinerary:  itin,
		Markdown:   markdown,
		Synthesis:  synthesis,
		DataSource: dataSource,
		PDFData:    pdfBytes,
	}
	if err := h.store.SaveItinerary(rec); err != nil {
		h.log.Errorw("failed to save itinerary", "trip_id", trip.ID, "error", err)
		h.rollback(trip)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save itinerary"})
		return
	}

	if err := trip.Transition(models.StatusDisplaying); err == nil {
		if err := h.store.UpdateTrip(trip); err != nil {
			h.log.Warnw("failed to mark trip displayed", "trip_id", trip.ID, "error", err)
		}
	}

	h.log.Infow("itinerary generated",
		"trip_id", trip.ID,
		"itinerary_id", rec.ID,
		"days", len(itin.Days),
		"synthesis", synthesis,
		"data_source", dataSource,
	)

	c.JSON(http.StatusOK, PlanResponse{
		TripID:      trip.ID,
		ItineraryID: rec.ID,
		Itinerary:   itin,
		Synthesis:   synthesis,
		DataSource:  dataSource,
		PDFURL:      "/api/download/" + rec.ID,
		MarkdownURL: "/api/itinerary/" + rec.ID + "/markdown",
	})
}

// fetchOptions gathers all four categories concurrently; the calls are
// independent and each degrades to sample data on its own.
func (h *Handler) fetchOptions(ctx context.Context, req models.TripRequest) (map[providers.Category][]providers.Option, bool) {
	var mu sync.Mutex
	results := make(map[providers.Category][]providers.Option, len(providers.Categories))
	allLive := true

	var wg sync.WaitGroup
	for _, cat := range providers.Categories {
		wg.Add(1)
		go func(cat providers.Category) {
			defer wg.Done()
			opts, isLive := h.registry.Options(ctx, cat, queryFor(req, cat))
			mu.Lock()
			results[cat] = opts
			allLive = allLive && isLive
			mu.Unlock()
		}(cat)
	}
	wg.Wait()

	return results, allLive
}

// synthesize asks the LLM for an itinerary and falls back to the
// deterministic builder when the call, extraction, or decoding fails.
// Costs claimed by the model are accepted as-is once decoding succeeds.
func (h *Handler) synthesize(ctx context.Context, req models.TripRequest, options map[providers.Category][]providers.Option) (models.Itinerary, string) {
	raw, err := h.ai.Synthesize(ctx, req, options)
	if err != nil {
		if errors.Is(err, services.ErrAINotConfigured) {
			h.log.Debug("LLM not configured, using fallback builder")
		} else {
			h.log.Warnw("LLM synthesis failed, using fallback builder", "error", err)
		}
		return planner.Build(req), "fallback"
	}

	itin, err := planner.Parse(raw)
	if err != nil {
		h.log.Warnw("LLM output not decodable, using fallback builder",
			"error", err, "output", truncate(raw, 300))
		return planner.Build(req), "fallback"
	}

	// The model occasionally omits identity fields; fill them from the
	// request rather than rejecting the whole result.
	if itin.DepartureCity == "" {
		itin.DepartureCity = req.DepartureCity
	}
	if itin.Dates == "" {
		itin.Dates = req.DateRangeLabel()
	}
	if itin.TotalBudget == 0 {
		itin.TotalBudget = req.Budget
	}

	return itin, "ai"
}

func (h *Handler) rollback(trip *models.Trip) {
	if err := trip.Transition(models.StatusCollecting); err != nil {
		return
	}
	if err := h.store.UpdateTrip(trip); err != nil {
		h.log.Warnw("failed to roll back trip status", "trip_id", trip.ID, "error", err)
	}
}

// queryFor builds the provider query for one category, slicing off the
// matching category budget.
func queryFor(req models.TripRequest, cat providers.Category) providers.Query {
	start, end := req.Dates()
	q := providers.Query{
		Origin:       req.DepartureCity,
		Destination:  req.Destination,
		Start:        start,
		End:          end,
		Mode:         req.TransportationMode,
		Style:        req.Accommodation,
		Food:         req.Food,
		Interests:    req.Activities,
		Requirements: req.SpecialRequirements,
	}

	switch cat {
	case providers.CategoryTransportation:
		q.Budget = req.CategoryBudgets.Transport
	case providers.CategoryAccommodation:
		q.Budget = req.CategoryBudgets.Accommodation
	case providers.CategoryFood:
		q.Budget = req.CategoryBudgets.Food
	case providers.CategoryAttractions:
		q.Budget = req.CategoryBudgets.Activities
	}
	return q
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
