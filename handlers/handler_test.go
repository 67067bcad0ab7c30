package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wanderly/database"
	"wanderly/models"
	"wanderly/providers"
	"wanderly/services"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	trips  map[string]*models.Trip
	itins  map[string]*database.ItineraryRecord
	latest map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		trips:  make(map[string]*models.Trip),
		itins:  make(map[string]*database.ItineraryRecord),
		latest: make(map[string]string),
	}
}

func (m *memStore) SaveTrip(t *models.Trip) error {
	cp := *t
	m.trips[t.ID] = &cp
	return nil
}

func (m *memStore) UpdateTrip(t *models.Trip) error {
	cp := *t
	m.trips[t.ID] = &cp
	return nil
}

func (m *memStore) GetTrip(id string) (*models.Trip, error) {
	t, ok := m.trips[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) SaveItinerary(rec *database.ItineraryRecord) error {
	cp := *rec
	m.itins[rec.ID] = &cp
	m.latest[rec.TripID] = rec.ID
	return nil
}

func (m *memStore) GetItinerary(id string) (*database.ItineraryRecord, error) {
	rec, ok := m.itins[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rec, nil
}

func (m *memStore) LatestItineraryByTrip(tripID string) (*database.ItineraryRecord, error) {
	id, ok := m.latest[tripID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return m.itins[id], nil
}

func (m *memStore) Ping() error { return nil }

// sampleFetcher serves the deterministic sample data and reports a
// configurable live flag.
type sampleFetcher struct {
	live bool
}

func (f sampleFetcher) Options(_ context.Context, cat providers.Category, q providers.Query) ([]providers.Option, bool) {
	return providers.SampleOptions(cat, q), f.live
}

// stubAI returns canned synthesis output.
type stubAI struct {
	configured bool
	raw        string
	err        error
}

func (a stubAI) Configured() bool { return a.configured }

func (a stubAI) Synthesize(context.Context, models.TripRequest, map[providers.Category][]providers.Option) (string, error) {
	return a.raw, a.err
}

func notConfiguredAI() stubAI {
	return stubAI{err: services.ErrAINotConfigured}
}

func setup(t *testing.T, store Store, fetcher OptionFetcher, ai Synthesizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(store, fetcher, ai, zaptest.NewLogger(t).Sugar())
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func planBody() []byte {
	return []byte(`{
		"departure_city": "London",
		"destination": "Paris",
		"start_date": "2025-06-01",
		"end_date": "2025-06-03",
		"budget": 900
	}`)
}

func doJSON(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setup(t, newMemStore(), sampleFetcher{}, stubAI{configured: true})
	w := doJSON(r, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "ok", resp["database"])
	assert.Equal(t, "ok", resp["ai"])
}

func TestHealthReportsUnconfiguredAI(t *testing.T) {
	r := setup(t, newMemStore(), sampleFetcher{}, stubAI{})
	w := doJSON(r, http.MethodGet, "/api/health", nil)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not configured", resp["ai"])
}

func TestCreateTrip(t *testing.T) {
	store := newMemStore()
	r := setup(t, store, sampleFetcher{}, stubAI{})

	w := doJSON(r, http.MethodPost, "/api/trips", planBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var trip models.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trip))
	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, models.StatusCollecting, trip.Status)
	assert.Equal(t, models.StyleMidRange, trip.Request.Accommodation, "defaults filled on create")

	_, err := store.GetTrip(trip.ID)
	assert.NoError(t, err)
}

func TestCreateTripRejectsInvalid(t *testing.T) {
	r := setup(t, newMemStore(), sampleFetcher{}, stubAI{})

	w := doJSON(r, http.MethodPost, "/api/trips", []byte(`{"departure_city": "London"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/trips", []byte(`{
		"departure_city": "London", "destination": "Paris",
		"start_date": "2025-06-10", "end_date": "2025-06-01", "budget": 900
	}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanWithFallbackSynthesis(t *testing.T) {
	store := newMemStore()
	r := setup(t, store, sampleFetcher{}, notConfiguredAI())

	w := doJSON(r, http.MethodPost, "/api/plan", planBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "fallback", resp.Synthesis)
	assert.Equal(t, "estimated", resp.DataSource)
	assert.Len(t, resp.Itinerary.Days, 3)
	assert.Equal(t, 1110.0, resp.Itinerary.TotalCost)
	assert.Equal(t, "/api/download/"+resp.ItineraryID, resp.PDFURL)

	trip, err := store.GetTrip(resp.TripID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisplaying, trip.Status)

	rec, err := store.GetItinerary(resp.ItineraryID)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.PDFData)
	assert.NotEmpty(t, rec.Markdown)
}

func TestPlanWithAISynthesis(t *testing.T) {
	raw := "Here is your plan:\n```json\n" + aiItineraryJSON + "\n```"
	store := newMemStore()
	r := setup(t, store, sampleFetcher{live: true}, stubAI{configured: true, raw: raw})

	w := doJSON(r, http.MethodPost, "/api/plan", planBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ai", resp.Synthesis)
	assert.Equal(t, "live", resp.DataSource)
	assert.Equal(t, "Paris", resp.Itinerary.Destination)
	assert.Equal(t, "London", resp.Itinerary.DepartureCity, "identity fields filled from the request")
	assert.Equal(t, 900.0, resp.Itinerary.TotalBudget)
}

func TestPlanFallsBackOnUndetectableAIOutput(t *testing.T) {
	r := setup(t, newMemStore(), sampleFetcher{}, stubAI{configured: true, raw: "sorry, I cannot help"})

	w := doJSON(r, http.MethodPost, "/api/plan", planBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fallback", resp.Synthesis)
}

func TestGenerateTrip(t *testing.T) {
	store := newMemStore()
	r := setup(t, store, sampleFetcher{}, notConfiguredAI())

	w := doJSON(r, http.MethodPost, "/api/trips", planBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var trip models.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trip))

	w = doJSON(r, http.MethodPost, "/api/trips/"+trip.ID+"/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := store.GetTrip(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisplaying, stored.Status)
}

func TestGenerateTripConflictWhileGenerating(t *testing.T) {
	store := newMemStore()
	trip := &models.Trip{ID: "busy", Status: models.StatusGenerating}
	require.NoError(t, store.SaveTrip(trip))

	r := setup(t, store, sampleFetcher{}, notConfiguredAI())
	w := doJSON(r, http.MethodPost, "/api/trips/busy/generate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGenerateTripNotFound(t *testing.T) {
	r := setup(t, newMemStore(), sampleFetcher{}, notConfiguredAI())
	w := doJSON(r, http.MethodPost, "/api/trips/missing/generate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTrip(t *testing.T) {
	store := newMemStore()
	trip := &models.Trip{ID: "t1", Status: models.StatusDisplaying}
	require.NoError(t, store.SaveTrip(trip))

	r := setup(t, store, sampleFetcher{}, stubAI{})
	body := []byte(`{
		"departure_city": "London", "destination": "Rome",
		"start_date": "2025-07-01", "end_date": "2025-07-05", "budget": 1500
	}`)
	w := doJSON(r, http.MethodPatch, "/api/trips/t1", body)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := store.GetTrip("t1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCollecting, stored.Status, "editing a displayed trip reopens it")
	assert.Equal(t, "Rome", stored.Request.Destination)
}

func TestUpdateTripConflictWhileGenerating(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.SaveTrip(&models.Trip{ID: "busy", Status: models.StatusGenerating}))

	r := setup(t, store, sampleFetcher{}, stubAI{})
	w := doJSON(r, http.MethodPatch, "/api/trips/busy", planBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetTripIncludesLatestItinerary(t *testing.T) {
	store := newMemStore()
	r := setup(t, store, sampleFetcher{}, notConfiguredAI())

	w := doJSON(r, http.MethodPost, "/api/plan", planBody())
	require.Equal(t, http.StatusOK, w.Code)
	var resp PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(r, http.MethodGet, "/api/trips/"+resp.TripID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "trip")
	assert.Contains(t, body, "itinerary")
}

func TestDownload(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.SaveItinerary(&database.ItineraryRecord{
		ID:      "rec1",
		TripID:  "t1",
		PDFData: []byte("%PDF-1.4 fake"),
	}))

	r := setup(t, store, sampleFetcher{}, stubAI{})
	w := doJSON(r, http.MethodGet, "/api/download/rec1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestDownloadMissingPDF(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.SaveItinerary(&database.ItineraryRecord{ID: "rec1", TripID: "t1"}))

	r := setup(t, store, sampleFetcher{}, stubAI{})
	w := doJSON(r, http.MethodGet, "/api/download/rec1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/download/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetItineraryMarkdown(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.SaveItinerary(&database.ItineraryRecord{
		ID:       "rec1",
		TripID:   "t1",
		Markdown: "# London to Paris Itinerary",
	}))

	r := setup(t, store, sampleFetcher{}, stubAI{})
	w := doJSON(r, http.MethodGet, "/api/itinerary/rec1/markdown", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Equal(t, "# London to Paris Itinerary", w.Body.String())
}

const aiItineraryJSON = `{
	"destination": "Paris",
	"dates": "",
	"total_budget": 0,
	"days": [
		{
			"day": 1,
			"date": "2025-06-01",
			"transportation": [{"type": "Flight", "from": "London", "to": "Paris", "cost": 120}],
			"accommodation": {"name": "Hotel Lumiere", "cost": 95},
			"activities": [{"time": "Morning", "activity": "Louvre Museum", "cost": 20}],
			"meals": [{"type": "Dinner", "recommendation": "Le Petit Bistro", "cost": 35}],
			"daily_total": 270
		}
	],
	"total_cost": 270,
	"remaining_budget": 630
}`
