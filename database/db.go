// Package database persists planning sessions and generated
// itineraries in PostgreSQL. PDF bytes live in the database so no
// filesystem is needed.
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"wanderly/models"
)

// ItineraryRecord is one generated itinerary for a trip, including its
// renderings. Synthesis records whether the LLM or the deterministic
// builder produced it; DataSource records whether live provider data
// fed the prompt.
type ItineraryRecord struct {
	ID         string           `json:"id"`
	TripID     string           `json:"trip_id"`
	Itinerary  models.Itinerary `json:"itinerary"`
	Markdown   string           `json:"-"`
	Synthesis  string           `json:"synthesis"`
	DataSource string           `json:"data_source"`
	PDFData    []byte           `json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Store wraps the SQL connection pool.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open connects, waits for the database to become reachable, and runs
// the idempotent migrations.
func Open(dsn string, log *zap.SugaredLogger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// The database may take a moment to accept connections on a cold
	// deploy.
	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		log.Infow("waiting for database", "attempt", i+1, "error", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after retries: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	log.Info("database connected and migrated")
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS trips (
			id           TEXT PRIMARY KEY,
			status       TEXT NOT NULL,
			request_json TEXT NOT NULL,
			created_at   TIMESTAMPTZ DEFAULT NOW(),
			updated_at   TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS itineraries (
			id             TEXT PRIMARY KEY,
			trip_id        TEXT NOT NULL REFERENCES trips(id),
			itinerary_json TEXT NOT NULL,
			markdown       TEXT,
			synthesis      TEXT,
			data_source    TEXT,
			pdf_data       BYTEA,
			created_at     TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_itineraries_trip_id
			ON itineraries(trip_id)`,

		`CREATE INDEX IF NOT EXISTS idx_trips_created_at
			ON trips(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ─── Trips ───────────────────────────────────────────────────────────────────

func (s *Store) SaveTrip(t *models.Trip) error {
	reqJSON, err := json.Marshal(t.Request)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO trips (id, status, request_json)
		VALUES ($1, $2, $3)`,
		t.ID, string(t.Status), string(reqJSON))
	return err
}

func (s *Store) UpdateTrip(t *models.Trip) error {
	reqJSON, err := json.Marshal(t.Request)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		UPDATE trips SET status = $1, request_json = $2, updated_at = NOW()
		WHERE id = $3`,
		string(t.Status), string(reqJSON), t.ID)
	return err
}

func (s *Store) GetTrip(id string) (*models.Trip, error) {
	t := &models.Trip{}
	var status, reqJSON string
	err := s.db.QueryRow(`
		SELECT id, status, request_json, created_at, updated_at
		FROM trips WHERE id = $1`, id).
		Scan(&t.ID, &status, &reqJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = models.TripStatus(status)
	if err := json.Unmarshal([]byte(reqJSON), &t.Request); err != nil {
		return nil, fmt.Errorf("stored trip request is corrupt: %w", err)
	}
	return t, nil
}

// ─── Itineraries ─────────────────────────────────────────────────────────────

func (s *Store) SaveItinerary(rec *ItineraryRecord) error {
	itinJSON, err := json.Marshal(rec.Itinerary)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO itineraries (id, trip_id, itinerary_json, markdown, synthesis, data_source, pdf_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.TripID, string(itinJSON), rec.Markdown, rec.Synthesis, rec.DataSource, rec.PDFData)
	return err
}

func (s *Store) GetItinerary(id string) (*ItineraryRecord, error) {
	return s.scanItinerary(s.db.QueryRow(`
		SELECT id, trip_id, itinerary_json, markdown, synthesis, data_source, pdf_data, created_at
		FROM itineraries WHERE id = $1`, id))
}

// LatestItineraryByTrip returns the most recent itinerary generated for
// a trip, or sql.ErrNoRows when none exists.
func (s *Store) LatestItineraryByTrip(tripID string) (*ItineraryRecord, error) {
	return s.scanItinerary(s.db.QueryRow(`
		SELECT id, trip_id, itinerary_json, markdown, synthesis, data_source, pdf_data, created_at
		FROM itineraries WHERE trip_id = $1
		ORDER BY created_at DESC LIMIT 1`, tripID))
}

func (s *Store) scanItinerary(row *sql.Row) (*ItineraryRecord, error) {
	rec := &ItineraryRecord{}
	var itinJSON string
	err := row.Scan(&rec.ID, &rec.TripID, &itinJSON, &rec.Markdown,
		&rec.Synthesis, &rec.DataSource, &rec.PDFData, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(itinJSON), &rec.Itinerary); err != nil {
		return nil, fmt.Errorf("stored itinerary is corrupt: %w", err)
	}
	return rec, nil
}
