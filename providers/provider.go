// Package providers fetches category options (transportation,
// accommodation, food, attractions) from external data sources. One
// Source implementation exists per provider; the Registry selects them
// by category and enforces the total-fallback policy: callers always
// receive a non-empty option list, never an error.
package providers

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"wanderly/models"
)

// Category identifies one kind of trip option.
type Category string

const (
	CategoryTransportation Category = "transportation"
	CategoryAccommodation  Category = "accommodation"
	CategoryFood           Category = "food"
	CategoryAttractions    Category = "attractions"
)

// Categories lists every category in assembly order.
var Categories = []Category{
	CategoryTransportation,
	CategoryAccommodation,
	CategoryFood,
	CategoryAttractions,
}

// ErrNotConfigured marks a source whose credentials are absent. It is a
// configuration condition, surfaced at startup, distinct from a
// transient fetch failure.
var ErrNotConfigured = errors.New("provider not configured")

// ErrUnsupported marks a query the source cannot serve (e.g. train
// transportation against a flight API).
var ErrUnsupported = errors.New("query not supported by provider")

// Option is one candidate the user (or the LLM) can pick: at minimum a
// name, a cost or price label, and a description. Category-specific
// extras live in Details.
type Option struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Cost        float64           `json:"cost,omitempty"`
	PriceLabel  string            `json:"price_label,omitempty"`
	Rating      float64           `json:"rating,omitempty"`
	Location    string            `json:"location,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
}

// Query carries the trip parameters relevant to an option search.
// Budget is the category budget, not the trip total.
type Query struct {
	Origin       string
	Destination  string
	Start        time.Time
	End          time.Time
	Budget       float64
	Mode         models.TransportMode
	Style        models.AccommodationStyle
	Food         string
	Interests    []string
	Requirements string
}

// Nights returns the stay length in nights, never below 1.
func (q Query) Nights() int {
	n := int(q.End.Sub(q.Start).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// Source fetches options for one category from one provider.
type Source interface {
	Fetch(ctx context.Context, q Query) ([]Option, error)
}

// Registry maps categories to their configured sources.
type Registry struct {
	sources map[Category]Source
	log     *zap.SugaredLogger
}

func NewRegistry(log *zap.SugaredLogger) *Registry {
	return &Registry{
		sources: make(map[Category]Source),
		log:     log,
	}
}

// Register installs the source for a category, replacing any previous one.
func (r *Registry) Register(cat Category, s Source) {
	r.sources[cat] = s
}

// Options returns candidates for a category. It never fails and never
// returns an empty list: a missing source, a fetch error, or an empty
// payload all degrade to deterministic sample data. The second return
// reports whether the options came from a live provider.
func (r *Registry) Options(ctx context.Context, cat Category, q Query) ([]Option, bool) {
	src, ok := r.sources[cat]
	if !ok {
		r.log.Debugw("no source registered, using sample data", "category", cat)
		return SampleOptions(cat, q), false
	}

	opts, err := src.Fetch(ctx, q)
	switch {
	case errors.Is(err, ErrUnsupported):
		r.log.Debugw("query unsupported by source, using sample data", "category", cat)
		return SampleOptions(cat, q), false
	case errors.Is(err, ErrNotConfigured):
		r.log.Warnw("source not configured, using sample data", "category", cat)
		return SampleOptions(cat, q), false
	case err != nil:
		r.log.Warnw("fetch failed, using sample data", "category", cat, "error", err)
		return SampleOptions(cat, q), false
	case len(opts) == 0:
		r.log.Warnw("source returned no options, using sample data", "category", cat)
		return SampleOptions(cat, q), false
	}

	return opts, true
}
