package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SerpAPIClient queries SerpAPI's google_maps engine. It backs the food
// and attractions categories.
type SerpAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewSerpAPIClient(apiKey string) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:     apiKey,
		baseURL:    "https://serpapi.com/search",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *SerpAPIClient) Configured() bool {
	return c.apiKey != ""
}

type serpLocalResult struct {
	Title       string  `json:"title"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Address     string  `json:"address"`
	PriceLevel  string  `json:"price"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

func (c *SerpAPIClient) localResults(ctx context.Context, query string) ([]serpLocalResult, error) {
	params := url.Values{}
	params.Set("engine", "google_maps")
	params.Set("q", query)
	params.Set("type", "search")
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error (%d): %s", resp.StatusCode, string(body))
	}

	var payload struct {
		LocalResults []serpLocalResult `json:"local_results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse serpapi response: %w", err)
	}
	return payload.LocalResults, nil
}

// SerpFood serves the food category: one restaurant search biased by the
// food preference and any dietary requirement in the free-form text.
type SerpFood struct {
	Client *SerpAPIClient
}

func (s *SerpFood) Fetch(ctx context.Context, q Query) ([]Option, error) {
	if !s.Client.Configured() {
		return nil, ErrNotConfigured
	}

	query := fmt.Sprintf("best %s restaurants in %s", strings.ToLower(q.Food), q.Destination)
	lower := strings.ToLower(q.Requirements)
	switch {
	case strings.Contains(lower, "vegetarian"):
		query += " vegetarian"
	case strings.Contains(lower, "vegan"):
		query += " vegan"
	case strings.Contains(lower, "gluten-free"):
		query += " gluten-free"
	}

	results, err := s.Client.localResults(ctx, query)
	if err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(results))
	for _, r := range results {
		desc := r.Description
		if desc == "" {
			desc = "A local restaurant"
		}
		options = append(options, Option{
			Name:        r.Title,
			Description: desc,
			PriceLabel:  priceLabelOrDefault(r.PriceLevel),
			Rating:      r.Rating,
			Location:    r.Address,
			Details:     map[string]string{"cuisine": q.Food},
		})
	}
	return options, nil
}

// SerpAttractions serves the attractions category: one search per
// activity interest, results tagged with the interest that found them.
type SerpAttractions struct {
	Client *SerpAPIClient
}

func (s *SerpAttractions) Fetch(ctx context.Context, q Query) ([]Option, error) {
	if !s.Client.Configured() {
		return nil, ErrNotConfigured
	}

	interests := q.Interests
	if len(interests) == 0 {
		interests = []string{"top attractions"}
	}
	if len(interests) > 5 {
		interests = interests[:5]
	}

	var options []Option
	var lastErr error
	for _, interest := range interests {
		results, err := s.Client.localResults(ctx, fmt.Sprintf("%s in %s", interest, q.Destination))
		if err != nil {
			lastErr = err
			continue
		}
		if len(results) > 5 {
			results = results[:5]
		}
		for _, r := range results {
			desc := r.Description
			if desc == "" {
				desc = r.Type
			}
			options = append(options, Option{
				Name:        r.Title,
				Description: desc,
				Rating:      r.Rating,
				Location:    r.Address,
				Details:     map[string]string{"interest": interest},
			})
		}
	}

	if len(options) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return options, nil
}

func priceLabelOrDefault(label string) string {
	if label == "" {
		return "$$"
	}
	return label
}
