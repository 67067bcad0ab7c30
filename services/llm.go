// Package services holds the itinerary synthesizer and the output
// renderers (PDF, Markdown).
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"wanderly/models"
	"wanderly/providers"
)

// ErrAINotConfigured marks a missing LLM credential; callers go straight
// to the fallback builder without attempting a call.
var ErrAINotConfigured = errors.New("LLM service not configured")

// AIClient calls the HuggingFace Inference API to synthesize an
// itinerary from the gathered option data. Its output is free-form
// text; extraction and decoding happen in the planner package.
type AIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewAIClient(apiKey, model string) *AIClient {
	return &AIClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://api-inference.huggingface.co/models/",
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *AIClient) Configured() bool {
	return c.apiKey != ""
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// Synthesize asks the model for a day-by-day itinerary in the strict
// JSON shape of models.Itinerary and returns the raw generated text.
func (c *AIClient) Synthesize(ctx context.Context, req models.TripRequest, options map[providers.Category][]providers.Option) (string, error) {
	if !c.Configured() {
		return "", ErrAINotConfigured
	}

	body, err := json.Marshal(hfRequest{
		Inputs: buildItineraryPrompt(req, options),
		Parameters: hfParameters{
			MaxNewTokens:   2000,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.model, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", fmt.Errorf("model is loading, retry shortly")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var parsed hfResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse inference response: %w", err)
	}
	if len(parsed) == 0 || parsed[0].GeneratedText == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return parsed[0].GeneratedText, nil
}

const itinerarySchema = `{
  "destination": "string",
  "departure_city": "string",
  "dates": "string",
  "total_budget": number,
  "days": [
    {
      "day": number,
      "date": "YYYY-MM-DD",
      "transportation": [{"type": "string", "from": "string", "to": "string", "cost": number}],
      "accommodation": {"name": "string", "description": "string", "cost": number},
      "activities": [{"time": "string", "activity": "string", "description": "string", "location": "string", "cost": number}],
      "meals": [{"type": "string", "recommendation": "string", "cuisine": "string", "cost": number}],
      "daily_total": number
    }
  ],
  "total_cost": number,
  "remaining_budget": number
}`

func buildItineraryPrompt(req models.TripRequest, options map[providers.Category][]providers.Option) string {
	var b bytes.Buffer

	fmt.Fprintf(&b, `[INST] You are a travel expert creating a detailed itinerary. Based on the preferences and data below, create a day-by-day plan that maximizes the experience while staying within budget. Return the itinerary in strict JSON with this structure, all costs as bare numbers, wrapped in a single `+"```json```"+` block:

%s

Route: %s to %s
Travel dates: %s to %s (%d days)
Total budget: $%.0f USD
Transport budget: $%.0f | Accommodation budget: $%.0f | Food budget: $%.0f | Activities budget: $%.0f
Accommodation preference: %s
Food preference: %s
Transportation mode: %s
Special requirements: %s

`,
		itinerarySchema,
		req.DepartureCity, req.Destination,
		req.StartDate, req.EndDate, req.NumDays(),
		req.Budget,
		req.CategoryBudgets.Transport, req.CategoryBudgets.Accommodation,
		req.CategoryBudgets.Food, req.CategoryBudgets.Activities,
		req.Accommodation, req.Food, req.TransportationMode,
		orNone(req.SpecialRequirements),
	)

	for _, cat := range providers.Categories {
		opts := options[cat]
		if len(opts) > 8 {
			opts = opts[:8]
		}
		serialized, _ := json.MarshalIndent(opts, "", "  ")
		fmt.Fprintf(&b, "%s OPTIONS:\n%s\n\n", capitalized(string(cat)), serialized)
	}

	b.WriteString("[/INST]")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
