package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"wanderly/models"
)

// Parse extracts a structured itinerary from raw LLM output. The model
// is asked to wrap its JSON in a ```json fence; when the fence is
// missing, the outermost brace pair is tried instead. Costs claimed by
// the model are accepted as-is once decoding succeeds; a decode failure
// or an itinerary with no days is an error, and the caller falls back
// to Build.
func Parse(raw string) (models.Itinerary, error) {
	var itin models.Itinerary

	payload, err := extractJSON(raw)
	if err != nil {
		return itin, err
	}

	if err := json.Unmarshal([]byte(payload), &itin); err != nil {
		return itin, fmt.Errorf("itinerary response is not valid JSON: %w", err)
	}

	if len(itin.Days) == 0 {
		return itin, fmt.Errorf("itinerary response contains no days")
	}
	if itin.Destination == "" {
		return itin, fmt.Errorf("itinerary response is missing a destination")
	}

	return itin, nil
}

func extractJSON(raw string) (string, error) {
	if start := strings.Index(raw, "```json"); start >= 0 {
		rest := raw[start+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), nil
		}
		return "", fmt.Errorf("unterminated json fence in response")
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return raw[start : end+1], nil
}
