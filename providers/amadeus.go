package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"wanderly/models"
)

// AmadeusClient talks to the Amadeus self-service APIs. One client is
// shared by the flight and hotel sources; the OAuth2 token is refreshed
// lazily and guarded by a mutex.
type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
}

// NewAmadeusClient builds a client for the test or production
// environment. Credentials may be empty; sources then report
// ErrNotConfigured.
func NewAmadeusClient(clientID, clientSecret, env string) *AmadeusClient {
	baseURL := "https://api.amadeus.com"
	if env == "" || env == "test" {
		baseURL = "https://test.api.amadeus.com"
	}
	return &AmadeusClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether credentials are present.
func (c *AmadeusClient) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) get(ctx context.Context, path string) ([]byte, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// ─── Flight source ───────────────────────────────────────────────────────────

// AmadeusFlights serves the transportation category for flight trips
// through the Flight Offers Search API. Train queries are unsupported.
type AmadeusFlights struct {
	Client *AmadeusClient
}

func (s *AmadeusFlights) Fetch(ctx context.Context, q Query) ([]Option, error) {
	if !s.Client.Configured() {
		return nil, ErrNotConfigured
	}
	if q.Mode != models.ModeFlight {
		return nil, ErrUnsupported
	}

	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&returnDate=%s&adults=1&max=6&currencyCode=USD",
		url.QueryEscape(q.Origin),
		url.QueryEscape(q.Destination),
		url.QueryEscape(q.Start.Format("2006-01-02")),
		url.QueryEscape(q.End.Format("2006-01-02")),
	)

	body, err := s.Client.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}
	return parseFlightOffers(body)
}

type flightOffersResponse struct {
	Data []struct {
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	} `json:"data"`
}

func parseFlightOffers(data []byte) ([]Option, error) {
	var resp flightOffersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	options := make([]Option, 0, len(resp.Data))
	for _, offer := range resp.Data {
		if len(offer.Itineraries) == 0 {
			continue
		}
		price := parsePrice(offer.Price.GrandTotal)
		if price <= 0 {
			continue
		}

		outbound := offer.Itineraries[0]
		airlineCode := ""
		if len(outbound.Segments) > 0 {
			airlineCode = outbound.Segments[0].CarrierCode
		} else if len(offer.ValidatingAirlineCodes) > 0 {
			airlineCode = offer.ValidatingAirlineCodes[0]
		}

		stops := len(outbound.Segments) - 1
		if stops < 0 {
			stops = 0
		}

		opt := Option{
			Name: airlineName(airlineCode),
			Cost: price,
			Details: map[string]string{
				"duration": parseISODuration(outbound.Duration),
				"stops":    fmt.Sprintf("%d", stops),
				"currency": offer.Price.Currency,
			},
		}
		if len(outbound.Segments) > 0 {
			first := outbound.Segments[0]
			last := outbound.Segments[len(outbound.Segments)-1]
			opt.Description = fmt.Sprintf("%s %s → %s, %s, %d stop(s)",
				first.Departure.At, first.Departure.IataCode,
				last.Arrival.IataCode, parseISODuration(outbound.Duration), stops)
			opt.Details["flight_number"] = airlineCode + first.Number
		}

		options = append(options, opt)
	}
	return options, nil
}

// ─── Hotel source ────────────────────────────────────────────────────────────

// AmadeusStays serves the accommodation category through the Hotel List
// and Hotel Offers APIs.
type AmadeusStays struct {
	Client *AmadeusClient
}

func (s *AmadeusStays) Fetch(ctx context.Context, q Query) ([]Option, error) {
	if !s.Client.Configured() {
		return nil, ErrNotConfigured
	}

	ids, err := s.hotelIDsByCity(ctx, q.Destination)
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no hotels found for %s", q.Destination)
	}
	if len(ids) > 20 {
		ids = ids[:20]
	}

	return s.hotelOffers(ctx, ids, q)
}

func (s *AmadeusStays) hotelIDsByCity(ctx context.Context, cityCode string) ([]string, error) {
	path := fmt.Sprintf(
		"/v1/reference-data/locations/hotels/by-city?cityCode=%s&radius=5&radiusUnit=KM&hotelSource=ALL",
		url.QueryEscape(airportToCity(cityCode)))

	body, err := s.Client.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []struct {
			HotelID string `json:"hotelId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		ids = append(ids, h.HotelID)
	}
	return ids, nil
}

type hotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
			Address  struct {
				CityName string `json:"cityName"`
			} `json:"address"`
			Rating string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (s *AmadeusStays) hotelOffers(ctx context.Context, ids []string, q Query) ([]Option, error) {
	path := fmt.Sprintf(
		"/v3/shopping/hotel-offers?hotelIds=%s&checkInDate=%s&checkOutDate=%s"+
			"&adults=1&roomQuantity=1&currency=USD&bestRateOnly=true",
		url.QueryEscape(strings.Join(ids, ",")),
		url.QueryEscape(q.Start.Format("2006-01-02")),
		url.QueryEscape(q.End.Format("2006-01-02")),
	)

	body, err := s.Client.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	var resp hotelOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}

	nights := q.Nights()
	options := make([]Option, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}
		total := parsePrice(item.Offers[0].Price.Total)
		if total <= 0 {
			continue
		}

		location := item.Hotel.Address.CityName
		if location == "" {
			location = item.Hotel.CityCode
		}

		options = append(options, Option{
			Name:        item.Hotel.Name,
			Description: fmt.Sprintf("%d-night stay", nights),
			Cost:        total / float64(nights),
			Rating:      parseRating(item.Hotel.Rating),
			Location:    location,
			Details: map[string]string{
				"hotel_id": item.Hotel.HotelID,
				"currency": item.Offers[0].Price.Currency,
			},
		})
	}
	return options, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// parseISODuration converts an ISO 8601 duration (PT5H30M) to "5h 30m".
func parseISODuration(iso string) string {
	if iso == "" {
		return ""
	}
	iso = strings.TrimPrefix(iso, "PT")
	result := ""
	if hIdx := strings.Index(iso, "H"); hIdx >= 0 {
		result = iso[:hIdx] + "h"
		iso = iso[hIdx+1:]
	}
	if mIdx := strings.Index(iso, "M"); mIdx >= 0 && mIdx < len(iso) {
		if result != "" {
			result += " "
		}
		result += iso[:mIdx] + "m"
	}
	return result
}

func parsePrice(s string) float64 {
	var price float64
	fmt.Sscanf(s, "%f", &price)
	return price
}

func parseRating(s string) float64 {
	if s == "" {
		return 4.0
	}
	var r float64
	fmt.Sscanf(s, "%f", &r)
	if r <= 0 {
		return 4.0
	}
	if r > 5 {
		r = 5
	}
	return r
}

// airportToCity maps airport IATA codes to the city codes Amadeus hotel
// search expects.
func airportToCity(airport string) string {
	mapping := map[string]string{
		"LHR": "LON", "LGW": "LON", "STN": "LON", "LTN": "LON",
		"CDG": "PAR", "ORY": "PAR",
		"JFK": "NYC", "LGA": "NYC", "EWR": "NYC",
		"FCO": "ROM", "CIA": "ROM",
		"NRT": "TYO", "HND": "TYO",
		"SXF": "BER",
	}
	if city, ok := mapping[airport]; ok {
		return city
	}
	return airport
}

func airlineName(code string) string {
	names := map[string]string{
		"TK": "Turkish Airlines",
		"LH": "Lufthansa",
		"AF": "Air France",
		"BA": "British Airways",
		"EK": "Emirates",
		"QR": "Qatar Airways",
		"FR": "Ryanair",
		"U2": "EasyJet",
		"W6": "Wizz Air",
		"FZ": "FlyDubai",
		"UA": "United Airlines",
		"AA": "American Airlines",
		"DL": "Delta Air Lines",
		"KL": "KLM",
		"IB": "Iberia",
		"LX": "Swiss International Air Lines",
		"SQ": "Singapore Airlines",
		"CX": "Cathay Pacific",
		"NH": "ANA",
		"JL": "Japan Airlines",
		"EY": "Etihad Airways",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code != "" {
		return code + " Airlines"
	}
	return "Unknown Airline"
}
