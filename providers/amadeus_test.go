package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderly/models"
)

func TestAmadeusFlightsNotConfigured(t *testing.T) {
	src := &AmadeusFlights{Client: NewAmadeusClient("", "", "test")}
	_, err := src.Fetch(context.Background(), sampleQuery())
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestAmadeusFlightsRejectsTrains(t *testing.T) {
	src := &AmadeusFlights{Client: NewAmadeusClient("id", "secret", "test")}
	q := sampleQuery()
	q.Mode = models.ModeTrain
	_, err := src.Fetch(context.Background(), q)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestAmadeusStaysNotConfigured(t *testing.T) {
	src := &AmadeusStays{Client: NewAmadeusClient("", "", "test")}
	_, err := src.Fetch(context.Background(), sampleQuery())
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestNewAmadeusClientEnvironments(t *testing.T) {
	assert.Equal(t, "https://test.api.amadeus.com", NewAmadeusClient("a", "b", "").baseURL)
	assert.Equal(t, "https://test.api.amadeus.com", NewAmadeusClient("a", "b", "test").baseURL)
	assert.Equal(t, "https://api.amadeus.com", NewAmadeusClient("a", "b", "production").baseURL)
}

func TestParseFlightOffers(t *testing.T) {
	payload := []byte(`{
		"data": [
			{
				"price": {"grandTotal": "245.50", "currency": "USD"},
				"itineraries": [
					{
						"duration": "PT5H30M",
						"segments": [
							{
								"departure": {"iataCode": "LHR", "at": "2025-06-01T08:00:00"},
								"arrival": {"iataCode": "IST", "at": "2025-06-01T11:30:00"},
								"carrierCode": "TK",
								"number": "1980"
							},
							{
								"departure": {"iataCode": "IST", "at": "2025-06-01T12:30:00"},
								"arrival": {"iataCode": "CDG", "at": "2025-06-01T13:30:00"},
								"carrierCode": "TK",
								"number": "1821"
							}
						]
					}
				]
			},
			{
				"price": {"grandTotal": "0", "currency": "USD"},
				"itineraries": [{"duration": "PT2H", "segments": []}]
			}
		]
	}`)

	opts, err := parseFlightOffers(payload)
	require.NoError(t, err)
	require.Len(t, opts, 1, "zero-priced offers are skipped")

	opt := opts[0]
	assert.Equal(t, "Turkish Airlines", opt.Name)
	assert.Equal(t, 245.50, opt.Cost)
	assert.Equal(t, "5h 30m", opt.Details["duration"])
	assert.Equal(t, "1", opt.Details["stops"])
	assert.Equal(t, "TK1980", opt.Details["flight_number"])
	assert.Contains(t, opt.Description, "LHR")
	assert.Contains(t, opt.Description, "CDG")
}

func TestParseFlightOffersBadJSON(t *testing.T) {
	_, err := parseFlightOffers([]byte("not json"))
	assert.Error(t, err)
}

func TestParseISODuration(t *testing.T) {
	tests := map[string]string{
		"PT5H30M": "5h 30m",
		"PT4H":    "4h",
		"PT45M":   "45m",
		"":        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, parseISODuration(in), "input %q", in)
	}
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 245.5, parsePrice("245.50"))
	assert.Equal(t, 0.0, parsePrice("free"))
}

func TestParseRating(t *testing.T) {
	assert.Equal(t, 4.0, parseRating(""))
	assert.Equal(t, 3.0, parseRating("3"))
	assert.Equal(t, 5.0, parseRating("9"), "ratings are capped at 5")
	assert.Equal(t, 4.0, parseRating("junk"))
}

func TestAirportToCity(t *testing.T) {
	assert.Equal(t, "LON", airportToCity("LHR"))
	assert.Equal(t, "PAR", airportToCity("CDG"))
	assert.Equal(t, "TBZ", airportToCity("TBZ"), "unknown codes pass through")
}

func TestAirlineName(t *testing.T) {
	assert.Equal(t, "Lufthansa", airlineName("LH"))
	assert.Equal(t, "ZZ Airlines", airlineName("ZZ"))
	assert.Equal(t, "Unknown Airline", airlineName(""))
}
