package providers

import (
	"fmt"

	"wanderly/models"
)

// SampleOptions produces deterministic placeholder options for a
// category. It is the last-resort data source: always non-empty, never
// failing, no network access, so assembly proceeds fully offline under
// any upstream failure.
func SampleOptions(cat Category, q Query) []Option {
	switch cat {
	case CategoryTransportation:
		if q.Mode == models.ModeTrain {
			return sampleTrains(q)
		}
		return sampleFlights(q)
	case CategoryAccommodation:
		return sampleStays(q)
	case CategoryFood:
		return sampleFood(q)
	case CategoryAttractions:
		return sampleAttractions(q)
	default:
		return []Option{{
			Name:        "Sample Option",
			Description: "Placeholder option for " + q.Destination,
			Cost:        q.Budget,
		}}
	}
}

func sampleFlights(q Query) []Option {
	base := q.Budget * 0.4
	carriers := []struct {
		name     string
		priceMod float64
		stops    int
		duration string
	}{
		{"Turkish Airlines", 1.00, 0, "4h 00m"},
		{"Lufthansa", 1.15, 0, "3h 45m"},
		{"Emirates", 1.30, 0, "4h 15m"},
		{"Wizz Air", 0.65, 1, "5h 30m"},
		{"FlyDubai", 0.80, 1, "5h 00m"},
	}

	options := make([]Option, 0, len(carriers))
	for i, c := range carriers {
		price := float64(int(base*c.priceMod/5) * 5)
		depHour := 6 + i*3
		options = append(options, Option{
			Name: c.name,
			Description: fmt.Sprintf("%s → %s, departs %02d:00, %s, %d stop(s)",
				q.Origin, q.Destination, depHour, c.duration, c.stops),
			Cost: price,
			Details: map[string]string{
				"duration": c.duration,
				"stops":    fmt.Sprintf("%d", c.stops),
			},
		})
	}
	return options
}

func sampleTrains(q Query) []Option {
	base := q.Budget * 0.25
	services := []struct {
		operator string
		class    string
		priceMod float64
		duration string
	}{
		{"National Rail Express", "Economy", 1.00, "4h 00m"},
		{"InterCity Direct", "Economy", 0.85, "4h 30m"},
		{"EuroLine Rail", "Business", 1.40, "3h 45m"},
		{"Regional Connect", "Economy", 0.60, "5h 15m"},
		{"Premier Rail", "First", 1.80, "3h 30m"},
	}

	options := make([]Option, 0, len(services))
	for i, s := range services {
		price := float64(int(base*s.priceMod/5) * 5)
		depHour := 7 + i*2
		options = append(options, Option{
			Name: s.operator,
			Description: fmt.Sprintf("%s → %s, departs %02d:00, %s, %s class",
				q.Origin, q.Destination, depHour, s.duration, s.class),
			Cost: price,
			Details: map[string]string{
				"duration": s.duration,
				"class":    s.class,
			},
		})
	}
	return options
}

// Accommodation style bands the nightly price around the nightly
// accommodation budget: Budget 0.7x, Mid-range 1.0x, Luxury 1.3x.
func sampleStays(q Query) []Option {
	nightly := q.Budget / float64(q.Nights())
	switch q.Style {
	case models.StyleBudget:
		nightly *= 0.7
	case models.StyleLuxury:
		nightly *= 1.3
	}

	stays := []struct {
		name     string
		area     string
		priceMod float64
		rating   float64
	}{
		{"Grand City Hotel", "City Center", 1.00, 4.5},
		{"Business Inn", "Business District", 0.65, 4.2},
		{"Boutique Residence", "Arts District", 0.85, 4.4},
		{"Economy Suites", "Near Airport", 0.45, 3.9},
		{"Luxury Collection", "Historic Center", 1.60, 4.7},
	}

	options := make([]Option, 0, len(stays))
	for _, s := range stays {
		options = append(options, Option{
			Name:        s.name,
			Description: fmt.Sprintf("%s stay in %s", q.Style, q.Destination),
			Cost:        float64(int(nightly*s.priceMod/5) * 5),
			Rating:      s.rating,
			Location:    s.area + ", " + q.Destination,
		})
	}
	return options
}

func sampleFood(q Query) []Option {
	type venue struct {
		name       string
		meal       string
		priceLabel string
		rating     float64
	}
	venues := []venue{
		{q.Destination + " Morning Cafe", "Breakfast", "$", 4.3},
		{"Midday Bistro", "Lunch", "$$", 4.5},
		{"Evening Delights", "Dinner", "$$$", 4.7},
		{"Heritage Dining", "Dinner", "$$", 4.4},
		{"Street Flavor Market", "Lunch", "$", 4.2},
	}

	options := make([]Option, 0, len(venues))
	for _, v := range venues {
		options = append(options, Option{
			Name:        v.name,
			Description: fmt.Sprintf("A popular %s spot in %s", v.meal, q.Destination),
			PriceLabel:  v.priceLabel,
			Rating:      v.rating,
			Location:    q.Destination,
			Details: map[string]string{
				"meal":    v.meal,
				"cuisine": q.Food,
			},
		})
	}
	return options
}

func sampleAttractions(q Query) []Option {
	interests := q.Interests
	if len(interests) == 0 {
		interests = []string{"Historical sites", "Museums"}
	}

	templates := []struct {
		name string
		desc string
	}{
		{"%s Old Town", "The historic heart of the city"},
		{"%s National Museum", "Collections spanning the region's history"},
		{"%s Central Park", "Green space popular with locals"},
		{"%s Viewpoint", "Panoramic views over the city"},
	}

	options := make([]Option, 0, len(interests)*len(templates))
	for _, interest := range interests {
		for i, t := range templates {
			options = append(options, Option{
				Name:        fmt.Sprintf(t.name, q.Destination),
				Description: t.desc,
				Rating:      4.0 + float64(i%3)*0.3,
				Location:    q.Destination,
				Details:     map[string]string{"interest": interest},
			})
		}
	}
	return options
}
