package models

// The itinerary JSON shape below is also the schema the LLM is asked to
// produce: nested objects per accommodation, activity, meal and
// transport leg, each carrying cost as a bare number.

// TransportLeg is one movement within a day.
type TransportLeg struct {
	Type string  `json:"type"`
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
}

// Accommodation is the night's lodging for a day.
type Accommodation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// Activity is one scheduled item in a day, keyed by a time-of-day label.
type Activity struct {
	Time        string  `json:"time"`
	Activity    string  `json:"activity"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Cost        float64 `json:"cost"`
}

// Meal is one meal recommendation for a day.
type Meal struct {
	Type           string  `json:"type"`
	Recommendation string  `json:"recommendation"`
	Cuisine        string  `json:"cuisine"`
	Cost           float64 `json:"cost"`
}

// DayPlan is the full plan for one calendar day. DailyTotal is the sum
// of every cost field, rounded to 2 decimals once at assembly time.
type DayPlan struct {
	Day            int            `json:"day"`
	Date           string         `json:"date"`
	Transportation []TransportLeg `json:"transportation"`
	Accommodation  Accommodation  `json:"accommodation"`
	Activities     []Activity     `json:"activities"`
	Meals          []Meal         `json:"meals"`
	DailyTotal     float64        `json:"daily_total"`
}

// Itinerary is the complete multi-day plan. It is constructed once per
// request and never partially mutated; a failed generation is replaced
// wholesale by a fallback-built itinerary.
type Itinerary struct {
	Destination     string    `json:"destination"`
	DepartureCity   string    `json:"departure_city"`
	Dates           string    `json:"dates"`
	TotalBudget     float64   `json:"total_budget"`
	Days            []DayPlan `json:"days"`
	TotalCost       float64   `json:"total_cost"`
	RemainingBudget float64   `json:"remaining_budget"`
}
