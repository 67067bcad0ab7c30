package models

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TransportMode is the requested mode for the trip's long-haul legs.
type TransportMode string

const (
	ModeFlight TransportMode = "Flight"
	ModeTrain  TransportMode = "Train"
	ModeLocal  TransportMode = "Local Transport"
)

// AccommodationStyle is the lodging preference tag.
type AccommodationStyle string

const (
	StyleBudget   AccommodationStyle = "Budget"
	StyleMidRange AccommodationStyle = "Mid-range"
	StyleLuxury   AccommodationStyle = "Luxury"
)

// Default category split of the total budget, applied when the request
// carries no explicit category budgets.
const (
	TransportShare     = 0.30
	AccommodationShare = 0.40
	FoodShare          = 0.15
	ActivitiesShare    = 0.15
)

// CategoryBudgets is the optional per-category split of the total budget.
// The amounts need not sum to the total; they only steer option search
// and the LLM prompt.
type CategoryBudgets struct {
	Transport     float64 `json:"transport,omitempty"`
	Accommodation float64 `json:"accommodation,omitempty"`
	Food          float64 `json:"food,omitempty"`
	Activities    float64 `json:"activities,omitempty"`
}

// TripRequest is the validated set of user-supplied trip parameters.
// Validate must pass before the request reaches any downstream stage.
type TripRequest struct {
	DepartureCity       string             `json:"departure_city" binding:"required"`
	Destination         string             `json:"destination" binding:"required"`
	StartDate           string             `json:"start_date" binding:"required"`
	EndDate             string             `json:"end_date" binding:"required"`
	Budget              float64            `json:"budget" binding:"required,gt=0"`
	CategoryBudgets     CategoryBudgets    `json:"category_budgets,omitempty"`
	Accommodation       AccommodationStyle `json:"accommodation"`
	Food                string             `json:"food"`
	Activities          []string           `json:"activities,omitempty"`
	TransportationMode  TransportMode      `json:"transportation_mode"`
	SpecialRequirements string             `json:"special_requirements,omitempty"`
}

// Validate checks the request once at the boundary and fills defaults
// (accommodation style, food label, mode, category budgets). It returns
// a user-facing message for any precondition violation.
func (r *TripRequest) Validate() error {
	r.DepartureCity = strings.TrimSpace(r.DepartureCity)
	r.Destination = strings.TrimSpace(r.Destination)

	if r.DepartureCity == "" {
		return fmt.Errorf("departure city is required")
	}
	if r.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	if r.Budget <= 0 {
		return fmt.Errorf("budget must be greater than zero")
	}

	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q, use YYYY-MM-DD", r.StartDate)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q, use YYYY-MM-DD", r.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("end date must not be before start date")
	}

	switch r.Accommodation {
	case StyleBudget, StyleMidRange, StyleLuxury:
	case "":
		r.Accommodation = StyleMidRange
	default:
		return fmt.Errorf("accommodation must be one of Budget, Mid-range, Luxury")
	}

	switch r.TransportationMode {
	case ModeFlight, ModeTrain:
	case "":
		r.TransportationMode = ModeFlight
	default:
		return fmt.Errorf("transportation_mode must be Flight or Train")
	}

	if r.Food == "" {
		r.Food = "Local cuisine"
	}

	if r.CategoryBudgets == (CategoryBudgets{}) {
		r.CategoryBudgets = CategoryBudgets{
			Transport:     r.Budget * TransportShare,
			Accommodation: r.Budget * AccommodationShare,
			Food:          r.Budget * FoodShare,
			Activities:    r.Budget * ActivitiesShare,
		}
	}

	return nil
}

// Dates returns the parsed trip dates. Validate must have succeeded.
func (r *TripRequest) Dates() (time.Time, time.Time) {
	start, _ := time.Parse(dateLayout, r.StartDate)
	end, _ := time.Parse(dateLayout, r.EndDate)
	return start, end
}

// NumDays is the day count inclusive of both endpoints, always >= 1 for
// a validated request.
func (r *TripRequest) NumDays() int {
	start, end := r.Dates()
	return int(end.Sub(start).Hours()/24) + 1
}

// DateRangeLabel renders the "start to end" label used on itineraries.
func (r *TripRequest) DateRangeLabel() string {
	return r.StartDate + " to " + r.EndDate
}
