// Package planner owns itinerary assembly: the deterministic
// budget-split builder used when live data or LLM synthesis is
// unavailable, and the decoding of LLM output into the itinerary shape.
package planner

import (
	"fmt"

	"github.com/shopspring/decimal"

	"wanderly/models"
)

// Per-day budget split used by the fallback builder. Accommodation takes
// 0.4 of the daily budget, each of the three activities and three meals
// 0.1, a long-haul transport leg 0.3 and an in-city leg 0.1. Travel
// days therefore total 1.3x the daily budget and middle days 1.1x; the
// overshoot surfaces as a negative remaining budget, which is a signal
// rather than an error.
const (
	accommodationFraction = 0.4
	activityFraction      = 0.1
	mealFraction          = 0.1
	longHaulFraction      = 0.3
	localFraction         = 0.1
)

const dateLayout = "2006-01-02"

// Build synthesizes a complete itinerary from budget arithmetic alone.
// It is pure: no network, no I/O, no randomness, and it cannot fail for
// a validated request (numDays >= 1, budget > 0). Per-item costs stay
// unrounded; rounding is applied exactly once per aggregate to avoid
// compounding error.
//
// Single-day policy: when the trip is one day long, day 1 produces only
// the outbound leg. The return leg is emitted only when the last day is
// a distinct day.
func Build(req models.TripRequest) models.Itinerary {
	numDays := req.NumDays()
	dailyBudget := req.Budget / float64(numDays)
	start, _ := req.Dates()

	itin := models.Itinerary{
		Destination:   req.Destination,
		DepartureCity: req.DepartureCity,
		Dates:         req.DateRangeLabel(),
		TotalBudget:   req.Budget,
		Days:          make([]models.DayPlan, 0, numDays),
	}

	totalCost := decimal.Zero
	date := start

	for day := 1; day <= numDays; day++ {
		plan := models.DayPlan{
			Day:            day,
			Date:           date.Format(dateLayout),
			Accommodation:  buildAccommodation(req, dailyBudget),
			Activities:     buildActivities(req.Destination, dailyBudget),
			Meals:          buildMeals(req.Food, dailyBudget),
			Transportation: buildTransport(req, day, numDays, dailyBudget),
		}

		dailyTotal := sumDay(plan)
		plan.DailyTotal = round2(dailyTotal)
		totalCost = totalCost.Add(decimal.NewFromFloat(plan.DailyTotal))

		itin.Days = append(itin.Days, plan)
		date = date.AddDate(0, 0, 1)
	}

	itin.TotalCost = round2(totalCost)
	itin.RemainingBudget = round2(decimal.NewFromFloat(req.Budget).Sub(totalCost))
	return itin
}

func buildAccommodation(req models.TripRequest, dailyBudget float64) models.Accommodation {
	desc := "Comfortable stay close to the main sights"
	switch req.Accommodation {
	case models.StyleBudget:
		desc = "Simple, clean stay in a convenient location"
	case models.StyleLuxury:
		desc = "Upscale stay with full amenities"
	}
	return models.Accommodation{
		Name:        req.Destination + " Hotel",
		Description: desc,
		Cost:        dailyBudget * accommodationFraction,
	}
}

func buildActivities(destination string, dailyBudget float64) []models.Activity {
	cost := dailyBudget * activityFraction
	return []models.Activity{
		{
			Time:        "Morning",
			Activity:    "Explore " + destination,
			Description: "City sightseeing",
			Location:    destination,
			Cost:        cost,
		},
		{
			Time:        "Afternoon",
			Activity:    "Local Culture",
			Description: "Visit a museum or market",
			Location:    destination,
			Cost:        cost,
		},
		{
			Time:        "Evening",
			Activity:    "Relax",
			Description: "Evening stroll",
			Location:    destination,
			Cost:        cost,
		},
	}
}

func buildMeals(cuisine string, dailyBudget float64) []models.Meal {
	cost := dailyBudget * mealFraction
	return []models.Meal{
		{Type: "Breakfast", Recommendation: "Local Cafe", Cuisine: cuisine, Cost: cost},
		{Type: "Lunch", Recommendation: "Street Food", Cuisine: cuisine, Cost: cost},
		{Type: "Dinner", Recommendation: "Restaurant", Cuisine: cuisine, Cost: cost},
	}
}

func buildTransport(req models.TripRequest, day, numDays int, dailyBudget float64) []models.TransportLeg {
	switch {
	case day == 1:
		return []models.TransportLeg{{
			Type: string(req.TransportationMode),
			From: req.DepartureCity,
			To:   req.Destination,
			Cost: dailyBudget * longHaulFraction,
		}}
	case day == numDays:
		return []models.TransportLeg{{
			Type: string(req.TransportationMode),
			From: req.Destination,
			To:   req.DepartureCity,
			Cost: dailyBudget * longHaulFraction,
		}}
	default:
		return []models.TransportLeg{{
			Type: string(models.ModeLocal),
			From: "Accommodation",
			To:   "Various Locations",
			Cost: dailyBudget * localFraction,
		}}
	}
}

// sumDay adds every cost field of the plan exactly, before any rounding.
func sumDay(plan models.DayPlan) decimal.Decimal {
	total := decimal.NewFromFloat(plan.Accommodation.Cost)
	for _, a := range plan.Activities {
		total = total.Add(decimal.NewFromFloat(a.Cost))
	}
	for _, m := range plan.Meals {
		total = total.Add(decimal.NewFromFloat(m.Cost))
	}
	for _, t := range plan.Transportation {
		total = total.Add(decimal.NewFromFloat(t.Cost))
	}
	return total
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Verify is a debugging aid: it re-derives the aggregates of an
// itinerary and reports the first mismatch, if any.
func Verify(itin models.Itinerary) error {
	total := decimal.Zero
	for _, day := range itin.Days {
		want := round2(sumDay(day))
		if day.DailyTotal != want {
			return fmt.Errorf("day %d total %.2f does not match computed %.2f", day.Day, day.DailyTotal, want)
		}
		total = total.Add(decimal.NewFromFloat(day.DailyTotal))
	}
	if got := round2(total); itin.TotalCost != got {
		return fmt.Errorf("total cost %.2f does not match computed %.2f", itin.TotalCost, got)
	}
	return nil
}
