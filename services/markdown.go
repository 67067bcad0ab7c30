package services

import (
	"fmt"
	"strings"

	"wanderly/models"
)

// RenderMarkdown renders the itinerary with a fixed heading hierarchy:
// H1 trip title, H2 Trip Summary, one H2 per day with H3 subsections
// for transportation, accommodation, activities and meals, closing with
// an H2 Budget Summary.
func RenderMarkdown(itin models.Itinerary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s to %s Itinerary\n\n", itin.DepartureCity, itin.Destination)

	b.WriteString("## Trip Summary\n\n")
	fmt.Fprintf(&b, "- **Dates**: %s\n", itin.Dates)
	fmt.Fprintf(&b, "- **Total Budget**: $%.2f\n", itin.TotalBudget)
	fmt.Fprintf(&b, "- **Estimated Cost**: $%.2f\n", itin.TotalCost)
	fmt.Fprintf(&b, "- **Remaining Budget**: $%.2f\n\n", itin.RemainingBudget)

	for _, day := range itin.Days {
		fmt.Fprintf(&b, "## Day %d - %s\n\n", day.Day, day.Date)

		if len(day.Transportation) > 0 {
			b.WriteString("### Transportation\n\n")
			for _, leg := range day.Transportation {
				fmt.Fprintf(&b, "- **%s**: %s to %s - **$%.2f**\n", leg.Type, leg.From, leg.To, leg.Cost)
			}
			b.WriteString("\n")
		}

		b.WriteString("### Accommodation\n\n")
		fmt.Fprintf(&b, "**%s** - **$%.2f**\n\n", day.Accommodation.Name, day.Accommodation.Cost)
		if day.Accommodation.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", day.Accommodation.Description)
		}

		b.WriteString("### Activities\n\n")
		for _, act := range day.Activities {
			fmt.Fprintf(&b, "#### %s\n\n", act.Time)
			fmt.Fprintf(&b, "**%s** - **$%.2f**\n\n", act.Activity, act.Cost)
			if act.Description != "" {
				fmt.Fprintf(&b, "*%s* at %s\n\n", act.Description, act.Location)
			}
		}

		b.WriteString("### Meals\n\n")
		for _, meal := range day.Meals {
			fmt.Fprintf(&b, "- **%s**: %s (%s) - **$%.2f**\n", meal.Type, meal.Recommendation, meal.Cuisine, meal.Cost)
		}
		b.WriteString("\n")

		fmt.Fprintf(&b, "**Daily Total: $%.2f**\n\n", day.DailyTotal)
	}

	b.WriteString("## Budget Summary\n\n")
	fmt.Fprintf(&b, "- **Total Cost**: $%.2f\n", itin.TotalCost)
	fmt.Fprintf(&b, "- **Total Budget**: $%.2f\n", itin.TotalBudget)
	fmt.Fprintf(&b, "- **Remaining Budget**: $%.2f\n", itin.RemainingBudget)

	return b.String()
}
