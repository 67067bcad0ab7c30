package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"wanderly/models"
)

// RenderPDF lays the itinerary out as a self-contained PDF: title,
// summary metrics, then one block per day with transportation,
// accommodation, activities and meals in reading order, closing with a
// budget summary. Returns the raw bytes, nothing touches the
// filesystem.
func RenderPDF(itin models.Itinerary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Header bar
	pdf.SetFillColor(30, 58, 138)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Wanderly", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, fmt.Sprintf("%s to %s  ·  %s", itin.DepartureCity, itin.Destination, itin.Dates),
		"", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		if pdf.GetY() > 260 {
			pdf.AddPage()
		}
		pdf.SetFillColor(30, 58, 138)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		if pdf.GetY() > 270 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	note := func(text string) {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(170, 5, text, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	// Trip summary
	sectionHeader("Trip Summary")
	row("Route", fmt.Sprintf("%s → %s", itin.DepartureCity, itin.Destination))
	row("Dates", itin.Dates)
	row("Total Budget", fmt.Sprintf("$%.2f", itin.TotalBudget))
	row("Estimated Cost", fmt.Sprintf("$%.2f", itin.TotalCost))
	row("Remaining Budget", fmt.Sprintf("$%.2f", itin.RemainingBudget))
	pdf.Ln(4)

	// Day blocks
	for _, day := range itin.Days {
		sectionHeader(fmt.Sprintf("Day %d - %s", day.Day, day.Date))

		if len(day.Transportation) > 0 {
			for _, leg := range day.Transportation {
				row(leg.Type, fmt.Sprintf("%s to %s - $%.2f", leg.From, leg.To, leg.Cost))
			}
			pdf.Ln(1)
		}

		row("Accommodation", fmt.Sprintf("%s - $%.2f", day.Accommodation.Name, day.Accommodation.Cost))
		if day.Accommodation.Description != "" {
			note(day.Accommodation.Description)
		}
		pdf.Ln(1)

		for _, act := range day.Activities {
			row(act.Time, fmt.Sprintf("%s - $%.2f", act.Activity, act.Cost))
			if act.Description != "" {
				note(fmt.Sprintf("%s at %s", act.Description, act.Location))
			}
		}
		pdf.Ln(1)

		for _, meal := range day.Meals {
			row(meal.Type, fmt.Sprintf("%s (%s) - $%.2f", meal.Recommendation, meal.Cuisine, meal.Cost))
		}
		pdf.Ln(1)

		row("Daily Total", fmt.Sprintf("$%.2f", day.DailyTotal))
		pdf.Ln(3)
	}

	// Budget summary
	sectionHeader("Budget Summary")
	pdf.SetFillColor(224, 242, 254)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL COST", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("$%.2f of $%.2f budget", itin.TotalCost, itin.TotalBudget), "", 1, "L", true, 0, "")
	row("Remaining", fmt.Sprintf("$%.2f", itin.RemainingBudget))

	// Footer
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Generated by Wanderly on %s · Prices are estimates, verify before booking",
			time.Now().Format("02 Jan 2006")),
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
