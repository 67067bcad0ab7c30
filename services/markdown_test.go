package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderly/models"
	"wanderly/planner"
)

func builtItinerary(t *testing.T) models.Itinerary {
	req := models.TripRequest{
		DepartureCity: "London",
		Destination:   "Paris",
		StartDate:     "2025-06-01",
		EndDate:       "2025-06-03",
		Budget:        900,
	}
	require.NoError(t, req.Validate())
	return planner.Build(req)
}

func TestRenderMarkdownStructure(t *testing.T) {
	md := RenderMarkdown(builtItinerary(t))

	assert.True(t, strings.HasPrefix(md, "# London to Paris Itinerary\n"))
	assert.Contains(t, md, "## Trip Summary")
	assert.Contains(t, md, "## Day 1 - 2025-06-01")
	assert.Contains(t, md, "## Day 2 - 2025-06-02")
	assert.Contains(t, md, "## Day 3 - 2025-06-03")
	assert.Contains(t, md, "### Transportation")
	assert.Contains(t, md, "### Accommodation")
	assert.Contains(t, md, "### Activities")
	assert.Contains(t, md, "### Meals")
	assert.Contains(t, md, "## Budget Summary")
}

func TestRenderMarkdownAmounts(t *testing.T) {
	md := RenderMarkdown(builtItinerary(t))

	assert.Contains(t, md, "**Total Budget**: $900.00")
	assert.Contains(t, md, "**Daily Total: $390.00**")
	assert.Contains(t, md, "**Daily Total: $330.00**")
	assert.Contains(t, md, "**Total Cost**: $1110.00")
	assert.Contains(t, md, "**Remaining Budget**: $-210.00")
}

func TestRenderMarkdownActivityHeadings(t *testing.T) {
	md := RenderMarkdown(builtItinerary(t))

	assert.Contains(t, md, "#### Morning")
	assert.Contains(t, md, "#### Afternoon")
	assert.Contains(t, md, "#### Evening")
}
