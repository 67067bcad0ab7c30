package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetItinerary returns the stored itinerary JSON.
func (h *Handler) GetItinerary(c *gin.Context) {
	rec, err := h.store.GetItinerary(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "itinerary not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetItineraryMarkdown returns the Markdown rendering of an itinerary.
func (h *Handler) GetItineraryMarkdown(c *gin.Context) {
	rec, err := h.store.GetItinerary(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "itinerary not found"})
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(rec.Markdown))
}

// Download streams the stored PDF with attachment headers.
func (h *Handler) Download(c *gin.Context) {
	rec, err := h.store.GetItinerary(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "itinerary not found"})
		return
	}
	if len(rec.PDFData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "PDF has not been generated for this itinerary"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=wanderly-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", rec.PDFData)
}
