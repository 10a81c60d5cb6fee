// README: Address search handler backed by the geocoding service.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/maps"
)

type GeoHandler struct {
	search         *maps.SearchService
	defaultCountry string
}

func NewGeoHandler(search *maps.SearchService, defaultCountry string) *GeoHandler {
	return &GeoHandler{search: search, defaultCountry: defaultCountry}
}

// Search returns up to five address candidates. Short queries and backend
// failures both come back as an empty list.
func (h *GeoHandler) Search(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		country = h.defaultCountry
	}
	candidates := h.search.Search(c.Request.Context(), c.Query("q"), country)
	if candidates == nil {
		candidates = []maps.Candidate{}
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
