// README: Admin handlers: cached ops snapshot and fleet geo queries.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/modules/presence"
	"swiftdrop/internal/poll"
	"swiftdrop/internal/types"
)

// NearbyFinder queries the online-driver geo index.
type NearbyFinder interface {
	Nearby(ctx context.Context, at types.Point, radiusKm float64, limit int) ([]presence.NearbyDriver, error)
}

type AdminHandler struct {
	views  *poll.Synchronizer
	nearby NearbyFinder
}

func NewAdminHandler(views *poll.Synchronizer, nearby NearbyFinder) *AdminHandler {
	return &AdminHandler{views: views, nearby: nearby}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	snap, err := h.views.AdminView(c.Request.Context())
	if err != nil {
		writeMissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// NearbyDrivers lists online drivers around a point, closest first. Radius
// and limit fall back to the service defaults when absent.
func (h *AdminHandler) NearbyDrivers(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radiusKm, _ := strconv.ParseFloat(c.Query("radius_km"), 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	drivers, err := h.nearby.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radiusKm, limit)
	if err != nil {
		writeMissionError(c, err)
		return
	}
	if drivers == nil {
		drivers = []presence.NearbyDriver{}
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}
