// README: Driver self-service handlers: earnings, availability, location.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/http/middleware"
	"swiftdrop/internal/modules/mission"
	"swiftdrop/internal/modules/presence"
	"swiftdrop/internal/types"
)

type DriverHandler struct {
	missions *mission.Service
	presence *presence.Service
}

func NewDriverHandler(missions *mission.Service, pres *presence.Service) *DriverHandler {
	return &DriverHandler{missions: missions, presence: pres}
}

func (h *DriverHandler) Earnings(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	report, err := h.missions.Earnings(c.Request.Context(), sess.UserID)
	if err != nil {
		writeMissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type onlineReq struct {
	Online bool `json:"online"`
}

func (h *DriverHandler) SetOnline(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	var req onlineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.presence.SetOnline(c.Request.Context(), sess.UserID, req.Online); err != nil {
		writeMissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"online": req.Online})
}

// Resume restores the driver's saved availability at app cold start and
// reports the restored state.
func (h *DriverHandler) Resume(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	online, err := h.presence.Resume(c.Request.Context(), sess.UserID)
	if err != nil {
		writeMissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"online": online})
}

type locationReq struct {
	Location types.Point `json:"location"`
}

func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	ping := presence.DriverPing{DriverID: sess.UserID, Location: req.Location}
	if err := h.presence.UpdateLocation(c.Request.Context(), ping); err != nil {
		writeMissionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
