// README: Mission handlers: create, role-aware listing, lifecycle transitions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/auth"
	"swiftdrop/internal/http/middleware"
	"swiftdrop/internal/modules/mission"
	"swiftdrop/internal/modules/pricing"
	"swiftdrop/internal/modules/profile"
	"swiftdrop/internal/poll"
	"swiftdrop/internal/types"
)

type MissionHandler struct {
	missions *mission.Service
	views    *poll.Synchronizer
}

func NewMissionHandler(missions *mission.Service, views *poll.Synchronizer) *MissionHandler {
	return &MissionHandler{missions: missions, views: views}
}

type createMissionReq struct {
	PickupAddress  string      `json:"pickup_address"`
	Pickup         types.Point `json:"pickup"`
	DropoffAddress string      `json:"dropoff_address"`
	Dropoff        types.Point `json:"dropoff"`
	Vehicle        string      `json:"vehicle"`
}

func (h *MissionHandler) Create(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	var req createMissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	m, err := h.missions.Create(c.Request.Context(), mission.CreateCommand{
		CustomerID:     sess.UserID,
		PickupAddress:  req.PickupAddress,
		Pickup:         req.Pickup,
		DropoffAddress: req.DropoffAddress,
		Dropoff:        req.Dropoff,
		Vehicle:        pricing.Vehicle(req.Vehicle),
	})
	if err != nil {
		writeMissionError(c, err)
		return
	}
	h.views.Refresh()
	c.JSON(http.StatusCreated, m)
}

// List is role-aware: customers get their own missions plus assigned-driver
// contacts, drivers get the open pool plus their earnings, admins get the
// full overview.
func (h *MissionHandler) List(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	ctx := c.Request.Context()
	switch sess.Role {
	case profile.RoleDriver:
		snap, err := h.views.DriverView(ctx, sess.UserID)
		if err != nil {
			writeMissionError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	case profile.RoleAdmin:
		snap, err := h.views.AdminView(ctx)
		if err != nil {
			writeMissionError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	default:
		snap, err := h.views.CustomerView(ctx, sess.UserID)
		if err != nil {
			writeMissionError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// Get is restricted to the parties of the mission: the creating customer,
// the assigned driver, or an admin. The record carries the delivery PIN, so
// it is never visible to bystanders.
func (h *MissionHandler) Get(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	m, err := h.missions.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeMissionError(c, err)
		return
	}
	if !canViewMission(sess, m) {
		writeMissionError(c, mission.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, m)
}

func canViewMission(sess *auth.Session, m *mission.Mission) bool {
	if sess.Role == profile.RoleAdmin {
		return true
	}
	if m.CustomerID == sess.UserID {
		return true
	}
	return m.DriverID != nil && *m.DriverID == sess.UserID
}

func (h *MissionHandler) Accept(c *gin.Context) {
	h.driverTransition(c, func(id, driverID types.ID) error {
		return h.missions.Accept(c.Request.Context(), mission.AcceptCommand{MissionID: id, DriverID: driverID})
	})
}

func (h *MissionHandler) Arrive(c *gin.Context) {
	h.driverTransition(c, func(id, driverID types.ID) error {
		return h.missions.Arrive(c.Request.Context(), mission.ArriveCommand{MissionID: id, DriverID: driverID})
	})
}

func (h *MissionHandler) Complete(c *gin.Context) {
	h.driverTransition(c, func(id, driverID types.ID) error {
		return h.missions.Complete(c.Request.Context(), mission.CompleteCommand{MissionID: id, DriverID: driverID})
	})
}

func (h *MissionHandler) driverTransition(c *gin.Context, do func(id, driverID types.ID) error) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	id := types.ID(c.Param("id"))
	if err := do(id, sess.UserID); err != nil {
		writeMissionError(c, err)
		return
	}
	h.views.Refresh()
	m, err := h.missions.Get(c.Request.Context(), id)
	if err != nil {
		writeMissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type rateReq struct {
	Rating int `json:"rating"`
}

func (h *MissionHandler) Rate(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.missions.Rate(c.Request.Context(), mission.RateCommand{
		MissionID:  types.ID(c.Param("id")),
		CustomerID: sess.UserID,
		Rating:     req.Rating,
	})
	if err != nil {
		writeMissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": req.Rating})
}

func (h *MissionHandler) Cancel(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	err := h.missions.Cancel(c.Request.Context(), mission.CancelCommand{
		MissionID:  types.ID(c.Param("id")),
		CustomerID: sess.UserID,
	})
	if err != nil {
		writeMissionError(c, err)
		return
	}
	h.views.Refresh()
	c.Status(http.StatusNoContent)
}
