// README: Profile self-service handlers: read and edit own contact info.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/http/middleware"
	"swiftdrop/internal/modules/profile"
	"swiftdrop/internal/types"
)

// ProfileStore is the slice of the profile store these handlers use. Role is
// deliberately absent: nothing here may rewrite it.
type ProfileStore interface {
	Get(ctx context.Context, id types.ID) (*profile.Profile, error)
	UpdateContact(ctx context.Context, id types.ID, fullName, phone string) error
}

type ProfileHandler struct {
	profiles ProfileStore
}

func NewProfileHandler(profiles ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		writeMissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateContactReq struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateMe edits the caller's own contact info and returns the updated
// profile.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	sess, ok := middleware.Caller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "missing session")
		return
	}
	var req updateContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.FullName == "" && req.PhoneNumber == "" {
		writeError(c, http.StatusBadRequest, "nothing to update")
		return
	}
	ctx := c.Request.Context()
	p, err := h.profiles.Get(ctx, sess.UserID)
	if err != nil {
		writeMissionError(c, err)
		return
	}
	// omitted fields keep their current value
	if req.FullName != "" {
		p.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		p.PhoneNumber = req.PhoneNumber
	}
	if err := h.profiles.UpdateContact(ctx, sess.UserID, p.FullName, p.PhoneNumber); err != nil {
		writeMissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
