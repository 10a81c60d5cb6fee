// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/auth"
	"swiftdrop/internal/modules/mission"
	"swiftdrop/internal/modules/profile"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeMissionError(c *gin.Context, err error) {
	switch err {
	case mission.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case mission.ErrNotFound, profile.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case mission.ErrForbidden:
		writeError(c, http.StatusForbidden, err.Error())
	case mission.ErrInvalidState, mission.ErrConflict, mission.ErrAlreadyRated:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeAuthError(c *gin.Context, err error) {
	switch err {
	case auth.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case auth.ErrBadCredentials, auth.ErrNoSession:
		writeError(c, http.StatusUnauthorized, err.Error())
	case auth.ErrEmailTaken:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
