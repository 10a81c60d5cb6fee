// README: Auth handlers for signup/signin/signout.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/auth"
)

type AuthHandler struct {
	gateway *auth.Gateway
}

func NewAuthHandler(gateway *auth.Gateway) *AuthHandler {
	return &AuthHandler{gateway: gateway}
}

type signUpReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

type sessionResp struct {
	Token   string        `json:"token"`
	Session *auth.Session `json:"session"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	token, sess, err := h.gateway.SignUp(c.Request.Context(), auth.SignUpCommand{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResp{Token: token, Session: sess})
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	token, sess, err := h.gateway.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResp{Token: token, Session: sess})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	token, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		writeError(c, http.StatusUnauthorized, "missing bearer token")
		return
	}
	if err := h.gateway.SignOut(c.Request.Context(), token); err != nil {
		writeAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
