package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/wellness-hub/internal/domain/auth"
)

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "register_failed")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login issues access and refresh tokens.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "login_failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new token pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, err, "refresh_failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Profile returns the caller's profile.
func (h *Handler) Profile(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "profile_failed")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies partial profile changes.
func (h *Handler) UpdateProfile(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var req auth.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.authSvc.UpdateProfile(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "profile_failed")
		return
	}
	c.JSON(http.StatusOK, user)
}
