package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerpro/internal/domain/auth"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	base *BaseHandler
	svc  *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, svc *auth.Service) *AuthHandler {
	return &AuthHandler{base: base, svc: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	result, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var creds auth.Credentials
	if !h.base.BindJSON(c, &creds) {
		return
	}
	result, err := h.svc.Login(c.Request.Context(), creds)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := ""
	if header := c.GetHeader("Authorization"); len(header) > 7 && header[:7] == "Bearer " {
		token = header[7:]
	}
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	u, err := h.svc.Profile(c.Request.Context(), uc.UserID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, u)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	var upd auth.ProfileUpdate
	if !h.base.BindJSON(c, &upd) {
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), uc.UserID, upd)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, u)
}
