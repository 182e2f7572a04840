package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerpro/internal/domain/audit"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	base *BaseHandler
	svc  *audit.Service
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, svc *audit.Service) *AuditHandler {
	return &AuditHandler{base: base, svc: svc}
}

func (h *AuditHandler) List(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	entries, err := h.svc.List(c.Request.Context(), uc.UserID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, entries)
}
