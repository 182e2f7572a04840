package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerpro/internal/domain/reports"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
)

// ReportHandler serves the summary and aging reports.
type ReportHandler struct {
	base *BaseHandler
	svc  *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, svc *reports.Service) *ReportHandler {
	return &ReportHandler{base: base, svc: svc}
}

func (h *ReportHandler) Summary(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), uc.UserID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, sum)
}

func (h *ReportHandler) Aging(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	aging, err := h.svc.AgingReport(c.Request.Context(), uc.UserID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, aging)
}
