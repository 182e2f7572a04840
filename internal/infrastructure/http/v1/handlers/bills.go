package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerpro/internal/domain/bills"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
)

// BillHandler serves GST bill assembly and listing.
type BillHandler struct {
	base *BaseHandler
	svc  *bills.Service
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(base *BaseHandler, svc *bills.Service) *BillHandler {
	return &BillHandler{base: base, svc: svc}
}

func (h *BillHandler) List(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	items, err := h.svc.List(c.Request.Context(), uc.UserID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, items)
}

func (h *BillHandler) Get(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	billID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.Get(c.Request.Context(), uc.UserID, billID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, b)
}

func (h *BillHandler) Create(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	var in bills.Input
	if !h.base.BindJSON(c, &in) {
		return
	}
	b, err := h.svc.Create(c.Request.Context(), uc.UserID, in)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, b)
}

func (h *BillHandler) Delete(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	billID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uc.UserID, billID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}
