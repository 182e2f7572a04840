package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerpro/internal/domain/catalogs/products"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
)

// ProductHandler serves the product catalog and stock views.
type ProductHandler struct {
	base *BaseHandler
	svc  *products.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, svc *products.Service) *ProductHandler {
	return &ProductHandler{base: base, svc: svc}
}

func (h *ProductHandler) List(c *gin.Context) {
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

func (h *ProductHandler) Get(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	productID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), uc.UserID, productID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, p)
}

func (h *ProductHandler) StockLedger(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	productID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	ledger, err := h.svc.StockLedger(c.Request.Context(), uc.UserID, productID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, ledger)
}

func (h *ProductHandler) BatchOptions(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	productID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	options, err := h.svc.BatchOptions(c.Request.Context(), uc.UserID, productID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, options)
}

func (h *ProductHandler) Create(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	var in products.Input
	if !h.base.BindJSON(c, &in) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), uc.UserID, in)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	productID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	var in products.Input
	if !h.base.BindJSON(c, &in) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), uc.UserID, productID, in)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	productID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uc.UserID, productID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}
