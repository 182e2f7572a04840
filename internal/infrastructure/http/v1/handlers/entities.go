package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerpro/internal/domain/catalogs/entities"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
)

// EntityHandler serves the customer/supplier catalog.
type EntityHandler struct {
	base *BaseHandler
	svc  *entities.Service
}

// NewEntityHandler creates a new entity handler.
func NewEntityHandler(base *BaseHandler, svc *entities.Service) *EntityHandler {
	return &EntityHandler{base: base, svc: svc}
}

func (h *EntityHandler) List(c *gin.Context) {
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

func (h *EntityHandler) Get(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	e, err := h.svc.Get(c.Request.Context(), uc.UserID, entityID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, e)
}

func (h *EntityHandler) Passbook(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	pb, err := h.svc.Passbook(c.Request.Context(), uc.UserID, entityID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, pb)
}

func (h *EntityHandler) Create(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	var in entities.Input
	if !h.base.BindJSON(c, &in) {
		return
	}
	e, err := h.svc.Create(c.Request.Context(), uc.UserID, in)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, e)
}

func (h *EntityHandler) Update(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	var in entities.Input
	if !h.base.BindJSON(c, &in) {
		return
	}
	e, err := h.svc.Update(c.Request.Context(), uc.UserID, entityID, in)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, e)
}

func (h *EntityHandler) Delete(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uc.UserID, entityID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}
