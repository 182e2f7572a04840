package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
)

// TransactionHandler serves the ledger: transactions, payments, reminders
// and the CSV import.
type TransactionHandler struct {
	base *BaseHandler
	svc  *transactions.Service
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(base *BaseHandler, svc *transactions.Service) *TransactionHandler {
	return &TransactionHandler{base: base, svc: svc}
}

func (h *TransactionHandler) List(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	var entityFilter *id.ID
	if raw := c.Query("entityId"); raw != "" {
		entityID, err := id.Parse(raw)
		if err != nil {
			h.base.Error(c, apperror.NewInvalidInput("Invalid entity id.").WithDetail("entityId", raw))
			return
		}
		entityFilter = &entityID
	}

	items, err := h.svc.List(c.Request.Context(), uc.UserID, entityFilter)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, items)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	txID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	tx, err := h.svc.Get(c.Request.Context(), uc.UserID, txID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, tx)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	var in transactions.Input
	if !h.base.BindJSON(c, &in) {
		return
	}
	tx, err := h.svc.Create(c.Request.Context(), uc.UserID, in)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, tx)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	txID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	var in transactions.Input
	if !h.base.BindJSON(c, &in) {
		return
	}
	tx, err := h.svc.Update(c.Request.Context(), uc.UserID, txID, in)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	txID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uc.UserID, txID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}

// paymentRequest is the add-payment payload.
type paymentRequest struct {
	Amount types.Money `json:"amount"`
	Date   string      `json:"date"`
	Note   string      `json:"note"`
}

func (h *TransactionHandler) AddPayment(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	txID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}
	var req paymentRequest
	if !h.base.BindJSON(c, &req) {
		return
	}
	tx, err := h.svc.AddPayment(c.Request.Context(), uc.UserID, txID, req.Amount, req.Date, req.Note)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, tx)
}

func (h *TransactionHandler) Reminders(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	items, err := h.svc.Reminders(c.Request.Context(), uc.UserID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, items)
}

// ImportCSV ingests a sales CSV file upload. Row failures are reported
// per row, they never abort the rest of the file.
func (h *TransactionHandler) ImportCSV(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.base.Error(c, apperror.NewInvalidInput("CSV file is required."))
		return
	}
	defer file.Close()

	result, err := h.svc.ImportSalesCSV(c.Request.Context(), uc.UserID, file)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, result)
}
