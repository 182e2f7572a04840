// Package products provides the product catalog together with the derived
// stock ledger and batch/expiry views.
package products

import (
	"context"
	"strings"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

// Product is a stock-keeping unit. StockQty is the opening stock only;
// current stock is always derived from it plus transaction movements.
type Product struct {
	ID              id.ID       `db:"id" json:"id"`
	UserID          id.ID       `db:"user_id" json:"-"`
	Name            string      `db:"name" json:"name"`
	SKU             string      `db:"sku" json:"sku"`
	Unit            string      `db:"unit" json:"unit"`
	BatchingEnabled bool        `db:"batching_enabled" json:"batchingEnabled"`
	InitialBatchNo  string      `db:"initial_batch_no" json:"initialBatchNo"`
	InitialMfgDate  string      `db:"initial_mfg_date" json:"initialMfgDate"`
	InitialExpDate  string      `db:"initial_exp_date" json:"initialExpDate"`
	SalePrice       types.Money `db:"sale_price" json:"salePrice"`
	PurchasePrice   types.Money `db:"purchase_price" json:"purchasePrice"`
	GSTRate         types.Money `db:"gst_rate" json:"gstRate"`
	StockQty        types.Money `db:"stock_qty" json:"stockQty"`
	ReorderLevel    types.Money `db:"reorder_level" json:"reorderLevel"`
	Description     string      `db:"description" json:"description"`
	CreatedAt       string      `db:"created_at" json:"createdAt"`
}

// Input is the create/update payload.
type Input struct {
	Name            string       `json:"name"`
	SKU             string       `json:"sku"`
	Unit            string       `json:"unit"`
	BatchingEnabled bool         `json:"batchingEnabled"`
	InitialBatchNo  string       `json:"initialBatchNo"`
	InitialMfgDate  string       `json:"initialMfgDate"`
	InitialExpDate  string       `json:"initialExpDate"`
	SalePrice       types.Money  `json:"salePrice"`
	PurchasePrice   types.Money  `json:"purchasePrice"`
	GSTRate         types.Money  `json:"gstRate"`
	StockQty        types.Money  `json:"stockQty"`
	ReorderLevel    *types.Money `json:"reorderLevel"`
	Description     string       `json:"description"`
}

// defaultReorderLevel applies when the payload leaves the field out.
var defaultReorderLevel = types.NewMoney(5)

// sanitize trims fields, applies defaults and blanks batch fields when
// batching is disabled.
func (in Input) sanitize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Unit == "" {
		in.Unit = "pcs"
	}
	in.InitialBatchNo = strings.TrimSpace(in.InitialBatchNo)
	in.InitialMfgDate = strings.TrimSpace(in.InitialMfgDate)
	in.InitialExpDate = strings.TrimSpace(in.InitialExpDate)
	if !in.BatchingEnabled {
		in.InitialBatchNo = ""
		in.InitialMfgDate = ""
		in.InitialExpDate = ""
	}
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in Input) validate() error {
	if in.Name == "" {
		return apperror.NewInvalidInput("Product name is required.").
			WithDetail("field", "name")
	}
	if in.BatchingEnabled && in.InitialMfgDate != "" && in.InitialExpDate != "" &&
		in.InitialExpDate < in.InitialMfgDate {
		return apperror.NewInvalidInput("Initial batch expiry date should be after manufacturing date.")
	}
	return nil
}

// WithStock is a product with its derived stock figures.
type WithStock struct {
	Product
	OpeningStock    types.Money `json:"openingStock"`
	CurrentStock    types.Money `json:"currentStock"`
	LowStock        bool        `json:"lowStock"`
	BatchCount      int         `json:"batchCount"`
	NearExpiryCount int         `json:"nearExpiryCount"`
	ExpiredCount    int         `json:"expiredCount"`
}

// Repository defines product persistence, scoped per user.
type Repository interface {
	ListByUser(ctx context.Context, userID id.ID) ([]Product, error)
	GetByID(ctx context.Context, userID, productID id.ID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, userID, productID id.ID) error
}

// TransactionSource supplies the movement records the stock and batch
// folds run over.
type TransactionSource interface {
	ListByUser(ctx context.Context, userID id.ID) ([]transactions.Transaction, error)
}
