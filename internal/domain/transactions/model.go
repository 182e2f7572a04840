// Package transactions provides the transaction ledger: the atomic event
// every balance, stock level, bill and report is derived from.
package transactions

import (
	"context"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
)

// Type classifies a ledger event.
type Type string

const (
	TypeSale           Type = "sale"
	TypePurchase       Type = "purchase"
	TypeSaleReturn     Type = "sale_return"
	TypePurchaseReturn Type = "purchase_return"
)

// IsValid reports whether t is one of the four ledger event types.
func (t Type) IsValid() bool {
	switch t {
	case TypeSale, TypePurchase, TypeSaleReturn, TypePurchaseReturn:
		return true
	}
	return false
}

// StockIn reports whether t increases stock (goods coming in).
func (t Type) StockIn() bool {
	return t == TypePurchase || t == TypeSaleReturn
}

// StockOut reports whether t decreases stock (goods going out).
func (t Type) StockOut() bool {
	return t == TypeSale || t == TypePurchaseReturn
}

// Payment is an append-only entry in a transaction's payment timeline.
// Payments are never edited or removed individually.
type Payment struct {
	ID        string      `json:"id"`
	Amount    types.Money `json:"amount"`
	Date      string      `json:"date"`
	Note      string      `json:"note"`
	CreatedAt string      `json:"createdAt"`
}

// Transaction is the atomic ledger event.
//
// Date, DueDate, MfgDate and ExpDate are YYYY-MM-DD strings; CreatedAt is an
// ISO-8601 timestamp. Lexical order equals chronological order, which the
// ledger engines rely on.
//
// PaidAmount is a denormalized running total kept alongside the Payments
// timeline; reads reconcile the two with max(paidAmount, sum(payments)).
type Transaction struct {
	ID              id.ID       `db:"id" json:"id"`
	UserID          id.ID       `db:"user_id" json:"-"`
	EntityID        id.ID       `db:"entity_id" json:"entityId"`
	ProductID       *id.ID      `db:"product_id" json:"productId,omitempty"`
	Type            Type        `db:"type" json:"type"`
	Date            string      `db:"date" json:"date"`
	Item            string      `db:"item" json:"item"`
	Qty             types.Money `db:"qty" json:"qty"`
	UnitAmount      types.Money `db:"unit_amount" json:"unitAmount"`
	GSTRate         types.Money `db:"gst_rate" json:"gstRate"`
	DueDate         string      `db:"due_date" json:"dueDate,omitempty"`
	PaidAmount      types.Money `db:"paid_amount" json:"paidAmount"`
	Payments        []Payment   `db:"payments" json:"payments"`
	ReminderEnabled bool        `db:"reminder_enabled" json:"reminderEnabled"`
	Note            string      `db:"note" json:"note,omitempty"`
	BatchingEnabled bool        `db:"batching_enabled" json:"batchingEnabled"`
	BatchNo         string      `db:"batch_no" json:"batchNo,omitempty"`
	MfgDate         string      `db:"mfg_date" json:"mfgDate,omitempty"`
	ExpDate         string      `db:"exp_date" json:"expDate,omitempty"`
	CreatedAt       string      `db:"created_at" json:"createdAt"`
}

// Enriched is a transaction view with reconciled payments, derived totals
// and resolved display names. It is a read model, never written back.
type Enriched struct {
	Transaction
	types.Totals
	EntityName  string `json:"entityName"`
	ProductName string `json:"productName"`
}

// Repository defines transaction persistence, scoped per user.
type Repository interface {
	ListByUser(ctx context.Context, userID id.ID) ([]Transaction, error)
	GetByID(ctx context.Context, userID, txID id.ID) (*Transaction, error)
	Create(ctx context.Context, tx *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, userID, txID id.ID) error

	// AppendPayment atomically appends a payment entry and sets the new
	// paid amount. Implementations must serialize concurrent appends on
	// the same row (read-modify-write hazard, see service.AddPayment).
	AppendPayment(ctx context.Context, userID, txID id.ID, p Payment, paidAmount types.Money) (*Transaction, error)

	ExistsByEntity(ctx context.Context, userID, entityID id.ID) (bool, error)
}

// EntityRef is the slice of an entity the transaction service needs.
type EntityRef struct {
	ID   id.ID
	Name string
}

// EntityLookup resolves entity references. Returns NotFound when the id
// does not exist for the user.
type EntityLookup interface {
	Get(ctx context.Context, userID, entityID id.ID) (*EntityRef, error)
}

// ProductRef is the slice of a product the transaction service needs:
// display name plus pricing defaults applied at creation time.
type ProductRef struct {
	ID            id.ID
	Name          string
	SalePrice     types.Money
	PurchasePrice types.Money
	GSTRate       types.Money
}

// ProductLookup resolves product references. Returns NotFound when the id
// does not exist for the user.
type ProductLookup interface {
	Get(ctx context.Context, userID, productID id.ID) (*ProductRef, error)
}

// BillCascade is implemented by the billing domain: deleting a transaction
// must drop its frozen lines from any bill that referenced it.
type BillCascade interface {
	RebuildAfterTransactionDelete(ctx context.Context, userID, txID id.ID) error
}
