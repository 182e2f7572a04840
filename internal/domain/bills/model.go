// Package bills assembles GST invoices from sale transactions. A bill is a
// frozen snapshot: its lines carry their own amounts and never change when
// the underlying sales are edited later.
package bills

import (
	"context"
	"strings"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
)

// Line is one billed sale, snapshotted at creation time.
type Line struct {
	TransactionID id.ID       `json:"transactionId"`
	Date          string      `json:"date"`
	Item          string      `json:"item"`
	Qty           types.Money `json:"qty"`
	UnitAmount    types.Money `json:"unitAmount"`
	GSTRate       types.Money `json:"gstRate"`
	Base          types.Money `json:"base"`
	GST           types.Money `json:"gst"`
	Gross         types.Money `json:"gross"`
}

// Bill is a numbered invoice for one entity.
type Bill struct {
	ID         id.ID       `db:"id" json:"id"`
	UserID     id.ID       `db:"user_id" json:"-"`
	BillNo     string      `db:"bill_no" json:"billNo"`
	EntityID   id.ID       `db:"entity_id" json:"entityId"`
	Date       string      `db:"date" json:"date"`
	Lines      []Line      `db:"lines" json:"lines"`
	TotalBase  types.Money `db:"total_base" json:"totalBase"`
	TotalGST   types.Money `db:"total_gst" json:"totalGst"`
	TotalGross types.Money `db:"total_gross" json:"totalGross"`
	Note       string      `db:"note" json:"note"`
	CreatedAt  string      `db:"created_at" json:"createdAt"`
}

// WithEntity decorates a bill with display fields of its entity.
type WithEntity struct {
	Bill
	EntityName  string `json:"entityName"`
	EntityGSTIN string `json:"entityGstin"`
}

// Input is the create payload.
type Input struct {
	EntityID       string   `json:"entityId"`
	TransactionIDs []string `json:"transactionIds"`
	Date           string   `json:"date"`
	Prefix         string   `json:"prefix"`
	Note           string   `json:"note"`
}

const defaultPrefix = "INV"

func (in Input) sanitize() Input {
	in.EntityID = strings.TrimSpace(in.EntityID)
	in.Date = strings.TrimSpace(in.Date)
	in.Prefix = strings.TrimSpace(strings.ToUpper(in.Prefix))
	if in.Prefix == "" {
		in.Prefix = defaultPrefix
	}
	in.Note = strings.TrimSpace(in.Note)
	return in
}

// Repository defines bill persistence, scoped per user.
type Repository interface {
	ListByUser(ctx context.Context, userID id.ID) ([]Bill, error)
	GetByID(ctx context.Context, userID, billID id.ID) (*Bill, error)
	ListByTransaction(ctx context.Context, userID, txID id.ID) ([]Bill, error)
	CountByPrefix(ctx context.Context, userID id.ID, prefix string) (int, error)
	Create(ctx context.Context, b *Bill) error
	Update(ctx context.Context, b *Bill) error
	Delete(ctx context.Context, userID, billID id.ID) error
}
