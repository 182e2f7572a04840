// Package entities provides the counterparty catalog (customers and
// suppliers) together with the derived balance and passbook views.
package entities

import (
	"context"
	"strings"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

// Entity represents a business counterparty. The balance is never stored;
// it is always derived from the opening balance plus the transaction fold.
type Entity struct {
	ID             id.ID       `db:"id" json:"id"`
	UserID         id.ID       `db:"user_id" json:"-"`
	Name           string      `db:"name" json:"name"`
	Category       string      `db:"category" json:"category"`
	GSTIN          string      `db:"gstin" json:"gstin"`
	Phone          string      `db:"phone" json:"phone"`
	Address        string      `db:"address" json:"address"`
	OpeningBalance types.Money `db:"opening_balance" json:"openingBalance"`
	CreatedAt      string      `db:"created_at" json:"createdAt"`
}

// Input is the create/update payload.
type Input struct {
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	GSTIN          string      `json:"gstin"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	OpeningBalance types.Money `json:"openingBalance"`
}

// sanitize trims fields and applies defaults.
func (in Input) sanitize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = "Other"
	}
	in.GSTIN = strings.TrimSpace(in.GSTIN)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	return in
}

func (in Input) validate() error {
	if in.Name == "" {
		return apperror.NewInvalidInput("Entity name is required.").
			WithDetail("field", "name")
	}
	return nil
}

// WithBalance is an entity with its derived current balance,
// receivable-positive.
type WithBalance struct {
	Entity
	Balance types.Money `json:"balance"`
}

// Repository defines entity persistence, scoped per user.
type Repository interface {
	ListByUser(ctx context.Context, userID id.ID) ([]Entity, error)
	GetByID(ctx context.Context, userID, entityID id.ID) (*Entity, error)
	Create(ctx context.Context, e *Entity) error
	Update(ctx context.Context, e *Entity) error
	Delete(ctx context.Context, userID, entityID id.ID) error
}

// TransactionSource supplies the transaction records the balance and
// passbook folds run over.
type TransactionSource interface {
	ListByUser(ctx context.Context, userID id.ID) ([]transactions.Transaction, error)
	ExistsByEntity(ctx context.Context, userID, entityID id.ID) (bool, error)
}
