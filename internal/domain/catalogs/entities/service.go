package entities

import (
	"context"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/pkg/logger"
)

// Service provides entity catalog operations and the derived views.
type Service struct {
	repo Repository
	txs  TransactionSource
}

// NewService creates a new entity service.
func NewService(repo Repository, txs TransactionSource) *Service {
	return &Service{repo: repo, txs: txs}
}

// List returns the user's entities with their derived balances. One
// transaction scan serves every entity.
func (s *Service) List(ctx context.Context, userID id.ID) ([]WithBalance, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]WithBalance, 0, len(items))
	for _, e := range items {
		result = append(result, WithBalance{Entity: e, Balance: Balance(e, txs)})
	}
	return result, nil
}

// Get returns one entity.
func (s *Service) Get(ctx context.Context, userID, entityID id.ID) (*Entity, error) {
	return s.repo.GetByID(ctx, userID, entityID)
}

// Passbook returns the running-balance ledger for one entity.
func (s *Service) Passbook(ctx context.Context, userID, entityID id.ID) (*Passbook, error) {
	entity, err := s.repo.GetByID(ctx, userID, entityID)
	if err != nil {
		return nil, err
	}
	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	passbook := BuildPassbook(*entity, txs)
	return &passbook, nil
}

// Create adds a new entity.
func (s *Service) Create(ctx context.Context, userID id.ID, in Input) (*Entity, error) {
	in = in.sanitize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	e := &Entity{
		ID:             id.New(),
		UserID:         userID,
		Name:           in.Name,
		Category:       in.Category,
		GSTIN:          in.GSTIN,
		Phone:          in.Phone,
		Address:        in.Address,
		OpeningBalance: in.OpeningBalance,
		CreatedAt:      types.NowISO(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	logger.Info(ctx, "entity created", "entity_id", e.ID, "name", e.Name)
	return e, nil
}

// Update modifies an existing entity.
func (s *Service) Update(ctx context.Context, userID, entityID id.ID, in Input) (*Entity, error) {
	in = in.sanitize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, userID, entityID)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Category = in.Category
	existing.GSTIN = in.GSTIN
	existing.Phone = in.Phone
	existing.Address = in.Address
	existing.OpeningBalance = in.OpeningBalance

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an entity. Entities with referencing transactions cannot
// be deleted; the transactions carry the history.
func (s *Service) Delete(ctx context.Context, userID, entityID id.ID) error {
	hasTxs, err := s.txs.ExistsByEntity(ctx, userID, entityID)
	if err != nil {
		return err
	}
	if hasTxs {
		return apperror.NewConflict("Cannot delete entity with transactions.").
			WithDetail("entity_id", entityID.String())
	}
	return s.repo.Delete(ctx, userID, entityID)
}
