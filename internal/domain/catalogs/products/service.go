package products

import (
	"context"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/pkg/logger"
)

// Service provides product catalog operations and the derived stock views.
type Service struct {
	repo Repository
	txs  TransactionSource
}

// NewService creates a new product service.
func NewService(repo Repository, txs TransactionSource) *Service {
	return &Service{repo: repo, txs: txs}
}

// List returns the user's products with derived stock and batch figures.
func (s *Service) List(ctx context.Context, userID id.ID) ([]WithStock, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := types.TodayISO()
	result := make([]WithStock, 0, len(items))
	for _, p := range items {
		current := CurrentStock(p, txs)
		batches := BuildBatchSummary(p, txs, today)
		result = append(result, WithStock{
			Product:         p,
			OpeningStock:    p.StockQty,
			CurrentStock:    current,
			LowStock:        current.LessThanOrEqual(p.ReorderLevel),
			BatchCount:      len(batches.Batches),
			NearExpiryCount: batches.NearExpiryCount,
			ExpiredCount:    batches.ExpiredCount,
		})
	}
	return result, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, userID, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, userID, productID)
}

// StockLedger returns the running-stock view for one product.
func (s *Service) StockLedger(ctx context.Context, userID, productID id.ID) (*StockLedger, error) {
	product, err := s.repo.GetByID(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger := BuildStockLedger(*product, txs, types.TodayISO())
	return &ledger, nil
}

// BatchOptions returns the batch picker rows for one product.
func (s *Service) BatchOptions(ctx context.Context, userID, productID id.ID) ([]BatchOption, error) {
	product, err := s.repo.GetByID(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildBatchOptions(*product, txs), nil
}

// Create adds a new product.
func (s *Service) Create(ctx context.Context, userID id.ID, in Input) (*Product, error) {
	in = in.sanitize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	reorder := defaultReorderLevel
	if in.ReorderLevel != nil {
		reorder = *in.ReorderLevel
	}

	p := &Product{
		ID:              id.New(),
		UserID:          userID,
		Name:            in.Name,
		SKU:             in.SKU,
		Unit:            in.Unit,
		BatchingEnabled: in.BatchingEnabled,
		InitialBatchNo:  in.InitialBatchNo,
		InitialMfgDate:  in.InitialMfgDate,
		InitialExpDate:  in.InitialExpDate,
		SalePrice:       in.SalePrice,
		PurchasePrice:   in.PurchasePrice,
		GSTRate:         in.GSTRate,
		StockQty:        in.StockQty,
		ReorderLevel:    reorder,
		Description:     in.Description,
		CreatedAt:       types.NowISO(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info(ctx, "product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// Update modifies an existing product.
func (s *Service) Update(ctx context.Context, userID, productID id.ID, in Input) (*Product, error) {
	in = in.sanitize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.SKU = in.SKU
	existing.Unit = in.Unit
	existing.BatchingEnabled = in.BatchingEnabled
	existing.InitialBatchNo = in.InitialBatchNo
	existing.InitialMfgDate = in.InitialMfgDate
	existing.InitialExpDate = in.InitialExpDate
	existing.SalePrice = in.SalePrice
	existing.PurchasePrice = in.PurchasePrice
	existing.GSTRate = in.GSTRate
	existing.StockQty = in.StockQty
	if in.ReorderLevel != nil {
		existing.ReorderLevel = *in.ReorderLevel
	}
	existing.Description = in.Description

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a product. Historic transactions keep their item label
// and batch fields, so no referential check is needed.
func (s *Service) Delete(ctx context.Context, userID, productID id.ID) error {
	return s.repo.Delete(ctx, userID, productID)
}
