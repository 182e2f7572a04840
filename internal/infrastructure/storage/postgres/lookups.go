package postgres

import (
	"context"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/domain/bills"
	"ledgerpro/internal/domain/transactions"
)

// EntityLookupAdapter exposes the entity repository through the narrow
// interfaces the transaction, bill and report domains depend on.
type EntityLookupAdapter struct {
	repo *EntityRepo
}

// NewEntityLookupAdapter creates a new adapter.
func NewEntityLookupAdapter(repo *EntityRepo) *EntityLookupAdapter {
	return &EntityLookupAdapter{repo: repo}
}

// Get implements transactions.EntityLookup.
func (a *EntityLookupAdapter) Get(ctx context.Context, userID, entityID id.ID) (*transactions.EntityRef, error) {
	e, err := a.repo.GetByID(ctx, userID, entityID)
	if err != nil {
		return nil, err
	}
	return &transactions.EntityRef{ID: e.ID, Name: e.Name}, nil
}

// ListRefs implements reports.EntityCounter.
func (a *EntityLookupAdapter) ListRefs(ctx context.Context, userID id.ID) ([]transactions.EntityRef, error) {
	items, err := a.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	refs := make([]transactions.EntityRef, 0, len(items))
	for _, e := range items {
		refs = append(refs, transactions.EntityRef{ID: e.ID, Name: e.Name})
	}
	return refs, nil
}

// BillEntitySource adapts the entity repository to bills.EntitySource.
type BillEntitySource struct {
	repo *EntityRepo
}

// NewBillEntitySource creates a new adapter.
func NewBillEntitySource(repo *EntityRepo) *BillEntitySource {
	return &BillEntitySource{repo: repo}
}

func (a *BillEntitySource) Get(ctx context.Context, userID, entityID id.ID) (*bills.EntityInfo, error) {
	e, err := a.repo.GetByID(ctx, userID, entityID)
	if err != nil {
		return nil, err
	}
	return &bills.EntityInfo{ID: e.ID, Name: e.Name, GSTIN: e.GSTIN}, nil
}

func (a *BillEntitySource) ListByUser(ctx context.Context, userID id.ID) ([]bills.EntityInfo, error) {
	items, err := a.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	infos := make([]bills.EntityInfo, 0, len(items))
	for _, e := range items {
		infos = append(infos, bills.EntityInfo{ID: e.ID, Name: e.Name, GSTIN: e.GSTIN})
	}
	return infos, nil
}

// ProductLookupAdapter adapts the product repository to
// transactions.ProductLookup.
type ProductLookupAdapter struct {
	repo *ProductRepo
}

// NewProductLookupAdapter creates a new adapter.
func NewProductLookupAdapter(repo *ProductRepo) *ProductLookupAdapter {
	return &ProductLookupAdapter{repo: repo}
}

func (a *ProductLookupAdapter) Get(ctx context.Context, userID, productID id.ID) (*transactions.ProductRef, error) {
	p, err := a.repo.GetByID(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return &transactions.ProductRef{
		ID:            p.ID,
		Name:          p.Name,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
		GSTRate:       p.GSTRate,
	}, nil
}
