package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

type fakeRepo struct {
	items map[id.ID]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*Product)}
}

func (f *fakeRepo) ListByUser(_ context.Context, userID id.ID) ([]Product, error) {
	var out []Product
	for _, p := range f.items {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, userID, productID id.ID) (*Product, error) {
	p, ok := f.items[productID]
	if !ok || p.UserID != userID {
		return nil, apperror.NewNotFound("product", productID)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) Create(_ context.Context, p *Product) error {
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(_ context.Context, p *Product) error {
	if _, ok := f.items[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, userID, productID id.ID) error {
	p, ok := f.items[productID]
	if !ok || p.UserID != userID {
		return apperror.NewNotFound("product", productID)
	}
	delete(f.items, productID)
	return nil
}

type fakeTxSource struct {
	txs []transactions.Transaction
}

func (f *fakeTxSource) ListByUser(_ context.Context, userID id.ID) ([]transactions.Transaction, error) {
	var out []transactions.Transaction
	for _, tx := range f.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeTxSource{})

	p, err := svc.Create(context.Background(), id.New(), Input{Name: " Paracetamol 500mg "})
	require.NoError(t, err)

	assert.Equal(t, "Paracetamol 500mg", p.Name)
	assert.Equal(t, "pcs", p.Unit)
	assert.True(t, p.ReorderLevel.Equal(types.NewMoney(5)))
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeTxSource{})

	_, err := svc.Create(context.Background(), id.New(), Input{})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))
}

func TestCreateBlanksBatchFieldsWhenDisabled(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeTxSource{})

	p, err := svc.Create(context.Background(), id.New(), Input{
		Name:           "Paracetamol 500mg",
		InitialBatchNo: "PCM-2406",
		InitialExpDate: "2027-06-30",
	})
	require.NoError(t, err)

	assert.Empty(t, p.InitialBatchNo)
	assert.Empty(t, p.InitialExpDate)
}

func TestUpdateKeepsReorderLevelWhenOmitted(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeTxSource{})
	userID := id.New()

	reorder := types.NewMoney(20)
	p, err := svc.Create(context.Background(), userID, Input{Name: "Paracetamol 500mg", ReorderLevel: &reorder})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), userID, p.ID, Input{Name: "Paracetamol 650mg"})
	require.NoError(t, err)

	assert.Equal(t, "Paracetamol 650mg", updated.Name)
	assert.True(t, updated.ReorderLevel.Equal(types.NewMoney(20)))
}

func TestListDerivesStockView(t *testing.T) {
	repo := newFakeRepo()
	txs := &fakeTxSource{}
	svc := NewService(repo, txs)
	userID := id.New()

	p, err := svc.Create(context.Background(), userID, Input{
		Name:     "Paracetamol 500mg",
		StockQty: types.NewMoney(10),
	})
	require.NoError(t, err)

	pid := p.ID
	txs.txs = append(txs.txs, transactions.Transaction{
		ID:        id.New(),
		UserID:    userID,
		EntityID:  id.New(),
		ProductID: &pid,
		Type:      transactions.TypeSale,
		Qty:       types.NewMoney(7),
		BatchNo:   "PCM-2406",
		Date:      "2024-06-01",
	})

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.True(t, got.OpeningStock.Equal(types.NewMoney(10)))
	assert.True(t, got.CurrentStock.Equal(types.NewMoney(3)))
	assert.True(t, got.LowStock)
	assert.Equal(t, 1, got.BatchCount)
}

func TestDeleteWithoutReferentialCheck(t *testing.T) {
	repo := newFakeRepo()
	txs := &fakeTxSource{}
	svc := NewService(repo, txs)
	userID := id.New()

	p, err := svc.Create(context.Background(), userID, Input{Name: "Paracetamol 500mg"})
	require.NoError(t, err)

	pid := p.ID
	txs.txs = append(txs.txs, transactions.Transaction{
		ID: id.New(), UserID: userID, EntityID: id.New(), ProductID: &pid,
		Type: transactions.TypeSale, Qty: types.NewMoney(1), Date: "2024-06-01",
	})

	// Transactions keep their item label, so deletion goes through.
	require.NoError(t, svc.Delete(context.Background(), userID, p.ID))
}
