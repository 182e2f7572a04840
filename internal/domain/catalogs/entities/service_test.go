package entities

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
	items map[id.ID]*Entity
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*Entity)}
}

func (f *fakeRepo) ListByUser(_ context.Context, userID id.ID) ([]Entity, error) {
	var out []Entity
	for _, e := range f.items {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, userID, entityID id.ID) (*Entity, error) {
	e, ok := f.items[entityID]
	if !ok || e.UserID != userID {
		return nil, apperror.NewNotFound("entity", entityID)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) Create(_ context.Context, e *Entity) error {
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(_ context.Context, e *Entity) error {
	if _, ok := f.items[e.ID]; !ok {
		return apperror.NewNotFound("entity", e.ID)
	}
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, userID, entityID id.ID) error {
	e, ok := f.items[entityID]
	if !ok || e.UserID != userID {
		return apperror.NewNotFound("entity", entityID)
	}
	delete(f.items, entityID)
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

func (f *fakeTxSource) ExistsByEntity(_ context.Context, userID, entityID id.ID) (bool, error) {
	for _, tx := range f.txs {
		if tx.UserID == userID && tx.EntityID == entityID {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeTxSource{})
	userID := id.New()

	e, err := svc.Create(context.Background(), userID, Input{Name: "  Sharma Retail  "})
	require.NoError(t, err)

	assert.Equal(t, "Sharma Retail", e.Name)
	assert.Equal(t, "Other", e.Category)
	assert.Equal(t, userID, e.UserID)
	assert.NotEmpty(t, e.CreatedAt)
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeTxSource{})

	_, err := svc.Create(context.Background(), id.New(), Input{Name: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Entity name is required.")
}

func TestListComputesBalances(t *testing.T) {
	repo := newFakeRepo()
	txs := &fakeTxSource{}
	svc := NewService(repo, txs)
	userID := id.New()

	e, err := svc.Create(context.Background(), userID, Input{
		Name:           "Sharma Retail",
		Category:       "Customer",
		OpeningBalance: types.NewMoney(100),
	})
	require.NoError(t, err)

	txs.txs = append(txs.txs, transactions.Transaction{
		ID:         id.New(),
		UserID:     userID,
		EntityID:   e.ID,
		Type:       transactions.TypeSale,
		Qty:        types.NewMoney(10),
		UnitAmount: types.NewMoney(30),
		GSTRate:    types.NewMoney(12),
		Date:       "2024-06-01",
	})

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Balance.Equal(types.NewMoney(436)))
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeTxSource{})

	_, err := svc.Update(context.Background(), id.New(), id.New(), Input{Name: "Ghost"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteBlockedByTransactions(t *testing.T) {
	repo := newFakeRepo()
	txs := &fakeTxSource{}
	svc := NewService(repo, txs)
	userID := id.New()

	e, err := svc.Create(context.Background(), userID, Input{Name: "Patel Wholesale"})
	require.NoError(t, err)

	txs.txs = append(txs.txs, transactions.Transaction{
		ID: id.New(), UserID: userID, EntityID: e.ID,
		Type: transactions.TypePurchase, Date: "2024-06-01",
	})

	err = svc.Delete(context.Background(), userID, e.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// Still deletable once nothing references it.
	txs.txs = nil
	require.NoError(t, svc.Delete(context.Background(), userID, e.ID))
	_, err = svc.Get(context.Background(), userID, e.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetScopedToUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeTxSource{})

	e, err := svc.Create(context.Background(), id.New(), Input{Name: "Sharma Retail"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), id.New(), e.ID)
	assert.True(t, apperror.IsNotFound(err))
}
