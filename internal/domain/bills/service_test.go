package bills

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
	items map[id.ID]*Bill
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*Bill)}
}

func (f *fakeRepo) ListByUser(_ context.Context, userID id.ID) ([]Bill, error) {
	var out []Bill
	for _, b := range f.items {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, userID, billID id.ID) (*Bill, error) {
	b, ok := f.items[billID]
	if !ok || b.UserID != userID {
		return nil, apperror.NewNotFound("bill", billID)
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) ListByTransaction(_ context.Context, userID, txID id.ID) ([]Bill, error) {
	var out []Bill
	for _, b := range f.items {
		if b.UserID != userID {
			continue
		}
		for _, line := range b.Lines {
			if line.TransactionID == txID {
				out = append(out, *b)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) CountByPrefix(_ context.Context, userID id.ID, prefix string) (int, error) {
	n := 0
	for _, b := range f.items {
		if b.UserID == userID && len(b.BillNo) > len(prefix) && b.BillNo[:len(prefix)+1] == prefix+"-" {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Create(_ context.Context, b *Bill) error {
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(_ context.Context, b *Bill) error {
	if _, ok := f.items[b.ID]; !ok {
		return apperror.NewNotFound("bill", b.ID)
	}
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, userID, billID id.ID) error {
	b, ok := f.items[billID]
	if !ok || b.UserID != userID {
		return apperror.NewNotFound("bill", billID)
	}
	delete(f.items, billID)
	return nil
}

type fakeEntities struct {
	infos map[id.ID]EntityInfo
}

func (f *fakeEntities) Get(_ context.Context, _ id.ID, entityID id.ID) (*EntityInfo, error) {
	e, ok := f.infos[entityID]
	if !ok {
		return nil, apperror.NewNotFound("entity", entityID)
	}
	return &e, nil
}

func (f *fakeEntities) ListByUser(_ context.Context, _ id.ID) ([]EntityInfo, error) {
	var out []EntityInfo
	for _, e := range f.infos {
		out = append(out, e)
	}
	return out, nil
}

type fakeTxs struct {
	txs []transactions.Transaction
}

func (f *fakeTxs) ListByUser(_ context.Context, userID id.ID) ([]transactions.Transaction, error) {
	var out []transactions.Transaction
	for _, tx := range f.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type billEnv struct {
	svc      *Service
	repo     *fakeRepo
	txs      *fakeTxs
	userID   id.ID
	entityID id.ID
}

func newBillEnv(t *testing.T) *billEnv {
	t.Helper()
	entityID := id.New()
	repo := newFakeRepo()
	txs := &fakeTxs{}
	entities := &fakeEntities{infos: map[id.ID]EntityInfo{
		entityID: {ID: entityID, Name: "Sharma Retail", GSTIN: "27AAACS1234A1Z5"},
	}}
	return &billEnv{
		svc:      NewService(repo, entities, txs),
		repo:     repo,
		txs:      txs,
		userID:   id.New(),
		entityID: entityID,
	}
}

func (env *billEnv) addSale(qty, unit, gst float64, date string) transactions.Transaction {
	tx := transactions.Transaction{
		ID:         id.New(),
		UserID:     env.userID,
		EntityID:   env.entityID,
		Type:       transactions.TypeSale,
		Date:       date,
		Item:       "Paracetamol 500mg",
		Qty:        types.NewMoney(qty),
		UnitAmount: types.NewMoney(unit),
		GSTRate:    types.NewMoney(gst),
		CreatedAt:  date + "T10:00:00Z",
	}
	env.txs.txs = append(env.txs.txs, tx)
	return tx
}

func TestCreateBill(t *testing.T) {
	env := newBillEnv(t)
	sale := env.addSale(10, 30, 12, "2024-06-01")

	b, err := env.svc.Create(context.Background(), env.userID, Input{
		EntityID:       env.entityID.String(),
		TransactionIDs: []string{sale.ID.String()},
		Date:           "2024-06-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", b.BillNo)
	require.Len(t, b.Lines, 1)
	assert.Equal(t, "2024-06-01", b.Lines[0].Date)
	assert.Equal(t, "Paracetamol 500mg", b.Lines[0].Item)
	assert.True(t, b.Lines[0].Base.Equal(types.NewMoney(300)))
	assert.True(t, b.Lines[0].GST.Equal(types.NewMoney(36)))
	assert.True(t, b.TotalGross.Equal(types.NewMoney(336)))
}

func TestCreateBillSequentialNumbering(t *testing.T) {
	env := newBillEnv(t)

	for i, want := range []string{"INV-0001", "INV-0002", "INV-0003"} {
		sale := env.addSale(1, 100, 0, "2024-06-01")
		b, err := env.svc.Create(context.Background(), env.userID, Input{
			EntityID:       env.entityID.String(),
			TransactionIDs: []string{sale.ID.String()},
			Date:           "2024-06-15",
		})
		require.NoError(t, err, "bill %d", i+1)
		assert.Equal(t, want, b.BillNo)
	}
}

func TestCreateBillCustomPrefix(t *testing.T) {
	env := newBillEnv(t)
	sale := env.addSale(1, 100, 0, "2024-06-01")

	b, err := env.svc.Create(context.Background(), env.userID, Input{
		EntityID:       env.entityID.String(),
		TransactionIDs: []string{sale.ID.String()},
		Date:           "2024-06-15",
		Prefix:         "gst",
	})
	require.NoError(t, err)
	assert.Equal(t, "GST-0001", b.BillNo)
}

func TestCreateBillDropsForeignAndNonSaleIDs(t *testing.T) {
	env := newBillEnv(t)
	sale := env.addSale(10, 30, 12, "2024-06-01")

	purchase := env.addSale(5, 20, 0, "2024-06-02")
	purchase.Type = transactions.TypePurchase
	env.txs.txs[1] = purchase

	other := env.addSale(5, 50, 0, "2024-06-03")
	other.EntityID = id.New()
	env.txs.txs[2] = other

	b, err := env.svc.Create(context.Background(), env.userID, Input{
		EntityID: env.entityID.String(),
		TransactionIDs: []string{
			sale.ID.String(),
			purchase.ID.String(),
			other.ID.String(),
			"not-a-uuid",
		},
		Date: "2024-06-15",
	})
	require.NoError(t, err)

	// Only the entity's own sale survives the filter.
	require.Len(t, b.Lines, 1)
	assert.Equal(t, sale.ID, b.Lines[0].TransactionID)
}

func TestCreateBillNoValidSales(t *testing.T) {
	env := newBillEnv(t)

	purchase := env.addSale(5, 20, 0, "2024-06-01")
	purchase.Type = transactions.TypePurchase
	env.txs.txs[0] = purchase

	_, err := env.svc.Create(context.Background(), env.userID, Input{
		EntityID:       env.entityID.String(),
		TransactionIDs: []string{purchase.ID.String()},
		Date:           "2024-06-15",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No valid sales selected.")
}

func TestCreateBillInvalidInput(t *testing.T) {
	env := newBillEnv(t)
	sale := env.addSale(1, 100, 0, "2024-06-01")

	cases := []struct {
		name string
		in   Input
	}{
		{"missing entity", Input{TransactionIDs: []string{sale.ID.String()}, Date: "2024-06-15"}},
		{"missing transactions", Input{EntityID: env.entityID.String(), Date: "2024-06-15"}},
		{"missing date", Input{EntityID: env.entityID.String(), TransactionIDs: []string{sale.ID.String()}}},
		{"bad entity id", Input{EntityID: "garbage", TransactionIDs: []string{sale.ID.String()}, Date: "2024-06-15"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.Create(context.Background(), env.userID, tc.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Invalid bill data.")
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	env := newBillEnv(t)

	for _, date := range []string{"2024-06-01", "2024-06-20", "2024-06-10"} {
		sale := env.addSale(1, 100, 0, date)
		_, err := env.svc.Create(context.Background(), env.userID, Input{
			EntityID:       env.entityID.String(),
			TransactionIDs: []string{sale.ID.String()},
			Date:           date,
		})
		require.NoError(t, err)
	}

	list, err := env.svc.List(context.Background(), env.userID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "2024-06-20", list[0].Date)
	assert.Equal(t, "2024-06-10", list[1].Date)
	assert.Equal(t, "2024-06-01", list[2].Date)
	assert.Equal(t, "Sharma Retail", list[0].EntityName)
	assert.Equal(t, "27AAACS1234A1Z5", list[0].EntityGSTIN)
}

func TestRebuildAfterTransactionDeleteRecomputesTotals(t *testing.T) {
	env := newBillEnv(t)
	sale1 := env.addSale(10, 30, 12, "2024-06-01") // gross 336
	sale2 := env.addSale(2, 50, 0, "2024-06-02")   // gross 100

	b, err := env.svc.Create(context.Background(), env.userID, Input{
		EntityID:       env.entityID.String(),
		TransactionIDs: []string{sale1.ID.String(), sale2.ID.String()},
		Date:           "2024-06-15",
	})
	require.NoError(t, err)
	require.Len(t, b.Lines, 2)

	require.NoError(t, env.svc.RebuildAfterTransactionDelete(context.Background(), env.userID, sale1.ID))

	rebuilt, err := env.svc.Get(context.Background(), env.userID, b.ID)
	require.NoError(t, err)
	require.Len(t, rebuilt.Lines, 1)
	assert.Equal(t, sale2.ID, rebuilt.Lines[0].TransactionID)
	assert.True(t, rebuilt.TotalBase.Equal(types.NewMoney(100)))
	assert.True(t, rebuilt.TotalGST.IsZero())
	assert.True(t, rebuilt.TotalGross.Equal(types.NewMoney(100)))
}

func TestRebuildAfterTransactionDeleteRemovesEmptyBill(t *testing.T) {
	env := newBillEnv(t)
	sale := env.addSale(1, 100, 0, "2024-06-01")

	b, err := env.svc.Create(context.Background(), env.userID, Input{
		EntityID:       env.entityID.String(),
		TransactionIDs: []string{sale.ID.String()},
		Date:           "2024-06-15",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.RebuildAfterTransactionDelete(context.Background(), env.userID, sale.ID))

	_, err = env.svc.Get(context.Background(), env.userID, b.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBillLinesAreImmutableSnapshots(t *testing.T) {
	env := newBillEnv(t)
	sale := env.addSale(10, 30, 12, "2024-06-01")

	b, err := env.svc.Create(context.Background(), env.userID, Input{
		EntityID:       env.entityID.String(),
		TransactionIDs: []string{sale.ID.String()},
		Date:           "2024-06-15",
	})
	require.NoError(t, err)

	// Later price changes on the transaction do not touch the bill.
	env.txs.txs[0].UnitAmount = types.NewMoney(99)

	got, err := env.svc.Get(context.Background(), env.userID, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Lines[0].UnitAmount.Equal(types.NewMoney(30)))
	assert.True(t, got.TotalGross.Equal(types.NewMoney(336)))
}
