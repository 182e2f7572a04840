package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/catalogs/entities"
	"ledgerpro/internal/domain/transactions"
)

type fakeStore struct {
	snap     *Snapshot
	replaced *Snapshot
}

func (f *fakeStore) ReadAll(_ context.Context, _ id.ID) (*Snapshot, error) {
	cp := *f.snap
	return &cp, nil
}

func (f *fakeStore) ReplaceAll(_ context.Context, _ id.ID, snap *Snapshot) error {
	f.replaced = snap
	return nil
}

func sampleSnapshot(userID id.ID) *Snapshot {
	return &Snapshot{
		Entities: []entities.Entity{{
			ID:     id.New(),
			UserID: userID,
			Name:   "Sharma Retail",
		}},
		Transactions: []transactions.Transaction{{
			ID:         id.New(),
			UserID:     userID,
			EntityID:   id.New(),
			Type:       transactions.TypeSale,
			Date:       "2024-06-01",
			Item:       "Paracetamol 500mg",
			Qty:        types.NewMoney(10),
			UnitAmount: types.NewMoney(30),
		}},
	}
}

func TestExportPlainJSON(t *testing.T) {
	userID := id.New()
	store := &fakeStore{snap: sampleSnapshot(userID)}
	svc, err := NewService(store)
	require.NoError(t, err)

	data, err := svc.Export(context.Background(), userID, false)
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, 1, snap.Version)
	assert.NotEmpty(t, snap.ExportedAt)
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, "Sharma Retail", snap.Entities[0].Name)
}

func TestExportCompressed(t *testing.T) {
	userID := id.New()
	store := &fakeStore{snap: sampleSnapshot(userID)}
	svc, err := NewService(store)
	require.NoError(t, err)

	data, err := svc.Export(context.Background(), userID, true)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, zstdMagic))
}

func TestExportRestoreRoundtrip(t *testing.T) {
	userID := id.New()
	store := &fakeStore{snap: sampleSnapshot(userID)}
	svc, err := NewService(store)
	require.NoError(t, err)

	for _, compress := range []bool{false, true} {
		store.replaced = nil

		data, err := svc.Export(context.Background(), userID, compress)
		require.NoError(t, err)
		require.NoError(t, svc.Restore(context.Background(), userID, data))

		require.NotNil(t, store.replaced, "compress=%v", compress)
		require.Len(t, store.replaced.Transactions, 1)
		assert.True(t, store.replaced.Transactions[0].Qty.Equal(types.NewMoney(10)))
	}
}

func TestRestoreReownsRecords(t *testing.T) {
	originalOwner := id.New()
	store := &fakeStore{snap: sampleSnapshot(originalOwner)}
	svc, err := NewService(store)
	require.NoError(t, err)

	data, err := svc.Export(context.Background(), originalOwner, false)
	require.NoError(t, err)

	newOwner := id.New()
	require.NoError(t, svc.Restore(context.Background(), newOwner, data))

	assert.Equal(t, newOwner, store.replaced.Entities[0].UserID)
	assert.Equal(t, newOwner, store.replaced.Transactions[0].UserID)
}

func TestRestoreRejectsBadInput(t *testing.T) {
	store := &fakeStore{snap: &Snapshot{}}
	svc, err := NewService(store)
	require.NoError(t, err)
	ctx := context.Background()
	userID := id.New()

	err = svc.Restore(ctx, userID, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Backup file is empty.")

	err = svc.Restore(ctx, userID, []byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Backup file is not a valid snapshot.")

	// A truncated zstd frame is detected as compressed, then fails to decode.
	err = svc.Restore(ctx, userID, append(append([]byte{}, zstdMagic...), 0x00))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Backup file is corrupted.")

	future, merr := json.Marshal(Snapshot{Version: 9})
	require.NoError(t, merr)
	err = svc.Restore(ctx, userID, future)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Backup file version is not supported.")

	assert.Nil(t, store.replaced)
}
