package audit

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerpro/internal/core/id"
)

type fakeRepo struct {
	entries []Entry
}

func (f *fakeRepo) Insert(_ context.Context, e *Entry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID id.ID, limit int) ([]Entry, error) {
	var out []Entry
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func TestLogRequiresActionAndResource(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	err = svc.Log(context.Background(), id.New(), "", "transaction", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Audit action and resource are required.")

	err = svc.Log(context.Background(), id.New(), "create", "", "", nil)
	require.Error(t, err)
	assert.Empty(t, repo.entries)
}

func TestLogSmallMetaStaysPlain(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)
	userID := id.New()

	err = svc.Log(context.Background(), userID, "create", "transaction", "tx-1", map[string]any{
		"method": "POST",
		"path":   "/api/v1/transactions",
	})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.Equal(t, CompressionNone, e.Compression)
	assert.Nil(t, e.MetaCompressed)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(e.Meta, &meta))
	assert.Equal(t, "POST", meta["method"])
}

func TestLogLargeMetaCompressed(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)
	userID := id.New()

	big := map[string]any{"payload": strings.Repeat("transaction line item ", 1024)}
	require.NoError(t, svc.Log(context.Background(), userID, "update", "transaction", "tx-1", big))

	require.Len(t, repo.entries, 1)
	stored := repo.entries[0]
	assert.Equal(t, CompressionZstd, stored.Compression)
	assert.Nil(t, stored.Meta)
	assert.NotEmpty(t, stored.MetaCompressed)
	assert.Less(t, len(stored.MetaCompressed), compressThreshold)

	// List hands the metadata back decompressed and transparent.
	entries, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, CompressionNone, entries[0].Compression)
	assert.Nil(t, entries[0].MetaCompressed)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(entries[0].Meta, &meta))
	assert.Equal(t, big["payload"], meta["payload"])
}

func TestListNewestFirstScopedToUser(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)
	userID := id.New()

	require.NoError(t, svc.Log(context.Background(), userID, "create", "entity", "e-1", nil))
	require.NoError(t, svc.Log(context.Background(), userID, "delete", "entity", "e-1", nil))
	require.NoError(t, svc.Log(context.Background(), id.New(), "create", "entity", "e-2", nil))

	entries, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "delete", entries[0].Action)
	assert.Equal(t, "create", entries[1].Action)
}
