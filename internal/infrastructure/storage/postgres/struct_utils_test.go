package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/catalogs/entities"
)

type mockRecord struct {
	entities.Entity
	Extra    string `db:"extra" json:"extra"`
	Skipped  string `db:"-"`
	Untagged string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockRecord]()

	expected := []string{
		"id", "user_id", "name", "category", "gstin",
		"phone", "address", "opening_balance", "created_at", "extra",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMap(t *testing.T) {
	rec := mockRecord{
		Entity: entities.Entity{
			ID:             id.New(),
			UserID:         id.New(),
			Name:           "Sharma Retail",
			Category:       "Customer",
			GSTIN:          "27AAACS1234A1Z5",
			OpeningBalance: types.NewMoney(500),
			CreatedAt:      "2024-06-01T10:00:00Z",
		},
		Extra:    "extra-value",
		Skipped:  "never-stored",
		Untagged: "never-stored",
	}

	m := StructToMap(rec)

	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, rec.UserID, m["user_id"])
	assert.Equal(t, "Sharma Retail", m["name"])
	assert.Equal(t, "Customer", m["category"])
	assert.Equal(t, "extra-value", m["extra"])
	assert.True(t, m["opening_balance"].(types.Money).Equal(types.NewMoney(500)))

	_, hasSkipped := m["Skipped"]
	assert.False(t, hasSkipped)
	assert.Len(t, m, 10)
}

func TestStructToMapPointer(t *testing.T) {
	rec := &mockRecord{Entity: entities.Entity{Name: "Patel Wholesale"}}

	m := StructToMap(rec)
	assert.Equal(t, "Patel Wholesale", m["name"])
}
