package transactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
)

func TestReconcilePayments_SynthesizesLegacyEntry(t *testing.T) {
	tx := Transaction{
		ID:         id.New(),
		Date:       "2026-05-01",
		PaidAmount: types.NewMoney(150),
		CreatedAt:  "2026-05-01T10:00:00Z",
	}

	payments, paid := ReconcilePayments(tx, "2026-08-29")

	require.Len(t, payments, 1)
	assert.Equal(t, "legacy_"+tx.ID.String(), payments[0].ID)
	assert.Equal(t, "Legacy paid amount", payments[0].Note)
	assert.Equal(t, "2026-05-01", payments[0].Date)
	assert.True(t, paid.Equal(types.NewMoney(150)))
}

func TestReconcilePayments_MaxOfStoredAndTimeline(t *testing.T) {
	tx := Transaction{
		ID:         id.New(),
		PaidAmount: types.NewMoney(100),
		Payments: []Payment{
			{ID: "p_1", Amount: types.NewMoney(80)},
			{ID: "p_2", Amount: types.NewMoney(70)},
		},
	}

	payments, paid := ReconcilePayments(tx, "2026-08-29")

	assert.Len(t, payments, 2, "no synthetic entry when a timeline exists")
	assert.True(t, paid.Equal(types.NewMoney(150)), "timeline sum wins when larger than the stored total")

	tx.PaidAmount = types.NewMoney(200)
	_, paid = ReconcilePayments(tx, "2026-08-29")
	assert.True(t, paid.Equal(types.NewMoney(200)), "stored total wins when larger than the timeline sum")
}

func TestReconcilePayments_ZeroPaidNoSynthesis(t *testing.T) {
	tx := Transaction{ID: id.New(), Date: "2026-05-01"}

	payments, paid := ReconcilePayments(tx, "2026-08-29")

	assert.Empty(t, payments)
	assert.True(t, paid.IsZero())
}

func TestEnrich_TotalsAndNameFallback(t *testing.T) {
	tx := Transaction{
		ID:         id.New(),
		Type:       TypeSale,
		Qty:        types.NewMoney(10),
		UnitAmount: types.NewMoney(30),
		GSTRate:    types.NewMoney(12),
		PaidAmount: types.NewMoney(100),
	}

	e := Enrich(tx, "", "", "2026-08-29")

	assert.Equal(t, "-", e.EntityName, "missing entity renders as a dash")
	assert.Equal(t, "", e.ProductName)
	assert.True(t, e.Base.Equal(types.NewMoney(300)))
	assert.True(t, e.GST.Equal(types.NewMoney(36)))
	assert.True(t, e.Gross.Equal(types.NewMoney(336)))
	assert.True(t, e.Due.Equal(types.NewMoney(236)))
}
