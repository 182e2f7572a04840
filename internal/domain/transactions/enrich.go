package transactions

import (
	"ledgerpro/internal/core/types"
)

// ReconcilePayments returns the effective payment timeline and paid amount
// for a transaction.
//
// Legacy rows carry only a paidAmount with an empty timeline; for those a
// single synthetic entry is produced, dated at the transaction date (today
// when even that is missing). The reconciled paid amount is
// max(storedPaidAmount, sum(payments)) so the two representations can
// never drift apart on read. This is a view-level reconciliation: storage
// is not touched.
func ReconcilePayments(tx Transaction, today string) ([]Payment, types.Money) {
	payments := tx.Payments
	if len(payments) == 0 && tx.PaidAmount.IsPositive() {
		date := tx.Date
		if date == "" {
			date = today
		}
		createdAt := tx.CreatedAt
		if createdAt == "" {
			createdAt = types.NowISO()
		}
		payments = []Payment{{
			ID:        "legacy_" + tx.ID.String(),
			Amount:    tx.PaidAmount,
			Date:      date,
			Note:      "Legacy paid amount",
			CreatedAt: createdAt,
		}}
	}

	paidFromTimeline := types.Zero()
	for _, p := range payments {
		paidFromTimeline = paidFromTimeline.Add(p.Amount)
	}

	paid := tx.PaidAmount
	if paidFromTimeline.GreaterThan(paid) {
		paid = paidFromTimeline
	}
	return payments, paid
}

// Enrich produces the transaction view used everywhere above the raw
// ledger: reconciled payments, derived totals and resolved display names.
// Pure transform; degrades gracefully on missing entity ("-") or
// product ("").
func Enrich(tx Transaction, entityName, productName, today string) Enriched {
	payments, paid := ReconcilePayments(tx, today)
	tx.Payments = payments
	tx.PaidAmount = paid
	if entityName == "" {
		entityName = "-"
	}
	return Enriched{
		Transaction: tx,
		Totals:      types.ComputeTotals(tx.Qty, tx.UnitAmount, tx.GSTRate, paid),
		EntityName:  entityName,
		ProductName: productName,
	}
}
