package entities

import (
	"sort"

	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

// PassbookEntry is one row of the per-entity running-balance ledger.
type PassbookEntry struct {
	ID      string      `json:"id"`
	Date    string      `json:"date"`
	Type    string      `json:"type"`
	Item    string      `json:"item"`
	Gross   types.Money `json:"gross"`
	Paid    types.Money `json:"paid"`
	Debit   types.Money `json:"debit"`
	Credit  types.Money `json:"credit"`
	Balance types.Money `json:"balance"`
}

// Passbook is the per-entity ledger view: a synthetic opening row followed
// by one row per transaction with the running balance.
type Passbook struct {
	EntityID       string          `json:"entityId"`
	EntityName     string          `json:"entityName"`
	OpeningBalance types.Money     `json:"openingBalance"`
	ClosingBalance types.Money     `json:"closingBalance"`
	Entries        []PassbookEntry `json:"entries"`
}

// outstandingImpact is the signed contribution of one transaction to an
// entity's balance: sales and purchase returns raise what the
// counterparty owes the business, purchases and sale returns lower it.
func outstandingImpact(tx transactions.Transaction) types.Money {
	due := types.ComputeTotals(tx.Qty, tx.UnitAmount, tx.GSTRate, tx.PaidAmount).Due
	switch tx.Type {
	case transactions.TypeSale, transactions.TypePurchaseReturn:
		return due
	case transactions.TypePurchase, transactions.TypeSaleReturn:
		return due.Neg()
	}
	return types.Zero()
}

// Balance folds the entity's transactions onto its opening balance.
func Balance(e Entity, txs []transactions.Transaction) types.Money {
	balance := e.OpeningBalance
	for _, tx := range txs {
		if tx.EntityID != e.ID {
			continue
		}
		balance = balance.Add(outstandingImpact(tx))
	}
	return balance
}

// BuildPassbook computes the running-balance ledger for one entity.
//
// Rows are ordered by (date, createdAt) ascending; the string comparison is
// deliberate, ISO dates and timestamps sort chronologically as text.
//
// Debit/credit movement counts only sales (debit) and purchases (credit).
// Returns do NOT move the passbook even though they flip the sign in the
// balance fold above; the asymmetry is longstanding ledger behavior the
// reports depend on, so both rules are kept and tested separately.
func BuildPassbook(e Entity, txs []transactions.Transaction) Passbook {
	lines := make([]transactions.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.EntityID == e.ID {
			lines = append(lines, tx)
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a := lines[i].Date + "|" + lines[i].CreatedAt
		b := lines[j].Date + "|" + lines[j].CreatedAt
		return a < b
	})

	running := e.OpeningBalance
	openingDebit := types.Zero()
	openingCredit := types.Zero()
	if e.OpeningBalance.IsPositive() {
		openingDebit = e.OpeningBalance
	} else if e.OpeningBalance.IsNegative() {
		openingCredit = e.OpeningBalance.Abs()
	}

	entries := []PassbookEntry{{
		ID:      "opening",
		Type:    "opening",
		Item:    "Opening Balance",
		Debit:   openingDebit,
		Credit:  openingCredit,
		Balance: running,
	}}

	for _, tx := range lines {
		totals := types.ComputeTotals(tx.Qty, tx.UnitAmount, tx.GSTRate, tx.PaidAmount)
		debit := types.Zero()
		credit := types.Zero()
		if tx.Type == transactions.TypeSale {
			debit = totals.Due
		}
		if tx.Type == transactions.TypePurchase {
			credit = totals.Due
		}
		running = running.Add(debit).Sub(credit)

		entries = append(entries, PassbookEntry{
			ID:      tx.ID.String(),
			Date:    tx.Date,
			Type:    string(tx.Type),
			Item:    tx.Item,
			Gross:   totals.Gross,
			Paid:    tx.PaidAmount,
			Debit:   debit,
			Credit:  credit,
			Balance: running,
		})
	}

	return Passbook{
		EntityID:       e.ID.String(),
		EntityName:     e.Name,
		OpeningBalance: e.OpeningBalance,
		ClosingBalance: running,
		Entries:        entries,
	}
}
