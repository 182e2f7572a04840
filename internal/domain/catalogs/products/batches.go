package products

import (
	"sort"
	"strings"

	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

// nearExpiryWindowDays is the look-ahead window for the near-expiry flag.
const nearExpiryWindowDays = 30

// Batch is the aggregated state of one tracked sub-lot.
type Batch struct {
	ID           string      `json:"id"`
	BatchNo      string      `json:"batchNo"`
	MfgDate      string      `json:"mfgDate"`
	ExpDate      string      `json:"expDate"`
	InQty        types.Money `json:"inQty"`
	OutQty       types.Money `json:"outQty"`
	CurrentQty   types.Money `json:"currentQty"`
	LastUsedDate string      `json:"lastUsedDate"`
	IsExpired    bool        `json:"isExpired"`
	IsNearExpiry bool        `json:"isNearExpiry"`
}

// BatchSummary is the batch breakdown of one product.
type BatchSummary struct {
	Batches         []Batch `json:"batches"`
	NearExpiryCount int     `json:"nearExpiryCount"`
	ExpiredCount    int     `json:"expiredCount"`
}

// BuildBatchSummary aggregates the product's transactions by batch number.
//
// A transaction belongs to a batch when it carries a non-empty batchNo;
// whether batching is enabled on the product is irrelevant here, the
// presence of the number on the movement is authoritative. Quantities use
// the same in/out sign rule as the stock ledger. Mfg/exp dates keep the
// earliest seen non-empty value; lastUsedDate keeps the max date string.
//
// Sorting mixes two comparators on purpose: rows that both carry an
// expiry sort by expiry ascending, all other pairings fall back to batch
// number. With a partial expiry set the overall order is therefore not a
// total order; this matches the historic behavior and reports are built
// against it, so it stays.
//
// The declared opening batch (batching enabled, an initial batch number,
// opening stock > 0) is injected only while no transaction has touched
// that batch number; after that the transaction-derived aggregation wins
// and the opening quantity is assumed to be part of the batch's seeded
// in-flow. The engine does not police that seeding convention.
func BuildBatchSummary(p Product, txs []transactions.Transaction, today string) BatchSummary {
	cutoff := types.DateAddDays(nearExpiryWindowDays)

	// Insertion-ordered grouping so equal sort keys stay deterministic.
	index := make(map[string]int)
	batches := make([]Batch, 0)

	for _, tx := range txs {
		if tx.ProductID == nil || *tx.ProductID != p.ID {
			continue
		}
		batchNo := strings.TrimSpace(tx.BatchNo)
		if batchNo == "" {
			continue
		}

		i, ok := index[batchNo]
		if !ok {
			i = len(batches)
			index[batchNo] = i
			batches = append(batches, Batch{
				ID:           batchNo,
				BatchNo:      batchNo,
				MfgDate:      tx.MfgDate,
				ExpDate:      tx.ExpDate,
				InQty:        types.Zero(),
				OutQty:       types.Zero(),
				CurrentQty:   types.Zero(),
				LastUsedDate: tx.Date,
			})
		}

		b := &batches[i]
		switch {
		case tx.Type.StockIn():
			b.InQty = b.InQty.Add(tx.Qty)
		case tx.Type.StockOut():
			b.OutQty = b.OutQty.Add(tx.Qty)
		}
		b.CurrentQty = b.InQty.Sub(b.OutQty)
		if b.MfgDate == "" && tx.MfgDate != "" {
			b.MfgDate = tx.MfgDate
		}
		if b.ExpDate == "" && tx.ExpDate != "" {
			b.ExpDate = tx.ExpDate
		}
		if b.LastUsedDate == "" || tx.Date > b.LastUsedDate {
			b.LastUsedDate = tx.Date
		}
	}

	for i := range batches {
		batches[i].IsExpired = isExpired(batches[i].ExpDate, today)
		batches[i].IsNearExpiry = isNearExpiry(batches[i].ExpDate, today, cutoff)
	}

	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if a.ExpDate != "" && b.ExpDate != "" {
			return a.ExpDate < b.ExpDate
		}
		return a.BatchNo < b.BatchNo
	})

	summary := BatchSummary{Batches: batches}
	summary = attachOpeningBatch(summary, p, today, cutoff)

	summary.NearExpiryCount = 0
	summary.ExpiredCount = 0
	for _, b := range summary.Batches {
		if b.IsNearExpiry {
			summary.NearExpiryCount++
		}
		if b.IsExpired {
			summary.ExpiredCount++
		}
	}
	return summary
}

// attachOpeningBatch appends the declared opening batch when no movement
// has referenced it yet.
func attachOpeningBatch(summary BatchSummary, p Product, today, cutoff string) BatchSummary {
	batchNo := strings.TrimSpace(p.InitialBatchNo)
	if !p.BatchingEnabled || batchNo == "" || !p.StockQty.IsPositive() {
		return summary
	}
	for _, b := range summary.Batches {
		if b.BatchNo == batchNo {
			return summary
		}
	}

	summary.Batches = append(summary.Batches, Batch{
		ID:           batchNo,
		BatchNo:      batchNo,
		MfgDate:      strings.TrimSpace(p.InitialMfgDate),
		ExpDate:      strings.TrimSpace(p.InitialExpDate),
		InQty:        p.StockQty,
		OutQty:       types.Zero(),
		CurrentQty:   p.StockQty,
		LastUsedDate: "",
		IsExpired:    isExpired(strings.TrimSpace(p.InitialExpDate), today),
		IsNearExpiry: isNearExpiry(strings.TrimSpace(p.InitialExpDate), today, cutoff),
	})
	return summary
}

// BatchOption is one selectable batch in the transaction entry form:
// the remaining quantity plus the rate and unit amount of the batch's
// most recent movement, so new rows default to the latest pricing.
type BatchOption struct {
	BatchNo      string      `json:"batchNo"`
	MfgDate      string      `json:"mfgDate"`
	ExpDate      string      `json:"expDate"`
	GSTRate      types.Money `json:"gstRate"`
	UnitAmount   types.Money `json:"unitAmount"`
	CurrentQty   types.Money `json:"currentQty"`
	LastUsedDate string      `json:"lastUsedDate"`
}

// BuildBatchOptions aggregates the product's batch-tagged movements into
// picker rows, most recently used first.
//
// The newest movement of a batch supplies its gstRate, unitAmount and
// lastUsedDate; mfg/exp dates come from the newest movement that carries
// them. Quantities follow the stock in/out sign rule. The declared
// opening batch is offered even at zero remaining stock (unlike the
// summary view) as long as no movement has referenced its number, with
// the product's own rate and the sale price as the unit amount, falling
// back to the purchase price.
func BuildBatchOptions(p Product, txs []transactions.Transaction) []BatchOption {
	relevant := make([]transactions.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ProductID == nil || *tx.ProductID != p.ID {
			continue
		}
		if strings.TrimSpace(tx.BatchNo) == "" {
			continue
		}
		relevant = append(relevant, tx)
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Date > relevant[j].Date
	})

	index := make(map[string]int)
	options := make([]BatchOption, 0)
	for _, tx := range relevant {
		batchNo := strings.TrimSpace(tx.BatchNo)
		i, ok := index[batchNo]
		if !ok {
			i = len(options)
			index[batchNo] = i
			options = append(options, BatchOption{
				BatchNo:      batchNo,
				MfgDate:      tx.MfgDate,
				ExpDate:      tx.ExpDate,
				GSTRate:      tx.GSTRate,
				UnitAmount:   tx.UnitAmount,
				CurrentQty:   types.Zero(),
				LastUsedDate: tx.Date,
			})
		}

		o := &options[i]
		switch {
		case tx.Type.StockIn():
			o.CurrentQty = o.CurrentQty.Add(tx.Qty)
		case tx.Type.StockOut():
			o.CurrentQty = o.CurrentQty.Sub(tx.Qty)
		}
		// Older rows only backfill dates the newest movement left empty.
		if o.MfgDate == "" && tx.MfgDate != "" {
			o.MfgDate = tx.MfgDate
		}
		if o.ExpDate == "" && tx.ExpDate != "" {
			o.ExpDate = tx.ExpDate
		}
	}

	if opening, ok := openingBatchOption(p, index); ok {
		options = append(options, opening)
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].LastUsedDate > options[j].LastUsedDate
	})
	return options
}

func openingBatchOption(p Product, seen map[string]int) (BatchOption, bool) {
	batchNo := strings.TrimSpace(p.InitialBatchNo)
	if !p.BatchingEnabled || batchNo == "" {
		return BatchOption{}, false
	}
	if _, ok := seen[batchNo]; ok {
		return BatchOption{}, false
	}
	unit := p.SalePrice
	if !unit.IsPositive() {
		unit = p.PurchasePrice
	}
	return BatchOption{
		BatchNo:    batchNo,
		MfgDate:    strings.TrimSpace(p.InitialMfgDate),
		ExpDate:    strings.TrimSpace(p.InitialExpDate),
		GSTRate:    p.GSTRate,
		UnitAmount: unit,
		CurrentQty: p.StockQty,
	}, true
}

// Expiry classification compares ISO date strings lexically; ISO 8601
// dates sort correctly as text.
func isExpired(expDate, today string) bool {
	return expDate != "" && expDate < today
}

func isNearExpiry(expDate, today, cutoff string) bool {
	return expDate != "" && expDate >= today && expDate <= cutoff
}
