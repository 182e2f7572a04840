package products

import (
	"sort"

	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

// StockLine is one row of the per-product stock ledger.
type StockLine struct {
	ID           string      `json:"id"`
	Date         string      `json:"date"`
	RefType      string      `json:"refType"`
	RefItem      string      `json:"refItem"`
	InQty        types.Money `json:"inQty"`
	OutQty       types.Money `json:"outQty"`
	RunningStock types.Money `json:"runningStock"`
	Note         string      `json:"note"`
}

// StockLedger is the per-product running-stock view with its batch
// breakdown.
type StockLedger struct {
	ProductID       string      `json:"productId"`
	ProductName     string      `json:"productName"`
	Unit            string      `json:"unit"`
	OpeningStock    types.Money `json:"openingStock"`
	CurrentStock    types.Money `json:"currentStock"`
	ReorderLevel    types.Money `json:"reorderLevel"`
	LowStock        bool        `json:"lowStock"`
	NearExpiryCount int         `json:"nearExpiryCount"`
	ExpiredCount    int         `json:"expiredCount"`
	Batches         []Batch     `json:"batches"`
	Lines           []StockLine `json:"lines"`
}

// CurrentStock folds movement quantities onto the opening stock. The
// final value is order-independent; ordering matters only for the
// intermediate running values of the ledger view.
func CurrentStock(p Product, txs []transactions.Transaction) types.Money {
	stock := p.StockQty
	for _, tx := range txs {
		if tx.ProductID == nil || *tx.ProductID != p.ID {
			continue
		}
		switch {
		case tx.Type.StockIn():
			stock = stock.Add(tx.Qty)
		case tx.Type.StockOut():
			stock = stock.Sub(tx.Qty)
		}
	}
	return stock
}

// BuildStockLedger computes the running-stock ledger for one product:
// a synthetic opening row followed by one row per movement, sorted by
// date ascending. Purchases and sale returns are stock-in; sales and
// purchase returns are stock-out.
func BuildStockLedger(p Product, txs []transactions.Transaction, today string) StockLedger {
	movements := make([]transactions.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ProductID != nil && *tx.ProductID == p.ID {
			movements = append(movements, tx)
		}
	}
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date < movements[j].Date
	})

	running := p.StockQty
	lines := []StockLine{{
		ID:           "opening",
		RefType:      "opening",
		RefItem:      "Opening Stock",
		InQty:        p.StockQty,
		OutQty:       types.Zero(),
		RunningStock: running,
	}}

	for _, tx := range movements {
		in := types.Zero()
		out := types.Zero()
		switch {
		case tx.Type.StockIn():
			in = tx.Qty
		case tx.Type.StockOut():
			out = tx.Qty
		}
		running = running.Add(in).Sub(out)
		lines = append(lines, StockLine{
			ID:           tx.ID.String(),
			Date:         tx.Date,
			RefType:      string(tx.Type),
			RefItem:      tx.Item,
			InQty:        in,
			OutQty:       out,
			RunningStock: running,
			Note:         tx.Note,
		})
	}

	batches := BuildBatchSummary(p, txs, today)

	return StockLedger{
		ProductID:       p.ID.String(),
		ProductName:     p.Name,
		Unit:            p.Unit,
		OpeningStock:    p.StockQty,
		CurrentStock:    running,
		ReorderLevel:    p.ReorderLevel,
		LowStock:        running.LessThanOrEqual(p.ReorderLevel),
		NearExpiryCount: batches.NearExpiryCount,
		ExpiredCount:    batches.ExpiredCount,
		Batches:         batches.Batches,
		Lines:           lines,
	}
}
