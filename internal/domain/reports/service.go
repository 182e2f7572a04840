package reports

import (
	"context"
	"sort"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

// Service computes the summary and aging reports.
type Service struct {
	txs      TransactionSource
	entities EntityCounter
	bills    BillCounter
}

// NewService creates a new report service.
func NewService(txs TransactionSource, entities EntityCounter, bills BillCounter) *Service {
	return &Service{txs: txs, entities: entities, bills: bills}
}

// Summary folds every transaction into the dashboard aggregate. Returns
// subtract base, GST and due from the side they reverse. Overdue counts
// only reminder-enabled transactions strictly past their due date; the
// due-today edge belongs to the reminder list, not here.
func (s *Service) Summary(ctx context.Context, userID id.ID) (*Summary, error) {
	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := types.TodayISO()
	sum := &Summary{
		Sales:       types.Zero(),
		Purchases:   types.Zero(),
		OutputGST:   types.Zero(),
		InputGST:    types.Zero(),
		Receivables: types.Zero(),
		Payables:    types.Zero(),
	}
	for _, tx := range txs {
		t := types.ComputeTotals(tx.Qty, tx.UnitAmount, tx.GSTRate, tx.PaidAmount)
		switch tx.Type {
		case transactions.TypeSale:
			sum.Sales = sum.Sales.Add(t.Base)
			sum.OutputGST = sum.OutputGST.Add(t.GST)
			sum.Receivables = sum.Receivables.Add(t.Due)
		case transactions.TypePurchase:
			sum.Purchases = sum.Purchases.Add(t.Base)
			sum.InputGST = sum.InputGST.Add(t.GST)
			sum.Payables = sum.Payables.Add(t.Due)
		case transactions.TypeSaleReturn:
			sum.Sales = sum.Sales.Sub(t.Base)
			sum.OutputGST = sum.OutputGST.Sub(t.GST)
			sum.Receivables = sum.Receivables.Sub(t.Due)
		case transactions.TypePurchaseReturn:
			sum.Purchases = sum.Purchases.Sub(t.Base)
			sum.InputGST = sum.InputGST.Sub(t.GST)
			sum.Payables = sum.Payables.Sub(t.Due)
		}
		if tx.ReminderEnabled && tx.DueDate != "" && tx.DueDate < today && t.Due.IsPositive() {
			sum.OverdueCount++
		}
	}
	sum.Transactions = len(txs)
	sum.NetRevenue = sum.Sales.Sub(sum.Purchases)
	sum.NetGSTPayable = sum.OutputGST.Sub(sum.InputGST)

	refs, err := s.entities.ListRefs(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum.Entities = len(refs)

	billCount, err := s.bills.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum.Bills = billCount
	return sum, nil
}

// bucketFor places an outstanding due by how long its due date has been
// past. Missing due dates and dues not yet reached land in "Not Due".
func bucketFor(today, dueDate string) string {
	if dueDate == "" {
		return "Not Due"
	}
	days := types.DaysPastDue(today, dueDate)
	switch {
	case days <= 0:
		return "Not Due"
	case days <= 30:
		return "0-30"
	case days <= 60:
		return "31-60"
	case days <= 90:
		return "61-90"
	default:
		return "90+"
	}
}

// AgingReport buckets outstanding dues per entity by days past due. Every
// transaction type participates as long as something is still owed on it.
// Rows are ordered by total outstanding, largest first.
func (s *Service) AgingReport(ctx context.Context, userID id.ID) (*Aging, error) {
	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	refs, err := s.entities.ListRefs(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[id.ID]string, len(refs))
	for _, r := range refs {
		names[r.ID] = r.Name
	}

	today := types.TodayISO()
	rows := make(map[id.ID]*AgingRow)
	var order []id.ID
	totals := emptyBuckets()

	for _, tx := range txs {
		t := types.ComputeTotals(tx.Qty, tx.UnitAmount, tx.GSTRate, tx.PaidAmount)
		if !t.Due.IsPositive() {
			continue
		}
		row, ok := rows[tx.EntityID]
		if !ok {
			name := names[tx.EntityID]
			if name == "" {
				name = "-"
			}
			row = &AgingRow{
				EntityID:   tx.EntityID,
				EntityName: name,
				Buckets:    emptyBuckets(),
				TotalDue:   types.Zero(),
			}
			rows[tx.EntityID] = row
			order = append(order, tx.EntityID)
		}
		bucket := bucketFor(today, tx.DueDate)
		row.Buckets[bucket] = row.Buckets[bucket].Add(t.Due)
		row.Entries++
		row.TotalDue = row.TotalDue.Add(t.Due)
		totals[bucket] = totals[bucket].Add(t.Due)
	}

	result := make([]AgingRow, 0, len(order))
	for _, entityID := range order {
		result = append(result, *rows[entityID])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalDue.GreaterThan(result[j].TotalDue)
	})

	return &Aging{
		AsOf:    today,
		Buckets: agingBuckets,
		Rows:    result,
		Totals:  totals,
	}, nil
}

func emptyBuckets() map[string]types.Money {
	m := make(map[string]types.Money, len(agingBuckets))
	for _, b := range agingBuckets {
		m[b] = types.Zero()
	}
	return m
}
