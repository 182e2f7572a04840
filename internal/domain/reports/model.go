// Package reports derives the business summary and receivables aging from
// the transaction ledger. Reports hold no state of their own.
package reports

import (
	"context"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

// Summary is the dashboard aggregate over every transaction of the user.
type Summary struct {
	Sales         types.Money `json:"sales"`
	Purchases     types.Money `json:"purchases"`
	OutputGST     types.Money `json:"outputGst"`
	InputGST      types.Money `json:"inputGst"`
	Receivables   types.Money `json:"receivables"`
	Payables      types.Money `json:"payables"`
	NetRevenue    types.Money `json:"netRevenue"`
	NetGSTPayable types.Money `json:"netGstPayable"`
	Entities      int         `json:"entities"`
	Bills         int         `json:"bills"`
	Transactions  int         `json:"transactions"`
	OverdueCount  int         `json:"overdueCount"`
}

// AgingBucket labels, in display order.
var agingBuckets = []string{"Not Due", "0-30", "31-60", "61-90", "90+"}

// AgingRow is one entity's outstanding dues split across the aging buckets.
type AgingRow struct {
	EntityID   id.ID                  `json:"entityId"`
	EntityName string                 `json:"entityName"`
	Buckets    map[string]types.Money `json:"buckets"`
	Entries    int                    `json:"entries"`
	TotalDue   types.Money            `json:"totalDue"`
}

// Aging is the outstanding-dues aging report.
type Aging struct {
	AsOf    string                 `json:"asOf"`
	Buckets []string               `json:"buckets"`
	Rows    []AgingRow             `json:"rows"`
	Totals  map[string]types.Money `json:"totals"`
}

// EntityCounter names entities for aging rows and counts them for the
// summary.
type EntityCounter interface {
	ListRefs(ctx context.Context, userID id.ID) ([]transactions.EntityRef, error)
}

// BillCounter counts the user's bills for the summary.
type BillCounter interface {
	CountByUser(ctx context.Context, userID id.ID) (int, error)
}

// TransactionSource supplies the ledger the reports fold over.
type TransactionSource interface {
	ListByUser(ctx context.Context, userID id.ID) ([]transactions.Transaction, error)
}
