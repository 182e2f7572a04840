package bills

import (
	"context"
	"fmt"
	"sort"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
	"ledgerpro/pkg/logger"
)

// EntityInfo is the slice of an entity the billing domain needs.
type EntityInfo struct {
	ID    id.ID
	Name  string
	GSTIN string
}

// EntitySource resolves entities for bill headers.
type EntitySource interface {
	Get(ctx context.Context, userID, entityID id.ID) (*EntityInfo, error)
	ListByUser(ctx context.Context, userID id.ID) ([]EntityInfo, error)
}

// TransactionSource supplies the sales a bill is assembled from.
type TransactionSource interface {
	ListByUser(ctx context.Context, userID id.ID) ([]transactions.Transaction, error)
}

// Service assembles, lists and deletes bills. It also satisfies
// transactions.BillCascade.
type Service struct {
	repo     Repository
	entities EntitySource
	txs      TransactionSource
}

// NewService creates a new bill service.
func NewService(repo Repository, entities EntitySource, txs TransactionSource) *Service {
	return &Service{repo: repo, entities: entities, txs: txs}
}

// List returns the user's bills, newest first, with entity display fields.
func (s *Service) List(ctx context.Context, userID id.ID) ([]WithEntity, error) {
	bills, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entities, err := s.entities.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[id.ID]EntityInfo, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	result := make([]WithEntity, 0, len(bills))
	for _, b := range bills {
		we := WithEntity{Bill: b, EntityName: "-"}
		if e, ok := byID[b.EntityID]; ok {
			we.EntityName = e.Name
			we.EntityGSTIN = e.GSTIN
		}
		result = append(result, we)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].CreatedAt > result[j].CreatedAt
	})
	return result, nil
}

// Get returns one bill with its entity display fields.
func (s *Service) Get(ctx context.Context, userID, billID id.ID) (*WithEntity, error) {
	b, err := s.repo.GetByID(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	we := &WithEntity{Bill: *b, EntityName: "-"}
	if e, err := s.entities.Get(ctx, userID, b.EntityID); err == nil {
		we.EntityName = e.Name
		we.EntityGSTIN = e.GSTIN
	}
	return we, nil
}

// Create assembles a bill from the selected sale transactions of one
// entity. Ids that do not resolve to a sale of that entity are dropped
// silently; the bill fails only when nothing remains.
func (s *Service) Create(ctx context.Context, userID id.ID, in Input) (*Bill, error) {
	in = in.sanitize()
	if in.EntityID == "" || len(in.TransactionIDs) == 0 || in.Date == "" {
		return nil, apperror.NewInvalidInput("Invalid bill data.")
	}
	entityID, err := id.Parse(in.EntityID)
	if err != nil {
		return nil, apperror.NewInvalidInput("Invalid bill data.")
	}
	entity, err := s.entities.Get(ctx, userID, entityID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[id.ID]bool, len(in.TransactionIDs))
	for _, raw := range in.TransactionIDs {
		txID, err := id.Parse(raw)
		if err != nil {
			continue
		}
		wanted[txID] = true
	}

	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var lines []Line
	totalBase, totalGST, totalGross := types.Zero(), types.Zero(), types.Zero()
	for _, tx := range txs {
		if !wanted[tx.ID] || tx.Type != transactions.TypeSale || tx.EntityID != entity.ID {
			continue
		}
		t := types.ComputeTotals(tx.Qty, tx.UnitAmount, tx.GSTRate, tx.PaidAmount)
		lines = append(lines, Line{
			TransactionID: tx.ID,
			Date:          tx.Date,
			Item:          tx.Item,
			Qty:           tx.Qty,
			UnitAmount:    tx.UnitAmount,
			GSTRate:       tx.GSTRate,
			Base:          t.Base,
			GST:           t.GST,
			Gross:         t.Gross,
		})
		totalBase = totalBase.Add(t.Base)
		totalGST = totalGST.Add(t.GST)
		totalGross = totalGross.Add(t.Gross)
	}
	if len(lines) == 0 {
		return nil, apperror.NewInvalidInput("No valid sales selected.")
	}

	seq, err := s.repo.CountByPrefix(ctx, userID, in.Prefix)
	if err != nil {
		return nil, err
	}

	b := &Bill{
		ID:         id.New(),
		UserID:     userID,
		BillNo:     fmt.Sprintf("%s-%04d", in.Prefix, seq+1),
		EntityID:   entity.ID,
		Date:       in.Date,
		Lines:      lines,
		TotalBase:  totalBase,
		TotalGST:   totalGST,
		TotalGross: totalGross,
		Note:       in.Note,
		CreatedAt:  types.NowISO(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	logger.Info(ctx, "bill created", "bill_id", b.ID, "bill_no", b.BillNo, "lines", len(lines))
	return b, nil
}

// Delete removes a bill. The billed sales are untouched.
func (s *Service) Delete(ctx context.Context, userID, billID id.ID) error {
	return s.repo.Delete(ctx, userID, billID)
}

// RebuildAfterTransactionDelete drops the deleted transaction's line from
// every bill that carried it, recomputing totals. A bill whose last line
// goes away is deleted outright.
func (s *Service) RebuildAfterTransactionDelete(ctx context.Context, userID, txID id.ID) error {
	affected, err := s.repo.ListByTransaction(ctx, userID, txID)
	if err != nil {
		return err
	}
	for i := range affected {
		b := affected[i]

		kept := b.Lines[:0:0]
		for _, line := range b.Lines {
			if line.TransactionID != txID {
				kept = append(kept, line)
			}
		}
		if len(kept) == 0 {
			if err := s.repo.Delete(ctx, userID, b.ID); err != nil {
				return err
			}
			logger.Info(ctx, "bill removed after transaction delete", "bill_id", b.ID, "bill_no", b.BillNo)
			continue
		}

		b.Lines = kept
		b.TotalBase, b.TotalGST, b.TotalGross = types.Zero(), types.Zero(), types.Zero()
		for _, line := range kept {
			b.TotalBase = b.TotalBase.Add(line.Base)
			b.TotalGST = b.TotalGST.Add(line.GST)
			b.TotalGross = b.TotalGross.Add(line.Gross)
		}
		if err := s.repo.Update(ctx, &b); err != nil {
			return err
		}
	}
	return nil
}
