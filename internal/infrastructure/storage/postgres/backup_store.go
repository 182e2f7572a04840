package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/domain/backup"
)

// BackupStore implements backup.Store. Restore wipes and reloads the
// user's records inside one transaction, so a failed restore leaves the
// book untouched.
type BackupStore struct {
	txm      *TxManager
	entities *EntityRepo
	products *ProductRepo
	txs      *TransactionRepo
	bills    *BillRepo
}

// NewBackupStore creates a new backup store.
func NewBackupStore(txm *TxManager, entities *EntityRepo, products *ProductRepo, txs *TransactionRepo, bills *BillRepo) *BackupStore {
	return &BackupStore{txm: txm, entities: entities, products: products, txs: txs, bills: bills}
}

func (s *BackupStore) ReadAll(ctx context.Context, userID id.ID) (*backup.Snapshot, error) {
	snap := &backup.Snapshot{}
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if snap.Entities, err = s.entities.ListByUser(ctx, userID); err != nil {
			return err
		}
		if snap.Products, err = s.products.ListByUser(ctx, userID); err != nil {
			return err
		}
		if snap.Transactions, err = s.txs.ListByUser(ctx, userID); err != nil {
			return err
		}
		snap.Bills, err = s.bills.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *BackupStore) ReplaceAll(ctx context.Context, userID id.ID, snap *backup.Snapshot) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		q := s.txm.GetQuerier(ctx)
		for _, table := range []string{"bills", "transactions", "products", "entities"} {
			sql, args, err := Builder().
				Delete(table).
				Where(squirrel.Eq{"user_id": userID}).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := q.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}

		for i := range snap.Entities {
			if err := s.entities.Create(ctx, &snap.Entities[i]); err != nil {
				return err
			}
		}
		for i := range snap.Products {
			if err := s.products.Create(ctx, &snap.Products[i]); err != nil {
				return err
			}
		}
		for i := range snap.Transactions {
			if err := s.txs.Create(ctx, &snap.Transactions[i]); err != nil {
				return err
			}
		}
		for i := range snap.Bills {
			if err := s.bills.Create(ctx, &snap.Bills[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
