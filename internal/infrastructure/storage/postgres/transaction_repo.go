package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/transactions"
)

// TransactionRepo implements transactions.Repository. The payments slice
// lives in a jsonb column next to its denormalized paid_amount total.
type TransactionRepo struct {
	txm  *TxManager
	cols []string
}

// NewTransactionRepo creates a new transaction repository.
func NewTransactionRepo(txm *TxManager) *TransactionRepo {
	return &TransactionRepo{
		txm:  txm,
		cols: ExtractDBColumns[transactions.Transaction](),
	}
}

func (r *TransactionRepo) ListByUser(ctx context.Context, userID id.ID) ([]transactions.Transaction, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select transactions: %w", err)
	}

	var items []transactions.Transaction
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	return items, nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, userID, txID id.ID) (*transactions.Transaction, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID, "id": txID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select transaction: %w", err)
	}

	var tx transactions.Transaction
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &tx, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("transaction", txID.String())
		}
		return nil, fmt.Errorf("select transaction: %w", err)
	}
	return &tx, nil
}

func (r *TransactionRepo) Create(ctx context.Context, tx *transactions.Transaction) error {
	sql, args, err := Builder().
		Insert("transactions").
		SetMap(StructToMap(tx)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert transaction: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) Update(ctx context.Context, tx *transactions.Transaction) error {
	data := StructToMap(tx)
	delete(data, "id")
	delete(data, "user_id")

	sql, args, err := Builder().
		Update("transactions").
		SetMap(data).
		Where(squirrel.Eq{"user_id": tx.UserID, "id": tx.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update transaction: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("transaction", tx.ID.String())
	}
	return nil
}

func (r *TransactionRepo) Delete(ctx context.Context, userID, txID id.ID) error {
	sql, args, err := Builder().
		Delete("transactions").
		Where(squirrel.Eq{"user_id": userID, "id": txID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete transaction: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("transaction", txID.String())
	}
	return nil
}

// AppendPayment locks the row, appends the payment and writes the new
// paid_amount in one transaction. The lock serializes concurrent appends
// against the same transaction.
func (r *TransactionRepo) AppendPayment(ctx context.Context, userID, txID id.ID, p transactions.Payment, paidAmount types.Money) (*transactions.Transaction, error) {
	var updated *transactions.Transaction

	err := r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := Builder().
			Select(r.cols...).
			From("transactions").
			Where(squirrel.Eq{"user_id": userID, "id": txID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("build lock transaction: %w", err)
		}

		var tx transactions.Transaction
		if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &tx, sql, args...); err != nil {
			if pgxscan.NotFound(err) {
				return apperror.NewNotFound("transaction", txID.String())
			}
			return fmt.Errorf("lock transaction: %w", err)
		}

		tx.Payments = append(tx.Payments, p)
		tx.PaidAmount = paidAmount

		sql, args, err = Builder().
			Update("transactions").
			Set("payments", tx.Payments).
			Set("paid_amount", tx.PaidAmount).
			Where(squirrel.Eq{"user_id": userID, "id": txID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build append payment: %w", err)
		}
		if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("append payment: %w", err)
		}

		updated = &tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *TransactionRepo) ExistsByEntity(ctx context.Context, userID, entityID id.ID) (bool, error) {
	sql, args, err := Builder().
		Select("1").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID, "entity_id": entityID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &one, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("exists query: %w", err)
	}
	return true, nil
}
