package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/domain/bills"
)

// BillRepo implements bills.Repository. Bill lines are frozen snapshots
// stored in a jsonb column.
type BillRepo struct {
	txm  *TxManager
	cols []string
}

// NewBillRepo creates a new bill repository.
func NewBillRepo(txm *TxManager) *BillRepo {
	return &BillRepo{
		txm:  txm,
		cols: ExtractDBColumns[bills.Bill](),
	}
}

func (r *BillRepo) ListByUser(ctx context.Context, userID id.ID) ([]bills.Bill, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("bills").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select bills: %w", err)
	}

	var items []bills.Bill
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select bills: %w", err)
	}
	return items, nil
}

func (r *BillRepo) GetByID(ctx context.Context, userID, billID id.ID) (*bills.Bill, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("bills").
		Where(squirrel.Eq{"user_id": userID, "id": billID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select bill: %w", err)
	}

	var b bills.Bill
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("bill", billID.String())
		}
		return nil, fmt.Errorf("select bill: %w", err)
	}
	return &b, nil
}

// ListByTransaction returns the bills whose lines reference the
// transaction, matched inside the jsonb lines array.
func (r *BillRepo) ListByTransaction(ctx context.Context, userID, txID id.ID) ([]bills.Bill, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("bills").
		Where(squirrel.Eq{"user_id": userID}).
		Where(`lines @> ?::jsonb`, fmt.Sprintf(`[{"transactionId":%q}]`, txID.String())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select bills by transaction: %w", err)
	}

	var items []bills.Bill
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select bills by transaction: %w", err)
	}
	return items, nil
}

// likeEscaper neutralizes LIKE metacharacters in user-derived values so
// a prefix such as "A%" matches literally instead of widening the scan.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *BillRepo) CountByPrefix(ctx context.Context, userID id.ID, prefix string) (int, error) {
	sql, args, err := Builder().
		Select("COUNT(*)").
		From("bills").
		Where(squirrel.Eq{"user_id": userID}).
		Where("bill_no LIKE ?", likeEscaper.Replace(prefix)+"-%").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bills: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &count, sql, args...); err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}
	return count, nil
}

// CountByUser counts all bills of the user.
func (r *BillRepo) CountByUser(ctx context.Context, userID id.ID) (int, error) {
	sql, args, err := Builder().
		Select("COUNT(*)").
		From("bills").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bills: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &count, sql, args...); err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}
	return count, nil
}

func (r *BillRepo) Create(ctx context.Context, b *bills.Bill) error {
	sql, args, err := Builder().
		Insert("bills").
		SetMap(StructToMap(b)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert bill: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if IsUniqueViolation(err) {
			return apperror.NewDuplicate("bill", "bill_no", b.BillNo)
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

func (r *BillRepo) Update(ctx context.Context, b *bills.Bill) error {
	data := StructToMap(b)
	delete(data, "id")
	delete(data, "user_id")

	sql, args, err := Builder().
		Update("bills").
		SetMap(data).
		Where(squirrel.Eq{"user_id": b.UserID, "id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update bill: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("bill", b.ID.String())
	}
	return nil
}

func (r *BillRepo) Delete(ctx context.Context, userID, billID id.ID) error {
	sql, args, err := Builder().
		Delete("bills").
		Where(squirrel.Eq{"user_id": userID, "id": billID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete bill: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("bill", billID.String())
	}
	return nil
}
