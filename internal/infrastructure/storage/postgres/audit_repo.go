package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerpro/internal/core/id"
	"ledgerpro/internal/domain/audit"
)

// AuditRepo implements audit.Repository.
type AuditRepo struct {
	txm  *TxManager
	cols []string
}

// NewAuditRepo creates a new audit repository.
func NewAuditRepo(txm *TxManager) *AuditRepo {
	return &AuditRepo{
		txm:  txm,
		cols: ExtractDBColumns[audit.Entry](),
	}
}

func (r *AuditRepo) Insert(ctx context.Context, e *audit.Entry) error {
	sql, args, err := Builder().
		Insert("audit_logs").
		SetMap(StructToMap(e)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit entry: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListByUser(ctx context.Context, userID id.ID, limit int) ([]audit.Entry, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("audit_logs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select audit entries: %w", err)
	}

	var items []audit.Entry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select audit entries: %w", err)
	}
	return items, nil
}
