package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/domain/auth"
)

// SessionRepo implements auth.SessionStore on a database table, so logins
// survive restarts and are shared between instances.
type SessionRepo struct {
	txm  *TxManager
	cols []string
}

// NewSessionRepo creates a new session store.
func NewSessionRepo(txm *TxManager) *SessionRepo {
	return &SessionRepo{
		txm:  txm,
		cols: ExtractDBColumns[auth.Session](),
	}
}

func (r *SessionRepo) Create(ctx context.Context, s *auth.Session) error {
	sql, args, err := Builder().
		Insert("sessions").
		SetMap(StructToMap(s)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert session: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Lookup(ctx context.Context, token string) (*auth.Session, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("sessions").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select session: %w", err)
	}

	var s auth.Session
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("session", "token")
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepo) Destroy(ctx context.Context, token string) error {
	sql, args, err := Builder().
		Delete("sessions").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete session: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("session", "token")
	}
	return nil
}

// PurgeExpired removes sessions past their expiry. Run periodically.
func (r *SessionRepo) PurgeExpired(ctx context.Context) (int64, error) {
	sql, args, err := Builder().
		Delete("sessions").
		Where("expires_at < NOW()").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge sessions: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
