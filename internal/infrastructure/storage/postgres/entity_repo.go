package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/domain/catalogs/entities"
)

// EntityRepo implements entities.Repository.
type EntityRepo struct {
	txm  *TxManager
	cols []string
}

// NewEntityRepo creates a new entity repository.
func NewEntityRepo(txm *TxManager) *EntityRepo {
	return &EntityRepo{
		txm:  txm,
		cols: ExtractDBColumns[entities.Entity](),
	}
}

func (r *EntityRepo) ListByUser(ctx context.Context, userID id.ID) ([]entities.Entity, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("entities").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select entities: %w", err)
	}

	var items []entities.Entity
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select entities: %w", err)
	}
	return items, nil
}

func (r *EntityRepo) GetByID(ctx context.Context, userID, entityID id.ID) (*entities.Entity, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("entities").
		Where(squirrel.Eq{"user_id": userID, "id": entityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select entity: %w", err)
	}

	var e entities.Entity
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("entity", entityID.String())
		}
		return nil, fmt.Errorf("select entity: %w", err)
	}
	return &e, nil
}

func (r *EntityRepo) Create(ctx context.Context, e *entities.Entity) error {
	sql, args, err := Builder().
		Insert("entities").
		SetMap(StructToMap(e)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert entity: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert entity: %w", err)
	}
	return nil
}

func (r *EntityRepo) Update(ctx context.Context, e *entities.Entity) error {
	data := StructToMap(e)
	delete(data, "id")
	delete(data, "user_id")

	sql, args, err := Builder().
		Update("entities").
		SetMap(data).
		Where(squirrel.Eq{"user_id": e.UserID, "id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update entity: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("entity", e.ID.String())
	}
	return nil
}

func (r *EntityRepo) Delete(ctx context.Context, userID, entityID id.ID) error {
	sql, args, err := Builder().
		Delete("entities").
		Where(squirrel.Eq{"user_id": userID, "id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete entity: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("entity", entityID.String())
	}
	return nil
}
