package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/domain/catalogs/products"
)

// ProductRepo implements products.Repository.
type ProductRepo struct {
	txm  *TxManager
	cols []string
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *TxManager) *ProductRepo {
	return &ProductRepo{
		txm:  txm,
		cols: ExtractDBColumns[products.Product](),
	}
}

func (r *ProductRepo) ListByUser(ctx context.Context, userID id.ID) ([]products.Product, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("products").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select products: %w", err)
	}

	var items []products.Product
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return items, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, userID, productID id.ID) (*products.Product, error) {
	sql, args, err := Builder().
		Select(r.cols...).
		From("products").
		Where(squirrel.Eq{"user_id": userID, "id": productID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select product: %w", err)
	}

	var p products.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *products.Product) error {
	sql, args, err := Builder().
		Insert("products").
		SetMap(StructToMap(p)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) Update(ctx context.Context, p *products.Product) error {
	data := StructToMap(p)
	delete(data, "id")
	delete(data, "user_id")

	sql, args, err := Builder().
		Update("products").
		SetMap(data).
		Where(squirrel.Eq{"user_id": p.UserID, "id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update product: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID.String())
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, userID, productID id.ID) error {
	sql, args, err := Builder().
		Delete("products").
		Where(squirrel.Eq{"user_id": userID, "id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete product: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}
