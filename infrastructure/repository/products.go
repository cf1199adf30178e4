package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

func (r *marketingDataRepository) ListProducts(ctx context.Context, accountID string) ([]domain.Product, error) {
	query, args, err := squirrel.
		Select("p.id, p.name, p.sku, p.price, p.cost").
		From(productsTable).
		Where(squirrel.Eq{"p.account_id": accountID}).
		OrderBy("p.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list products of account %s", accountID)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var (
			product     domain.Product
			sku         sql.NullString
			price, cost sql.NullFloat64
		)
		if err := rows.Scan(&product.ID, &product.Name, &sku, &price, &cost); err != nil {
			return nil, errors.Wrap(err, "failed to scan product")
		}
		product.SKU = sku.String
		product.Price = float(price)
		product.Cost = float(cost)

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate products")
	}

	return products, nil
}
