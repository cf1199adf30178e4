package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

// ListOrders retorna os pedidos da conta no filtro informado, já com seus itens
func (r *marketingDataRepository) ListOrders(ctx context.Context, accountID string, filter domain.OrderFilter) ([]domain.Order, error) {
	queryBuilder := squirrel.
		Select("o.id, o.account_id, o.customer_id, o.status, o.total, o.created_at").
		From(ordersTable).
		Where(squirrel.Eq{"o.account_id": accountID}).
		OrderBy("o.created_at ASC", "o.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(filter.Statuses) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"o.status": filter.Statuses})
	}
	if !filter.From.IsZero() {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"o.created_at": filter.From})
	}
	if !filter.To.IsZero() {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"o.created_at": filter.To})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list orders of account %s", accountID)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	positions := make(map[string]int)
	for rows.Next() {
		var (
			order      domain.Order
			customerID sql.NullString
			total      sql.NullFloat64
		)
		if err := rows.Scan(&order.ID, &order.AccountID, &customerID, &order.Status, &total, &order.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan order")
		}
		order.CustomerID = customerID.String
		order.Total = float(total)

		positions[order.ID] = len(orders)
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate orders")
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachOrderItems(ctx, orders, positions); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *marketingDataRepository) attachOrderItems(ctx context.Context, orders []domain.Order, positions map[string]int) error {
	orderIDs := make([]string, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	query, args, err := squirrel.
		Select("oi.order_id, oi.product_id, oi.quantity, oi.price, oi.total").
		From(orderItemsTable).
		Where(squirrel.Expr("oi.order_id = ANY(?)", pq.Array(orderIDs))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "failed to list order items")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID                string
			productID              sql.NullString
			quantity, price, total sql.NullFloat64
		)
		if err := rows.Scan(&orderID, &productID, &quantity, &price, &total); err != nil {
			return errors.Wrap(err, "failed to scan order item")
		}

		position, ok := positions[orderID]
		if !ok {
			continue
		}

		orders[position].Items = append(orders[position].Items, domain.OrderItem{
			ProductID: productID.String,
			Quantity:  float(quantity),
			Price:     float(price),
			Total:     float(total),
		})
	}

	return errors.Wrap(rows.Err(), "failed to iterate order items")
}
