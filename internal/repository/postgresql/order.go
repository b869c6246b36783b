package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) order.Repository {
	return &orderRepository{db: db}
}

const orderSelectColumns = `
	o.id, o.order_code, o.customer_name, o.customer_phone, o.customer_address, o.customer_source,
	o.subtotal, o.discount_amount, o.total_amount, o.paid_amount, o.payment_method, o.payment_status,
	o.status, o.created_by, o.notes, o.created_at, o.updated_at,
	u.first_name || ' ' || u.last_name as created_by_name
`

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.OrderCode, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress, &o.CustomerSource,
		&o.Subtotal, &o.DiscountAmount, &o.TotalAmount, &o.PaidAmount, &o.PaymentMethod, &o.PaymentStatus,
		&o.Status, &o.CreatedBy, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		&o.CreatedByName,
	)
	return o, err
}

func (r *orderRepository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	var createdID string

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			INSERT INTO orders (
				order_code, customer_name, customer_phone, customer_address, customer_source,
				subtotal, discount_amount, total_amount, paid_amount, payment_method, payment_status,
				status, created_by, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id
		`

		err := q.QueryRow(ctx, query,
			o.OrderCode, o.CustomerName, o.CustomerPhone, o.CustomerAddress, o.CustomerSource,
			o.Subtotal, o.DiscountAmount, o.TotalAmount, o.PaidAmount, o.PaymentMethod, o.PaymentStatus,
			o.Status, o.CreatedBy, o.Notes,
		).Scan(&createdID)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range o.Items {
			_, err := q.Exec(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity, unit_price, line_total)
				VALUES ($1, $2, $3, $4, $5)
			`, createdID, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal)
			if err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return order.Order{}, err
	}

	return r.GetByID(ctx, createdID)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + orderSelectColumns + `
		FROM orders o
		JOIN users u ON o.created_by = u.id
		WHERE o.id = $1
	`

	o, err := scanOrder(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return order.Order{}, order.ErrOrderNotFound
		}
		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return order.Order{}, err
	}
	o.Items = items

	return o, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID string) ([]order.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.line_total,
			   p.name as product_name, p.sku as product_sku
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY p.name
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var item order.Item
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.LineTotal,
			&item.ProductName, &item.ProductSKU,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *orderRepository) List(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + orderSelectColumns + `
		FROM orders o
		JOIN users u ON o.created_by = u.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND o.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.CreatedBy != nil {
		query += fmt.Sprintf(" AND o.created_by = $%d", argIdx)
		args = append(args, *filter.CreatedBy)
		argIdx++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND o.created_at < $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, status).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return order.Order{}, order.ErrOrderNotFound
		}
		return order.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *orderRepository) RecordPayment(ctx context.Context, id string, amount decimal.Decimal, method string) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE orders
		SET paid_amount = paid_amount + $2,
			payment_method = $3,
			payment_status = CASE
				WHEN paid_amount + $2 >= total_amount THEN 'paid'
				WHEN paid_amount + $2 > 0 THEN 'partial'
				ELSE 'unpaid'
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, amount, method).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return order.Order{}, order.ErrOrderNotFound
		}
		return order.Order{}, fmt.Errorf("failed to record payment: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *orderRepository) GetCompletedRevenue(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_by = $1 AND status = 'completed'
			AND created_at >= $2 AND created_at < $3
	`

	var revenue decimal.Decimal
	if err := q.QueryRow(ctx, query, userID, from, to).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("failed to get completed revenue: %w", err)
	}

	return revenue, nil
}

func (r *orderRepository) GetOrderStats(ctx context.Context, userID string, from, to time.Time) (order.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total_orders,
			COUNT(*) FILTER (WHERE status = 'completed') as completed_orders,
			COALESCE(SUM(total_amount), 0) as total_revenue,
			COALESCE(SUM(paid_amount), 0) as total_paid
		FROM orders
		WHERE created_by = $1 AND created_at >= $2 AND created_at < $3
	`

	var stats order.Stats
	err := q.QueryRow(ctx, query, userID, from, to).Scan(
		&stats.TotalOrders, &stats.CompletedOrders, &stats.TotalRevenue, &stats.TotalPaid,
	)
	if err != nil {
		return order.Stats{}, fmt.Errorf("failed to get order stats: %w", err)
	}

	return stats, nil
}
