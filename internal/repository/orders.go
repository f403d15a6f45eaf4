package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderFilter struct {
	// Search matches the order id or the user id.
	Search string
	Status domain.OrderStatus
	From   time.Time
	To     time.Time
}

const orderColumns = `id, user_id, total_amount, items, status, created_at`

// scanOrder decodes a row and rejects anything that is not a well formed order.
func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order     domain.Order
		itemsJSON []byte
		status    string
	)
	if err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&itemsJSON,
		&status,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: order %d: %v", ErrMalformedRow, order.ID, err)
	}
	order.Status = parsed

	dec := json.NewDecoder(strings.NewReader(string(itemsJSON)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&order.Items); err != nil {
		return nil, fmt.Errorf("%w: order %d items: %v", ErrMalformedRow, order.ID, err)
	}
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}

	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("%w: order %d: %v", ErrMalformedRow, order.ID, err)
	}
	return &order, nil
}

// CreateOrder stores the order and its placed event in one transaction and
// sets order.ID.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = r.now()
	}
	if err := order.Validate(); err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `INSERT INTO orders (user_id, total_amount, items, status, created_at)
		          VALUES ($1, $2, $3, $4, $5) RETURNING id`

		insertErr := tx.QueryRowContext(ctx, query,
			order.UserID,
			order.TotalAmount.StringFixed(2),
			string(itemsJSON),
			string(order.Status),
			order.CreatedAt,
		).Scan(&order.ID)
		if insertErr != nil {
			if mapped := classify(insertErr, ErrOrderNotFound); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert order: %w", insertErr)
		}

		msg := fmt.Sprintf("Order #%d was placed.", order.ID)
		return insertOrderEvent(ctx, tx, order.ID, domain.OrderEventPlaced, msg, order.CreatedAt)
	})
}

func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryOrders(ctx, query, userID)
}

// ListOrders returns the orders matching f, newest first.
func (r *Repository) ListOrders(ctx context.Context, f OrderFilter) ([]*domain.Order, error) {
	var (
		where []string
		args  []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		cond := fmt.Sprintf(`LOWER(user_id) LIKE $%d ESCAPE '\'`, n)
		if id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64); err == nil {
			args = append(args, id)
			cond = fmt.Sprintf(`(%s OR id = $%d)`, cond, len(args))
		}
		where = append(where, cond)
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From.UTC())
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To.UTC())
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return r.queryOrders(ctx, query, args...)
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus is the admin status change. It records a status_changed
// event alongside.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("status", fmt.Sprintf("unknown order status %q", status))
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if err := expectOne(res, ErrOrderNotFound); err != nil {
			return err
		}
		msg := fmt.Sprintf("Order #%d status changed to %s.", id, status)
		return insertOrderEvent(ctx, tx, id, domain.OrderEventStatusChanged, msg, r.now())
	})
}

// CancelOrder cancels an order owned by userID whatever its current status.
// Orders of other users are reported as not found.
func (r *Repository) CancelOrder(ctx context.Context, id int64, userID string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1 WHERE id = $2 AND user_id = $3`,
			string(domain.OrderStatusCancelled), id, userID,
		)
		if err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		if err := expectOne(res, ErrOrderNotFound); err != nil {
			return err
		}
		msg := fmt.Sprintf("Order #%d was cancelled by user.", id)
		return insertOrderEvent(ctx, tx, id, domain.OrderEventCancelled, msg, r.now())
	})
}

func (r *Repository) DeleteOrder(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return expectOne(res, ErrOrderNotFound)
}

func (r *Repository) CountOrders(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// Revenue sums the totals of all orders that are not cancelled.
func (r *Repository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT total_amount FROM orders WHERE status <> $1`,
		string(domain.OrderStatusCancelled),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query revenue: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("scan revenue: %w", err)
		}
		sum = sum.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("row iteration error: %w", err)
	}
	return sum, nil
}
