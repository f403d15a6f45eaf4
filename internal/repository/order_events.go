package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fjod/storefront/internal/domain"
)

func insertOrderEvent(ctx context.Context, tx *sql.Tx, orderID int64, eventType, message string, at time.Time) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO order_events (order_id, event_type, event_message, created_at) VALUES ($1, $2, $3, $4)`,
		orderID, eventType, message, at,
	)
	if err != nil {
		if mapped := classify(err, ErrOrderNotFound); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

const orderEventColumns = `id, order_id, event_type, event_message, created_at, published_at`

// RecentOrderEvents returns the latest events, newest first.
func (r *Repository) RecentOrderEvents(ctx context.Context, limit int) ([]*domain.OrderEvent, error) {
	query := `SELECT ` + orderEventColumns + ` FROM order_events ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.queryOrderEvents(ctx, query, limit)
}

// UnpublishedOrderEvents returns events not yet handed to the broker, oldest first.
func (r *Repository) UnpublishedOrderEvents(ctx context.Context, limit int) ([]*domain.OrderEvent, error) {
	query := `SELECT ` + orderEventColumns + ` FROM order_events WHERE published_at IS NULL ORDER BY id LIMIT $1`
	return r.queryOrderEvents(ctx, query, limit)
}

func (r *Repository) MarkOrderEventPublished(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE order_events SET published_at = $1 WHERE id = $2`,
		r.now(), id,
	)
	if err != nil {
		return fmt.Errorf("mark order event published: %w", err)
	}
	return expectOne(res, ErrNotFound)
}

func (r *Repository) queryOrderEvents(ctx context.Context, query string, args ...any) ([]*domain.OrderEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order events: %w", err)
	}
	defer rows.Close()

	events := []*domain.OrderEvent{}
	for rows.Next() {
		var (
			e         domain.OrderEvent
			published sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.OrderID, &e.EventType, &e.Message, &e.CreatedAt, &published); err != nil {
			return nil, fmt.Errorf("scan order event: %w", err)
		}
		if published.Valid {
			t := published.Time
			e.PublishedAt = &t
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return events, nil
}
