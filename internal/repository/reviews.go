package repository

import (
	"context"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
)

func (r *Repository) ListReviews(ctx context.Context, productID int64) ([]*domain.Review, error) {
	query := `SELECT id, product_id, user_id, rating, comment, created_at
	          FROM reviews WHERE product_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return reviews, nil
}

// CreateReview fails with ErrProductNotFound when the product does not exist.
func (r *Repository) CreateReview(ctx context.Context, rv *domain.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = r.now()
	}

	query := `INSERT INTO reviews (product_id, user_id, rating, comment, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt).Scan(&rv.ID)
	if err != nil {
		if mapped := classify(err, ErrProductNotFound); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}
