package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"movie-catalog/internal/model"
)

const reviewColumns = `id, movie_id, username, review, rating, created_at`

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) List(ctx context.Context) ([]model.Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at, id`)
}

func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID string) ([]model.Review, error) {
	if !validID(movieID) {
		return []model.Review{}, nil
	}
	return r.query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE movie_id = $1 ORDER BY created_at, id`, movieID)
}

// Create does not check that the movie exists; callers do that first.
func (r *ReviewRepository) Create(ctx context.Context, rv *model.Review) error {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (id, movie_id, username, review, rating, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, rv.MovieID, rv.Username, rv.Review, rv.Rating, now)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	rv.ID = id
	rv.CreatedAt = now
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return model.ErrReviewNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return expectOneRow(res, model.ErrReviewNotFound)
}

func (r *ReviewRepository) query(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.MovieID, &rv.Username, &rv.Review, &rv.Rating, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}
