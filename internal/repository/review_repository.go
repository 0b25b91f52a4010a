package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/database"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

// ReviewRepository defines methods for interacting with review data
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context, limit, offset int) ([]*models.Review, int, error)
	ListByBootcamp(ctx context.Context, bootcampID int64) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
}

// PostgresReviewRepository is a PostgreSQL implementation of ReviewRepository
type PostgresReviewRepository struct {
	db *database.Pool
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *database.Pool) ReviewRepository {
	return &PostgresReviewRepository{
		db: db,
	}
}

const reviewColumns = `review_id, bootcamp_id, user_id, title, text, rating, created_at, updated_at`

func scanReview(row interface{ Scan(...interface{}) error }) (*models.Review, error) {
	review := &models.Review{}
	err := row.Scan(
		&review.ID,
		&review.BootcampID,
		&review.UserID,
		&review.Title,
		&review.Text,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Create adds a new review to the database. The unique constraint on
// (bootcamp_id, user_id) keeps each user to one review per bootcamp.
func (r *PostgresReviewRepository) Create(ctx context.Context, review *models.Review) error {
	startTime := time.Now()

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	query := `
        INSERT INTO reviews (bootcamp_id, user_id, title, text, rating, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING review_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		review.BootcampID,
		review.UserID,
		review.Title,
		review.Text,
		review.Rating,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&review.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{review.BootcampID, review.UserID, review.Title, review.Text, review.Rating, review.CreatedAt, review.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return utils.NewDuplicateError("Review", "bootcamp", review.BootcampID)
			case "23503":
				return utils.NewNotFoundError("Bootcamp", review.BootcampID)
			}
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	log.Info().
		Int64("review_id", review.ID).
		Int64("bootcamp_id", review.BootcampID).
		Int64("user_id", review.UserID).
		Msg("Review created")

	return nil
}

// GetByID retrieves a review by ID
func (r *PostgresReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	startTime := time.Now()

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE review_id = $1
    `

	review, err := scanReview(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Review", id)
		}
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}

	return review, nil
}

// List retrieves a page of reviews and the total review count
func (r *PostgresReviewRepository) List(ctx context.Context, limit, offset int) ([]*models.Review, int, error) {
	startTime := time.Now()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        ORDER BY review_id
        LIMIT $1 OFFSET $2
    `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)

	utils.LogDBQuery(
		query,
		[]interface{}{limit, offset},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	var reviews []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, total, nil
}

// ListByBootcamp retrieves all reviews of a bootcamp
func (r *PostgresReviewRepository) ListByBootcamp(ctx context.Context, bootcampID int64) ([]*models.Review, error) {
	startTime := time.Now()

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE bootcamp_id = $1
        ORDER BY review_id
    `

	rows, err := r.db.QueryContext(ctx, query, bootcampID)

	utils.LogDBQuery(
		query,
		[]interface{}{bootcampID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by bootcamp: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	var reviews []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Update updates a review in the database
func (r *PostgresReviewRepository) Update(ctx context.Context, review *models.Review) error {
	startTime := time.Now()

	review.UpdatedAt = time.Now()

	query := `
        UPDATE reviews
        SET title = $1, text = $2, rating = $3, updated_at = $4
        WHERE review_id = $5
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		review.Title,
		review.Text,
		review.Rating,
		review.UpdatedAt,
		review.ID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{review.Title, review.Text, review.Rating, review.UpdatedAt, review.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Review", review.ID)
	}

	log.Info().
		Int64("review_id", review.ID).
		Msg("Review updated")

	return nil
}

// Delete removes a review from the database
func (r *PostgresReviewRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM reviews WHERE review_id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Review", id)
	}

	log.Info().
		Int64("review_id", id).
		Msg("Review deleted")

	return nil
}
