package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/database"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

// BootcampRepository defines methods for interacting with bootcamp data
type BootcampRepository interface {
	Create(ctx context.Context, bootcamp *models.Bootcamp) error
	GetByID(ctx context.Context, id int64) (*models.Bootcamp, error)
	List(ctx context.Context, limit, offset int) ([]*models.Bootcamp, int, error)
	Update(ctx context.Context, bootcamp *models.Bootcamp) error
	Delete(ctx context.Context, id int64) error
}

// PostgresBootcampRepository is a PostgreSQL implementation of BootcampRepository
type PostgresBootcampRepository struct {
	db *database.Pool
}

// NewBootcampRepository creates a new BootcampRepository
func NewBootcampRepository(db *database.Pool) BootcampRepository {
	return &PostgresBootcampRepository{
		db: db,
	}
}

const bootcampColumns = `bootcamp_id, name, description, website, phone, email, address, careers, housing, job_assistance, average_cost, created_at, updated_at`

// scanBootcamp scans a full bootcamp row in bootcampColumns order.
// Careers round-trips through pq.Array.
func scanBootcamp(row interface{ Scan(...interface{}) error }) (*models.Bootcamp, error) {
	bootcamp := &models.Bootcamp{}
	var website, phone, email sql.NullString
	var averageCost sql.NullFloat64
	err := row.Scan(
		&bootcamp.ID,
		&bootcamp.Name,
		&bootcamp.Description,
		&website,
		&phone,
		&email,
		&bootcamp.Address,
		pq.Array(&bootcamp.Careers),
		&bootcamp.Housing,
		&bootcamp.JobAssistance,
		&averageCost,
		&bootcamp.CreatedAt,
		&bootcamp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	bootcamp.Website = website.String
	bootcamp.Phone = phone.String
	bootcamp.Email = email.String
	bootcamp.AverageCost = averageCost.Float64
	return bootcamp, nil
}

// Create adds a new bootcamp to the database
func (r *PostgresBootcampRepository) Create(ctx context.Context, bootcamp *models.Bootcamp) error {
	startTime := time.Now()

	now := time.Now()
	bootcamp.CreatedAt = now
	bootcamp.UpdatedAt = now

	query := `
        INSERT INTO bootcamps (name, description, website, phone, email, address, careers, housing, job_assistance, average_cost, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING bootcamp_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		bootcamp.Name,
		bootcamp.Description,
		bootcamp.Website,
		bootcamp.Phone,
		bootcamp.Email,
		bootcamp.Address,
		pq.Array(bootcamp.Careers),
		bootcamp.Housing,
		bootcamp.JobAssistance,
		bootcamp.AverageCost,
		bootcamp.CreatedAt,
		bootcamp.UpdatedAt,
	).Scan(&bootcamp.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{bootcamp.Name, bootcamp.Description, bootcamp.Website, bootcamp.Phone, bootcamp.Email, bootcamp.Address, bootcamp.Careers, bootcamp.Housing, bootcamp.JobAssistance, bootcamp.AverageCost, bootcamp.CreatedAt, bootcamp.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "name") {
				return utils.NewDuplicateError("Bootcamp", "name", bootcamp.Name)
			}
		}
		return fmt.Errorf("failed to create bootcamp: %w", err)
	}

	log.Info().
		Int64("bootcamp_id", bootcamp.ID).
		Str("name", bootcamp.Name).
		Msg("Bootcamp created")

	return nil
}

// GetByID retrieves a bootcamp by ID
func (r *PostgresBootcampRepository) GetByID(ctx context.Context, id int64) (*models.Bootcamp, error) {
	startTime := time.Now()

	query := `
        SELECT ` + bootcampColumns + `
        FROM bootcamps
        WHERE bootcamp_id = $1
    `

	bootcamp, err := scanBootcamp(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Bootcamp", id)
		}
		return nil, fmt.Errorf("failed to get bootcamp by ID: %w", err)
	}

	return bootcamp, nil
}

// List retrieves a page of bootcamps and the total bootcamp count
func (r *PostgresBootcampRepository) List(ctx context.Context, limit, offset int) ([]*models.Bootcamp, int, error) {
	startTime := time.Now()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bootcamps`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bootcamps: %w", err)
	}

	query := `
        SELECT ` + bootcampColumns + `
        FROM bootcamps
        ORDER BY bootcamp_id
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
		return nil, 0, fmt.Errorf("failed to list bootcamps: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	var bootcamps []*models.Bootcamp
	for rows.Next() {
		bootcamp, err := scanBootcamp(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, bootcamp)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating bootcamps: %w", err)
	}

	return bootcamps, total, nil
}

// Update updates a bootcamp in the database
func (r *PostgresBootcampRepository) Update(ctx context.Context, bootcamp *models.Bootcamp) error {
	startTime := time.Now()

	bootcamp.UpdatedAt = time.Now()

	query := `
        UPDATE bootcamps
        SET name = $1, description = $2, website = $3, phone = $4, email = $5, address = $6, careers = $7, housing = $8, job_assistance = $9, average_cost = $10, updated_at = $11
        WHERE bootcamp_id = $12
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		bootcamp.Name,
		bootcamp.Description,
		bootcamp.Website,
		bootcamp.Phone,
		bootcamp.Email,
		bootcamp.Address,
		pq.Array(bootcamp.Careers),
		bootcamp.Housing,
		bootcamp.JobAssistance,
		bootcamp.AverageCost,
		bootcamp.UpdatedAt,
		bootcamp.ID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{bootcamp.Name, bootcamp.Description, bootcamp.Website, bootcamp.Phone, bootcamp.Email, bootcamp.Address, bootcamp.Careers, bootcamp.Housing, bootcamp.JobAssistance, bootcamp.AverageCost, bootcamp.UpdatedAt, bootcamp.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "name") {
				return utils.NewDuplicateError("Bootcamp", "name", bootcamp.Name)
			}
		}
		return fmt.Errorf("failed to update bootcamp: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Bootcamp", bootcamp.ID)
	}

	log.Info().
		Int64("bootcamp_id", bootcamp.ID).
		Str("name", bootcamp.Name).
		Msg("Bootcamp updated")

	return nil
}

// Delete removes a bootcamp. Its courses and reviews are removed by the
// foreign key cascades.
func (r *PostgresBootcampRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM bootcamps WHERE bootcamp_id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete bootcamp: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Bootcamp", id)
	}

	log.Info().
		Int64("bootcamp_id", id).
		Msg("Bootcamp deleted")

	return nil
}
